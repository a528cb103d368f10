package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"communitypulse-be/models"
)

// ExportSheet is the single worksheet holding the projected rows.
const ExportSheet = "Reports"

// ExportHeader is the fixed column set of the download, in order.
var ExportHeader = []interface{}{
	"ID", "Title", "Description", "Category", "Status", "Created At",
	"Location", "Address", "Landmark", "Upvotes", "Priority Score",
	"Image URL", "Public Notes", "Assigned To", "Response Time",
}

// ExportFilename names the download after the day it was generated, e.g.
// community_reports_2024-03-15.xlsx.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("community_reports_%s.xlsx", t.Format("2006-01-02"))
}

// BuildWorkbook serializes projected issues into a single-sheet workbook with
// the fixed export columns. Callers decide what to do with an empty
// projection; this function is never handed one by the export endpoint.
func BuildWorkbook(issues []models.Issue) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &ExportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, iss := range issues {
		row := []interface{}{
			iss.ID.Hex(),
			iss.Title,
			iss.Description,
			string(iss.Category),
			string(iss.Status),
			iss.CreatedAt.Format("2006-01-02 15:04"),
			iss.LocationName,
			iss.StreetAddress,
			iss.Landmark,
			iss.UpvotesCount,
			iss.PriorityScore,
			iss.ImageURL,
			iss.PublicNotes,
			iss.AssignedTo,
			iss.ResponseTime,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
