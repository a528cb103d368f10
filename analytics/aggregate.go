// Package analytics derives the dashboard summaries from a full snapshot of
// the issues table. Every aggregation is a single-pass fold over the slice it
// is handed; nothing here is incremental because the dashboards re-fetch on
// every load.
package analytics

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"communitypulse-be/models"
)

// UnknownLocation is the hotspot bucket for issues without a location name.
const UnknownLocation = "Unknown"

// HotspotLimit caps the location ranking.
const HotspotLimit = 10

// Palette is the fixed color cycle assigned to ranked category buckets.
var Palette = []string{
	"#3b82f6", "#ef4444", "#f59e0b", "#10b981",
	"#8b5cf6", "#ec4899", "#06b6d4", "#f97316",
}

type MonthlyCount struct {
	Month    string `json:"month"` // short month + 2-digit year, e.g. "Jan 24"
	Total    int    `json:"total"`
	Resolved int    `json:"resolved"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type RankedCategory struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Color    string `json:"color"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type CategoryResolution struct {
	Category string  `json:"category"`
	AvgHours float64 `json:"avgHours"`
	Resolved int     `json:"resolved"`
}

type Summary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Resolved int `json:"resolved"`
	Spam     int `json:"spam"`
}

// MonthlyTrends buckets issues by the (year, month) of their creation time.
// Only months that saw at least one issue are emitted, oldest first.
func MonthlyTrends(issues []models.Issue) []MonthlyCount {
	type key struct {
		year  int
		month time.Month
	}

	totals := make(map[key]int)
	resolved := make(map[key]int)
	for _, iss := range issues {
		k := key{iss.CreatedAt.Year(), iss.CreatedAt.Month()}
		totals[k]++
		if iss.Status == models.StatusResolved {
			resolved[k]++
		}
	}

	keys := make([]key, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]MonthlyCount, 0, len(keys))
	for _, k := range keys {
		label := time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 06")
		out = append(out, MonthlyCount{Month: label, Total: totals[k], Resolved: resolved[k]})
	}
	return out
}

// CategoryDistribution counts issues per category string, name-ascending for
// a deterministic order. Unexpected category values get their own buckets.
func CategoryDistribution(issues []models.Issue) []CategoryCount {
	counts := make(map[string]int)
	for _, iss := range issues {
		counts[string(iss.Category)]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Category: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// RankedCategories returns the category distribution sorted by count
// descending, each bucket colored from the fixed palette by rank index.
func RankedCategories(issues []models.Issue) []RankedCategory {
	dist := CategoryDistribution(issues)
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })

	out := make([]RankedCategory, 0, len(dist))
	for i, c := range dist {
		out = append(out, RankedCategory{
			Category: c.Category,
			Count:    c.Count,
			Color:    Palette[i%len(Palette)],
		})
	}
	return out
}

// DayOfWeekCounts buckets issues by the weekday they were created. All seven
// buckets are always emitted, Sunday through Saturday, zero-filled.
func DayOfWeekCounts(issues []models.Issue) []DayCount {
	var counts [7]int
	for _, iss := range issues {
		counts[iss.CreatedAt.Weekday()]++
	}

	out := make([]DayCount, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		out[d] = DayCount{Day: d.String()[:3], Count: counts[d]}
	}
	return out
}

// LocationCounts counts issues per location name, empty names folding into
// the Unknown bucket, sorted by count descending (name ascending on ties).
func LocationCounts(issues []models.Issue) []LocationCount {
	counts := make(map[string]int)
	for _, iss := range issues {
		name := iss.LocationName
		if name == "" {
			name = UnknownLocation
		}
		counts[name]++
	}

	out := make([]LocationCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, LocationCount{Location: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Location < out[j].Location
	})
	return out
}

// TopLocations is the hotspot ranking: LocationCounts truncated to the top 10.
func TopLocations(issues []models.Issue) []LocationCount {
	out := LocationCounts(issues)
	if len(out) > HotspotLimit {
		out = out[:HotspotLimit]
	}
	return out
}

// ResolutionTimes averages resolved-at minus created-at, in hours, per
// category. Only rows that are both marked resolved and carry a resolution
// timestamp count; everything else is skipped.
func ResolutionTimes(issues []models.Issue) []CategoryResolution {
	hours := make(map[string][]float64)
	for _, iss := range issues {
		if iss.Status != models.StatusResolved || iss.ResolvedAt == nil {
			continue
		}
		cat := string(iss.Category)
		hours[cat] = append(hours[cat], iss.ResolvedAt.Sub(iss.CreatedAt).Hours())
	}

	out := make([]CategoryResolution, 0, len(hours))
	for cat, hs := range hours {
		avg, err := stats.Mean(stats.Float64Data(hs))
		if err != nil {
			continue
		}
		out = append(out, CategoryResolution{Category: cat, AvgHours: avg, Resolved: len(hs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Summarize produces the headline tallies shown on the dashboards. Active
// means publicly visible and not yet resolved.
func Summarize(issues []models.Issue) Summary {
	var s Summary
	s.Total = len(issues)
	for _, iss := range issues {
		if iss.IsSpam {
			s.Spam++
			continue
		}
		if iss.Status == models.StatusResolved {
			s.Resolved++
		} else {
			s.Active++
		}
	}
	return s
}
