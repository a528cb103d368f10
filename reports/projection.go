// Package reports holds the public feed's derivation pipeline: the
// filter/search/sort projection and the spreadsheet export built from it.
// Everything here is pure; handlers feed it a snapshot and render the result.
package reports

import (
	"sort"
	"strings"

	"communitypulse-be/models"
)

// Sort keys accepted by the public feed. Unknown keys fall back to newest.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortPopular  = "popular"
	SortPriority = "priority"
)

// FilterAll disables a status or category filter.
const FilterAll = "all"

// Query holds the active filter inputs of the public reports view.
type Query struct {
	Search   string
	Status   string
	Category string
	Sort     string
}

// Apply derives the filtered, sorted projection of issues under q. The input
// slice is never mutated; ties under every sort key keep their relative input
// order.
func Apply(issues []models.Issue, q Query) []models.Issue {
	out := make([]models.Issue, 0, len(issues))
	for _, iss := range issues {
		if Matches(iss, q) {
			out = append(out, iss)
		}
	}
	sortIssues(out, q.Sort)
	return out
}

// Matches reports whether a single issue satisfies every active filter of q.
func Matches(iss models.Issue, q Query) bool {
	return matchesSearch(iss, q.Search) &&
		matchesExact(string(iss.Status), q.Status) &&
		matchesExact(string(iss.Category), q.Category)
}

func matchesExact(value, filter string) bool {
	return filter == "" || filter == FilterAll || value == filter
}

func matchesSearch(iss models.Issue, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(iss.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(iss.Description), needle) {
		return true
	}
	// An absent location name never matches.
	return iss.LocationName != "" &&
		strings.Contains(strings.ToLower(iss.LocationName), needle)
}

func sortIssues(issues []models.Issue, key string) {
	switch key {
	case SortPopular:
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].UpvotesCount > issues[j].UpvotesCount
		})
	case SortPriority:
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].PriorityScore > issues[j].PriorityScore
		})
	case SortOldest:
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].CreatedAt.Before(issues[j].CreatedAt)
		})
	case SortNewest:
		fallthrough
	default:
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].CreatedAt.After(issues[j].CreatedAt)
		})
	}
}
