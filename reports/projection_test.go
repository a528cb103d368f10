package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communitypulse-be/models"
)

var feedBase = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// testFeed returns issues in no particular created order so sorting is
// actually exercised.
func testFeed() []models.Issue {
	return []models.Issue{
		{
			Title:         "Deep pothole on Elm Street",
			Description:   "Swallowed a bike wheel this morning",
			Category:      models.Pothole,
			Status:        models.StatusNew,
			LocationName:  "Riverside",
			UpvotesCount:  4,
			PriorityScore: 20,
			CreatedAt:     feedBase.AddDate(0, 0, 2),
		},
		{
			Title:         "Streetlight out",
			Description:   "Corner of 5th and Main is pitch dark",
			Category:      models.BrokenStreetlight,
			Status:        models.StatusInProgress,
			LocationName:  "Downtown",
			UpvotesCount:  9,
			PriorityScore: 55,
			CreatedAt:     feedBase.AddDate(0, 0, 4),
		},
		{
			Title:         "Graffiti on the underpass",
			Description:   "Fresh tags near the riverside path",
			Category:      models.Graffiti,
			Status:        models.StatusResolved,
			UpvotesCount:  1,
			PriorityScore: 5,
			CreatedAt:     feedBase,
		},
		{
			Title:         "Trash bin overflowing",
			Description:   "Bin has not been emptied in a week",
			Category:      models.OverflowingTrashBin,
			Status:        models.StatusNew,
			LocationName:  "Market Square",
			UpvotesCount:  4,
			PriorityScore: 30,
			CreatedAt:     feedBase.AddDate(0, 0, 1),
		},
	}
}

func titles(issues []models.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, iss := range issues {
		out = append(out, iss.Title)
	}
	return out
}

func TestApplyNoFiltersReturnsEverythingNewestFirst(t *testing.T) {
	got := Apply(testFeed(), Query{})

	require.Len(t, got, 4)
	assert.Equal(t, []string{
		"Streetlight out",
		"Deep pothole on Elm Street",
		"Trash bin overflowing",
		"Graffiti on the underpass",
	}, titles(got))
}

func TestApplyAllFiltersAreNoOps(t *testing.T) {
	got := Apply(testFeed(), Query{Status: FilterAll, Category: FilterAll})
	assert.Len(t, got, 4)
}

func TestApplySearchIsCaseInsensitiveSubstring(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"title match", "POTHOLE", []string{"Deep pothole on Elm Street"}},
		{"description match", "pitch dark", []string{"Streetlight out"}},
		{"location match", "market", []string{"Trash bin overflowing"}},
		{"no match", "sinkhole", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(testFeed(), Query{Search: tt.search})
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestApplySearchAbsentLocationNeverMatches(t *testing.T) {
	// "riverside" appears in the graffiti issue's description and in the
	// pothole issue's location name; the graffiti issue itself has no
	// location name, so only those two ways of matching may count.
	got := Apply(testFeed(), Query{Search: "riverside", Sort: SortOldest})

	assert.Equal(t, []string{
		"Graffiti on the underpass",
		"Deep pothole on Elm Street",
	}, titles(got))
}

func TestApplyStatusAndCategoryAreExactMatches(t *testing.T) {
	got := Apply(testFeed(), Query{Status: string(models.StatusNew)})
	require.Len(t, got, 2)
	for _, iss := range got {
		assert.Equal(t, models.StatusNew, iss.Status)
	}

	got = Apply(testFeed(), Query{Category: string(models.Graffiti)})
	require.Len(t, got, 1)
	assert.Equal(t, "Graffiti on the underpass", got[0].Title)

	got = Apply(testFeed(), Query{Status: string(models.StatusNew), Category: string(models.Pothole)})
	require.Len(t, got, 1)
	assert.Equal(t, "Deep pothole on Elm Street", got[0].Title)
}

func TestApplySortKeys(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want []string
	}{
		{"popular", SortPopular, []string{
			"Streetlight out",
			"Deep pothole on Elm Street", // ties with trash bin, input order kept
			"Trash bin overflowing",
			"Graffiti on the underpass",
		}},
		{"priority", SortPriority, []string{
			"Streetlight out",
			"Trash bin overflowing",
			"Deep pothole on Elm Street",
			"Graffiti on the underpass",
		}},
		{"oldest", SortOldest, []string{
			"Graffiti on the underpass",
			"Trash bin overflowing",
			"Deep pothole on Elm Street",
			"Streetlight out",
		}},
		{"unknown key falls back to newest", "votes", []string{
			"Streetlight out",
			"Deep pothole on Elm Street",
			"Trash bin overflowing",
			"Graffiti on the underpass",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(testFeed(), Query{Sort: tt.sort})
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestApplyZeroValueFieldsSortAsZero(t *testing.T) {
	issues := []models.Issue{
		{Title: "scored", UpvotesCount: 3, CreatedAt: feedBase},
		{Title: "unscored", CreatedAt: feedBase.AddDate(0, 0, 1)},
	}

	got := Apply(issues, Query{Sort: SortPopular})
	assert.Equal(t, []string{"scored", "unscored"}, titles(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	issues := testFeed()
	first := issues[0].Title

	Apply(issues, Query{Sort: SortOldest})

	assert.Equal(t, first, issues[0].Title)
}

func TestApplyResultSatisfiesEveryActivePredicate(t *testing.T) {
	q := Query{Search: "the", Status: FilterAll, Category: FilterAll, Sort: SortPopular}
	got := Apply(testFeed(), q)

	require.NotEmpty(t, got)
	for _, iss := range got {
		assert.True(t, Matches(iss, q), "projected issue %q fails its own query", iss.Title)
	}
}
