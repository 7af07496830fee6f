package services

import (
	"testing"
	"time"

	"jansahay-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssue(issueType, department, description, location string, status models.IssueStatus, createdAtSec int64) models.Issue {
	return models.Issue{
		IssueType:   issueType,
		Department:  department,
		Description: description,
		Location:    location,
		Status:      status,
		CreatedAt:   time.Unix(createdAtSec, 0),
	}
}

func TestSearchIsCaseInsensitiveAndOrCombined(t *testing.T) {
	issues := []models.Issue{
		testIssue("Pothole", "Public Works", "Deep pothole near the market", "Bhabua, Kaimur", models.Pending, 100),
		testIssue("Garbage", "Sanitation", "Overflowing bin", "Park Street, Kolkata", models.Pending, 200),
	}

	for _, term := range []string{"bhabua", "Kaimur", "POTHOLE", "market"} {
		got := ApplyFilters(issues, FilterOptions{Search: term})
		require.Len(t, got, 1, "search %q", term)
		assert.Equal(t, "Pothole", got[0].IssueType)
	}

	assert.Len(t, ApplyFilters(issues, FilterOptions{Search: "streetlight"}), 0)
}

func TestFiltersCombineWithAnd(t *testing.T) {
	issues := []models.Issue{
		testIssue("Pothole", "Public Works", "a", "x", models.Pending, 1),
		testIssue("Pothole", "Roads & Transport", "b", "y", models.Pending, 2),
		testIssue("Garbage", "Public Works", "c", "z", models.Resolved, 3),
	}

	got := ApplyFilters(issues, FilterOptions{Type: "Pothole", Department: "Public Works"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Description)

	got = ApplyFilters(issues, FilterOptions{Department: "Public Works", Status: "Resolved"})
	require.Len(t, got, 1)
	assert.Equal(t, "Garbage", got[0].IssueType)
}

func TestStatusFilterUsesNormalizedStatus(t *testing.T) {
	issues := []models.Issue{
		testIssue("Pothole", "Public Works", "missing status", "x", "", 1),
		testIssue("Garbage", "Sanitation", "stored lowercase", "y", "in-progress", 2),
		testIssue("Streetlight", "Electricity", "resolved", "z", models.Resolved, 3),
	}

	got := ApplyFilters(issues, FilterOptions{Status: "Pending"})
	require.Len(t, got, 1)
	assert.Equal(t, "missing status", got[0].Description)

	got = ApplyFilters(issues, FilterOptions{Status: "In Progress"})
	require.Len(t, got, 1)
	assert.Equal(t, "stored lowercase", got[0].Description)

	assert.Len(t, ApplyFilters(issues, FilterOptions{Status: "nonsense"}), 0)
}

func TestSortByCreatedAtSeconds(t *testing.T) {
	issues := []models.Issue{
		testIssue("Pothole", "Public Works", "older", "x", models.Pending, 100),
		testIssue("Garbage", "Sanitation", "newer", "y", models.Pending, 200),
	}

	newest := ApplyFilters(issues, FilterOptions{SortBy: SortNewest})
	require.Len(t, newest, 2)
	assert.Equal(t, "newer", newest[0].Description)

	oldest := ApplyFilters(issues, FilterOptions{SortBy: SortOldest})
	require.Len(t, oldest, 2)
	assert.Equal(t, "older", oldest[0].Description)
}

func TestSortIsStableForEqualTimestamps(t *testing.T) {
	issues := []models.Issue{
		testIssue("Pothole", "Public Works", "first", "x", models.Pending, 100),
		testIssue("Garbage", "Sanitation", "second", "y", models.Pending, 100),
		testIssue("Streetlight", "Electricity", "third", "z", models.Pending, 100),
	}

	got := ApplyFilters(issues, FilterOptions{SortBy: SortNewest})
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Description)
	assert.Equal(t, "second", got[1].Description)
	assert.Equal(t, "third", got[2].Description)
}

func TestApplyFiltersIsIdempotent(t *testing.T) {
	issues := []models.Issue{
		testIssue("Pothole", "Public Works", "a", "x", models.Pending, 300),
		testIssue("Garbage", "Sanitation", "b", "y", models.Resolved, 100),
		testIssue("Streetlight", "Electricity", "c", "z", "", 200),
	}
	opts := FilterOptions{SortBy: SortOldest}

	first := ApplyFilters(issues, opts)
	second := ApplyFilters(issues, opts)
	assert.Equal(t, first, second)

	again := ApplyFilters(first, opts)
	assert.Equal(t, first, again)
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	issues := []models.Issue{
		testIssue("Pothole", "Public Works", "a", "x", models.Pending, 200),
		testIssue("Garbage", "Sanitation", "b", "y", models.Pending, 100),
	}

	_ = ApplyFilters(issues, FilterOptions{SortBy: SortOldest})
	assert.Equal(t, "a", issues[0].Description)
	assert.Equal(t, "b", issues[1].Description)
}

func TestUniqueValues(t *testing.T) {
	issues := []models.Issue{
		testIssue("Pothole", "Public Works", "a", "x", models.Pending, 1),
		testIssue("Pothole", "Sanitation", "b", "y", models.Pending, 2),
		testIssue("Garbage", "", "c", "z", models.Pending, 3),
	}

	types := UniqueValues(issues, func(i models.Issue) string { return i.IssueType })
	assert.Equal(t, []string{"Pothole", "Garbage"}, types)

	depts := UniqueValues(issues, func(i models.Issue) string { return i.Department })
	assert.Equal(t, []string{"Public Works", "Sanitation"}, depts)
}
