package services

import (
	"sort"
	"strings"

	"jansahay-be/models"
)

// Sort orders for FilterOptions.SortBy.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// FilterOptions are the view filters applied to a merged issue list.
// Empty fields impose no constraint; active filters combine with AND.
type FilterOptions struct {
	Search     string
	Type       string
	Department string
	Status     string
	SortBy     string
}

// ApplyFilters runs the filter/sort pipeline over a merged issue list and
// returns a new slice. Search matches case-insensitively as a substring
// against issue type, description and location (any of the three).
// The status filter compares against the normalized status, so documents
// missing the field count as Pending. Pure; safe to re-run on every
// filter change.
func ApplyFilters(issues []models.Issue, opts FilterOptions) []models.Issue {
	search := strings.ToLower(opts.Search)

	filtered := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if search != "" {
			matches := strings.Contains(strings.ToLower(issue.IssueType), search) ||
				strings.Contains(strings.ToLower(issue.Description), search) ||
				strings.Contains(strings.ToLower(issue.Location), search)
			if !matches {
				continue
			}
		}
		if opts.Type != "" && issue.IssueType != opts.Type {
			continue
		}
		if opts.Department != "" && issue.Department != opts.Department {
			continue
		}
		if opts.Status != "" {
			want, ok := models.ParseStatus(opts.Status)
			if !ok || models.NormalizeStatus(string(issue.Status)) != want {
				continue
			}
		}
		filtered = append(filtered, issue)
	}

	// Stable sort on the seconds component keeps equal timestamps in
	// input order within a single run.
	switch opts.SortBy {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Unix() < filtered[j].CreatedAt.Unix()
		})
	case SortNewest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Unix() > filtered[j].CreatedAt.Unix()
		})
	}

	return filtered
}

// UniqueValues collects the distinct non-empty results of field over the
// list, in first-seen order. Backs the filter dropdowns.
func UniqueValues(issues []models.Issue, field func(models.Issue) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, issue := range issues {
		v := field(issue)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
