package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]IssueStatus{
		"":             Pending,
		"pending":      Pending,
		"Pending":      Pending,
		"in-progress":  InProgress,
		"In Progress":  InProgress,
		"inprogress":   InProgress,
		"resolved":     Resolved,
		"Resolved":     Resolved,
		"rejected":     Rejected,
		"garbagevalue": Pending,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "raw %q", raw)
	}
}

func TestStatusStorageValue(t *testing.T) {
	assert.Equal(t, "pending", StatusStorageValue(Pending))
	assert.Equal(t, "in-progress", StatusStorageValue(InProgress))
	assert.Equal(t, "resolved", StatusStorageValue(Resolved))
	assert.Equal(t, "rejected", StatusStorageValue(Rejected))
}

func TestStatusStorageRoundTrip(t *testing.T) {
	for _, status := range []IssueStatus{Pending, InProgress, Resolved, Rejected} {
		assert.Equal(t, status, NormalizeStatus(StatusStorageValue(status)))
	}
}

func TestParseStatus(t *testing.T) {
	status, ok := ParseStatus("in-progress")
	require.True(t, ok)
	assert.Equal(t, InProgress, status)

	status, ok = ParseStatus("Resolved")
	require.True(t, ok)
	assert.Equal(t, Resolved, status)

	_, ok = ParseStatus("closed")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestCollectionForIssueType(t *testing.T) {
	assert.Equal(t, "potholeissues", CollectionForIssueType("Pothole"))
	assert.Equal(t, "blockeddrainissues", CollectionForIssueType("Blocked Drain"))
	assert.Equal(t, "otherissues", CollectionForIssueType("Other"))
	assert.Equal(t, "", CollectionForIssueType("Alien Sighting"))
}

func TestEveryIssueTypeMapsIntoCollectionOrder(t *testing.T) {
	order := AllIssueCollections()
	require.Len(t, order, 14)

	inOrder := make(map[string]bool, len(order))
	for _, col := range order {
		inOrder[col] = true
	}
	for _, issueType := range []string{
		"Pothole", "Garbage", "Streetlight", "Water Leak", "Broken Bench",
		"Tree Fallen", "Manhole Open", "Illegal Parking", "Noise Complaint",
		"Animal Menace", "Blocked Drain", "Power Outage", "Road Damage", "Other",
	} {
		require.True(t, ValidIssueType(issueType))
		assert.True(t, inOrder[CollectionForIssueType(issueType)], "issue type %q", issueType)
	}
}

func TestValidDepartment(t *testing.T) {
	assert.True(t, ValidDepartment("Public Works"))
	assert.True(t, ValidDepartment("Animal Control"))
	assert.True(t, ValidDepartment("Other"))
	assert.False(t, ValidDepartment("public works"))
	assert.False(t, ValidDepartment("Space Program"))
}

func TestValidateImages(t *testing.T) {
	urls := []string{"a", "b", "c", "d"}
	assert.NoError(t, ValidateImages(nil))
	assert.NoError(t, ValidateImages(urls))
	assert.Error(t, ValidateImages(append(urls, "e")))
}
