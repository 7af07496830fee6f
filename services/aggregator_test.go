package services

import (
	"testing"

	"jansahay-be/models"

	"github.com/stretchr/testify/assert"
)

func TestCountByStatusTallyInvariant(t *testing.T) {
	issues := []models.Issue{
		{Status: models.Pending},
		{Status: models.InProgress},
		{Status: models.Resolved},
		{Status: models.Rejected},
		{Status: ""},            // missing status counts as Pending
		{Status: "in-progress"}, // stored lowercase form
		{Status: "resolved"},
		{Status: "something-else"}, // unrecognized defaults to Pending
	}

	counts := CountByStatus(issues)

	assert.Equal(t, len(issues), counts.Total)
	assert.Equal(t, counts.Total, counts.Pending+counts.InProgress+counts.Resolved+counts.Rejected)
	assert.Equal(t, 3, counts.Pending)
	assert.Equal(t, 2, counts.InProgress)
	assert.Equal(t, 2, counts.Resolved)
	assert.Equal(t, 1, counts.Rejected)
}

func TestCountByStatusEmpty(t *testing.T) {
	counts := CountByStatus(nil)
	assert.Equal(t, StatusCounts{}, counts)
}
