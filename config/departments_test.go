package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDepartment(t *testing.T) {
	cases := map[string]string{
		"public":       "publicwork",
		"Public Works": "publicwork",
		"publicworks":  "publicwork",
		"Sanitation":   "sanitation",
		"authorities":  "authority",
		"services":     "service",
		"  Water  ":    "water",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeDepartment(input), "input %q", input)
	}
}

func TestCollectionsForDepartmentPublic(t *testing.T) {
	want := []string{
		"potholeissues",
		"roadissues",
		"drainissues",
		"bridgeissues",
		"sidewalkissues",
		"constructionissues",
	}
	assert.Equal(t, want, CollectionsForDepartment("public"))
	assert.Equal(t, want, CollectionsForDepartment("Public Works"))
}

func TestCollectionsForDepartmentAllKeys(t *testing.T) {
	keys := DepartmentKeys()
	require.NotEmpty(t, keys)

	for _, key := range keys {
		cols := CollectionsForDepartment(key)
		require.NotEmpty(t, cols, "department %q", key)

		seen := make(map[string]bool)
		for _, col := range cols {
			assert.False(t, seen[col], "department %q lists %q twice", key, col)
			seen[col] = true
		}
	}
}

func TestCollectionsForDepartmentUnknown(t *testing.T) {
	assert.Empty(t, CollectionsForDepartment("astrology"))
	assert.Empty(t, CollectionsForDepartment(""))
}

func TestCollectionsForDepartmentReturnsCopy(t *testing.T) {
	first := CollectionsForDepartment("sanitation")
	first[0] = "mutated"
	assert.NotEqual(t, first[0], CollectionsForDepartment("sanitation")[0])
}

func TestDepartmentFromEmail(t *testing.T) {
	assert.Equal(t, "publicwork", DepartmentFromEmail("admin.public@city.gov"))
	assert.Equal(t, "sanitation", DepartmentFromEmail("Admin.Sanitation@city.gov"))
	assert.Equal(t, "fire", DepartmentFromEmail("admin.fire@example.org"))

	assert.Equal(t, "", DepartmentFromEmail("citizen@city.gov"))
	assert.Equal(t, "", DepartmentFromEmail("admin@city.gov"))
	assert.Equal(t, "", DepartmentFromEmail("administrator.public@city.gov"))
	assert.Equal(t, "", DepartmentFromEmail(""))
}

func TestDepartmentDisplayName(t *testing.T) {
	assert.Equal(t, "Public Works", DepartmentDisplayName("public"))
	assert.Equal(t, "Water Supply", DepartmentDisplayName("water"))
	assert.Equal(t, "Roads & Transport", DepartmentDisplayName("transportation"))
	assert.Equal(t, "", DepartmentDisplayName("astrology"))
}

func TestEveryDepartmentHasDisplayName(t *testing.T) {
	for _, key := range DepartmentKeys() {
		assert.NotEmpty(t, DepartmentDisplayName(key), "department %q", key)
	}
}
