package config

import (
	"regexp"
	"strings"
)

// departmentCollections maps a normalized department key to the issue
// collections that may hold documents for that department. This is the
// single authoritative table; lookups must go through NormalizeDepartment.
var departmentCollections = map[string][]string{
	"publicwork": {
		"potholeissues",
		"roadissues",
		"drainissues",
		"bridgeissues",
		"sidewalkissues",
		"constructionissues",
	},
	"sanitation": {
		"garbageissues",
		"cleaningissues",
		"recyclingissues",
		"dumpsterissues",
		"compostissues",
		"litterissues",
	},
	"electricity": {
		"streetlightissues",
		"powerissues",
		"outageissues",
		"wiringissues",
		"transformerissues",
		"meterissues",
	},
	"water": {
		"waterleakissues",
		"drainageissues",
		"sewerissues",
		"floodingissues",
		"qualityissues",
		"meterissues",
	},
	"parks": {
		"parkissues",
		"playgroundissues",
		"treeissues",
		"grassissues",
		"benchissues",
		"fountainissues",
	},
	"transportation": {
		"trafficissues",
		"signissues",
		"signalissues",
		"parkingissues",
		"busissues",
		"bikeissues",
	},
	"health": {
		"mosquitoissues",
		"rodentissues",
		"sanitationissues",
		"restaurantissues",
		"vaccineissues",
		"clinicissues",
	},
	"police": {
		"safetyissues",
		"trafficissues",
		"patrolissues",
		"parkingissues",
		"noiseissues",
		"crimeissues",
	},
	"fire": {
		"hydrantissues",
		"safetyissues",
		"alarmissues",
		"accessissues",
		"hazardissues",
		"inspectionissues",
	},
	"animal": {
		"strayissues",
		"wildlifeissues",
		"dogissues",
		"noiseissues",
		"biteissues",
		"shelterissues",
	},
	"building": {
		"permitissues",
		"codeissues",
		"safetyissues",
		"constructionissues",
		"inspectionissues",
		"zoningissues",
	},
	"environment": {
		"pollutionissues",
		"recyclingissues",
		"treeissues",
		"airqualityissues",
		"noiseissues",
		"sustainabilityissues",
	},
}

// departmentDisplayNames maps a normalized department key to the display
// name stored in the `department` field of issue documents.
var departmentDisplayNames = map[string]string{
	"publicwork":     "Public Works",
	"sanitation":     "Sanitation",
	"electricity":    "Electricity",
	"water":          "Water Supply",
	"parks":          "Parks & Recreation",
	"transportation": "Roads & Transport",
	"health":         "Health",
	"police":         "Police",
	"fire":           "Fire Department",
	"animal":         "Animal Control",
	"building":       "Building",
	"environment":    "Environment",
}

var adminEmailPattern = regexp.MustCompile(`^admin\.([a-z]+)@`)

// NormalizeDepartment lowercases a department token and collapses the
// naming variants seen in admin email local-parts (plural "works",
// "ies", "services", "authorities"). Any token mentioning "public"
// means the public works department.
func NormalizeDepartment(token string) string {
	dept := strings.ToLower(strings.TrimSpace(token))
	dept = strings.Replace(dept, "works", "work", 1)
	dept = strings.Replace(dept, "ies", "y", 1)
	dept = strings.Replace(dept, "services", "service", 1)
	dept = strings.Replace(dept, "authorities", "authority", 1)
	if strings.Contains(dept, "public") {
		return "publicwork"
	}
	return dept
}

// CollectionsForDepartment resolves a department token to the collections
// that may contain its issues. Unknown tokens resolve to nil; callers must
// treat that as "no accessible data", not an error.
func CollectionsForDepartment(token string) []string {
	cols := departmentCollections[NormalizeDepartment(token)]
	if cols == nil {
		return nil
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// DepartmentFromEmail extracts the normalized department token from an
// admin email following the admin.<department>@domain convention.
// Returns "" for any other address.
func DepartmentFromEmail(email string) string {
	m := adminEmailPattern.FindStringSubmatch(strings.ToLower(email))
	if m == nil {
		return ""
	}
	return NormalizeDepartment(m[1])
}

// DepartmentDisplayName returns the display name written into issue
// documents for a department token, or "" when the token is unknown.
func DepartmentDisplayName(token string) string {
	return departmentDisplayNames[NormalizeDepartment(token)]
}

// DepartmentKeys lists every normalized key in the mapping table.
func DepartmentKeys() []string {
	keys := make([]string, 0, len(departmentCollections))
	for k := range departmentCollections {
		keys = append(keys, k)
	}
	return keys
}
