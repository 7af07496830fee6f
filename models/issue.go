package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	InProgress IssueStatus = "In Progress"
	Resolved   IssueStatus = "Resolved"
	Rejected   IssueStatus = "Rejected"
)

// MaxIssueImages caps the number of hosted image URLs per issue.
const MaxIssueImages = 4

// Coordinates is an optional map point picked by the reporter.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Reporter identifies the submitting citizen. Email is the durable link
// back to the authenticated account and drives the "my issues" view.
type Reporter struct {
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
	Mobile string `bson:"mobile" json:"mobile"`
}

// Issue represents a civic issue reported by a citizen. Collection is not
// stored in the document; it is the origin collection annotated on fetch
// and is required to route status updates back to the right place.
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueType   string             `bson:"issueType" json:"issueType"`
	Department  string             `bson:"department" json:"department"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	Coordinates *Coordinates       `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	Status      IssueStatus        `bson:"status,omitempty" json:"status"`
	Reporter    Reporter           `bson:"reporter" json:"reporter"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	Collection  string             `bson:"-" json:"collection,omitempty"`
}

// issueTypeCollections routes a report to its backing collection. An
// issue is written once into the collection for its type and never moves.
var issueTypeCollections = map[string]string{
	"Pothole":         "potholeissues",
	"Garbage":         "garbageissues",
	"Streetlight":     "streetlightissues",
	"Water Leak":      "waterleakissues",
	"Broken Bench":    "brokenbenchissues",
	"Tree Fallen":     "treefallenissues",
	"Manhole Open":    "manholeopenissues",
	"Illegal Parking": "illegalparkingissues",
	"Noise Complaint": "noisecomplaintissues",
	"Animal Menace":   "animalmenaceissues",
	"Blocked Drain":   "blockeddrainissues",
	"Power Outage":    "poweroutageissues",
	"Road Damage":     "roaddamageissues",
	"Other":           "otherissues",
}

// issueCollectionOrder is the fixed fetch order for the public feed,
// history and map views.
var issueCollectionOrder = []string{
	"potholeissues",
	"garbageissues",
	"streetlightissues",
	"waterleakissues",
	"brokenbenchissues",
	"treefallenissues",
	"manholeopenissues",
	"illegalparkingissues",
	"noisecomplaintissues",
	"animalmenaceissues",
	"blockeddrainissues",
	"poweroutageissues",
	"roaddamageissues",
	"otherissues",
}

// reportDepartments are the department display names selectable on the
// reporting form.
var reportDepartments = map[string]bool{
	"Public Works":       true,
	"Sanitation":         true,
	"Electricity":        true,
	"Water Supply":       true,
	"Parks & Recreation": true,
	"Roads & Transport":  true,
	"Health":             true,
	"Police":             true,
	"Fire Department":    true,
	"Animal Control":     true,
	"Other":              true,
}

// CollectionForIssueType returns the backing collection for an issue type,
// or "" when the type is not one of the fixed options.
func CollectionForIssueType(issueType string) string {
	return issueTypeCollections[issueType]
}

// AllIssueCollections returns the ordered set of issue collections.
func AllIssueCollections() []string {
	out := make([]string, len(issueCollectionOrder))
	copy(out, issueCollectionOrder)
	return out
}

// ValidIssueType reports whether t is one of the fixed issue types.
func ValidIssueType(t string) bool {
	_, ok := issueTypeCollections[t]
	return ok
}

// ValidDepartment reports whether d is a selectable department name.
func ValidDepartment(d string) bool {
	return reportDepartments[d]
}

// ValidateImages enforces the reporter-imposed cap on hosted image URLs.
func ValidateImages(urls []string) error {
	if len(urls) > MaxIssueImages {
		return fmt.Errorf("a maximum of %d images is allowed", MaxIssueImages)
	}
	return nil
}

// NormalizeStatus maps a raw stored status to its canonical form. Older
// documents may omit the field or carry the lowercase values written by
// status updates; anything unrecognized defaults to Pending.
func NormalizeStatus(raw string) IssueStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in progress", "in-progress", "inprogress":
		return InProgress
	case "resolved":
		return Resolved
	case "rejected":
		return Rejected
	default:
		return Pending
	}
}

// StatusStorageValue is the lowercase form written to documents by status
// updates ("pending", "in-progress", "resolved", "rejected").
func StatusStorageValue(s IssueStatus) string {
	return strings.ReplaceAll(strings.ToLower(string(s)), " ", "-")
}

// ParseStatus validates a requested status change. Accepts canonical and
// lowercase stored forms; returns false for anything else.
func ParseStatus(raw string) (IssueStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return Pending, true
	case "in progress", "in-progress":
		return InProgress, true
	case "resolved":
		return Resolved, true
	case "rejected":
		return Rejected, true
	default:
		return "", false
	}
}
