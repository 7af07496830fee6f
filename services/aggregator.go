package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jansahay-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrIssueNotFound is returned when a point lookup or status update
// matches no document.
var ErrIssueNotFound = errors.New("issue not found")

// StatusCounts is the per-status tally over a merged issue list.
// Pending+InProgress+Resolved+Rejected always equals Total, since every
// issue carries exactly one normalized status.
type StatusCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Rejected   int `json:"rejected"`
}

// FetchDepartmentIssues queries each collection sequentially for issues
// belonging to the given department display name, optionally constrained
// to a stored status value. Results are concatenated in collection order,
// each annotated with its origin collection and normalized status.
//
// A collection whose query fails is skipped and reported in the second
// return value; the call errors only when every collection fails.
func FetchDepartmentIssues(ctx context.Context, db *mongo.Database, collections []string, department, statusFilter string) ([]models.Issue, []string, error) {
	filter := bson.M{"department": department}
	if statusFilter != "" {
		filter["status"] = statusFilter
	}
	return fetchCollections(ctx, db, collections, filter, nil)
}

// FetchAllIssues reads every given collection in order, newest first
// within each collection. Used by the public feed, personal history and
// map views; failure isolation matches FetchDepartmentIssues.
func FetchAllIssues(ctx context.Context, db *mongo.Database, collections []string) ([]models.Issue, []string, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return fetchCollections(ctx, db, collections, bson.M{}, opts)
}

func fetchCollections(ctx context.Context, db *mongo.Database, collections []string, filter bson.M, opts *options.FindOptions) ([]models.Issue, []string, error) {
	var merged []models.Issue
	var failed []string

	for _, name := range collections {
		issues, err := fetchOne(ctx, db.Collection(name), filter, opts)
		if err != nil {
			log.Printf("Failed to query collection %s: %v", name, err)
			failed = append(failed, name)
			continue
		}
		for i := range issues {
			issues[i].Collection = name
			issues[i].Status = models.NormalizeStatus(string(issues[i].Status))
		}
		merged = append(merged, issues...)
	}

	if len(collections) > 0 && len(failed) == len(collections) {
		return nil, failed, fmt.Errorf("all %d issue collections failed", len(collections))
	}
	return merged, failed, nil
}

func fetchOne(ctx context.Context, col *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]models.Issue, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = col.Find(ctx, filter, opts)
	} else {
		cursor, err = col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// FindIssueByID scans the given collections in order for a document with
// the given id and returns it annotated with its origin collection.
func FindIssueByID(ctx context.Context, db *mongo.Database, collections []string, idHex string) (*models.Issue, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrIssueNotFound
	}

	for _, name := range collections {
		var issue models.Issue
		err := db.Collection(name).FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
		if err == nil {
			issue.Collection = name
			issue.Status = models.NormalizeStatus(string(issue.Status))
			return &issue, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}
	return nil, ErrIssueNotFound
}

// UpdateStatus writes the lowercase stored form of status plus a fresh
// updatedAt to the single document identified by (collection, id). Last
// write wins; callers refetch for read-after-write consistency.
func UpdateStatus(ctx context.Context, db *mongo.Database, collection, idHex string, status models.IssueStatus) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return ErrIssueNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":    models.StatusStorageValue(status),
		"updatedAt": time.Now(),
	}}

	result, err := db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update issue status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrIssueNotFound
	}
	return nil
}

// CountByStatus tallies a merged issue list in a single pass.
func CountByStatus(issues []models.Issue) StatusCounts {
	counts := StatusCounts{Total: len(issues)}
	for _, issue := range issues {
		switch models.NormalizeStatus(string(issue.Status)) {
		case models.InProgress:
			counts.InProgress++
		case models.Resolved:
			counts.Resolved++
		case models.Rejected:
			counts.Rejected++
		default:
			counts.Pending++
		}
	}
	return counts
}
