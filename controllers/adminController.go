package controllers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"jansahay-be/config"
	"jansahay-be/models"
	"jansahay-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func adminDepartment(c *gin.Context) (display string, collections []string, ok bool) {
	deptVal, exists := c.Get("department")
	token, isStr := deptVal.(string)
	if !exists || !isStr || token == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "No department configured for this account"})
		return "", nil, false
	}
	return config.DepartmentDisplayName(token), config.CollectionsForDepartment(token), true
}

// GetDepartmentIssues is the admin dashboard fetch: the reviewer's
// department token resolves to its backing collections, each is queried
// for the department's issues, and the merged list is returned with the
// per-status tally.
func GetDepartmentIssues(c *gin.Context) {
	display, collections, ok := adminDepartment(c)
	if !ok {
		return
	}

	statusFilter := ""
	if raw := c.Query("status"); raw != "" && raw != "all" {
		status, valid := models.ParseStatus(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		statusFilter = models.StatusStorageValue(status)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	issues, failedCollections, err := services.FetchDepartmentIssues(ctx, config.ConnectDB(), collections, display, statusFilter)
	if err != nil {
		log.Println("Error fetching department issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	filtered := services.ApplyFilters(issues, filterOptionsFromQuery(c))

	response := gin.H{
		"department": display,
		"issues":     filtered,
		"counts":     services.CountByStatus(issues),
	}
	if len(failedCollections) > 0 {
		response["failedCollections"] = failedCollections
	}

	c.JSON(http.StatusOK, response)
}

// UpdateIssueStatus lets a reviewer set the status of one issue in one of
// their department's collections. Clients refetch the dashboard after a
// successful update rather than patching local state.
func UpdateIssueStatus(c *gin.Context) {
	_, collections, ok := adminDepartment(c)
	if !ok {
		return
	}

	collectionName := c.Param("collection")
	allowed := false
	for _, name := range collections {
		if name == collectionName {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Collection does not belong to your department"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, valid := models.ParseStatus(input.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := services.UpdateStatus(ctx, config.ConnectDB(), collectionName, c.Param("id"), status)
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			log.Println("Error updating issue status:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		}
		return
	}

	invalidateFeedCache()

	c.JSON(http.StatusOK, gin.H{
		"message": "Issue status updated successfully",
		"status":  status,
	})
}

// GetDepartmentAnalytics returns analytical data for the reviewer's
// department: issue counts by type, submissions over the last 7 days,
// and the status tally.
func GetDepartmentAnalytics(c *gin.Context) {
	display, collections, ok := adminDepartment(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := config.ConnectDB()

	// Issue counts by type, aggregated per collection and merged
	typeCounts := map[string]int64{}
	pipeline := []bson.M{
		{"$match": bson.M{"department": display}},
		{"$group": bson.M{
			"_id":   "$issueType",
			"count": bson.M{"$sum": 1},
		}},
	}
	for _, name := range collections {
		cursor, err := db.Collection(name).Aggregate(ctx, pipeline)
		if err != nil {
			log.Printf("Failed to aggregate collection %s: %v", name, err)
			continue
		}
		var groups []struct {
			IssueType string `bson:"_id"`
			Count     int64  `bson:"count"`
		}
		if err := cursor.All(ctx, &groups); err != nil {
			log.Printf("Failed to decode aggregation for %s: %v", name, err)
			continue
		}
		for _, g := range groups {
			typeCounts[g.IssueType] += g.Count
		}
	}

	issuesByType := make([]gin.H, 0, len(typeCounts))
	for issueType, count := range typeCounts {
		issuesByType = append(issuesByType, gin.H{"name": issueType, "value": count})
	}

	issues, _, err := services.FetchDepartmentIssues(ctx, db, collections, display, "")
	if err != nil {
		log.Println("Error fetching department issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	// Submissions per day over the last 7 days
	var last7Days []gin.H
	now := time.Now()
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		next := day.AddDate(0, 0, 1)

		count := 0
		for _, issue := range issues {
			if !issue.CreatedAt.Before(day) && issue.CreatedAt.Before(next) {
				count++
			}
		}

		last7Days = append(last7Days, gin.H{
			"date":  day.Format("2006-01-02"),
			"count": count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"department":   display,
		"issuesByType": issuesByType,
		"last7Days":    last7Days,
		"counts":       services.CountByStatus(issues),
	})
}

// ExportDepartmentIssues streams the department's issues as CSV.
func ExportDepartmentIssues(c *gin.Context) {
	display, collections, ok := adminDepartment(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	issues, _, err := services.FetchDepartmentIssues(ctx, config.ConnectDB(), collections, display, "")
	if err != nil {
		log.Println("Error fetching department issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	filename := fmt.Sprintf("issues_%s_%s.csv", config.NormalizeDepartment(display), time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	header := []string{
		"collection", "createdAt", "lat", "lng", "department", "issueType",
		"description", "location", "status",
		"reporter_name", "reporter_email", "reporter_mobile", "images",
	}
	if err := w.Write(header); err != nil {
		log.Println("Error writing CSV header:", err)
		return
	}

	for _, issue := range issues {
		lat, lng := "", ""
		if issue.Coordinates != nil {
			lat = strconv.FormatFloat(issue.Coordinates.Lat, 'f', -1, 64)
			lng = strconv.FormatFloat(issue.Coordinates.Lng, 'f', -1, 64)
		}

		images := ""
		for i, url := range issue.Images {
			if i > 0 {
				images += ", "
			}
			images += url
		}

		record := []string{
			issue.Collection,
			issue.CreatedAt.Format(time.RFC3339),
			lat,
			lng,
			issue.Department,
			issue.IssueType,
			issue.Description,
			issue.Location,
			string(issue.Status),
			issue.Reporter.Name,
			issue.Reporter.Email,
			issue.Reporter.Mobile,
			images,
		}
		if err := w.Write(record); err != nil {
			log.Println("Error writing CSV record:", err)
			return
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Println("Error flushing CSV:", err)
	}
}
