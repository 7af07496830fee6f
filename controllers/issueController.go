package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"jansahay-be/config"
	"jansahay-be/models"
	"jansahay-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const feedCacheTTL = 60 * time.Second

// CreateIssue handles a new civic issue report. The issue is written once
// into the collection chosen by its type; only status mutates afterwards.
func CreateIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reporterID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		IssueType   string              `json:"issueType" binding:"required"`
		Department  string              `json:"department" binding:"required"`
		Description string              `json:"description" binding:"required,max=1000"`
		Location    string              `json:"location" binding:"required,max=300"`
		Coordinates *models.Coordinates `json:"coordinates,omitempty"`
		Images      []string            `json:"images,omitempty"`
		Mobile      string              `json:"mobile" binding:"omitempty,max=15"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collectionName := models.CollectionForIssueType(input.IssueType)
	if collectionName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue type"})
		return
	}

	if !models.ValidDepartment(input.Department) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department"})
		return
	}

	if err := models.ValidateImages(input.Images); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reporter models.User
	err = config.GetCollection("users").FindOne(ctx, bson.M{"_id": reporterID}).Decode(&reporter)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	mobile := input.Mobile
	if mobile == "" {
		mobile = reporter.Mobile
	}

	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		IssueType:   input.IssueType,
		Department:  input.Department,
		Description: input.Description,
		Location:    input.Location,
		Coordinates: input.Coordinates,
		Images:      input.Images,
		// stored lowercase so the status equality filter matches;
		// read paths normalize back to the display form
		Status: models.IssueStatus(models.StatusStorageValue(models.Pending)),
		Reporter: models.Reporter{
			Name:   reporter.Name,
			Email:  reporter.Email,
			Mobile: mobile,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := config.GetCollection(collectionName).InsertOne(ctx, issue); err != nil {
		log.Println("Error inserting issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	invalidateFeedCache()

	issue.Collection = collectionName
	issue.Status = models.Pending
	c.JSON(http.StatusCreated, issue)
}

// UploadIssueImage accepts one multipart image and returns its hosted URL.
// The 4-image cap is enforced at issue creation; this endpoint caps size.
func UploadIssueImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	if fileHeader.Size > services.MaxImageSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds the 5MB size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image file"})
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := services.UploadIssueImage(ctx, file, fileHeader.Filename)
	if err != nil {
		log.Println("Error uploading image:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetAllIssues returns the public feed: every issue collection merged,
// filtered and sorted by the query parameters. Responses are cached in
// Redis for a short TTL keyed by the query shape.
func GetAllIssues(c *gin.Context) {
	cacheKey := "issue_feed:" + c.Request.URL.RawQuery
	if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	issues, failedCollections, err := services.FetchAllIssues(ctx, config.ConnectDB(), models.AllIssueCollections())
	if err != nil {
		log.Println("Error fetching issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	filtered := services.ApplyFilters(issues, filterOptionsFromQuery(c))

	response := gin.H{
		"issues":      filtered,
		"counts":      services.CountByStatus(filtered),
		"issueTypes":  services.UniqueValues(issues, func(i models.Issue) string { return i.IssueType }),
		"departments": services.UniqueValues(issues, func(i models.Issue) string { return i.Department }),
	}
	if len(failedCollections) > 0 {
		response["failedCollections"] = failedCollections
	}

	if body, err := json.Marshal(response); err == nil && len(failedCollections) == 0 {
		if err := config.RedisClient.Set(config.Ctx, cacheKey, body, feedCacheTTL).Err(); err != nil {
			log.Println("Failed to cache issue feed:", err)
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetMyIssues returns the authenticated user's reporting history with the
// per-status counts shown on the history page.
func GetMyIssues(c *gin.Context) {
	emailVal, exists := c.Get("email")
	email, ok := emailVal.(string)
	if !exists || !ok || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	issues, failedCollections, err := services.FetchAllIssues(ctx, config.ConnectDB(), models.AllIssueCollections())
	if err != nil {
		log.Println("Error fetching issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	mine := make([]models.Issue, 0)
	for _, issue := range issues {
		if issue.Reporter.Email == email {
			mine = append(mine, issue)
		}
	}

	filtered := services.ApplyFilters(mine, filterOptionsFromQuery(c))

	response := gin.H{
		"issues": filtered,
		"counts": services.CountByStatus(mine),
	}
	if len(failedCollections) > 0 {
		response["failedCollections"] = failedCollections
	}

	c.JSON(http.StatusOK, response)
}

// GetIssueMapPoints returns the issues that carry coordinates, projected
// to what the map view renders.
func GetIssueMapPoints(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	issues, _, err := services.FetchAllIssues(ctx, config.ConnectDB(), models.AllIssueCollections())
	if err != nil {
		log.Println("Error fetching issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	located := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Coordinates != nil {
			located = append(located, issue)
		}
	}

	filtered := services.ApplyFilters(located, filterOptionsFromQuery(c))

	type mapPoint struct {
		ID          primitive.ObjectID `json:"id"`
		IssueType   string             `json:"issueType"`
		Department  string             `json:"department"`
		Location    string             `json:"location"`
		Coordinates models.Coordinates `json:"coordinates"`
		Status      models.IssueStatus `json:"status"`
		CreatedAt   time.Time          `json:"createdAt"`
	}

	points := make([]mapPoint, 0, len(filtered))
	for _, issue := range filtered {
		points = append(points, mapPoint{
			ID:          issue.ID,
			IssueType:   issue.IssueType,
			Department:  issue.Department,
			Location:    issue.Location,
			Coordinates: *issue.Coordinates,
			Status:      issue.Status,
			CreatedAt:   issue.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, points)
}

// GetIssue retrieves a single issue by id, scanning the collections in
// order since the id alone does not identify the backing collection.
func GetIssue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	issue, err := services.FindIssueByID(ctx, config.ConnectDB(), models.AllIssueCollections(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			log.Println("Error fetching issue:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

func filterOptionsFromQuery(c *gin.Context) services.FilterOptions {
	return services.FilterOptions{
		Search:     c.Query("search"),
		Type:       c.Query("type"),
		Department: c.Query("department"),
		Status:     c.Query("status"),
		SortBy:     c.DefaultQuery("sort", services.SortNewest),
	}
}

// invalidateFeedCache drops cached feed responses after a write so the
// next read observes it.
func invalidateFeedCache() {
	iter := config.RedisClient.Scan(config.Ctx, 0, "issue_feed:*", 100).Iterator()
	for iter.Next(config.Ctx) {
		if err := config.RedisClient.Del(config.Ctx, iter.Val()).Err(); err != nil {
			log.Println("Failed to invalidate feed cache:", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Println("Failed to scan feed cache keys:", err)
	}
}
