package routes

import (
	"jansahay-be/controllers"
	"jansahay-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the citizen-facing issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	{
		issue.POST("/create", middlewares.AuthMiddleware(), middlewares.ReportRateLimiter(), controllers.CreateIssue)
		issue.POST("/upload", middlewares.AuthMiddleware(), controllers.UploadIssueImage)
		issue.GET("/all", controllers.GetAllIssues)
		issue.GET("/mine", middlewares.AuthMiddleware(), controllers.GetMyIssues)
		issue.GET("/map", controllers.GetIssueMapPoints)
		issue.GET("/:id", controllers.GetIssue)
	}
}
