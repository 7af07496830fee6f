package routes

import (
	"jansahay-be/controllers"
	"jansahay-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the department reviewer routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", middlewares.AuthMiddleware(), middlewares.AdminMiddleware())
	{
		admin.GET("/issues", controllers.GetDepartmentIssues)
		admin.PATCH("/issues/:collection/:id/status", controllers.UpdateIssueStatus)
		admin.GET("/analytics", controllers.GetDepartmentAnalytics)
		admin.GET("/export", controllers.ExportDepartmentIssues)
	}
}
