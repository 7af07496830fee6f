package middlewares

import (
	"net/http"

	"jansahay-be/config"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware resolves the reviewer's department from the
// authenticated email (admin.<department>@domain). Runs after
// AuthMiddleware; non-admin principals get 403, and admin emails whose
// department is not in the mapping table get 403 as well since they can
// access no data.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		emailVal, exists := c.Get("email")
		email, ok := emailVal.(string)
		if !exists || !ok || email == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access requires a department account"})
			c.Abort()
			return
		}

		dept := config.DepartmentFromEmail(email)
		if dept == "" || len(config.CollectionsForDepartment(dept)) == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "No department configured for this account"})
			c.Abort()
			return
		}

		c.Set("department", dept)
		c.Next()
	}
}
