package middleware

import (
	"net/http"
	"strings"

	adminRepo "velour/database/repository/admin"
	"velour/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware validates the bearer JWT and checks the subject still
// resolves to a registered admin. The admin id is stored on the context as
// "adminID".
func AdminAuthMiddleware(repo adminRepo.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		id, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if _, err := repo.GetByID(c.Request.Context(), id); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminID", id)
		c.Next()
	}
}
