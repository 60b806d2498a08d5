package middleware

import (
	"net/http"
	"strings"

	"github.com/aokistore/ecommerce-api/auth"
	"github.com/gin-gonic/gin"
)

// ValidateToken guards the authenticated routes. On success the user's ID is
// stored in the context under "user_id".
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	userID, err := auth.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Next()
}
