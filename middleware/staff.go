package middleware

import (
	"net/http"

	"github.com/aokistore/ecommerce-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireStaff allows only staff users through. Must run after ValidateToken.
func RequireStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}
		if !user.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
