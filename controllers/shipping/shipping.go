package shippingControllers

import (
	"errors"
	"net/http"

	"github.com/aokistore/ecommerce-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ShippingInput struct {
	Name        string `json:"name"`
	PostalCode  string `json:"postal_code"`
	Prefecture  string `json:"prefecture"`
	City        string `json:"city"`
	Street      string `json:"street"`
	Building    string `json:"building"`
	PhoneNumber string `json:"phone_number"`
}

// GET /api/auth/shipping-information
//
// Returns the caller's shipping record, creating an empty one on first
// access so the storefront can always render the form prefilled.
func GetShippingInformation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var info models.ShippingInformation
		err := db.Where("user_id = ?", userID).First(&info).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			info = models.ShippingInformation{UserID: userID}
			err = db.Create(&info).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shipping information"})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// PUT /api/auth/shipping-information
func UpdateShippingInformation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input ShippingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var info models.ShippingInformation
		err := db.Where("user_id = ?", userID).First(&info).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shipping information"})
			return
		}

		info.UserID = userID
		info.Name = input.Name
		info.PostalCode = input.PostalCode
		info.Prefecture = input.Prefecture
		info.City = input.City
		info.Street = input.Street
		info.Building = input.Building
		info.PhoneNumber = input.PhoneNumber

		if err := db.Save(&info).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shipping information"})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}
