package wishlistControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aokistore/ecommerce-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GET /api/auth/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var items []models.WishlistItem
		if err := db.Where("user_id = ?", userID).Order("added_date desc").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		list := make([]gin.H, 0, len(items))
		for _, item := range items {
			list = append(list, gin.H{"product_id": item.ProductID})
		}
		c.JSON(http.StatusOK, list)
	}
}

// POST /api/auth/wishlist/add/:product_id
func AddToWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		// Repeat adds are absorbed by the (user_id, product_id) unique index.
		item := models.WishlistItem{UserID: userID, ProductID: product.ID, AddedDate: time.Now()}
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).Create(&item).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Product added to wishlist"})
	}
}

// POST /api/auth/wishlist/remove/:product_id
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		res := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found in wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Product removed from wishlist"})
	}
}
