package cartControllers

import (
	"errors"
	"net/http"

	"github.com/aokistore/ecommerce-api/cart"
	"github.com/gin-gonic/gin"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

type UpdateItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

// POST /api/auth/add_to_cart
func AddToCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := carts.AddItem(c.Request.Context(), userID, input.ProductID)
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product added to cart", "item": item})
	}
}

// POST /api/auth/cart/update
func UpdateCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, removed, err := carts.UpdateItem(c.Request.Context(), userID, input.ProductID, cart.Action(input.Action))
		if err != nil {
			respondCartError(c, err)
			return
		}
		if removed {
			c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "item": item})
	}
}

// GET /api/auth/cart
func GetCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		view, err := carts.ViewCart(c.Request.Context(), userID)
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// POST /api/auth/cart/remove-all
func RemoveAll(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		count, err := carts.ClearCart(c.Request.Context(), userID)
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All items removed from cart", "count": count})
	}
}

// respondCartError maps the cart error taxonomy onto HTTP statuses. Domain
// failures are discriminated from unexpected ones instead of collapsing
// everything into a 500.
func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, cart.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	case errors.Is(err, cart.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Concurrent update, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
