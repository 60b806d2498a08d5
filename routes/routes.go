package routes

import (
	"github.com/aokistore/ecommerce-api/cart"
	accountControllers "github.com/aokistore/ecommerce-api/controllers/account"
	cartControllers "github.com/aokistore/ecommerce-api/controllers/cart"
	checkoutControllers "github.com/aokistore/ecommerce-api/controllers/checkout"
	productControllers "github.com/aokistore/ecommerce-api/controllers/product"
	shippingControllers "github.com/aokistore/ecommerce-api/controllers/shipping"
	wishlistControllers "github.com/aokistore/ecommerce-api/controllers/wishlist"
	"github.com/aokistore/ecommerce-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes registers every endpoint of the API.
func SetupRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Manager) {
	api := r.Group("/api")
	{
		api.POST("/register", accountControllers.Register(db))
		api.POST("/login", accountControllers.Login(db))
	}

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Account ────────────────
		authGroup.GET("/user", accountControllers.GetUser(db))
		authGroup.POST("/subscription", accountControllers.UpdateSubscription(db))

		// ──────────────── Catalog ────────────────
		authGroup.GET("/products", productControllers.GetProducts(db))
		authGroup.GET("/products/:id", productControllers.GetProductByID(db))
		authGroup.GET("/categories", productControllers.GetCategories(db))
		authGroup.GET("/category/:name", productControllers.GetCategoryProducts(db))
		authGroup.GET("/sales-products", productControllers.GetSalesProducts(db))
		authGroup.GET("/recommend-products", productControllers.GetRecommendProducts(db))
		authGroup.GET("/new-products", productControllers.GetNewProducts(db))

		// ──────────────── Shopping Cart ────────────────
		authGroup.POST("/add_to_cart", cartControllers.AddToCart(carts))
		authGroup.GET("/cart", cartControllers.GetCart(carts))
		authGroup.POST("/cart/update", cartControllers.UpdateCart(carts))
		authGroup.POST("/cart/remove-all", cartControllers.RemoveAll(carts))

		// ──────────────── Wishlist ────────────────
		authGroup.GET("/wishlist", wishlistControllers.GetWishlist(db))
		authGroup.POST("/wishlist/add/:product_id", wishlistControllers.AddToWishlist(db))
		authGroup.POST("/wishlist/remove/:product_id", wishlistControllers.RemoveFromWishlist(db))

		// ──────────────── Shipping & Checkout ────────────────
		authGroup.GET("/shipping-information", shippingControllers.GetShippingInformation(db))
		authGroup.PUT("/shipping-information", shippingControllers.UpdateShippingInformation(db))
		authGroup.POST("/create-checkout-session", checkoutControllers.CreateCheckoutSessionHandler())
	}

	// ──────────────── Admin Catalog Management ────────────────
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireStaff(db))
	{
		adminGroup.POST("/products", productControllers.CreateProduct(db))
		adminGroup.POST("/categories", productControllers.CreateCategory(db))
		adminGroup.GET("/products/export-excel", productControllers.ExportProductsToExcel(db))
	}
}
