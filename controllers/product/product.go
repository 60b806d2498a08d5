package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aokistore/ecommerce-api/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GET /api/auth/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Where("is_active = ?", true).Order("created_at desc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/auth/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /api/auth/categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /api/auth/category/:name
func GetCategoryProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Where("name = ?", c.Param("name")).First(&category).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var products []models.Product
		if err := db.Where("category_id = ?", category.ID).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/auth/sales-products
func GetSalesProducts(db *gorm.DB) gin.HandlerFunc {
	return flaggedProducts(db, "sales_discount")
}

// GET /api/auth/recommend-products
func GetRecommendProducts(db *gorm.DB) gin.HandlerFunc {
	return flaggedProducts(db, "recommend")
}

// GET /api/auth/new-products
func GetNewProducts(db *gorm.DB) gin.HandlerFunc {
	return flaggedProducts(db, "new_product")
}

func flaggedProducts(db *gorm.DB, column string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Where(column+" = ?", true).Order("created_at desc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

type CreateProductInput struct {
	CategoryID    uint   `json:"category_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Image         string `json:"image"`
	Price         string `json:"price" binding:"required"`
	InStock       *bool  `json:"in_stock"`
	SalesDiscount bool   `json:"sales_discount"`
	Recommend     bool   `json:"recommend"`
	NewProduct    bool   `json:"new_product"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		price, err := decimal.NewFromString(input.Price)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		inStock := true
		if input.InStock != nil {
			inStock = *input.InStock
		}
		product := models.Product{
			CategoryID:    category.ID,
			Name:          input.Name,
			Slug:          slug.Make(input.Name),
			Description:   input.Description,
			Image:         input.Image,
			Price:         price,
			InStock:       inStock,
			IsActive:      true,
			SalesDiscount: input.SalesDiscount,
			Recommend:     input.Recommend,
			NewProduct:    input.NewProduct,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		category := models.Category{Name: input.Name, Slug: slug.Make(input.Name)}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}
