package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	Name        string          `gorm:"unique;not null" json:"name"`
	Slug        string          `gorm:"unique;not null" json:"slug"`
	Image       string          `gorm:"default:'photos/default.jpg'" json:"image"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	InStock     bool            `gorm:"default:true" json:"in_stock"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`

	// Storefront shelf flags
	SalesDiscount bool `gorm:"default:false" json:"sales_discount"`
	Recommend     bool `gorm:"default:false" json:"recommend"`
	NewProduct    bool `gorm:"default:false" json:"new_product"`
	Ranking       *int `json:"ranking"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
