package models

import "time"

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`
	AddedDate time.Time `json:"added_date"`
}
