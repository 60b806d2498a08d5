package models

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Name         string `gorm:"not null" json:"name"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Billing identity at the payment processor and the end of the current
	// subscription period. Both stay empty until the first payment event.
	CustomerID       string     `gorm:"index" json:"customer_id"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	IsStaff   bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
