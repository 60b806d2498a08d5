package models

type ShippingInformation struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      string `gorm:"uniqueIndex;not null" json:"user_id"`
	Name        string `json:"name"`
	PostalCode  string `json:"postal_code"`
	Prefecture  string `json:"prefecture"`
	City        string `json:"city"`
	Street      string `json:"street"`
	Building    string `json:"building"`
	PhoneNumber string `json:"phone_number"`
}
