package models

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"unique;not null" json:"name"`
	Slug     string    `gorm:"unique;not null" json:"slug"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}
