package models

import (
	"gorm.io/gorm"

	"github.com/bilemo/api/pkg/slug"
)

// Product is a phone in the shared catalogue. Products are not tenant scoped.
type Product struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"size:150;not null" json:"name"`
	Slug            string  `gorm:"size:150;not null;uniqueIndex:uniq_product_slug" json:"slug"`
	Brand           string  `gorm:"size:45;not null" json:"brand"`
	Price           string  `gorm:"size:15;not null" json:"price"`
	Stock           int     `gorm:"not null" json:"stock"`
	Description     string  `gorm:"type:text;not null" json:"description"`
	ImageURL        string  `gorm:"type:text;not null" json:"imageUrl"`
	OperatingSystem string  `gorm:"size:45;not null" json:"operatingSystem"`
	StorageCapacity *string `gorm:"size:15" json:"storageCapacity"`
	ScreenSize      *string `gorm:"size:15" json:"screenSize"`
	PhotoResolution *string `gorm:"size:15" json:"photoResolution"`
	Weight          *string `gorm:"size:15" json:"weight"`
}

func (Product) TableName() string { return "product" }

// BeforeSave keeps Slug derived from Name on every insert and update.
func (p *Product) BeforeSave(*gorm.DB) error {
	p.Slug = slug.Make(p.Name)
	return nil
}
