package migrations

import (
	"gorm.io/gorm"

	"github.com/bilemo/api/pkg/migration"
)

func init() {
	migration.Register("20210728165953_unique_product_slug", &UniqueProductSlug{})
}

const productSlugIndex = "uniq_product_slug"

type productSlugV2 struct {
	Slug string `gorm:"size:150;not null;uniqueIndex:uniq_product_slug"`
}

func (productSlugV2) TableName() string { return "product" }

type UniqueProductSlug struct{}

func (m *UniqueProductSlug) Up(db *gorm.DB) error {
	return db.Migrator().CreateIndex(&productSlugV2{}, productSlugIndex)
}

func (m *UniqueProductSlug) Down(db *gorm.DB) error {
	return db.Migrator().DropIndex(&productSlugV2{}, productSlugIndex)
}
