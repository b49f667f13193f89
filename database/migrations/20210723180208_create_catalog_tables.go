package migrations

import (
	"gorm.io/gorm"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/pkg/migration"
)

func init() {
	migration.Register("20210723180208_create_catalog_tables", &CreateCatalogTables{})
}

type clientV1 struct {
	ID          uint    `gorm:"primaryKey"`
	CompanyName string  `gorm:"size:75;not null"`
	Address     string  `gorm:"size:255;not null"`
	SiretNumber string  `gorm:"size:45;not null"`
	PhoneNumber *string `gorm:"size:20"`
}

func (clientV1) TableName() string { return "client" }

type productV1 struct {
	ID              uint    `gorm:"primaryKey"`
	Name            string  `gorm:"size:150;not null"`
	Slug            string  `gorm:"size:150;not null"`
	Brand           string  `gorm:"size:45;not null"`
	Price           string  `gorm:"size:15;not null"`
	Stock           int     `gorm:"not null"`
	Description     string  `gorm:"type:text;not null"`
	ImageURL        string  `gorm:"type:text;not null"`
	OperatingSystem string  `gorm:"size:45;not null"`
	StorageCapacity *string `gorm:"size:15"`
	ScreenSize      *string `gorm:"size:15"`
	PhotoResolution *string `gorm:"size:15"`
	Weight          *string `gorm:"size:15"`
}

func (productV1) TableName() string { return "product" }

type userV1 struct {
	ID          uint         `gorm:"primaryKey"`
	ClientID    *uint        `gorm:"index"`
	Client      *clientV1    `gorm:"constraint:OnDelete:SET NULL"`
	Email       string       `gorm:"size:180;not null;uniqueIndex"`
	Roles       models.Roles `gorm:"not null"`
	Password    string       `gorm:"size:255;not null"`
	FirstName   string       `gorm:"size:25;not null"`
	LastName    string       `gorm:"size:45;not null"`
	PhoneNumber *string      `gorm:"size:20"`
}

func (userV1) TableName() string { return "user" }

// CreateCatalogTables creates client, product and user. user.client_id is a
// nullable foreign key that is cleared when its client is deleted.
type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&clientV1{}, &productV1{}, &userV1{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&userV1{}, &productV1{}, &clientV1{})
}
