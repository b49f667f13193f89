package migrations

import (
	"gorm.io/gorm"

	"github.com/bilemo/api/pkg/migration"
)

func init() {
	migration.Register("20210801090000_unique_client_identity", &UniqueClientIdentity{})
}

const clientIdentityIndex = "uniq_client_identity"

// A client is identified by its company name at a given address.
type clientIdentityV3 struct {
	CompanyName string `gorm:"size:75;not null;uniqueIndex:uniq_client_identity"`
	Address     string `gorm:"size:255;not null;uniqueIndex:uniq_client_identity"`
}

func (clientIdentityV3) TableName() string { return "client" }

type UniqueClientIdentity struct{}

func (m *UniqueClientIdentity) Up(db *gorm.DB) error {
	return db.Migrator().CreateIndex(&clientIdentityV3{}, clientIdentityIndex)
}

func (m *UniqueClientIdentity) Down(db *gorm.DB) error {
	return db.Migrator().DropIndex(&clientIdentityV3{}, clientIdentityIndex)
}
