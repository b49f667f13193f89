package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bilemo/api/pkg/auth"
)

// Resource names a table the tenant filter knows about.
type Resource string

const (
	ResourceClient  Resource = "client"
	ResourceUser    Resource = "user"
	ResourceProduct Resource = "product"
)

// tenantColumn is the column holding the owning client id per resource.
var tenantColumn = map[Resource]string{
	ResourceClient: "id",
	ResourceUser:   "client_id",
}

// LinkedClient restricts a query on resource to the rows of the caller's
// client. Super admins, anonymous callers and callers without a client see
// everything, as does any resource without a tenant column.
func LinkedClient(p *auth.Principal, resource Resource) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil || p.IsSuperAdmin() {
			return db
		}
		clientID, ok := p.LinkedClient()
		if !ok {
			return db
		}
		col, ok := tenantColumn[resource]
		if !ok {
			return db
		}
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: col},
			Value:  clientID,
		})
	}
}
