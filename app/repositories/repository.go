// Package repositories holds the gorm data access of the catalog. Client and
// user reads go through the LinkedClient scope.
package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// taken reports whether a row of model other than exceptID matches column = value.
func taken(ctx context.Context, db *gorm.DB, model any, column string, value any, exceptID uint) (bool, error) {
	q := db.WithContext(ctx).Model(model).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if exceptID != 0 {
		q = q.Where(clause.Neq{Column: clause.PrimaryColumn, Value: exceptID})
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}
