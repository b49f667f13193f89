// Package testkit holds the helpers shared by package tests: an in-memory
// migrated database, fixtures, tokens and a JSON-scenario runner for
// end-to-end API tests.
package testkit

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/bilemo/api/database/migrations" // register migrations
	"github.com/bilemo/api/pkg/database"
	"github.com/bilemo/api/pkg/migration"
)

var dbSeq atomic.Int64

// NewDB returns a freshly migrated in-memory SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testkit_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the shared-cache database alive and serialises
	// writers the way SQLite wants.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run(), "migrate")
	return db
}
