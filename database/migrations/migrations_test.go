package migrations_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/bilemo/api/database/migrations"
	"github.com/bilemo/api/pkg/database"
	"github.com/bilemo/api/pkg/migration"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrateCreatesCatalogSchema(t *testing.T) {
	db := openDB(t)
	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())

	m := db.Migrator()
	for _, table := range []string{"client", "product", "user"} {
		assert.True(t, m.HasTable(table), table)
	}
	assert.True(t, m.HasIndex("product", "uniq_product_slug"))
	assert.True(t, m.HasIndex("client", "uniq_client_identity"))

	pending, err := migration.New(db).Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openDB(t)
	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())

	var out bytes.Buffer
	require.NoError(t, migration.New(db).WithOutput(&out).Run())
	assert.Equal(t, "Nothing to migrate.\n", out.String())
}

func TestRollbackRevertsLastBatch(t *testing.T) {
	db := openDB(t)
	runner := migration.New(db).WithOutput(io.Discard)
	require.NoError(t, runner.Run())

	require.NoError(t, runner.Rollback())
	assert.False(t, db.Migrator().HasTable("user"))
	assert.False(t, db.Migrator().HasTable("product"))

	pending, err := runner.Pending()
	require.NoError(t, err)
	assert.Equal(t, migration.Names(), pending)
}

func TestStatusListsEveryMigration(t *testing.T) {
	db := openDB(t)
	var out bytes.Buffer
	require.NoError(t, migration.New(db).WithOutput(&out).Status())

	for _, name := range migration.Names() {
		assert.Contains(t, out.String(), name)
	}
	assert.Contains(t, out.String(), "Pending")
}

func TestSlugIsUnique(t *testing.T) {
	db := openDB(t)
	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())

	insert := "INSERT INTO product (name, slug, brand, price, stock, description, image_url, operating_system) VALUES (?, ?, 'B', '1', 1, 'd', 'http://x', 'os')"
	require.NoError(t, db.Exec(insert, "Pro Duct", "pro-duct").Error)
	err := db.Exec(insert, "Pro Duct!", "pro-duct").Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}
