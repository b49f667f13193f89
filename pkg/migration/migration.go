// Package migration applies versioned schema changes and records them in the
// migration_versions table.
//
// Each migration registers itself from an init() in database/migrations:
//
//	func init() {
//	    migration.Register("20210723180208_create_catalog_tables", &CreateCatalogTables{})
//	}
//
// and is driven from the CLI with bilemo migrate, migrate:rollback and
// migrate:status.
package migration

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bilemo/api/pkg/logger"
)

// ErrNoMigrations means nothing was registered, usually a missing blank
// import of database/migrations.
var ErrNoMigrations = errors.New("migration: no migrations registered")

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type version struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (version) TableName() string { return "migration_versions" }

var registry = map[string]Migration{}

// Register adds m under name. Names are timestamp prefixed and sort into
// execution order; registering a name twice panics.
func Register(name string, m Migration) {
	if _, dup := registry[name]; dup {
		panic("migration: duplicate " + name)
	}
	registry[name] = m
}

// Names lists registered migrations in execution order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runner applies registered migrations to one database.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New returns a Runner that reports progress on stdout.
func New(db *gorm.DB) *Runner {
	return &Runner{db: db, out: os.Stdout}
}

// WithOutput redirects progress lines, e.g. to io.Discard in tests.
func (r *Runner) WithOutput(w io.Writer) *Runner {
	r.out = w
	return r
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&version{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) applied() (map[string]version, error) {
	var rows []version
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: read versions: %w", err)
	}
	out := make(map[string]version, len(rows))
	for _, v := range rows {
		out[v.Name] = v
	}
	return out, nil
}

// Pending returns the names not applied yet, oldest first.
func (r *Runner) Pending() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.applied()
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, name := range Names() {
		if _, ok := done[name]; !ok {
			pending = append(pending, name)
		}
	}
	return pending, nil
}

// Run applies every pending migration as one new batch. Each migration and
// its version row commit together.
func (r *Runner) Run() error {
	if len(registry) == 0 {
		return ErrNoMigrations
	}
	pending, err := r.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return err
	}
	batch++

	for _, name := range pending {
		fmt.Fprintf(r.out, "Migrating: %s\n", name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := registry[name].Up(tx); err != nil {
				return err
			}
			return tx.Create(&version{Name: name, Batch: batch}).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %s up: %w", name, err)
		}
		fmt.Fprintf(r.out, "Migrated:  %s\n", name)
	}

	logger.Info("migrations applied", zap.Int("count", len(pending)), zap.Int("batch", batch))
	return nil
}

// Rollback reverts the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.ensureTable(); err != nil {
		return err
	}
	batch, err := r.lastBatch()
	if err != nil {
		return err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var rows []version
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&rows).Error; err != nil {
		return fmt.Errorf("migration: read batch %d: %w", batch, err)
	}

	for _, row := range rows {
		m, ok := registry[row.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", row.Name)
		}
		fmt.Fprintf(r.out, "Rolling back: %s\n", row.Name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&version{}, row.ID).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		fmt.Fprintf(r.out, "Rolled back:  %s\n", row.Name)
	}

	logger.Info("migrations rolled back", zap.Int("count", len(rows)), zap.Int("batch", batch))
	return nil
}

// Status prints every registered migration with its batch, or Pending.
func (r *Runner) Status() error {
	if err := r.ensureTable(); err != nil {
		return err
	}
	done, err := r.applied()
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%-50s  %s\n", "Migration", "Batch")
	fmt.Fprintln(r.out, strings.Repeat("-", 60))
	for _, name := range Names() {
		state := "Pending"
		if v, ok := done[name]; ok {
			state = fmt.Sprint(v.Batch)
		}
		fmt.Fprintf(r.out, "%-50s  %s\n", name, state)
	}
	return nil
}

func (r *Runner) lastBatch() (int, error) {
	var last struct{ Max int }
	if err := r.db.Model(&version{}).Select("COALESCE(MAX(batch), 0) AS max").Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("migration: read last batch: %w", err)
	}
	return last.Max, nil
}
