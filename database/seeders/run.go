// Package seeders provides a registry of database seed functions.
//
// A seeder registers itself from init():
//
//	func init() {
//	    seeders.Register("clients", seedClients)
//	}
//
// and runs through the CLI: bilemo seed
package seeders

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bilemo/api/pkg/logger"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order, printing
// progress to stdout. It stops on the first error.
func RunAll(db *gorm.DB) error {
	return RunAllTo(db, os.Stdout)
}

// RunAllTo is RunAll with progress written to out.
func RunAllTo(db *gorm.DB, out io.Writer) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
		if err := db.Transaction(e.fn); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(out, "done")
		logger.Info("seeder ran", zap.String("seeder", e.name))
	}
	return nil
}
