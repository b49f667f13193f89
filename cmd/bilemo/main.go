// Command bilemo runs the BileMo catalogue API and its maintenance tasks.
//
//	bilemo serve             # HTTP + gRPC servers
//	bilemo migrate           # run pending migrations
//	bilemo migrate:rollback  # undo the last batch
//	bilemo migrate:status
//	bilemo seed              # load demo clients, users and products
//	bilemo route:list
//	bilemo docs --format yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Migrations register themselves from init().
	_ "github.com/bilemo/api/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "bilemo",
	Short:         "BileMo catalogue API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(docsCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
