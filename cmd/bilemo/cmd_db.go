package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilemo/api/config"
	"github.com/bilemo/api/database/seeders"
	"github.com/bilemo/api/pkg/database"
	"github.com/bilemo/api/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

func migrator(cmd *cobra.Command) *migration.Runner {
	return migration.New(database.DB).WithOutput(cmd.OutOrStdout())
}

// bilemo migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck
		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		return migrator(cmd).Run()
	},
}

// bilemo migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck
		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		return migrator(cmd).Rollback()
	},
}

// bilemo migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck
		return migrator(cmd).Status()
	},
}

// bilemo seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo clients, users and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAllTo(database.DB, cmd.OutOrStdout())
	},
}
