// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
//
// Migrations declare their own snapshot structs instead of importing
// app/models, so later model changes never rewrite history.
package migrations
