// Package migrations holds the versioned schema changes of the blog. Each file
// registers one migration from init; import the package for its side effects
// before building a migration.Migrator.
//
// Migrations use frozen copies of the models so later model edits never
// rewrite history.
package migrations
