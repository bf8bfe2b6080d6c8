package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quickcart/quickcart/config"
	"github.com/quickcart/quickcart/database/seeders"
	"github.com/quickcart/quickcart/pkg/database"
	"github.com/quickcart/quickcart/pkg/migration"
)

func connect() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// quickcart migrate: run all pending migrations.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		return migration.New(database.DB).Run()
	},
}

// quickcart migrate:rollback: reverse the last batch.
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		return migration.New(database.DB).Rollback()
	},
}

// quickcart migrate:status: show which migrations have run.
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

// quickcart seed: run all registered seeders.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all registered database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		fmt.Println("Seeding database:")
		return seeders.RunAll(database.DB)
	},
}
