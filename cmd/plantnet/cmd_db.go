package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/plantnet/database/seeders"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/migration"
)

// withDB connects, runs fn against a migration runner and disconnects.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, r *migration.Runner) error) error {
	ctx := cmd.Context()
	if err := bootDB(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background())
	return fn(ctx, migration.New(database.DB, database.Migrations))
}

// plantnet migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, r *migration.Runner) error {
			ran, err := r.Run(ctx)
			for _, name := range ran {
				fmt.Fprintln(cmd.OutOrStdout(), "  migrated:", name)
			}
			if err == nil && len(ran) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate.")
			}
			return err
		})
	},
}

// plantnet migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, r *migration.Runner) error {
			rolled, err := r.Rollback(ctx)
			for _, name := range rolled {
				fmt.Fprintln(cmd.OutOrStdout(), "  rolled back:", name)
			}
			if err == nil && len(rolled) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to roll back.")
			}
			return err
		})
	},
}

// plantnet migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, r *migration.Runner) error {
			status, err := r.Status(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "RAN\tBATCH\tMIGRATION")
			for _, s := range status {
				ran, batch := "No", "-"
				if s.Ran {
					ran, batch = "Yes", fmt.Sprint(s.Batch)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", ran, batch, s.Name)
			}
			return w.Flush()
		})
	},
}

// plantnet seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, _ *migration.Runner) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(ctx, database.DB, cmd.OutOrStdout())
		})
	},
}
