// Command plantnet runs the plantNet marketplace API and its maintenance
// tasks.
//
//	plantnet serve               # start the HTTP server
//	plantnet serve --in-memory   # same, without MongoDB
//	plantnet migrate             # create indexes
//	plantnet migrate:rollback
//	plantnet migrate:status
//	plantnet seed                # admin account and a sample catalogue
//	plantnet route:list
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/plantnet/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "plantnet",
	Short:         "plantNet marketplace API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
