package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/plantnet/app/repositories/memstore"
	"github.com/shashiranjanraj/plantnet/app/routes"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/app"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/router"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

var inMemory bool

// plantnet serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := boot(ctx, inMemory)
		if err != nil {
			return err
		}
		defer rt.close()

		return rt.app.Serve(ctx, ":"+config.AppPort())
	},
}

// plantnet route:list: print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := services.NewRegistry(memoryStores(memstore.New()), event.New())
		a := app.New().Routes(func(r *router.Router) {
			routes.RegisterAPI(r, registry, session.NewManager(), nil)
		})
		return a.RouteTable(cmd.OutOrStdout())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&inMemory, "in-memory", false, "keep data in process memory instead of MongoDB")
}
