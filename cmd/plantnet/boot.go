package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/repositories/memstore"
	"github.com/shashiranjanraj/plantnet/app/routes"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/app"
	"github.com/shashiranjanraj/plantnet/pkg/cache"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/router"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

// runtime is everything serve needs, plus the hook that releases it.
type runtime struct {
	app   *app.Application
	close func()
}

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect(ctx)
}

// checkSecrets refuses a production boot that would sign sessions with the
// built-in JWT secret.
func checkSecrets() error {
	if config.IsProduction() && config.UsesDefaultJWTSecret() {
		return errors.New("config: JWT_SECRET must be set when APP_ENV is production")
	}
	return nil
}

// boot wires stores, cache, logging sinks and event listeners into an
// Application. inMemory swaps MongoDB for the process-local store.
func boot(ctx context.Context, inMemory bool) (*runtime, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := checkSecrets(); err != nil {
		return nil, err
	}

	var (
		closers []func()
		stores  services.Stores
		ping    routes.Pinger
	)
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if inMemory {
		stores = memoryStores(memstore.New())
		logger.Warn("boot: using in-memory store, data is lost on exit")
	} else {
		if err := database.Connect(ctx); err != nil {
			return nil, err
		}
		closers = append(closers, func() { _ = database.Disconnect(context.Background()) })
		stores = services.Stores{
			Users:  repositories.NewUserRepository(database.DB),
			Plants: repositories.NewPlantRepository(database.DB),
			Orders: repositories.NewOrderRepository(database.DB),
		}
		ping = database.Ping

		if config.LogMongo() {
			h := logger.NewMongoHandler(database.DB.Collection(database.Logs), slog.LevelInfo)
			logger.Use(h)
			closers = append(closers, h.Close)
		}
	}

	if err := cache.Connect(ctx); err != nil {
		// The API works without Redis; only caching and revocation are lost.
		logger.Warn("boot: cache disabled", "error", err)
	} else if cache.Enabled() {
		closers = append(closers, func() { _ = cache.Close() })
	}

	events := event.New()
	services.RegisterListeners(events)
	closers = append(closers, events.Flush)

	registry := services.NewRegistry(stores, events)
	sessions := session.NewManager()

	a := app.New().Routes(func(r *router.Router) {
		routes.RegisterAPI(r, registry, sessions, ping)
	})
	return &runtime{app: a, close: release}, nil
}

func memoryStores(st *memstore.Store) services.Stores {
	return services.Stores{Users: st.Users(), Plants: st.Plants(), Orders: st.Orders()}
}
