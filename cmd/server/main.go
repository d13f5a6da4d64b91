package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homewardhq/homeward/modules"
	"github.com/homewardhq/homeward/pkg/application"
	"github.com/homewardhq/homeward/pkg/configuration"
	"github.com/homewardhq/homeward/pkg/constants"
	"github.com/homewardhq/homeward/pkg/eventbus"
	"github.com/homewardhq/homeward/pkg/middleware"
	"github.com/homewardhq/homeward/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if err := app.ApplySchemas(ctx); err != nil {
		log.Fatalf("failed to apply schemas: %v", err)
	}

	app.RegisterMiddleware(
		middleware.WithLogger(logger),
		middleware.Provide(constants.PoolKey, pool),
	)

	srv := server.NewHTTPServer(app, conf.AllowedOrigins)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("graceful shutdown failed")
		}
		conf.Unload()
	}()

	log.Printf("Listening on: %s\n", conf.SocketAddress)
	if err := srv.Start(conf.SocketAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to start server: %v", err)
	}
}
