package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/williamsgomess/seubarriga-api/configs"
	"github.com/williamsgomess/seubarriga-api/internal/handlers"
	"github.com/williamsgomess/seubarriga-api/internal/logger"
	"github.com/williamsgomess/seubarriga-api/internal/routes"
	"github.com/williamsgomess/seubarriga-api/internal/seed"
	"github.com/williamsgomess/seubarriga-api/internal/services"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"github.com/williamsgomess/seubarriga-api/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var withSeed bool

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Personal finance ledger API",
	// Running the binary without a subcommand serves the API.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		setup()
		closeDB()
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the development users, accounts and transfer",
	RunE: func(cmd *cobra.Command, args []string) error {
		setup()
		defer closeDB()
		return seed.Run(cmd.Context(), store.DB)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&withSeed, "seed", false, "seed development data before serving")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// setup loads the config, connects and migrates.
func setup() {
	configs.LoadConfig()
	store.NewDB()
	store.DBMigrate()
}

func serve(ctx context.Context) error {
	setup()
	defer closeDB()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:  configs.AppConfig.Telemetry.ServiceName,
		Environment:  configs.AppConfig.Telemetry.Environment,
		OTLPEndpoint: configs.AppConfig.Telemetry.OTLPEndpoint,
	})
	if err != nil {
		return err
	}

	if withSeed || configs.AppConfig.Seed.Enabled {
		if err := seed.Run(ctx, store.DB); err != nil {
			logger.Log.Error("seed failed", zap.Error(err))
			return err
		}
	}

	h := handlers.New(services.New(store.DB), configs.AppConfig.JWT.SECRET, configs.AppConfig.JWT.TTL)
	router := routes.NewRoutes(h, configs.AppConfig.JWT.SECRET)

	srv := &http.Server{
		Addr:         configs.AppConfig.Server.Addr,
		Handler:      otelhttp.NewHandler(router, "seubarriga-api"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.AppConfig.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Log.Error("telemetry shutdown failed", zap.Error(err))
	}

	logger.Log.Info("server stopped")
	return nil
}

func closeDB() {
	sqlDB, err := store.DB.DB()
	if err != nil {
		logger.Log.Error("db close skipped, reason:", zap.Error(err))
		return
	}
	sqlDB.Close()
	logger.Log.Info("db closed")
}
