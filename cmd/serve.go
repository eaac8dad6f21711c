package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kardexlab/inventory-api/internal/api"
	"github.com/kardexlab/inventory-api/internal/infrastructure/config"
	mongodb "github.com/kardexlab/inventory-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kardexlab/inventory-api/internal/infrastructure/db/redis"
	"github.com/kardexlab/inventory-api/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the inventory API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		log := logger.Init(logger.Options{
			Level:  cfg.LogLevel,
			Pretty: cfg.Env == "development",
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()

		e, recorder := api.NewRouter(db, rdb, cfg, log)
		recorder.Start(ctx)

		go func() {
			if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("server start failed")
			}
		}()
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
