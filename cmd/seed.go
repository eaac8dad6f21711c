package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kardexlab/inventory-api/internal/core/service"
	"github.com/kardexlab/inventory-api/internal/infrastructure/config"
	mongodb "github.com/kardexlab/inventory-api/internal/infrastructure/db/mongo"
	"github.com/kardexlab/inventory-api/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create indexes and seed roles, the default administrator and a starter catalogue",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		log := logger.Init(logger.Options{
			Level:  cfg.LogLevel,
			Pretty: cfg.Env == "development",
		})

		client, db, err := mongodb.Connect(cmd.Context(), mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		admin := mongodb.AdminSeed{
			Username: cfg.Seed.AdminUsername,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
			FullName: cfg.Seed.AdminFullName,
		}
		if err := mongodb.Bootstrap(cmd.Context(), db, admin, service.NewBcryptHasher(), log); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		log.Info().Msg("seed completed")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
