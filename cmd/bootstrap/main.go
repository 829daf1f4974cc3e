package main

import (
	"bakery-backoffice/internal/config"
	"bakery-backoffice/internal/service"
	"bakery-backoffice/pkg/database"
	"bakery-backoffice/pkg/logger"

	"github.com/rs/zerolog/log"
)

// bootstrap migrates the schema and creates the reserved admin if absent.
// Safe to run any number of times.
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db := database.ConnectDB(cfg.DSN())
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	created, err := service.NewUserService(db).Bootstrap()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap reserved admin")
	}
	if created {
		log.Info().Msg("Reserved admin created")
		return
	}
	log.Info().Msg("Reserved admin already present, nothing to do")
}
