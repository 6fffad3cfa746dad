package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/apconnect/directory-api/internal/config"
	"github.com/apconnect/directory-api/internal/repository/postgres"
	"github.com/apconnect/directory-api/pkg/logger"
)

func main() {
	steps := flag.Int("steps", 0, "maximum number of migrations to run (0 = all)")
	flag.Parse()

	direction := flag.Arg(0)
	if direction == "" {
		direction = "up"
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	db, err := postgres.NewDB(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if _, err := postgres.Migrate(db, direction, *steps); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
