package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"agrishield/internal/bootstrap"
	"agrishield/internal/config"
	"agrishield/internal/handlers"
	"agrishield/internal/simulation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	recordStore, err := bootstrap.NewRecordStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("load record store failed")
	}

	ctx := context.Background()
	classifier, regressor, err := bootstrap.NewModels(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("load models failed")
	}

	engine := simulation.NewEngine(recordStore, classifier, regressor)
	router := handlers.NewRouter(recordStore, engine)

	log.Info().
		Str("port", cfg.Port).
		Str("dataset_format", cfg.DatasetFormat).
		Str("model_mode", cfg.ModelMode).
		Msg("agrishield server starting")

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
