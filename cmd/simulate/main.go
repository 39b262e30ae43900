package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"agrishield/internal/bootstrap"
	"agrishield/internal/config"
	"agrishield/internal/simulation"
	"agrishield/models"
)

func main() {
	country := flag.String("country", "", "country to simulate (required)")
	tempDelta := flag.Float64("temp", 0, fmt.Sprintf("temperature shift in °C (UI hint range %.1f to %.1f)", models.TempDeltaHintMin, models.TempDeltaHintMax))
	gdpDelta := flag.Float64("gdp", 0, fmt.Sprintf("GDP change in %% (UI hint range %.0f to %.0f)", models.GDPDeltaHintMin, models.GDPDeltaHintMax))
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	if *country == "" {
		flag.Usage()
		os.Exit(2)
	}

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
	result, err := engine.RunSimulation(ctx, *country, models.ScenarioShock{
		TempDelta:       *tempDelta,
		GDPDeltaPercent: *gdpDelta,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	fmt.Printf("Country: %s (baseline %d)\n", result.Country, result.BaselineYear)
	fmt.Printf("Scenario: temp %+.1f°C, GDP %+.1f%%\n", *tempDelta, *gdpDelta)
	fmt.Printf("Risk: %s (probability %.1f%%)\n", result.Assessment.Label, result.Assessment.Probability*100)
	fmt.Printf("Predicted yield: %.2f t/ha\n", result.YieldEstimate)
}
