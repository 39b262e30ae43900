// Package simulation composes the record store, scenario builder and the two
// predictive models into one request/response operation.
package simulation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"agrishield/internal/risk"
	"agrishield/internal/scenario"
	"agrishield/models"
)

// Engine is the simulation orchestrator. It holds no per-request state; the
// store and models are loaded once and read-only, so concurrent RunSimulation
// calls need no synchronization.
type Engine struct {
	store    models.RecordStore
	assessor *risk.Assessor
	yield    models.YieldRegressor
	logger   zerolog.Logger
}

// NewEngine wires the orchestrator over its collaborators.
func NewEngine(store models.RecordStore, classifier models.RiskClassifier, yield models.YieldRegressor) *Engine {
	return &Engine{
		store:    store,
		assessor: risk.NewAssessor(classifier),
		yield:    yield,
		logger:   log.With().Str("component", "simulation_engine").Logger(),
	}
}

// RunSimulation perturbs the country's latest record with the shock, runs both
// models and returns the assessment plus yield estimate as one atomic unit.
// Any failure along the way fails the whole request; no partial result is
// returned and nothing is retried.
func (e *Engine) RunSimulation(ctx context.Context, country string, shock models.ScenarioShock) (*models.SimulationResult, error) {
	record, err := e.store.GetLatestRecord(country)
	if err != nil {
		return nil, fmt.Errorf("load baseline for %q: %w", country, err)
	}

	riskFeatures, yieldFeatures, err := scenario.BuildFeatures(record, shock)
	if err != nil {
		return nil, fmt.Errorf("build features: %w", err)
	}

	assessment, err := e.assessor.AssessRisk(ctx, riskFeatures, shock)
	if err != nil {
		return nil, err
	}

	yieldEstimate, err := e.yield.PredictYield(ctx, yieldFeatures)
	if err != nil {
		return nil, fmt.Errorf("predict yield: %w", err)
	}

	e.logger.Info().
		Str("country", country).
		Int("baseline_year", record.Year).
		Str("label", string(assessment.Label)).
		Float64("probability", assessment.Probability).
		Float64("yield_estimate", yieldEstimate).
		Msg("simulation complete")

	return &models.SimulationResult{
		Country:       record.Country,
		BaselineYear:  record.Year,
		Assessment:    assessment,
		YieldEstimate: yieldEstimate,
	}, nil
}
