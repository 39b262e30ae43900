// Package risk converts a raw classifier probability and the applied shock
// into a discrete three-tier label.
package risk

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"agrishield/models"
)

// rule pairs a predicate over (probability, shock) with the label it yields.
type rule struct {
	matches func(probability float64, shock models.ScenarioShock) bool
	label   models.RiskLabel
}

// The labeling rule, evaluated top-to-bottom, first match wins. It is
// intentionally conjunctive: a confident classifier alone never decides —
// the shock direction has to agree with it. A probability of 0.9 under a
// neutral temperature shock still lands on STABLE.
var rules = []rule{
	{
		matches: func(p float64, s models.ScenarioShock) bool {
			return p >= 0.65 && s.TempDelta > 0
		},
		label: models.HighRisk,
	},
	{
		matches: func(p float64, s models.ScenarioShock) bool {
			return p <= 0.35 && s.TempDelta <= 0 && s.GDPDeltaPercent >= 10
		},
		label: models.LowRisk,
	},
	{
		matches: func(float64, models.ScenarioShock) bool { return true },
		label:   models.Stable,
	},
}

// Label applies the labeling rule. Pure function of its inputs.
func Label(probability float64, shock models.ScenarioShock) models.RiskLabel {
	for _, r := range rules {
		if r.matches(probability, shock) {
			return r.label
		}
	}
	// Unreachable: the last rule always matches.
	return models.Stable
}

// Assessor invokes the risk classifier and applies the labeling policy.
type Assessor struct {
	classifier models.RiskClassifier
	logger     zerolog.Logger
}

// NewAssessor creates an Assessor over the given classifier.
func NewAssessor(classifier models.RiskClassifier) *Assessor {
	return &Assessor{
		classifier: classifier,
		logger:     log.With().Str("component", "risk_assessor").Logger(),
	}
}

// AssessRisk runs the classifier on the shocked feature vector and labels the
// result. A probability outside [0,1] is a model-contract violation and fails
// the request rather than being clamped.
func (a *Assessor) AssessRisk(ctx context.Context, features models.FeatureVector, shock models.ScenarioShock) (models.RiskAssessment, error) {
	probability, err := a.classifier.ClassifyRisk(ctx, features)
	if err != nil {
		return models.RiskAssessment{}, fmt.Errorf("classify risk: %w", err)
	}

	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return models.RiskAssessment{}, fmt.Errorf("%w: got %v", models.ErrInvalidProbability, probability)
	}

	label := Label(probability, shock)
	a.logger.Debug().
		Float64("probability", probability).
		Float64("temp_delta", shock.TempDelta).
		Float64("gdp_delta_percent", shock.GDPDeltaPercent).
		Str("label", string(label)).
		Msg("risk assessed")

	return models.RiskAssessment{
		Probability: probability,
		Label:       label,
		Shock:       shock,
	}, nil
}
