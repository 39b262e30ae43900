// Package mlmodel provides the two predictive model collaborators: local
// coefficient artifacts exported from the trained models, and a client for a
// remote model-serving process.
package mlmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"agrishield/models"
)

// artifact is a JSON export of a fitted linear model: an intercept plus one
// coefficient per feature name.
type artifact struct {
	ModelType    string             `json:"model_type"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
}

func loadArtifact(path string) (artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return artifact{}, fmt.Errorf("read model artifact: %w", err)
	}
	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return artifact{}, fmt.Errorf("parse model artifact %s: %w", path, err)
	}
	if len(art.Coefficients) == 0 {
		return artifact{}, fmt.Errorf("model artifact %s has no coefficients", path)
	}
	return art, nil
}

// linearScore computes intercept + sum(coef * feature). Every feature the
// artifact names must be supplied; nothing is zero-filled.
func (a artifact) linearScore(features models.FeatureVector) (float64, error) {
	score := a.Intercept
	for name, coef := range a.Coefficients {
		v, ok := features[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", models.ErrMissingIndicator, name)
		}
		score += coef * v
	}
	return score, nil
}

// LocalClassifier evaluates a logistic-regression artifact.
type LocalClassifier struct {
	art artifact
}

// LoadLocalClassifier loads the risk classifier artifact once.
func LoadLocalClassifier(path string) (*LocalClassifier, error) {
	art, err := loadArtifact(path)
	if err != nil {
		return nil, err
	}
	return &LocalClassifier{art: art}, nil
}

// ClassifyRisk returns the at-risk class probability via the logistic link.
func (c *LocalClassifier) ClassifyRisk(_ context.Context, features models.FeatureVector) (float64, error) {
	score, err := c.art.linearScore(features)
	if err != nil {
		return 0, err
	}
	return 1 / (1 + math.Exp(-score)), nil
}

// LocalRegressor evaluates a linear-regression artifact.
type LocalRegressor struct {
	art artifact
}

// LoadLocalRegressor loads the yield regressor artifact once.
func LoadLocalRegressor(path string) (*LocalRegressor, error) {
	art, err := loadArtifact(path)
	if err != nil {
		return nil, err
	}
	return &LocalRegressor{art: art}, nil
}

// PredictYield returns the regression estimate as-is.
func (r *LocalRegressor) PredictYield(_ context.Context, features models.FeatureVector) (float64, error) {
	return r.art.linearScore(features)
}
