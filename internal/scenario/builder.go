// Package scenario derives the model input vectors for one simulation: the
// baseline record's indicators with the user's climate/economic shock applied.
package scenario

import (
	"fmt"

	"agrishield/models"
)

// BuildFeatures copies the risk and yield feature sets from record and applies
// the shock to both: temperature additively, GDP multiplicatively. Every other
// indicator passes through unchanged.
//
// Shock magnitude is deliberately not validated and never clamped — values
// outside the UI hint ranges are a legitimate what-if scenario.
func BuildFeatures(record models.CountryRecord, shock models.ScenarioShock) (models.FeatureVector, models.FeatureVector, error) {
	riskFeatures, err := copyFeatures(record, models.RiskFeatureNames)
	if err != nil {
		return nil, nil, err
	}
	yieldFeatures, err := copyFeatures(record, models.YieldFeatureNames)
	if err != nil {
		return nil, nil, err
	}

	applyShock(riskFeatures, shock)
	applyShock(yieldFeatures, shock)

	return riskFeatures, yieldFeatures, nil
}

func copyFeatures(record models.CountryRecord, names []string) (models.FeatureVector, error) {
	features := make(models.FeatureVector, len(names))
	for _, name := range names {
		v, ok := record.Indicator(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s (%s, %d)", models.ErrMissingIndicator, name, record.Country, record.Year)
		}
		features[name] = v
	}
	return features, nil
}

func applyShock(features models.FeatureVector, shock models.ScenarioShock) {
	features[models.IndicatorAvgTemp] += shock.TempDelta
	features[models.IndicatorGDP] *= 1 + shock.GDPDeltaPercent/100
}
