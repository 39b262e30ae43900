package models

import "context"

// RecordStore serves the master dataset. Implementations load once and are
// read-only afterwards, so they are safe for concurrent use.
type RecordStore interface {
	// GetLatestRecord returns the highest-year record for the country, or
	// ErrUnknownCountry.
	GetLatestRecord(country string) (CountryRecord, error)
	ListCountries() ([]string, error)
	// GetHistory returns the country's records ordered by year ascending.
	GetHistory(country string) ([]CountryRecord, error)
}

// RiskClassifier returns the probability of the at-risk class for the given
// feature vector.
type RiskClassifier interface {
	ClassifyRisk(ctx context.Context, features FeatureVector) (float64, error)
}

// YieldRegressor returns the predicted yield (t/ha) for the given feature
// vector.
type YieldRegressor interface {
	PredictYield(ctx context.Context, features FeatureVector) (float64, error)
}
