package models

import "errors"

var (
	// ErrUnknownCountry is returned when the requested country has no record
	// in the store. Callers should re-select from ListCountries.
	ErrUnknownCountry = errors.New("unknown country")

	// ErrMissingIndicator marks a record that lacks a required indicator.
	// The store invariant makes this a data-integrity bug, fatal to the
	// single request that hit it.
	ErrMissingIndicator = errors.New("missing indicator")

	// ErrInvalidProbability marks a classifier that returned a probability
	// outside [0,1]. The value is surfaced, never clamped.
	ErrInvalidProbability = errors.New("risk probability outside [0,1]")
)
