// Package store provides the record stores serving the master dataset: CSV and
// xlsx files loaded once into memory, and a Postgres-backed variant.
package store

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"agrishield/models"
)

// Column headers that are not indicators.
const (
	columnCountry = "Country"
	columnYear    = "Year"
)

// Dataset is an immutable in-memory RecordStore built from tabular rows.
// After construction it is never mutated, so it is safe for concurrent reads.
type Dataset struct {
	countries []string
	history   map[string][]models.CountryRecord
}

// newDataset indexes the records per country, orders each history by year
// ascending and enforces the one-record-per-(country, year) invariant.
func newDataset(records []models.CountryRecord) (*Dataset, error) {
	history := make(map[string][]models.CountryRecord)
	for _, rec := range records {
		history[rec.Country] = append(history[rec.Country], rec)
	}

	countries := make([]string, 0, len(history))
	for country, recs := range history {
		sort.Slice(recs, func(i, j int) bool { return recs[i].Year < recs[j].Year })
		for i := 1; i < len(recs); i++ {
			if recs[i].Year == recs[i-1].Year {
				return nil, fmt.Errorf("duplicate record for %s in %d", country, recs[i].Year)
			}
		}
		history[country] = recs
		countries = append(countries, country)
	}
	sort.Strings(countries)

	return &Dataset{countries: countries, history: history}, nil
}

// GetLatestRecord returns the highest-year record for the country.
func (d *Dataset) GetLatestRecord(country string) (models.CountryRecord, error) {
	recs, ok := d.history[country]
	if !ok {
		return models.CountryRecord{}, fmt.Errorf("%w: %s", models.ErrUnknownCountry, country)
	}
	return recs[len(recs)-1], nil
}

// ListCountries returns all countries, sorted.
func (d *Dataset) ListCountries() ([]string, error) {
	return d.countries, nil
}

// GetHistory returns the country's records, year ascending.
func (d *Dataset) GetHistory(country string) ([]models.CountryRecord, error) {
	recs, ok := d.history[country]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownCountry, country)
	}
	return recs, nil
}

// parseRows turns a header plus data rows into records. Every indicator column
// named in models.RiskFeatureNames must be present; extra columns (e.g. the
// training target) are ignored.
func parseRows(header []string, rows [][]string) ([]models.CountryRecord, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, required := range append([]string{columnCountry, columnYear}, models.RiskFeatureNames...) {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", required)
		}
	}

	records := make([]models.CountryRecord, 0, len(rows))
	for n, row := range rows {
		cell := func(name string) (string, error) {
			i := index[name]
			if i >= len(row) {
				return "", fmt.Errorf("row %d: missing cell for column %q", n+2, name)
			}
			return strings.TrimSpace(row[i]), nil
		}

		country, err := cell(columnCountry)
		if err != nil {
			return nil, err
		}
		if country == "" {
			return nil, fmt.Errorf("row %d: empty country name", n+2)
		}

		yearStr, err := cell(columnYear)
		if err != nil {
			return nil, err
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad year %q: %w", n+2, yearStr, err)
		}

		indicators := make(models.FeatureVector, len(models.RiskFeatureNames))
		for _, name := range models.RiskFeatureNames {
			raw, err := cell(name)
			if err != nil {
				return nil, err
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad %s value %q: %w", n+2, name, raw, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d: non-finite %s value %q", n+2, name, raw)
			}
			indicators[name] = v
		}

		records = append(records, models.CountryRecord{
			Country:    country,
			Year:       year,
			Indicators: indicators,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("dataset contains no records")
	}
	return records, nil
}
