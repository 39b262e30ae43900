package store

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// LoadCSV reads the master dataset from a CSV file, header row first.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	records, err := parseRows(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	dataset, err := newDataset(records)
	if err != nil {
		return nil, fmt.Errorf("index dataset %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("records", len(records)).
		Int("countries", len(dataset.countries)).
		Msg("CSV dataset loaded")
	return dataset, nil
}
