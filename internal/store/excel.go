package store

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// LoadExcel reads the master dataset from the first sheet of an xlsx workbook,
// header row first. Same layout and invariants as the CSV edition.
func LoadExcel(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheet)
	}

	records, err := parseRows(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("parse workbook %s: %w", path, err)
	}

	dataset, err := newDataset(records)
	if err != nil {
		return nil, fmt.Errorf("index workbook %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Str("sheet", sheet).
		Int("records", len(records)).
		Msg("Excel dataset loaded")
	return dataset, nil
}
