package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"agrishield/models"
)

// Postgres is a RecordStore backed by a country_records table.
type Postgres struct {
	db *sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters.
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// indicatorColumns maps table columns to indicator names, in SELECT order.
var indicatorColumns = []struct {
	column    string
	indicator string
}{
	{"area_harvested", models.IndicatorAreaHarvested},
	{"production_tonnes", models.IndicatorProductionTonnes},
	{"avg_temp", models.IndicatorAvgTemp},
	{"temp_volatility", models.IndicatorTempVolatility},
	{"gdp_current_us", models.IndicatorGDP},
	{"political_stability_estimate", models.IndicatorPoliticalStability},
	{"inflation", models.IndicatorInflation},
	{"co2_emissions", models.IndicatorCO2Emissions},
	{"agri_land_percent", models.IndicatorAgriLandPercent},
	{"forest_land_percent", models.IndicatorForestLandPercent},
	{"population", models.IndicatorPopulation},
}

// NewPostgres opens a connection, verifies it and ensures the schema exists.
func NewPostgres(params ConnectionParams) (*Postgres, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &Postgres{db: db}, nil
}

func createTables(db *sql.DB) error {
	// The (country, year) primary key is the store invariant: at most one
	// record per country per year.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS country_records (
			country TEXT NOT NULL,
			year INTEGER NOT NULL,
			area_harvested DOUBLE PRECISION,
			production_tonnes DOUBLE PRECISION,
			avg_temp DOUBLE PRECISION,
			temp_volatility DOUBLE PRECISION,
			gdp_current_us DOUBLE PRECISION,
			political_stability_estimate DOUBLE PRECISION,
			inflation DOUBLE PRECISION,
			co2_emissions DOUBLE PRECISION,
			agri_land_percent DOUBLE PRECISION,
			forest_land_percent DOUBLE PRECISION,
			population DOUBLE PRECISION,
			PRIMARY KEY (country, year)
		)
	`)
	return err
}

func selectColumns() string {
	cols := "country, year"
	for _, c := range indicatorColumns {
		cols += ", " + c.column
	}
	return cols
}

func scanRecord(scan func(...any) error) (models.CountryRecord, error) {
	var rec models.CountryRecord
	values := make([]sql.NullFloat64, len(indicatorColumns))

	dest := []any{&rec.Country, &rec.Year}
	for i := range values {
		dest = append(dest, &values[i])
	}
	if err := scan(dest...); err != nil {
		return models.CountryRecord{}, err
	}

	rec.Indicators = make(models.FeatureVector, len(indicatorColumns))
	for i, c := range indicatorColumns {
		if !values[i].Valid {
			return models.CountryRecord{}, fmt.Errorf("%w: %s (%s, %d)",
				models.ErrMissingIndicator, c.indicator, rec.Country, rec.Year)
		}
		rec.Indicators[c.indicator] = values[i].Float64
	}
	return rec, nil
}

// GetLatestRecord returns the highest-year record for the country.
func (p *Postgres) GetLatestRecord(country string) (models.CountryRecord, error) {
	row := p.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM country_records
		WHERE country = $1
		ORDER BY year DESC
		LIMIT 1
	`, selectColumns()), country)

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CountryRecord{}, fmt.Errorf("%w: %s", models.ErrUnknownCountry, country)
		}
		return models.CountryRecord{}, err
	}
	return rec, nil
}

// ListCountries returns all countries, sorted.
func (p *Postgres) ListCountries() ([]string, error) {
	rows, err := p.db.Query(`SELECT DISTINCT country FROM country_records ORDER BY country`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var country string
		if err := rows.Scan(&country); err != nil {
			return nil, err
		}
		countries = append(countries, country)
	}
	return countries, rows.Err()
}

// GetHistory returns the country's records, year ascending.
func (p *Postgres) GetHistory(country string) ([]models.CountryRecord, error) {
	rows, err := p.db.Query(fmt.Sprintf(`
		SELECT %s FROM country_records
		WHERE country = $1
		ORDER BY year ASC
	`, selectColumns()), country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CountryRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownCountry, country)
	}
	return records, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
