package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"agrishield/models"
)

// CountryHandler serves the descriptive endpoints: country list, latest
// profile and charting history.
type CountryHandler struct {
	store  models.RecordStore
	logger zerolog.Logger
}

// NewCountryHandler creates a handler over the record store.
func NewCountryHandler(store models.RecordStore) *CountryHandler {
	return &CountryHandler{
		store:  store,
		logger: log.With().Str("component", "country_handler").Logger(),
	}
}

// ListCountries returns the sorted country list.
func (h *CountryHandler) ListCountries(c *gin.Context) {
	countries, err := h.store.ListCountries()
	if err != nil {
		h.logger.Error().Err(err).Msg("list countries failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"countries": countries,
		"count":     len(countries),
	})
}

// GetCountry returns the latest record plus the dashboard profile numbers.
func (h *CountryHandler) GetCountry(c *gin.Context) {
	country := c.Param("name")

	record, err := h.store.GetLatestRecord(country)
	if err != nil {
		if errors.Is(err, models.ErrUnknownCountry) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error().Err(err).Str("country", country).Msg("load record failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"record":  record,
		"profile": gin.H{
			"avg_temp_celsius":       record.Indicators[models.IndicatorAvgTemp],
			"gdp_billions_usd":       record.Indicators[models.IndicatorGDP] / 1e9,
			"population_millions":    record.Indicators[models.IndicatorPopulation] / 1e6,
			"agri_land_percent":      record.Indicators[models.IndicatorAgriLandPercent],
			"forest_land_percent":    record.Indicators[models.IndicatorForestLandPercent],
			"inflation_rate_percent": record.Indicators[models.IndicatorInflation],
			"temp_volatility":        record.Indicators[models.IndicatorTempVolatility],
		},
	})
}

// GetHistory returns the full year-ascending series for charting.
func (h *CountryHandler) GetHistory(c *gin.Context) {
	country := c.Param("name")

	history, err := h.store.GetHistory(country)
	if err != nil {
		if errors.Is(err, models.ErrUnknownCountry) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error().Err(err).Str("country", country).Msg("load history failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"country": country,
		"history": history,
		"count":   len(history),
	})
}
