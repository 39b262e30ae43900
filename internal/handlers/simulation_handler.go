// Package handlers is the HTTP presentation layer over the simulation engine
// and record store.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"agrishield/internal/metrics"
	"agrishield/internal/simulation"
	"agrishield/models"
)

// Display colors for the three tiers, matching the dashboard theme.
var labelColors = map[models.RiskLabel]string{
	models.HighRisk: "#D7263D",
	models.LowRisk:  "#1B9E77",
	models.Stable:   "#E6A700",
}

// SimulationHandler serves the scenario simulation endpoints.
type SimulationHandler struct {
	engine *simulation.Engine
	logger zerolog.Logger
}

// NewSimulationHandler creates a handler over the engine.
func NewSimulationHandler(engine *simulation.Engine) *SimulationHandler {
	return &SimulationHandler{
		engine: engine,
		logger: log.With().Str("component", "simulation_handler").Logger(),
	}
}

// SimulateRequest is the POST /api/v1/simulate body. Shock magnitude is not
// validated: out-of-hint values are a legitimate what-if scenario.
type SimulateRequest struct {
	Country         string  `json:"country" binding:"required"`
	TempDelta       float64 `json:"temp_delta"`
	GDPDeltaPercent float64 `json:"gdp_delta_percent"`
}

// Simulate runs one scenario simulation.
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shock := models.ScenarioShock{
		TempDelta:       req.TempDelta,
		GDPDeltaPercent: req.GDPDeltaPercent,
	}

	start := time.Now()
	result, err := h.engine.RunSimulation(c.Request.Context(), req.Country, shock)
	metrics.SimulationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnknownCountry):
			metrics.SimulationErrors.WithLabelValues("unknown_country").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrInvalidProbability), errors.Is(err, models.ErrMissingIndicator):
			metrics.SimulationErrors.WithLabelValues("model_contract").Inc()
			h.logger.Error().Err(err).Str("country", req.Country).Msg("model contract violation")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			metrics.SimulationErrors.WithLabelValues("model_call").Inc()
			h.logger.Error().Err(err).Str("country", req.Country).Msg("simulation failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	metrics.SimulationsTotal.WithLabelValues(string(result.Assessment.Label)).Inc()

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"country":        result.Country,
		"baseline_year":  result.BaselineYear,
		"assessment":     result.Assessment,
		"yield_estimate": result.YieldEstimate,
		"label_color":    labelColors[result.Assessment.Label],
		"shock_hints": gin.H{
			"temp_delta":        gin.H{"min": models.TempDeltaHintMin, "max": models.TempDeltaHintMax, "step": models.TempDeltaStep},
			"gdp_delta_percent": gin.H{"min": models.GDPDeltaHintMin, "max": models.GDPDeltaHintMax, "step": models.GDPDeltaStep},
		},
	})
}
