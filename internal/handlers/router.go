package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agrishield/internal/simulation"
	"agrishield/models"
)

// NewRouter assembles the gin router over the store and engine.
func NewRouter(store models.RecordStore, engine *simulation.Engine) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	countryHandler := NewCountryHandler(store)
	simulationHandler := NewSimulationHandler(engine)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "agrishield",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/countries", countryHandler.ListCountries)
		v1.GET("/countries/:name", countryHandler.GetCountry)
		v1.GET("/countries/:name/history", countryHandler.GetHistory)
		v1.POST("/simulate", simulationHandler.Simulate)
	}

	return r
}
