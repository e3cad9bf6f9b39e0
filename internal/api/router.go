// Package api wires the HTTP handlers and middleware into a gin router.
package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"retirement-sim/internal/api/handlers"
	"retirement-sim/internal/api/middleware"
	"retirement-sim/internal/api/models"
	"retirement-sim/internal/cache"

	"github.com/gin-gonic/gin"
)

// Options are the router dependencies.
type Options struct {
	Store          cache.Store
	ScenarioDir    string
	StaticDir      string // served as an SPA when it exists; may be empty
	MaxSimulations int
	CORSOrigins    []string
}

// NewRouter builds the API router.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	presetHandler := handlers.NewPresetHandler(opts.ScenarioDir)
	simulationHandler := handlers.NewSimulationHandler(opts.Store, presetHandler, opts.MaxSimulations)
	parameterHandler := handlers.NewParameterHandler(opts.MaxSimulations)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulations", simulationHandler.RunSimulation)
		v1.POST("/simulations/compare", simulationHandler.CompareSimulations)
		v1.GET("/simulations/:id", simulationHandler.GetSimulation)

		v1.GET("/presets", presetHandler.ListPresets)
		v1.GET("/parameters", parameterHandler.ListParameters)
	}

	serveStatic(router, opts.StaticDir)
	return router
}

// serveStatic serves the built SPA from dir, falling back to index.html for
// client-side routes. API paths still 404 as JSON.
func serveStatic(router *gin.Engine, dir string) {
	info, err := os.Stat(dir)
	if dir == "" || err != nil || !info.IsDir() {
		log.Printf("Static directory %q not found, skipping static file serving", dir)
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))

	index := filepath.Join(dir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(index)
	})
	log.Printf("Serving static files from %s", dir)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Not found",
		},
	})
}
