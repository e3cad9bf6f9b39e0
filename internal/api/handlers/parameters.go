package handlers

import (
	"net/http"

	"retirement-sim/internal/api/models"
	"retirement-sim/internal/model"

	"github.com/gin-gonic/gin"
)

// ParameterHandler describes the accepted simulation inputs
type ParameterHandler struct {
	parameters []models.ParameterInfo
}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler(maxSimulations int) *ParameterHandler {
	return &ParameterHandler{parameters: parameterTable(maxSimulations)}
}

// ListParameters handles GET /api/v1/parameters
func (h *ParameterHandler) ListParameters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"parameters": h.parameters})
}

func parameterTable(maxSimulations int) []models.ParameterInfo {
	return []models.ParameterInfo{
		{
			Name:        "initial_age",
			Type:        "int",
			Unit:        "years",
			Description: "Current age",
			Min:         model.MinInitialAge,
			Max:         model.MaxInitialAge,
			Default:     30,
		},
		{
			Name:        "retirement_age",
			Type:        "int",
			Unit:        "years",
			Description: "Age at which the projection ends; must be greater than initial_age",
			Min:         model.MinRetirementAge,
			Max:         model.MaxRetirementAge,
			Default:     65,
		},
		{
			Name:        "initial_portfolio_value",
			Type:        "float",
			Unit:        "currency",
			Description: "Current portfolio value",
			Min:         0,
			Default:     50000,
		},
		{
			Name:        "monthly_contribution",
			Type:        "float",
			Unit:        "currency",
			Description: "Amount added at the end of every month",
			Min:         0,
			Default:     500,
		},
		{
			Name:        "mean_return",
			Type:        "float",
			Unit:        "fraction",
			Description: "Expected annual nominal return (or mean_return_pct as a percentage)",
			Min:         0,
			Max:         model.MaxMeanReturn,
			Default:     0.07,
		},
		{
			Name:        "std_dev",
			Type:        "float",
			Unit:        "fraction",
			Description: "Annual volatility of returns (or std_dev_pct as a percentage)",
			Min:         0,
			Max:         model.MaxStdDev,
			Default:     0.15,
		},
		{
			Name:        "num_simulations",
			Type:        "int",
			Description: "Number of simulated paths",
			Min:         model.MinNumSimulations,
			Max:         min(maxSimulations, model.MaxNumSimulations),
			Default:     model.DefaultNumSimulations,
		},
		{
			Name:        "inflation_rate",
			Type:        "float",
			Unit:        "fraction",
			Description: "Annual inflation used to express values in today's money",
			Min:         0,
			Max:         model.MaxInflationRate,
			Default:     model.DefaultInflationRate,
		},
	}
}
