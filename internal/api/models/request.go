package models

import "retirement-sim/internal/config"

// ScenarioParams are the projection inputs accepted on the wire.
// Rates may be sent as fractions (mean_return: 0.07) or as percentages
// (mean_return_pct: 7), matching the simulator form. Amounts and rates are
// pointers: an explicit 0 overrides a preset or compare base, absent keeps it.
type ScenarioParams struct {
	Preset                string   `json:"preset,omitempty"` // preset ID from GET /api/v1/presets
	InitialAge            int      `json:"initial_age,omitempty"`
	RetirementAge         int      `json:"retirement_age,omitempty"`
	InitialPortfolioValue *float64 `json:"initial_portfolio_value,omitempty"`
	MonthlyContribution   *float64 `json:"monthly_contribution,omitempty"`
	MeanReturn            *float64 `json:"mean_return,omitempty"`
	MeanReturnPct         *float64 `json:"mean_return_pct,omitempty"`
	StdDev                *float64 `json:"std_dev,omitempty"`
	StdDevPct             *float64 `json:"std_dev_pct,omitempty"`
	NumSimulations        int      `json:"num_simulations,omitempty"` // default: 1000
	InflationRate         *float64 `json:"inflation_rate,omitempty"`  // default: 0.025
}

// Scenario converts the request fields into a config overlay.
func (p ScenarioParams) Scenario() config.ScenarioConfig {
	return config.ScenarioConfig{
		InitialAge:            p.InitialAge,
		RetirementAge:         p.RetirementAge,
		InitialPortfolioValue: p.InitialPortfolioValue,
		MonthlyContribution:   p.MonthlyContribution,
		MeanReturn:            p.MeanReturn,
		MeanReturnPct:         p.MeanReturnPct,
		StdDev:                p.StdDev,
		StdDevPct:             p.StdDevPct,
		InflationRate:         p.InflationRate,
	}
}

// SimulationRequest represents the request body for running a projection
type SimulationRequest struct {
	ScenarioParams
	Seed           int64 `json:"seed,omitempty"`            // 0 = fresh random seed
	IncludeSummary bool  `json:"include_summary,omitempty"` // default: false
}

// CompareRequest represents a request to compare scenario variations
type CompareRequest struct {
	Base       ScenarioParams      `json:"base"`
	Variations []ScenarioVariation `json:"variations" binding:"required,min=1,dive"`
	Seed       int64               `json:"seed,omitempty"`
}

// ScenarioVariation overlays non-zero params onto the base scenario
type ScenarioVariation struct {
	Name   string         `json:"name" binding:"required"`
	Params ScenarioParams `json:"params"`
}
