package models

import (
	"retirement-sim/internal/analysis"
	"retirement-sim/internal/model"
)

// SimulationResponse represents the response from a projection run
type SimulationResponse struct {
	ID      string                   `json:"id"`
	Seed    int64                    `json:"seed"`
	Status  string                   `json:"status"`
	Cached  bool                     `json:"cached,omitempty"` // POST replay from the seeded-params cache
	Params  model.SimulationParams   `json:"params"`
	Results []model.SimulationResult `json:"results"`
	Summary *analysis.Summary        `json:"summary,omitempty"`
	Display *Display                 `json:"display,omitempty"`
}

// Display holds final-year bands rounded to whole currency units
type Display struct {
	Bands []BandDisplay `json:"bands"`
}

// BandDisplay is one band's legend label and formatted final value
type BandDisplay struct {
	Band       model.Band `json:"band"`
	Label      string     `json:"label"`
	FinalValue string     `json:"final_value"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Seed       int64              `json:"seed"`
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains the ranked outcome for one variation
type ComparisonResult struct {
	Rank    int              `json:"rank"`
	Name    string           `json:"name"`
	ID      string           `json:"id"`
	Summary analysis.Summary `json:"summary"`
}

// PresetInfo represents a scenario preset
type PresetInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Params      ScenarioParams `json:"params"`
}

// ParameterInfo describes one simulation input
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int"
	Unit        string      `json:"unit,omitempty"`
	Description string      `json:"description"`
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
