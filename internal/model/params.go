package model

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultNumSimulations = 1000
	DefaultInflationRate  = 0.025
)

// Input bounds. Ages and return/volatility ranges mirror what the simulator
// form has always accepted; the rest keep a single run bounded.
const (
	MinInitialAge     = 18
	MaxInitialAge     = 90
	MinRetirementAge  = 19
	MaxRetirementAge  = 100
	MaxMeanReturn     = 0.20
	MaxStdDev         = 0.40
	MaxInflationRate  = 0.20
	MinNumSimulations = 10
	MaxNumSimulations = 100_000

	// Keep the worst-case compounded value far from float64 overflow.
	MaxPortfolioValue      = 1e12
	MaxMonthlyContribution = 1e9
)

// ErrInvalidParams is wrapped by every Validate failure.
var ErrInvalidParams = errors.New("invalid simulation params")

// SimulationParams are the inputs to one projection run.
// Units:
// - ages: whole years
// - InitialPortfolioValue, MonthlyContribution: currency units
// - MeanReturn, StdDev, InflationRate: annualized decimal fractions (0.07 = 7%)
type SimulationParams struct {
	InitialAge            int     `json:"initial_age"`
	RetirementAge         int     `json:"retirement_age"`
	InitialPortfolioValue float64 `json:"initial_portfolio_value"`
	MonthlyContribution   float64 `json:"monthly_contribution"`
	MeanReturn            float64 `json:"mean_return"`
	StdDev                float64 `json:"std_dev"`
	NumSimulations        int     `json:"num_simulations"`

	// InflationRate is nil when the caller did not set it; Inflation() resolves the default.
	InflationRate *float64 `json:"inflation_rate,omitempty"`
}

// Years is the number of simulated years (may be <= 0 for degenerate input).
func (p SimulationParams) Years() int {
	return p.RetirementAge - p.InitialAge
}

// Simulations returns NumSimulations, or the default when it is 0.
// Negative counts are returned as is; Validate rejects them.
func (p SimulationParams) Simulations() int {
	if p.NumSimulations == 0 {
		return DefaultNumSimulations
	}
	return p.NumSimulations
}

// Inflation returns InflationRate, or the default when unset.
func (p SimulationParams) Inflation() float64 {
	if p.InflationRate == nil {
		return DefaultInflationRate
	}
	return *p.InflationRate
}

// WithDefaults returns a copy with NumSimulations and InflationRate resolved.
func (p SimulationParams) WithDefaults() SimulationParams {
	out := p
	out.NumSimulations = p.Simulations()
	infl := p.Inflation()
	out.InflationRate = &infl
	return out
}

// Validate checks the params against the accepted input ranges.
// The engine itself never calls this: degenerate ages produce an empty result there.
func (p SimulationParams) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"initial_portfolio_value", p.InitialPortfolioValue},
		{"monthly_contribution", p.MonthlyContribution},
		{"mean_return", p.MeanReturn},
		{"std_dev", p.StdDev},
		{"inflation_rate", p.Inflation()},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid(f.name, "must be a finite number")
		}
	}
	if p.InitialAge < MinInitialAge || p.InitialAge > MaxInitialAge {
		return invalid("initial_age", "must be in [%d, %d]", MinInitialAge, MaxInitialAge)
	}
	if p.RetirementAge < MinRetirementAge || p.RetirementAge > MaxRetirementAge {
		return invalid("retirement_age", "must be in [%d, %d]", MinRetirementAge, MaxRetirementAge)
	}
	if p.RetirementAge <= p.InitialAge {
		return invalid("retirement_age", "must be greater than initial_age")
	}
	if p.InitialPortfolioValue < 0 || p.InitialPortfolioValue > MaxPortfolioValue {
		return invalid("initial_portfolio_value", "must be in [0, %g]", MaxPortfolioValue)
	}
	if p.MonthlyContribution < 0 || p.MonthlyContribution > MaxMonthlyContribution {
		return invalid("monthly_contribution", "must be in [0, %g]", MaxMonthlyContribution)
	}
	if p.MeanReturn < 0 || p.MeanReturn > MaxMeanReturn {
		return invalid("mean_return", "must be in [0, %.2f]", MaxMeanReturn)
	}
	if p.StdDev < 0 || p.StdDev > MaxStdDev {
		return invalid("std_dev", "must be in [0, %.2f]", MaxStdDev)
	}
	if n := p.Simulations(); n < MinNumSimulations || n > MaxNumSimulations {
		return invalid("num_simulations", "must be in [%d, %d]", MinNumSimulations, MaxNumSimulations)
	}
	if infl := p.Inflation(); infl < 0 || infl > MaxInflationRate {
		return invalid("inflation_rate", "must be in [0, %.2f]", MaxInflationRate)
	}
	return nil
}

// FieldError names the offending field of a failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidParams, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidParams }

func invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Float64 is a small helper for optional rate fields.
func Float64(v float64) *float64 { return &v }
