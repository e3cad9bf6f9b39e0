package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"retirement-sim/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario configuration shape (YAML).
type Config struct {
	// Optional: load scenario parameters from a separate YAML (e.g. examples/scenarios/*.yaml).
	// If both ScenarioFile and Scenario are provided, Scenario overrides ScenarioFile.
	ScenarioFile string         `yaml:"scenario_file"`
	Scenario     ScenarioConfig `yaml:"scenario"`
	Run          RunConfig      `yaml:"run"`
}

// ScenarioConfig holds projection inputs. Rates may be given either as
// fractions (mean_return: 0.07) or as percentages (mean_return_pct: 7);
// the fraction wins when both are set. Amounts and rates are pointers so an
// explicit 0 overrides a preset value; nil means unset.
type ScenarioConfig struct {
	Name                  string   `yaml:"name"`
	Description           string   `yaml:"description"`
	InitialAge            int      `yaml:"initial_age"`
	RetirementAge         int      `yaml:"retirement_age"`
	InitialPortfolioValue *float64 `yaml:"initial_portfolio_value"`
	MonthlyContribution   *float64 `yaml:"monthly_contribution"`
	MeanReturn            *float64 `yaml:"mean_return"`
	MeanReturnPct         *float64 `yaml:"mean_return_pct"`
	StdDev                *float64 `yaml:"std_dev"`
	StdDevPct             *float64 `yaml:"std_dev_pct"`
	InflationRate         *float64 `yaml:"inflation_rate"`
}

type RunConfig struct {
	Simulations int   `yaml:"simulations"`
	Seed        int64 `yaml:"seed"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.ScenarioFile != "" {
		scenarioPath := c.ScenarioFile
		if !filepath.IsAbs(scenarioPath) {
			// Prefer paths relative to the config file, falling back to cwd.
			cand := filepath.Join(filepath.Dir(path), scenarioPath)
			if _, err := os.Stat(cand); err == nil {
				scenarioPath = cand
			}
		}
		loaded, err := LoadScenarioFile(scenarioPath)
		if err != nil {
			return nil, err
		}
		c.Scenario = MergeScenario(loaded, c.Scenario)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Run.Simulations < 0 {
		return errors.New("run.simulations must be >= 0")
	}
	if err := c.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("scenario config invalid: %w", err)
	}
	return nil
}

// ToModelParams resolves the scenario and run options into engine params.
func (c *Config) ToModelParams() model.SimulationParams {
	p := c.Scenario.ToModelParams()
	p.NumSimulations = c.Run.Simulations
	return p
}

func (s ScenarioConfig) ToModelParams() model.SimulationParams {
	return model.SimulationParams{
		InitialAge:            s.InitialAge,
		RetirementAge:         s.RetirementAge,
		InitialPortfolioValue: deref(s.InitialPortfolioValue),
		MonthlyContribution:   deref(s.MonthlyContribution),
		MeanReturn:            fraction(s.MeanReturn, s.MeanReturnPct),
		StdDev:                fraction(s.StdDev, s.StdDevPct),
		InflationRate:         s.InflationRate,
	}
}

func fraction(frac, pct *float64) float64 {
	if frac != nil {
		return *frac
	}
	if pct != nil {
		return *pct / 100
	}
	return 0
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

type scenarioFileWrapper struct {
	Scenario ScenarioConfig `yaml:"scenario"`
}

// LoadScenarioFile reads a preset file holding a top-level `scenario:` block.
func LoadScenarioFile(path string) (ScenarioConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ScenarioConfig{}, err
	}
	var w scenarioFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ScenarioConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Scenario, nil
}

// MergeScenario overlays set fields from override onto base: non-empty
// strings, non-zero ages and non-nil amounts and rates.
// Used when a preset is loaded and then adjusted by a config file or request.
func MergeScenario(base, override ScenarioConfig) ScenarioConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	if override.InitialAge != 0 {
		out.InitialAge = override.InitialAge
	}
	if override.RetirementAge != 0 {
		out.RetirementAge = override.RetirementAge
	}
	if override.InitialPortfolioValue != nil {
		out.InitialPortfolioValue = override.InitialPortfolioValue
	}
	if override.MonthlyContribution != nil {
		out.MonthlyContribution = override.MonthlyContribution
	}
	// A rate override in either form replaces both forms of the base rate.
	if override.MeanReturn != nil || override.MeanReturnPct != nil {
		out.MeanReturn = override.MeanReturn
		out.MeanReturnPct = override.MeanReturnPct
	}
	if override.StdDev != nil || override.StdDevPct != nil {
		out.StdDev = override.StdDev
		out.StdDevPct = override.StdDevPct
	}
	if override.InflationRate != nil {
		out.InflationRate = override.InflationRate
	}
	return out
}
