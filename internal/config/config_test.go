package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"retirement-sim/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadMergesScenarioFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scenarios/base.yaml", `
scenario:
  name: Base
  initial_age: 30
  retirement_age: 65
  initial_portfolio_value: 50000
  monthly_contribution: 500
  mean_return_pct: 7
  std_dev_pct: 15
`)
	cfgPath := writeFile(t, dir, "config.yaml", `
scenario_file: scenarios/base.yaml
scenario:
  monthly_contribution: 750
  inflation_rate: 0
run:
  simulations: 200
  seed: 42
`)

	c, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	p := c.ToModelParams()
	if p.MonthlyContribution != 750 || p.InitialPortfolioValue != 50000 {
		t.Fatalf("unexpected merge result: %+v", p)
	}
	if p.MeanReturn != 0.07 || p.StdDev != 0.15 {
		t.Fatalf("expected percentage rates converted, got %v / %v", p.MeanReturn, p.StdDev)
	}
	if p.InflationRate == nil || *p.InflationRate != 0 {
		t.Fatalf("expected explicit zero inflation to survive merge, got %v", p.InflationRate)
	}
	if p.NumSimulations != 200 || c.Run.Seed != 42 {
		t.Fatalf("unexpected run options: %+v", c.Run)
	}
}

func TestLoadRejectsInvalidScenario(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", `
scenario:
  initial_age: 50
  retirement_age: 45
`)
	_, err := Load(cfgPath)
	if !errors.Is(err, model.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}

	c, err := LoadUnchecked(cfgPath)
	if err != nil {
		t.Fatalf("LoadUnchecked returned error: %v", err)
	}
	if c.Scenario.InitialAge != 50 {
		t.Fatalf("expected unchecked config to load, got %+v", c.Scenario)
	}
}

func TestLoadMissingScenarioFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "scenario_file: nope.yaml\n")
	if _, err := LoadUnchecked(cfgPath); err == nil {
		t.Fatalf("expected error for missing scenario file")
	}
}

func TestMergeScenarioRateForms(t *testing.T) {
	base := ScenarioConfig{MeanReturn: model.Float64(0.07), StdDevPct: model.Float64(15)}
	out := MergeScenario(base, ScenarioConfig{MeanReturnPct: model.Float64(5)})
	p := out.ToModelParams()
	if p.MeanReturn != 0.05 {
		t.Fatalf("expected pct override to replace fraction, got %v", p.MeanReturn)
	}
	if p.StdDev != 0.15 {
		t.Fatalf("expected base std dev kept, got %v", p.StdDev)
	}
}

func TestMergeScenarioExplicitZero(t *testing.T) {
	base := ScenarioConfig{
		InitialPortfolioValue: model.Float64(50000),
		MonthlyContribution:   model.Float64(500),
		MeanReturnPct:         model.Float64(7),
		StdDevPct:             model.Float64(15),
	}

	kept := MergeScenario(base, ScenarioConfig{}).ToModelParams()
	if kept.MonthlyContribution != 500 || kept.MeanReturn != 0.07 || kept.StdDev != 0.15 {
		t.Fatalf("expected unset override to keep base, got %+v", kept)
	}

	zeroed := MergeScenario(base, ScenarioConfig{
		InitialPortfolioValue: model.Float64(0),
		MonthlyContribution:   model.Float64(0),
		MeanReturn:            model.Float64(0),
		StdDev:                model.Float64(0),
	}).ToModelParams()
	if zeroed.InitialPortfolioValue != 0 || zeroed.MonthlyContribution != 0 || zeroed.MeanReturn != 0 || zeroed.StdDev != 0 {
		t.Fatalf("expected explicit zeros to override base, got %+v", zeroed)
	}
}

func TestLoadExplicitZeroOverridesScenarioFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
scenario:
  initial_age: 30
  retirement_age: 40
  initial_portfolio_value: 10000
  monthly_contribution: 500
  mean_return_pct: 7
  std_dev_pct: 15
`)
	cfgPath := writeFile(t, dir, "config.yaml", `
scenario_file: base.yaml
scenario:
  monthly_contribution: 0
  std_dev: 0
run:
  simulations: 100
`)
	c, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	p := c.ToModelParams()
	if p.MonthlyContribution != 0 || p.StdDev != 0 || p.MeanReturn != 0.07 {
		t.Fatalf("unexpected merge result: %+v", p)
	}
}

func TestLoadRejectsNonFiniteYAML(t *testing.T) {
	for _, value := range []string{".nan", ".inf", "-.inf"} {
		t.Run(value, func(t *testing.T) {
			cfgPath := writeFile(t, t.TempDir(), "config.yaml", `
scenario:
  initial_age: 30
  retirement_age: 40
  initial_portfolio_value: `+value+`
run:
  simulations: 100
`)
			if _, err := Load(cfgPath); !errors.Is(err, model.ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams for %s, got %v", value, err)
			}
		})
	}
}

func TestExampleScenariosAreValid(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "scenarios", "*.yaml"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no example scenarios found")
	}
	for _, path := range paths {
		sc, err := LoadScenarioFile(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if err := sc.ToModelParams().Validate(); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
	}

	c, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	if err != nil {
		t.Fatalf("example config: %v", err)
	}
	if c.ToModelParams().MonthlyContribution != 750 {
		t.Fatalf("unexpected example config: %+v", c.Scenario)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("MAX_SIMULATIONS", "5000")
	t.Setenv("API_ENV", "production")

	s, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv returned error: %v", err)
	}
	if s.Port != "9090" || s.RedisAddr != "localhost:6379" || s.CacheTTL != 15*time.Minute || s.MaxSimulations != 5000 {
		t.Fatalf("unexpected server config: %+v", s)
	}
	if !s.Production() {
		t.Fatalf("expected production mode")
	}
	if s.ScenarioDir != "./examples/scenarios" {
		t.Fatalf("expected default scenario dir, got %q", s.ScenarioDir)
	}
}

func TestParseEnvRejectsZeroCap(t *testing.T) {
	t.Setenv("MAX_SIMULATIONS", "0")
	if _, err := ParseEnv(); err == nil {
		t.Fatalf("expected error for zero MAX_SIMULATIONS")
	}
}
