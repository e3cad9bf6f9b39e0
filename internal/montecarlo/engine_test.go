package montecarlo

import (
	"bytes"
	"encoding/csv"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"retirement-sim/internal/model"
	"retirement-sim/internal/random"
)

func defaultParams() model.SimulationParams {
	return model.SimulationParams{
		InitialAge:            30,
		RetirementAge:         65,
		InitialPortfolioValue: 50000,
		MonthlyContribution:   500,
		MeanReturn:            0.07,
		StdDev:                0.15,
		NumSimulations:        500,
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestRunShape(t *testing.T) {
	p := defaultParams()
	results := New(random.New(1)).Run(p)
	if len(results) != p.RetirementAge-p.InitialAge {
		t.Fatalf("expected %d results, got %d", p.RetirementAge-p.InitialAge, len(results))
	}
	for i, r := range results {
		if r.Year != p.InitialAge+i+1 {
			t.Fatalf("row %d: expected year %d, got %d", i, p.InitialAge+i+1, r.Year)
		}
	}
}

func TestRunBandsOrdered(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		results := New(random.New(seed)).Run(defaultParams())
		for _, r := range results {
			if !(r.P10 <= r.P50 && r.P50 <= r.P90) {
				t.Fatalf("seed %d year %d: bands out of order: %+v", seed, r.Year, r)
			}
		}
	}
}

func TestRunDegenerateAgesReturnEmpty(t *testing.T) {
	tests := []struct {
		name            string
		initial, retire int
	}{
		{"equal", 40, 40},
		{"inverted", 50, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultParams()
			p.InitialAge = tt.initial
			p.RetirementAge = tt.retire
			results := New(random.New(1)).Run(p)
			if len(results) != 0 {
				t.Fatalf("expected empty result, got %d rows", len(results))
			}
		})
	}
}

func TestRunNegativeSimulationsReturnEmpty(t *testing.T) {
	p := defaultParams()
	p.NumSimulations = -5
	if results := New(random.New(1)).Run(p); len(results) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(results))
	}
}

func TestRunLargestValidInputStaysFinite(t *testing.T) {
	p := model.SimulationParams{
		InitialAge:            model.MinInitialAge,
		RetirementAge:         model.MaxRetirementAge,
		InitialPortfolioValue: model.MaxPortfolioValue,
		MonthlyContribution:   model.MaxMonthlyContribution,
		MeanReturn:            model.MaxMeanReturn,
		StdDev:                model.MaxStdDev,
		NumSimulations:        100,
		InflationRate:         model.Float64(0),
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected params at the bounds to validate: %v", err)
	}

	results := New(random.New(3)).Run(p)
	if len(results) != p.Years() {
		t.Fatalf("expected %d rows, got %d", p.Years(), len(results))
	}
	for _, r := range results {
		for _, b := range model.Bands() {
			if v := r.Value(b); math.IsInf(v, 0) || math.IsNaN(v) {
				t.Fatalf("year %d %s: non-finite value %v", r.Year, b, v)
			}
		}
	}
}

func TestRunZeroVarianceIsDeflatedPrincipal(t *testing.T) {
	p := model.SimulationParams{
		InitialAge:            30,
		RetirementAge:         40,
		InitialPortfolioValue: 25000,
		NumSimulations:        50,
		InflationRate:         model.Float64(0.03),
	}
	results := New(random.New(9)).Run(p)
	for i, r := range results {
		want := 25000 / math.Pow(1.03, float64(i+1))
		for _, b := range model.Bands() {
			if !approxEqual(r.Value(b), want) {
				t.Fatalf("year %d %s: expected %v, got %v", r.Year, b, want, r.Value(b))
			}
		}
	}
}

func TestRunTwoYearExample(t *testing.T) {
	p := model.SimulationParams{
		InitialAge:            30,
		RetirementAge:         32,
		InitialPortfolioValue: 10000,
		NumSimulations:        100,
		InflationRate:         model.Float64(0.025),
	}
	results := New(random.New(3)).Run(p)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	wants := []float64{10000 / 1.025, 10000 / (1.025 * 1.025)}
	for i, r := range results {
		if !approxEqual(r.P10, wants[i]) || r.P10 != r.P50 || r.P50 != r.P90 {
			t.Fatalf("row %d: expected all bands %v, got %+v", i, wants[i], r)
		}
	}
}

func TestRunContributionsWithoutGrowth(t *testing.T) {
	p := model.SimulationParams{
		InitialAge:          30,
		RetirementAge:       31,
		MonthlyContribution: 100,
		NumSimulations:      10,
		InflationRate:       model.Float64(0),
	}
	results := New(random.New(5)).Run(p)
	if len(results) != 1 || !approxEqual(results[0].P50, 1200) {
		t.Fatalf("expected 1200 after one year, got %+v", results)
	}
}

func TestRunDefaultsApplied(t *testing.T) {
	p := model.SimulationParams{
		InitialAge:            30,
		RetirementAge:         31,
		InitialPortfolioValue: 1000,
	}
	results := New(random.New(5)).Run(p)
	if want := 1000 / (1 + model.DefaultInflationRate); !approxEqual(results[0].P50, want) {
		t.Fatalf("expected default inflation to give %v, got %v", want, results[0].P50)
	}
}

func TestRunSameSeedReproduces(t *testing.T) {
	a := New(random.New(77)).Run(defaultParams())
	b := New(random.New(77)).Run(defaultParams())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRunMoreSimulationsNarrowsSpread(t *testing.T) {
	spread := func(n int) float64 {
		p := defaultParams()
		p.RetirementAge = 40
		p.NumSimulations = n
		minV, maxV := math.Inf(1), math.Inf(-1)
		for seed := int64(1); seed <= 15; seed++ {
			results := New(random.New(seed)).Run(p)
			if len(results) != 10 {
				t.Fatalf("expected 10 results for n=%d, got %d", n, len(results))
			}
			v := results[len(results)-1].P50
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		return maxV - minV
	}
	small, large := spread(20), spread(2000)
	if large >= small {
		t.Fatalf("expected spread to narrow: n=20 %v, n=2000 %v", small, large)
	}
}

func TestProjectRecordsSeed(t *testing.T) {
	p := defaultParams()
	p.RetirementAge = 35
	first, err := Project(p, 1234)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	second, err := Project(p, 1234)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	if first.Seed != 1234 || first.ID == "" || first.ID == second.ID {
		t.Fatalf("unexpected projection identity: %+v / %+v", first.ID, second.ID)
	}
	if first.Params.InflationRate == nil || *first.Params.InflationRate != model.DefaultInflationRate {
		t.Fatalf("expected defaults resolved on stored params")
	}
	for i := range first.Results {
		if first.Results[i] != second.Results[i] {
			t.Fatalf("row %d differs between identical seeds", i)
		}
	}
	if first.Summary.FinalP50 != first.Results[len(first.Results)-1].P50 {
		t.Fatalf("summary does not match results")
	}
}

func TestWriteBandsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBandsCSV(&buf, []model.SimulationResult{
		{Year: 31, P10: 1, P50: 2.5, P90: 3},
	})
	if err != nil {
		t.Fatalf("WriteBandsCSV returned error: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if got := rows[0]; got[0] != "year" || got[1] != "p10" || got[2] != "p50" || got[3] != "p90" {
		t.Fatalf("unexpected header %v", got)
	}
	if got := rows[1]; got[0] != "31" || got[2] != "2.500000" {
		t.Fatalf("unexpected row %v", got)
	}
}

func TestWriteBandsTable(t *testing.T) {
	results := []model.SimulationResult{
		{Year: 31, P10: 900.4, P50: 1000.5, P90: 1234567.2},
		{Year: 32, P10: 1, P50: 2, P90: 3},
		{Year: 33, P10: 4, P50: 5, P90: 6},
	}

	var buf bytes.Buffer
	if err := WriteBandsTable(&buf, results, 2); err != nil {
		t.Fatalf("WriteBandsTable returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus years 32 and 33, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Median (50th %)") {
		t.Fatalf("missing band label in header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "32") || !strings.HasPrefix(lines[2], "33") {
		t.Fatalf("unexpected rows: %q", lines[1:])
	}

	buf.Reset()
	if err := WriteBandsTable(&buf, results[:1], 1); err != nil {
		t.Fatalf("WriteBandsTable returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "$1,234,567") || !strings.Contains(buf.String(), "$1,001") {
		t.Fatalf("expected whole-dollar formatting, got %q", buf.String())
	}
}

func TestProjectionJSONFile(t *testing.T) {
	p := defaultParams()
	p.NumSimulations = 50
	proj, err := Project(p, 5)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "projection.json")
	if err := SaveProjectionJSON(path, proj); err != nil {
		t.Fatalf("SaveProjectionJSON returned error: %v", err)
	}
	got, err := LoadProjectionJSON(path)
	if err != nil {
		t.Fatalf("LoadProjectionJSON returned error: %v", err)
	}
	if got.ID != proj.ID || got.Seed != 5 || len(got.Results) != len(proj.Results) {
		t.Fatalf("loaded projection differs: id=%s seed=%d rows=%d", got.ID, got.Seed, len(got.Results))
	}

	// The stored seed and params replay the same bands.
	replay, err := Project(got.Params, got.Seed)
	if err != nil {
		t.Fatalf("replay returned error: %v", err)
	}
	last := len(proj.Results) - 1
	if replay.Results[last] != proj.Results[last] {
		t.Fatalf("replay differs: %+v vs %+v", replay.Results[last], proj.Results[last])
	}

	if _, err := LoadProjectionJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
