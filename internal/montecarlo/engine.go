package montecarlo

import (
	"math"
	"sort"

	"retirement-sim/internal/analysis"
	"retirement-sim/internal/model"
	"retirement-sim/internal/random"
)

const monthsPerYear = 12

// Engine runs retirement projections against a random source.
// An Engine is not safe for concurrent use because its source is not.
type Engine struct {
	src random.Source
}

func New(src random.Source) *Engine { return &Engine{src: src} }

// Run simulates params.Simulations() independent monthly paths and returns the
// p10/p50/p90 inflation-adjusted value for each year, in ascending year order.
//
// The annual mean and stddev are converted to monthly figures as mean/12 and
// stddev/sqrt(12). Each month the value grows by a normal draw and then receives
// the contribution; only the year-end value, deflated by (1+inflation)^years,
// is kept. Returns an empty result when RetirementAge <= InitialAge or the
// path count is negative.
func (e *Engine) Run(p model.SimulationParams) []model.SimulationResult {
	years := p.Years()
	n := p.Simulations()
	if years <= 0 || n <= 0 {
		return []model.SimulationResult{}
	}
	inflation := p.Inflation()

	monthlyReturn := p.MeanReturn / monthsPerYear
	monthlyStdDev := p.StdDev / math.Sqrt(monthsPerYear)

	deflators := make([]float64, years)
	for y := range deflators {
		deflators[y] = math.Pow(1+inflation, float64(y+1))
	}

	// byYear[y][i] is path i's real value at the end of year y.
	byYear := make([][]float64, years)
	for y := range byYear {
		byYear[y] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		value := p.InitialPortfolioValue
		for y := 0; y < years; y++ {
			for m := 0; m < monthsPerYear; m++ {
				growth := random.Normal(e.src, monthlyReturn, monthlyStdDev)
				value *= 1 + growth
				value += p.MonthlyContribution
			}
			byYear[y][i] = value / deflators[y]
		}
	}

	results := make([]model.SimulationResult, 0, years)
	for y, values := range byYear {
		sort.Float64s(values)
		results = append(results, model.SimulationResult{
			Year: p.InitialAge + y + 1,
			P10:  analysis.NearestRank(values, model.BandP10.Quantile()),
			P50:  analysis.NearestRank(values, model.BandP50.Quantile()),
			P90:  analysis.NearestRank(values, model.BandP90.Quantile()),
		})
	}
	return results
}
