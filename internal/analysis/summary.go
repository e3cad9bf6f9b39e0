package analysis

import (
	"sort"

	"retirement-sim/internal/model"
)

// Summary is a projection-level digest for reports and comparison.
//
// TotalContributed is nominal (initial value plus every monthly contribution);
// the band values are real. GrowthMultiple compares the final median against
// TotalContributed, so it understates growth by the cumulative inflation factor.
type Summary struct {
	Years         int     `json:"years"`
	RetirementAge int     `json:"retirement_age"`
	Simulations   int     `json:"simulations"`
	InflationRate float64 `json:"inflation_rate"`

	FinalP10 float64 `json:"final_p10"`
	FinalP50 float64 `json:"final_p50"`
	FinalP90 float64 `json:"final_p90"`

	// Spread is FinalP90 - FinalP10.
	Spread float64 `json:"spread"`

	TotalContributed float64 `json:"total_contributed"`
	GrowthMultiple   float64 `json:"growth_multiple"`

	// MedianOfMedians is the interpolated median of the yearly p50 series.
	MedianOfMedians float64 `json:"median_of_medians"`
}

// Summarize digests a projection. Empty results yield a zero Summary apart from the echoed params.
func Summarize(p model.SimulationParams, results []model.SimulationResult) Summary {
	s := Summary{
		Years:         len(results),
		RetirementAge: p.RetirementAge,
		Simulations:   p.Simulations(),
		InflationRate: p.Inflation(),
	}
	if len(results) == 0 {
		return s
	}

	last := results[len(results)-1]
	s.FinalP10 = last.P10
	s.FinalP50 = last.P50
	s.FinalP90 = last.P90
	s.Spread = last.P90 - last.P10

	s.TotalContributed = p.InitialPortfolioValue + p.MonthlyContribution*12*float64(len(results))
	if s.TotalContributed > 0 {
		s.GrowthMultiple = s.FinalP50 / s.TotalContributed
	}

	medians := make([]float64, 0, len(results))
	for _, r := range results {
		medians = append(medians, r.P50)
	}
	sort.Float64s(medians)
	s.MedianOfMedians = Interpolated(medians, 0.5)
	return s
}
