package analysis

import (
	"sort"

	"retirement-sim/internal/model"
)

// Scenario is one named projection to rank.
type Scenario struct {
	Name    string
	Params  model.SimulationParams
	Results []model.SimulationResult
}

type RankedScenario struct {
	Name string
	Summary
}

// RankByMedian summarizes each scenario and sorts descending by final-year p50.
// Ties keep input order.
func RankByMedian(scenarios []Scenario) []RankedScenario {
	out := make([]RankedScenario, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, RankedScenario{Name: sc.Name, Summary: Summarize(sc.Params, sc.Results)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalP50 > out[j].FinalP50
	})
	return out
}
