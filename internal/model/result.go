package model

// SimulationResult is one year of a projection.
// Values are inflation-adjusted (real) portfolio values across all simulated paths.
type SimulationResult struct {
	Year int     `json:"year"` // age at the end of the simulated year
	P10  float64 `json:"p10"`
	P50  float64 `json:"p50"`
	P90  float64 `json:"p90"`
}

// Value returns the value for a band.
func (r SimulationResult) Value(b Band) float64 {
	switch b {
	case BandP10:
		return r.P10
	case BandP90:
		return r.P90
	default:
		return r.P50
	}
}
