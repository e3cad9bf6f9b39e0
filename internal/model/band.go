package model

// Band identifies one percentile series of a projection.
// Keep these values stable; they are CSV headers and JSON keys.
type Band string

const (
	BandP10 Band = "p10"
	BandP50 Band = "p50"
	BandP90 Band = "p90"
)

// Bands lists the bands in ascending percentile order.
func Bands() []Band {
	return []Band{BandP10, BandP50, BandP90}
}

// Quantile is the band's position in (0,1).
func (b Band) Quantile() float64 {
	switch b {
	case BandP10:
		return 0.10
	case BandP90:
		return 0.90
	default:
		return 0.50
	}
}

// Label is the chart legend text.
func (b Band) Label() string {
	switch b {
	case BandP10:
		return "Pessimistic (10th %)"
	case BandP90:
		return "Optimistic (90th %)"
	default:
		return "Median (50th %)"
	}
}
