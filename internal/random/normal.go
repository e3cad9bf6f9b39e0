package random

import "math"

// Normal draws from N(mean, stdDev) with the Box–Muller transform.
// Both uniforms are redrawn while exactly zero so log(u) stays finite.
func Normal(src Source, mean, stdDev float64) float64 {
	u := 0.0
	for u == 0 {
		u = src.Float64()
	}
	v := 0.0
	for v == 0 {
		v = src.Float64()
	}
	z := math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
	return z*stdDev + mean
}
