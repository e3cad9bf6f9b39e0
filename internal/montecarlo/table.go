package montecarlo

import (
	"fmt"
	"io"

	"retirement-sim/internal/model"
	"retirement-sim/internal/money"
)

// WriteBandsTable prints the bands as an aligned table rounded to whole
// currency units. every > 1 keeps only every n-th year plus the final one.
func WriteBandsTable(w io.Writer, results []model.SimulationResult, every int) error {
	if every < 1 {
		every = 1
	}
	bands := model.Bands()
	if _, err := fmt.Fprintf(w, "%-6s %22s %22s %22s\n", "age", bands[0].Label(), bands[1].Label(), bands[2].Label()); err != nil {
		return err
	}
	for i, r := range results {
		if (i+1)%every != 0 && i != len(results)-1 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-6d %22s %22s %22s\n",
			r.Year,
			money.Format(r.P10),
			money.Format(r.P50),
			money.Format(r.P90),
		); err != nil {
			return err
		}
	}
	return nil
}
