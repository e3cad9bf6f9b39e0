package montecarlo

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"retirement-sim/internal/model"
)

// WriteBandsCSV writes one row per year with full-precision band values.
func WriteBandsCSV(w io.Writer, results []model.SimulationResult) error {
	cw := csv.NewWriter(w)

	header := []string{"year"}
	for _, b := range model.Bands() {
		header = append(header, string(b))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{strconv.Itoa(r.Year)}
		for _, b := range model.Bands() {
			row = append(row, fmtFloat(r.Value(b)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBandsCSVFile creates path and writes the bands to it.
func WriteBandsCSVFile(path string, results []model.SimulationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteBandsCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
