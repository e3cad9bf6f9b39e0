package montecarlo

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveProjectionJSON writes p as indented JSON so it can be re-rendered later.
func SaveProjectionJSON(path string, p *Projection) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode projection: %w", err)
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

func LoadProjectionJSON(path string) (*Projection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Projection
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &p, nil
}
