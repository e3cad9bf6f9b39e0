package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"retirement-sim/internal/api/models"
	"retirement-sim/internal/config"

	"github.com/gin-gonic/gin"
)

// ErrUnknownPreset is returned when a preset ID has no matching file.
var ErrUnknownPreset = errors.New("unknown preset")

// PresetHandler serves scenario presets from a directory of YAML files
type PresetHandler struct {
	scenarioDir string
}

// NewPresetHandler creates a new preset handler reading from dir
func NewPresetHandler(dir string) *PresetHandler {
	// Convert to absolute path for reliability
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	log.Printf("PresetHandler: Using scenario directory: %s", dir)
	return &PresetHandler{scenarioDir: dir}
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.PresetInfo{}

	entries, err := os.ReadDir(h.scenarioDir)
	if err != nil {
		log.Printf("PresetHandler: Failed to read scenario directory %s: %v", h.scenarioDir, err)
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".yaml")
		sc, err := h.Load(id)
		if err != nil {
			log.Printf("PresetHandler: Failed to load preset %s: %v", id, err)
			continue // Skip invalid files
		}
		presets = append(presets, presetInfo(id, sc))
	}

	log.Printf("PresetHandler: Returning %d presets", len(presets))
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

// Load reads the preset with the given ID (the file name without ".yaml",
// e.g. "1_default").
func (h *PresetHandler) Load(id string) (config.ScenarioConfig, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return config.ScenarioConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	path := filepath.Join(h.scenarioDir, id+".yaml")
	sc, err := config.LoadScenarioFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.ScenarioConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return sc, err
}

func presetInfo(id string, sc config.ScenarioConfig) models.PresetInfo {
	name := sc.Name
	if name == "" {
		name = id
	}
	return models.PresetInfo{
		ID:          id,
		Name:        name,
		Description: sc.Description,
		Params: models.ScenarioParams{
			InitialAge:            sc.InitialAge,
			RetirementAge:         sc.RetirementAge,
			InitialPortfolioValue: sc.InitialPortfolioValue,
			MonthlyContribution:   sc.MonthlyContribution,
			MeanReturn:            sc.MeanReturn,
			MeanReturnPct:         sc.MeanReturnPct,
			StdDev:                sc.StdDev,
			StdDevPct:             sc.StdDevPct,
			InflationRate:         sc.InflationRate,
		},
	}
}
