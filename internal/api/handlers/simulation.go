package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"retirement-sim/internal/analysis"
	"retirement-sim/internal/api/models"
	"retirement-sim/internal/cache"
	"retirement-sim/internal/config"
	"retirement-sim/internal/model"
	"retirement-sim/internal/money"
	"retirement-sim/internal/montecarlo"
	"retirement-sim/internal/platform/otel"
	"retirement-sim/internal/random"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

// maxVariations bounds a single compare request.
const maxVariations = 10

// SimulationHandler handles projection requests
type SimulationHandler struct {
	store          cache.Store
	presets        *PresetHandler
	maxSimulations int
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(store cache.Store, presets *PresetHandler, maxSimulations int) *SimulationHandler {
	return &SimulationHandler{
		store:          store,
		presets:        presets,
		maxSimulations: maxSimulations,
	}
}

// RunSimulation handles POST /api/v1/simulations
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	params, ok := h.resolveParams(c, req.ScenarioParams, models.ScenarioParams{}, "")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var key string
	if req.Seed != 0 {
		key = cache.Key(params, req.Seed)
		if proj, hit := h.lookup(ctx, key); hit {
			c.JSON(http.StatusOK, buildResponse(proj, req.IncludeSummary, true))
			return
		}
	}

	proj, err := h.project(ctx, params, req.Seed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	h.save(ctx, proj, key)
	c.JSON(http.StatusOK, buildResponse(proj, req.IncludeSummary, false))
}

// GetSimulation handles GET /api/v1/simulations/:id
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	id := c.Param("id")
	proj, ok, err := h.store.Get(c.Request.Context(), cache.IDKey(id))
	if err != nil {
		log.Printf("SimulationHandler: Cache lookup for %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CACHE_ERROR",
				Message: "Failed to read stored projection",
			},
		})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("Projection %s not found or expired", id),
			},
		})
		return
	}

	// Cached only marks POST replays served from the params cache.
	c.JSON(http.StatusOK, buildResponse(proj, true, false))
}

// CompareSimulations handles POST /api/v1/simulations/compare
func (h *SimulationHandler) CompareSimulations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	if len(req.Variations) > maxVariations {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: fmt.Sprintf("At most %d variations per comparison", maxVariations),
			},
		})
		return
	}

	params := make([]model.SimulationParams, len(req.Variations))
	seen := make(map[string]bool, len(req.Variations))
	for i, v := range req.Variations {
		if seen[v.Name] {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: fmt.Sprintf("Duplicate variation name %q", v.Name),
				},
			})
			return
		}
		seen[v.Name] = true

		p, ok := h.resolveParams(c, req.Base, v.Params, v.Name)
		if !ok {
			return
		}
		params[i] = p
	}

	// Variations share one seed so that differences come from params, not draws.
	seed := req.Seed
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "SIMULATION_ERROR",
					Message: err.Error(),
				},
			})
			return
		}
		seed = s
	}

	ctx := c.Request.Context()
	projections := make([]*montecarlo.Projection, len(params))
	g, gctx := errgroup.WithContext(ctx)
	for i := range params {
		g.Go(func() error {
			proj, err := h.project(gctx, params[i], seed)
			if err != nil {
				return fmt.Errorf("variation %q: %w", req.Variations[i].Name, err)
			}
			projections[i] = proj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	scenarios := make([]analysis.Scenario, len(projections))
	ids := make(map[string]string, len(projections))
	for i, proj := range projections {
		h.save(ctx, proj, cache.Key(proj.Params, seed))
		scenarios[i] = analysis.Scenario{
			Name:    req.Variations[i].Name,
			Params:  proj.Params,
			Results: proj.Results,
		}
		ids[req.Variations[i].Name] = proj.ID
	}

	ranked := analysis.RankByMedian(scenarios)
	comparison := make([]models.ComparisonResult, 0, len(ranked))
	for i, r := range ranked {
		comparison = append(comparison, models.ComparisonResult{
			Rank:    i + 1,
			Name:    r.Name,
			ID:      ids[r.Name],
			Summary: r.Summary,
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		Seed:       seed,
		Comparison: comparison,
	})
}

// Helper methods

// resolveParams builds validated engine params from base overlaid with override,
// loading base.Preset first when set. On failure it writes the error response
// and returns false. A non-empty variation is echoed in error details.
func (h *SimulationHandler) resolveParams(c *gin.Context, base, override models.ScenarioParams, variation string) (model.SimulationParams, bool) {
	details := map[string]interface{}{}
	if variation != "" {
		details["variation"] = variation
	}

	scenario := config.ScenarioConfig{}
	for _, preset := range []string{base.Preset, override.Preset} {
		if preset == "" {
			continue
		}
		loaded, err := h.presets.Load(preset)
		if err != nil {
			code := "PRESET_ERROR"
			status := http.StatusInternalServerError
			if errors.Is(err, ErrUnknownPreset) {
				code = "INVALID_PRESET"
				status = http.StatusBadRequest
			}
			log.Printf("SimulationHandler: Failed to load preset %q: %v", preset, err)
			c.JSON(status, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    code,
					Message: err.Error(),
					Details: nonEmpty(details),
				},
			})
			return model.SimulationParams{}, false
		}
		scenario = config.MergeScenario(scenario, loaded)
	}
	scenario = config.MergeScenario(scenario, base.Scenario())
	scenario = config.MergeScenario(scenario, override.Scenario())

	p := scenario.ToModelParams()
	p.NumSimulations = base.NumSimulations
	if override.NumSimulations != 0 {
		p.NumSimulations = override.NumSimulations
	}

	if err := p.Validate(); err != nil {
		var fe *model.FieldError
		if errors.As(err, &fe) {
			details["field"] = fe.Field
			details["reason"] = fe.Reason
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PARAMS",
				Message: err.Error(),
				Details: nonEmpty(details),
			},
		})
		return model.SimulationParams{}, false
	}

	if p.Simulations() > h.maxSimulations {
		details["max_simulations"] = h.maxSimulations
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_LIMIT",
				Message: fmt.Sprintf("num_simulations exceeds the server limit of %d", h.maxSimulations),
				Details: details,
			},
		})
		return model.SimulationParams{}, false
	}

	return p, true
}

func (h *SimulationHandler) project(ctx context.Context, p model.SimulationParams, seed int64) (*montecarlo.Projection, error) {
	_, span := otel.Tracer().Start(ctx, "montecarlo.Project")
	defer span.End()

	span.SetAttributes(
		attribute.Int("simulation.years", p.Years()),
		attribute.Int("simulation.paths", p.Simulations()),
	)

	proj, err := montecarlo.Project(p, seed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("projection.id", proj.ID),
		attribute.Int64("projection.seed", proj.Seed),
	)
	return proj, nil
}

func (h *SimulationHandler) lookup(ctx context.Context, key string) (*montecarlo.Projection, bool) {
	proj, ok, err := h.store.Get(ctx, key)
	if err != nil {
		log.Printf("SimulationHandler: Cache lookup failed: %v", err)
		return nil, false
	}
	return proj, ok
}

// save stores proj by ID and, for seeded runs, by params key. Failures are logged only.
func (h *SimulationHandler) save(ctx context.Context, proj *montecarlo.Projection, paramsKey string) {
	if err := h.store.Set(ctx, cache.IDKey(proj.ID), proj); err != nil {
		log.Printf("SimulationHandler: Failed to store projection %s: %v", proj.ID, err)
	}
	if paramsKey == "" {
		return
	}
	if err := h.store.Set(ctx, paramsKey, proj); err != nil {
		log.Printf("SimulationHandler: Failed to store projection %s by params: %v", proj.ID, err)
	}
}

func buildResponse(proj *montecarlo.Projection, includeSummary, cached bool) models.SimulationResponse {
	response := models.SimulationResponse{
		ID:      proj.ID,
		Seed:    proj.Seed,
		Status:  "completed",
		Cached:  cached,
		Params:  proj.Params,
		Results: proj.Results,
	}
	if response.Results == nil {
		response.Results = []model.SimulationResult{}
	}

	if includeSummary {
		summary := proj.Summary
		response.Summary = &summary
		response.Display = buildDisplay(proj.Results)
	}

	return response
}

func buildDisplay(results []model.SimulationResult) *models.Display {
	if len(results) == 0 {
		return nil
	}
	last := results[len(results)-1]
	display := &models.Display{}
	for _, b := range model.Bands() {
		display.Bands = append(display.Bands, models.BandDisplay{
			Band:       b,
			Label:      b.Label(),
			FinalValue: money.Format(last.Value(b)),
		})
	}
	return display
}

func nonEmpty(m map[string]interface{}) map[string]interface{} {
	if len(m) == 0 {
		return nil
	}
	return m
}
