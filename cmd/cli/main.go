package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"retirement-sim/internal/analysis"
	"retirement-sim/internal/config"
	"retirement-sim/internal/model"
	"retirement-sim/internal/money"
	"retirement-sim/internal/montecarlo"
	"retirement-sim/internal/random"

	"golang.org/x/sync/errgroup"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	case "show":
		cmdShow(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml [--seed 42] [--sims 1000] [--out results/bands.csv]")
	fmt.Println("  cli compare --config examples/scenarios/1_default.yaml,examples/scenarios/2_late_starter.yaml")
	fmt.Println("  cli show --projection results/projection.json [--out results/bands.csv]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - values are inflation-adjusted; the table rounds to whole dollars, the CSV does not")
	fmt.Println("  - compare runs every scenario with the same seed and ranks by final median")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config or scenario preset")
	seed := fs.Int64("seed", 0, "Random seed (0 = run.seed from config, else random)")
	sims := fs.Int("sims", 0, "Override number of simulated paths (0 = config/default)")
	outPath := fs.String("out", "", "Optional path to write band CSV")
	jsonPath := fs.String("json", "", "Optional path to save the projection as JSON (replay with `cli show`)")
	every := fs.Int("every", 5, "Print every N-th year in the table")
	noValidate := fs.Bool("no-validate", false, "Skip input validation (degenerate ages yield no rows)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	load := config.Load
	if *noValidate {
		load = config.LoadUnchecked
	}
	cfg, err := load(*cfgPath)
	if err != nil {
		panic(err)
	}

	params := cfg.ToModelParams()
	if *sims > 0 {
		params.NumSimulations = *sims
	}
	if !*noValidate {
		if err := params.Validate(); err != nil {
			panic(err)
		}
	}
	runSeed := cfg.Run.Seed
	if *seed != 0 {
		runSeed = *seed
	}

	proj, err := montecarlo.Project(params, runSeed)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Scenario: %s (seed=%d, paths=%d, inflation=%.2f%%)\n",
		scenarioName(cfg, *cfgPath), proj.Seed, proj.Params.Simulations(), proj.Params.Inflation()*100)
	if len(proj.Results) == 0 {
		fmt.Println("No simulated years: retirement_age must be greater than initial_age")
		return
	}
	if err := montecarlo.WriteBandsTable(os.Stdout, proj.Results, *every); err != nil {
		panic(err)
	}
	s := proj.Summary
	fmt.Printf("Contributed=%s Median at %d=%s (%.2fx) Spread p90-p10=%s\n",
		money.Format(s.TotalContributed), s.RetirementAge, money.Format(s.FinalP50), s.GrowthMultiple, money.Format(s.Spread))

	writeCSV(*outPath, proj)
	if *jsonPath != "" {
		if err := os.MkdirAll(filepath.Dir(*jsonPath), 0o755); err != nil {
			panic(err)
		}
		if err := montecarlo.SaveProjectionJSON(*jsonPath, proj); err != nil {
			panic(err)
		}
		fmt.Printf("Saved projection %s to %s\n", proj.ID, *jsonPath)
	}
}

func cmdShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	projPath := fs.String("projection", "", "Path to a projection saved with `simulate --json`")
	outPath := fs.String("out", "", "Optional path to write band CSV")
	every := fs.Int("every", 5, "Print every N-th year in the table")
	_ = fs.Parse(args)

	if *projPath == "" {
		fmt.Println("--projection is required")
		os.Exit(2)
	}

	proj, err := montecarlo.LoadProjectionJSON(*projPath)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Projection %s (seed=%d, paths=%d, created %s)\n",
		proj.ID, proj.Seed, proj.Params.Simulations(), proj.CreatedAt.Format("2006-01-02 15:04"))
	if err := montecarlo.WriteBandsTable(os.Stdout, proj.Results, *every); err != nil {
		panic(err)
	}
	writeCSV(*outPath, proj)
}

func writeCSV(path string, proj *montecarlo.Projection) {
	if path == "" {
		return
	}
	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	if err := montecarlo.WriteBandsCSVFile(path, proj.Results); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(proj.Results), path)
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPaths := fs.String("config", "", "Comma-separated YAML configs or scenario presets")
	seed := fs.Int64("seed", 0, "Shared random seed (0 = random)")
	sims := fs.Int("sims", 0, "Override number of simulated paths for every scenario")
	_ = fs.Parse(args)

	paths := splitPaths(*cfgPaths)
	if len(paths) == 0 {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	names, params, err := loadScenarios(paths, *sims)
	if err != nil {
		panic(err)
	}

	shared := *seed
	if shared == 0 {
		s, err := random.NewSeed()
		if err != nil {
			panic(err)
		}
		shared = s
	}

	scenarios := make([]analysis.Scenario, len(paths))
	var g errgroup.Group
	for i := range params {
		g.Go(func() error {
			proj, err := montecarlo.Project(params[i], shared)
			if err != nil {
				return err
			}
			scenarios[i] = analysis.Scenario{Name: names[i], Params: proj.Params, Results: proj.Results}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	ranked := analysis.RankByMedian(scenarios)
	fmt.Printf("seed=%d\n", shared)
	fmt.Printf("%-4s %-24s %-6s %-14s %-14s %-14s %-8s\n", "rank", "scenario", "age", "p10", "p50", "p90", "multiple")
	for i, r := range ranked {
		fmt.Printf("%-4d %-24s %-6d %-14s %-14s %-14s %-8.2f\n",
			i+1,
			r.Name,
			r.RetirementAge,
			money.Format(r.FinalP10),
			money.Format(r.FinalP50),
			money.Format(r.FinalP90),
			r.GrowthMultiple,
		)
	}
}

// loadScenarios loads each config and applies the --sims override. Params are
// validated after the override so it cannot bypass the path-count bounds.
func loadScenarios(paths []string, sims int) ([]string, []model.SimulationParams, error) {
	names := make([]string, len(paths))
	params := make([]model.SimulationParams, len(paths))
	for i, p := range paths {
		cfg, err := config.Load(p)
		if err != nil {
			return nil, nil, err
		}
		names[i] = scenarioName(cfg, p)
		params[i] = cfg.ToModelParams()
		if sims > 0 {
			params[i].NumSimulations = sims
		}
		if err := params[i].Validate(); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return names, params, nil
}

func scenarioName(cfg *config.Config, path string) string {
	if cfg.Scenario.Name != "" {
		return cfg.Scenario.Name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
