// Command routeplan computes a closed delivery route over a cost matrix.
//
// The matrix is read as JSON (an n×n array of numbers; null marks an
// unreachable leg) from a file or stdin. The planned route is printed to
// stdout as JSON; logs and live progress go to stderr.
//
// Usage:
//
//	routeplan -input costs.json
//	routeplan -algorithm exact < costs.json
//	routeplan -compare -progress < costs.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/routeplan/cache"
	"github.com/katalvlaran/routeplan/config"
	"github.com/katalvlaran/routeplan/coordinator"
	"github.com/katalvlaran/routeplan/costmodel"
	"github.com/katalvlaran/routeplan/solver"
)

// output is the JSON document printed for a completed solve.
type output struct {
	Route       []int   `json:"route"`
	Cost        float64 `json:"cost"`
	Algorithm   string  `json:"algorithm"`
	Matching    string  `json:"matching,omitempty"`
	Symmetrized bool    `json:"symmetrized,omitempty"`
	CacheHit    bool    `json:"cache_hit,omitempty"`
}

// comparisonOutput is printed for -compare runs.
type comparisonOutput struct {
	Exact  output  `json:"exact"`
	Approx output  `json:"approx"`
	Ratio  float64 `json:"ratio"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "routeplan:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		inputPath  = flag.String("input", "", "path to the JSON cost matrix (default: stdin)")
		configPath = flag.String("config", config.DefaultConfigFile, "path to the YAML config file")
		algorithm  = flag.String("algorithm", "auto", "solver selection: auto, exact or approx")
		threshold  = flag.Int("threshold", 0, "stop count at or below which auto selects the exact solver (0 = built-in default)")
		compare    = flag.Bool("compare", false, "run both solvers and report the cost ratio")
		progress   = flag.Bool("progress", false, "print live progress to stderr")
		timeout    = flag.Duration("timeout", 0, "wall-clock budget for the solve (0 = none)")
	)
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg.Logging)

	algo, err := parseAlgorithm(*algorithm)
	if err != nil {
		return err
	}

	model, err := readModel(*inputPath)
	if err != nil {
		return err
	}
	log.Debug("cost model loaded", "stops", model.Size(), "symmetric", model.IsSymmetric())

	rc, err := cache.New(cache.NewMemStore(),
		cache.WithRetention(cfg.Cache.Retention),
		cache.WithL1Entries(cfg.Cache.L1Entries))
	if err != nil {
		return err
	}
	defer rc.Close()

	c, err := coordinator.New(rc,
		coordinator.WithMaxConcurrent(cfg.Coordinator.MaxConcurrent),
		coordinator.WithLogger(log))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exactThreshold := cfg.Solver.ExactThreshold
	if *threshold > 0 {
		exactThreshold = *threshold
	}

	h, err := c.Solve(ctx, model, coordinator.Request{
		ExactThreshold: exactThreshold,
		Algorithm:      algo,
		CompareBoth:    *compare,
		TimeBudget:     *timeout,
	})
	if err != nil {
		return err
	}

	for p := range h.Progress() {
		if *progress && !p.State.Terminal() {
			fmt.Fprintf(os.Stderr, "%3.0f%%  %s\n", p.Fraction*100, p.Phase)
		}
	}

	if *compare {
		cmp, err := h.Comparison()
		if err != nil {
			return err
		}

		return printJSON(comparisonOutput{
			Exact:  toOutput(cmp.Exact),
			Approx: toOutput(cmp.Approx),
			Ratio:  cmp.Ratio,
		})
	}

	res, err := h.Result()
	if err != nil {
		return err
	}

	return printJSON(toOutput(res))
}

// readModel parses the JSON cost matrix from path, or stdin when path is
// empty. JSON null entries become unreachable legs.
func readModel(path string) (*costmodel.Model, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // G304: user-supplied input path
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var raw [][]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	costs := make([][]float64, len(raw))
	for i, row := range raw {
		costs[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				costs[i][j] = costmodel.Unreachable
			} else {
				costs[i][j] = *v
			}
		}
	}

	return costmodel.New(costs)
}

func parseAlgorithm(s string) (solver.Algorithm, error) {
	switch s {
	case "auto":
		return solver.AutoSelect, nil
	case "exact":
		return solver.ExactHeldKarp, nil
	case "approx":
		return solver.ApproxChristofides, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want auto, exact or approx)", s)
	}
}

func toOutput(res solver.Result) output {
	out := output{
		Route:       res.Route,
		Cost:        res.Cost,
		Algorithm:   res.Algorithm.String(),
		Symmetrized: res.Symmetrized,
		CacheHit:    res.CacheHit,
	}
	if res.Matching != solver.MatchingNone {
		out.Matching = res.Matching.String()
	}

	return out
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
