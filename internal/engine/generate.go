// Package engine runs a garden generation: six ordered placement phases followed
// by a refinement sweep over the finished grid.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cs121287/zen/internal/elements"
	"github.com/cs121287/zen/internal/garden"
	"github.com/cs121287/zen/internal/rules"
	"github.com/cs121287/zen/internal/zone"
)

// Smallest garden that still fits the zone layout.
const (
	MinWidth  = 20
	MinHeight = 12
)

var (
	// ErrInvalidDimensions is returned for a width or height below the minimum.
	ErrInvalidDimensions = errors.New("engine: invalid garden dimensions")
	// ErrCancelled is returned when the caller's context ends mid-run. It wraps the context error.
	ErrCancelled = errors.New("engine: generation cancelled")
)

// SoftConstraintUnmet records a kind that stayed below its minimum after the forced
// pass. The garden is still valid; this is a warning, not a failure.
type SoftConstraintUnmet struct {
	Kind   rules.ElementKind `json:"kind"`
	Min    int               `json:"min"`
	Placed int               `json:"placed"`
}

func (e SoftConstraintUnmet) Error() string {
	return fmt.Sprintf("engine: %s placed %d of minimum %d", e.Kind, e.Placed, e.Min)
}

// Config holds generation parameters.
type Config struct {
	Width          int   `yaml:"width"`
	Height         int   `yaml:"height"`
	Seed           int64 `yaml:"seed"`
	FlowAttempts   int   `yaml:"flowAttempts"`   // Sampling budget per raked kind (0 = default)
	SkipRefinement bool  `yaml:"skipRefinement"` // Return the grid as the phases left it
}

// DefaultFlowAttempts is the raked-pattern sampling budget per kind.
const DefaultFlowAttempts = 3000

// DefaultConfig returns a garden sized for an ordinary terminal.
func DefaultConfig() Config {
	return Config{
		Width:        120,
		Height:       60,
		Seed:         42,
		FlowAttempts: DefaultFlowAttempts,
	}
}

// SmallTestConfig returns a tiny garden for rapid iteration.
func SmallTestConfig() Config {
	return Config{
		Width:        40,
		Height:       20,
		Seed:         7,
		FlowAttempts: 500,
	}
}

// Validate checks the dimensions.
func (c Config) Validate() error {
	if c.Width < MinWidth || c.Height < MinHeight {
		return fmt.Errorf("%w: %dx%d (minimum %dx%d)", ErrInvalidDimensions, c.Width, c.Height, MinWidth, MinHeight)
	}
	return nil
}

// Options are the optional hooks of a run. All fields may be nil.
type Options struct {
	Progress     func(percent int)        // Non-decreasing, ends at 100 on success
	PhaseStarted func(phase rules.Phase) // Called before the phase's cancellation check
	Logger       *slog.Logger
}

// Result is a finished garden.
type Result struct {
	Grid       *garden.Grid
	Zones      []zone.Zone
	Seed       int64
	Placements map[rules.ElementKind]int           // Accepted placements; gravel counts filled cells
	Sites      map[rules.ElementKind][]garden.Point // Recorded placement cells
	WaterPaths []*garden.WaterPath
	Warnings   []SoftConstraintUnmet
	Elapsed    time.Duration
}

// Generate builds a garden. It is deterministic for a given Config: the same
// width, height, seed, and budgets always yield the same grid.
func Generate(ctx context.Context, cfg Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.FlowAttempts <= 0 {
		cfg.FlowAttempts = DefaultFlowAttempts
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	mon := newMonitor(ctx, opts.Progress)
	if err := mon.check(); err != nil {
		return nil, err
	}

	start := time.Now()
	r := newRun(cfg, mon, log)
	mon.report(0)

	for _, phase := range rules.Phases() {
		if opts.PhaseStarted != nil {
			opts.PhaseStarted(phase)
		}
		if err := mon.check(); err != nil {
			log.Debug("generation cancelled", "phase", phase.String(), "seed", cfg.Seed)
			return nil, err
		}
		if err := r.runPhase(phase); err != nil {
			log.Debug("generation cancelled", "phase", phase.String(), "seed", cfg.Seed)
			return nil, err
		}
		mon.report(phaseSpans[phase].end)
	}

	if !cfg.SkipRefinement {
		if err := r.refine(); err != nil {
			return nil, err
		}
	}
	mon.report(100)

	res := r.result()
	res.Elapsed = time.Since(start)
	log.Info("garden generated",
		"width", cfg.Width,
		"height", cfg.Height,
		"seed", cfg.Seed,
		"warnings", len(res.Warnings),
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// run is the state of one generation. Nothing in it outlives Generate.
type run struct {
	cfg     Config
	grid    *garden.Grid
	ctx     *garden.Context
	rng     *rand.Rand
	texture *elements.Texture
	zones   []zone.Zone
	zoneAt  [][]int // dominant zone index per cell
	mon     *monitor
	log     *slog.Logger

	placements map[rules.ElementKind]int
	warnings   []SoftConstraintUnmet
}

func newRun(cfg Config, mon *monitor, log *slog.Logger) *run {
	zones := zone.Layout(cfg.Width, cfg.Height)
	r := &run{
		cfg:        cfg,
		grid:       garden.NewGrid(cfg.Width, cfg.Height),
		ctx:        garden.NewContext(),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		texture:    elements.NewTexture(cfg.Seed),
		zones:      zones,
		zoneAt:     dominantIndex(zones, cfg.Width, cfg.Height),
		mon:        mon,
		log:        log,
		placements: make(map[rules.ElementKind]int),
	}
	return r
}

// dominantIndex resolves every cell's dominant zone once up front.
func dominantIndex(zones []zone.Zone, width, height int) [][]int {
	idx := make(map[zone.Zone]int, len(zones))
	for i, z := range zones {
		if _, seen := idx[z]; !seen {
			idx[z] = i
		}
	}
	out := make([][]int, height)
	for r := range out {
		out[r] = make([]int, width)
		for c := range out[r] {
			out[r][c] = idx[zone.Dominant(zones, r, c)]
		}
	}
	return out
}

func (r *run) site(row, col int) elements.Site {
	return elements.Site{
		Row:     row,
		Col:     col,
		Zone:    r.zones[r.zoneAt[row][col]],
		Zones:   r.zones,
		Grid:    r.grid,
		Ctx:     r.ctx,
		Rand:    r.rng,
		Texture: r.texture,
	}
}

func (r *run) randomSite() elements.Site {
	row := r.rng.Intn(r.cfg.Height)
	col := r.rng.Intn(r.cfg.Width)
	return r.site(row, col)
}

func (r *run) result() *Result {
	sites := make(map[rules.ElementKind][]garden.Point)
	for _, k := range rules.Kinds() {
		if pts := r.ctx.Placed(k); len(pts) > 0 {
			sites[k] = append([]garden.Point(nil), pts...)
		}
	}
	return &Result{
		Grid:       r.grid,
		Zones:      r.zones,
		Seed:       r.cfg.Seed,
		Placements: r.placements,
		Sites:      sites,
		WaterPaths: r.ctx.WaterPaths(),
		Warnings:   r.warnings,
	}
}
