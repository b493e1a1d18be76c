package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cs121287/zen/internal/engine"
	"github.com/cs121287/zen/internal/entropy"
	"github.com/cs121287/zen/internal/persistence"
	"github.com/cs121287/zen/internal/rules"
)

type generateOpts struct {
	width, height int
	seed          int64
	count         int
	save          bool
	noRefine      bool
	stats         bool
	quiet         bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var o generateOpts
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a garden and print it",
		Long: `Generates one garden (or --count gardens with consecutive seeds) and prints
the grid to stdout. A seed of 0 draws a fresh one.

Example:
  zengarden generate --width 80 --height 30 --seed 7 --stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, o)
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.width, "width", 0, "Garden width (default from config)")
	f.IntVar(&o.height, "height", 0, "Garden height (default from config)")
	f.Int64Var(&o.seed, "seed", -1, "Seed; 0 picks one at random (default from config)")
	f.IntVarP(&o.count, "count", "n", 1, "Number of gardens, with consecutive seeds")
	f.BoolVar(&o.save, "save", false, "Store the gardens in the run catalog")
	f.BoolVar(&o.noRefine, "no-refine", false, "Skip the refinement passes")
	f.BoolVar(&o.stats, "stats", false, "Print a per-symbol summary")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "Print only the grid")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, o generateOpts) error {
	cfg := a.cfg.Garden
	if o.width > 0 {
		cfg.Width = o.width
	}
	if o.height > 0 {
		cfg.Height = o.height
	}
	if o.seed >= 0 {
		cfg.Seed = o.seed
	}
	cfg.Seed = entropy.Resolve(a.seeds, cfg.Seed)
	cfg.SkipRefinement = cfg.SkipRefinement || o.noRefine
	if o.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", o.count)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var results []*engine.Result
	if o.count == 1 {
		opts := engine.Options{Logger: a.log}
		if !o.quiet && isTerminal(errOut) {
			opts.Progress = func(p int) {
				fmt.Fprintf(errOut, "\rgenerating... %3d%%", p)
				if p == 100 {
					fmt.Fprint(errOut, "\r\033[K")
				}
			}
		}
		res, err := engine.Generate(ctx, cfg, opts)
		if err != nil {
			return err
		}
		results = append(results, res)
	} else {
		seeds := make([]int64, o.count)
		for i := range seeds {
			seeds[i] = cfg.Seed + int64(i)
		}
		var err error
		results, err = engine.GenerateBatch(ctx, cfg, seeds, a.cfg.Parallelism, engine.Options{Logger: a.log})
		if err != nil {
			return err
		}
	}

	var db *persistence.DB
	if o.save {
		var err error
		if db, err = a.openCatalog(); err != nil {
			return err
		}
		defer db.Close()
	}

	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, res.Grid.String())
		if !o.quiet {
			printSummary(out, res)
		}
		if o.stats {
			printStats(out, engine.Analyze(res.Grid))
		}
		if db != nil {
			id, err := db.SaveRun(res)
			if err != nil {
				return fmt.Errorf("save run: %w", err)
			}
			if !o.quiet {
				fmt.Fprintf(out, "saved as %s\n", id)
			}
		}
	}
	return nil
}

func (a *app) openCatalog() (*persistence.DB, error) {
	if a.cfg.Storage.Path == "" {
		return nil, fmt.Errorf("no run catalog configured (set storage.path or ZEN_DB)")
	}
	return persistence.Open(a.cfg.Storage.Path)
}

func printSummary(w io.Writer, res *engine.Result) {
	cells := res.Grid.Width * res.Grid.Height
	fmt.Fprintf(w, "seed %d, %dx%d (%s cells) in %s\n",
		res.Seed, res.Grid.Width, res.Grid.Height, humanize.Comma(int64(cells)), res.Elapsed.Round(time.Millisecond))
	for _, wn := range res.Warnings {
		fmt.Fprintf(w, "warning: %s placed %d of minimum %d\n", wn.Kind, wn.Placed, wn.Min)
	}
}

func printStats(w io.Writer, st engine.Stats) {
	for _, s := range st.Symbols {
		name := s.Kind
		if name == "" {
			name = "?"
		}
		fmt.Fprintf(w, "  %s  %-18s %8s cells  %5.1f%%  %4d regions (largest %s)\n",
			s.Symbol, name, humanize.Comma(int64(s.Cells)), s.Share*100, s.Regions, humanize.Comma(int64(s.Largest)))
	}
}

func newLegendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Print the symbol legend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			phase := ""
			for _, info := range rules.Legend() {
				if info.Phase != phase {
					phase = info.Phase
					fmt.Fprintln(out, strings.ToUpper(phase))
				}
				fmt.Fprintf(out, "  %s  %-18s %s\n", info.Symbol, info.Kind, info.Meaning)
			}
			return nil
		},
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
