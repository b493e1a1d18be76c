// Command zengarden generates karesansui rock gardens as character grids.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cs121287/zen/internal/config"
	"github.com/cs121287/zen/internal/entropy"
)

// app carries state shared by the subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg   *config.Config
	log   *slog.Logger
	seeds *entropy.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "zengarden",
		Short: "Procedural Japanese rock garden generator",
		Long: `zengarden grows a karesansui garden on a character grid.

Stones are set first, then water, a bridge, gravel, raked patterns and
finally moss and lanterns. The same size and seed always give the same garden.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("ZEN_CONFIG"), "YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newLegendCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newRunsCmd(a))
	return root
}

// setup loads configuration and installs the logger. Logs go to stderr so the
// garden on stdout stays clean.
func (a *app) setup(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.log)
	a.seeds = entropy.NewClient(cfg.Entropy.RandomOrgKey)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
