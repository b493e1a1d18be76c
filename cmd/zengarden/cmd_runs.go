package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newRunsCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List gardens stored in the run catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.RecentRuns(limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs stored")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSEED\tSIZE\tWARNINGS\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%d\t%dx%d\t%d\t%s\n",
					r.ID, r.Seed, r.Width, r.Height, r.Warnings, humanize.Time(r.CreatedAt))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Number of runs to list")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored garden",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			run, err := db.GetRun(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(run.Grid, "\n"))
			fmt.Fprintf(out, "seed %d, %dx%d, stored %s\n", run.Seed, run.Width, run.Height, humanize.Time(run.CreatedAt))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored garden",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()
			return db.DeleteRun(args[0])
		},
	})
	return cmd
}
