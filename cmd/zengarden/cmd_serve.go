package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cs121287/zen/internal/api"
	"github.com/cs121287/zen/internal/persistence"
)

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve gardens over HTTP",
		Long: `Starts the HTTP API:
  GET /api/v1/garden?width=&height=&seed=&save=1
  GET /api/v1/legend
  GET /api/v1/runs, /api/v1/runs/{id}   (when a run catalog is configured)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Server.Port = port
			}

			var db *persistence.DB
			if a.cfg.Storage.Path != "" {
				var err error
				if db, err = persistence.Open(a.cfg.Storage.Path); err != nil {
					return err
				}
				defer db.Close()
				a.log.Info("run catalog opened", "path", a.cfg.Storage.Path)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &api.Server{Cfg: a.cfg, DB: db, Seeds: a.seeds, Log: a.log}
			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			a.log.Info("HTTP API stopped")
			return nil
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config)")
	return cmd
}
