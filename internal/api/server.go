// Package api serves gardens over HTTP.
// All endpoints are GET and read-only; generation is rate limited per client.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cs121287/zen/internal/config"
	"github.com/cs121287/zen/internal/engine"
	"github.com/cs121287/zen/internal/entropy"
	"github.com/cs121287/zen/internal/persistence"
	"github.com/cs121287/zen/internal/rules"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 200
)

// Server serves gardens over HTTP.
type Server struct {
	Cfg   *config.Config
	DB    *persistence.DB // nil disables the run catalog
	Seeds *entropy.Client // nil falls back to crypto/rand
	Log   *slog.Logger
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	limiter := NewRateLimiter(s.Cfg.Server.RateLimit, s.Cfg.Server.RateWindow)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.Cfg.Server.CORSOrigins))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]string{"status": "ok"})
		})
		r.Get("/legend", s.handleLegend)
		r.With(limiter.Middleware).Get("/garden", s.handleGarden)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.Cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger().Info("HTTP API starting", "addr", addr, "catalog", s.DB != nil, "random_org", s.Seeds.Enabled())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Localhost dev servers are always allowed.
func corsMiddleware(extra []string) func(http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range extra {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowedOrigins[origin] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowedOrigins[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type warningJSON struct {
	Kind   string `json:"kind"`
	Min    int    `json:"min"`
	Placed int    `json:"placed"`
}

type gardenResponse struct {
	RunID      string         `json:"run_id,omitempty"`
	Seed       int64          `json:"seed"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Rows       []string       `json:"rows"`
	Placements map[string]int `json:"placements"`
	Warnings   []warningJSON  `json:"warnings"`
	Stats      engine.Stats   `json:"stats"`
	ElapsedMS  int64          `json:"elapsed_ms"`
}

// handleGarden generates a garden. Query: width, height, seed (0 or absent
// draws a fresh one), save=1 to store it in the catalog.
func (s *Server) handleGarden(w http.ResponseWriter, r *http.Request) {
	cfg := s.Cfg.Garden
	cfg.Seed = 0

	q := r.URL.Query()
	var err error
	if cfg.Width, err = intParam(q.Get("width"), cfg.Width); err != nil {
		writeError(w, http.StatusBadRequest, "invalid width")
		return
	}
	if cfg.Height, err = intParam(q.Get("height"), cfg.Height); err != nil {
		writeError(w, http.StatusBadRequest, "invalid height")
		return
	}
	if v := q.Get("seed"); v != "" {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "invalid seed")
			return
		}
	}
	if cfg.Width > s.Cfg.Server.MaxWidth || cfg.Height > s.Cfg.Server.MaxHeight {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("garden larger than %dx%d", s.Cfg.Server.MaxWidth, s.Cfg.Server.MaxHeight))
		return
	}
	cfg.Seed = entropy.Resolve(s.Seeds, cfg.Seed)

	res, err := engine.Generate(r.Context(), cfg, engine.Options{Logger: s.logger()})
	switch {
	case errors.Is(err, engine.ErrInvalidDimensions):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, engine.ErrCancelled):
		writeError(w, http.StatusServiceUnavailable, "generation cancelled")
		return
	case err != nil:
		s.logger().Error("generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	resp := gardenResponse{
		Seed:       res.Seed,
		Width:      res.Grid.Width,
		Height:     res.Grid.Height,
		Rows:       res.Grid.Rows(),
		Placements: make(map[string]int, len(res.Placements)),
		Warnings:   make([]warningJSON, 0, len(res.Warnings)),
		Stats:      engine.Analyze(res.Grid),
		ElapsedMS:  res.Elapsed.Milliseconds(),
	}
	for k, n := range res.Placements {
		resp.Placements[k.String()] = n
	}
	for _, wn := range res.Warnings {
		resp.Warnings = append(resp.Warnings, warningJSON{Kind: wn.Kind.String(), Min: wn.Min, Placed: wn.Placed})
	}

	if q.Get("save") == "1" && s.DB != nil {
		id, err := s.DB.SaveRun(res)
		if err != nil {
			s.logger().Error("save run failed", "error", err, "seed", res.Seed)
			writeError(w, http.StatusInternalServerError, "failed to save run")
			return
		}
		resp.RunID = id
	}
	writeJSON(w, resp)
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, rules.Legend())
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusNotFound, "run catalog not configured")
		return
	}
	limit, err := intParam(r.URL.Query().Get("limit"), defaultRunsLimit)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}
	runs, err := s.DB.RecentRuns(limit)
	if err != nil {
		s.logger().Error("list runs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []persistence.Summary{}
	}
	writeJSON(w, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusNotFound, "run catalog not configured")
		return
	}
	run, err := s.DB.GetRun(chi.URLParam(r, "id"))
	if errors.Is(err, persistence.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.logger().Error("get run failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	writeJSON(w, run)
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		slog.Debug("encode response failed", "error", err)
	}
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
