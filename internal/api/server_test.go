package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs121287/zen/internal/config"
	"github.com/cs121287/zen/internal/engine"
	"github.com/cs121287/zen/internal/persistence"
	"github.com/cs121287/zen/internal/rules"
)

func testServer(t *testing.T, withDB bool) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Garden = engine.SmallTestConfig()
	cfg.Server.MaxWidth = 60
	cfg.Server.MaxHeight = 30
	cfg.Server.CORSOrigins = []string{"https://zen.example.com"}

	s := &Server{Cfg: cfg, Log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	if withDB {
		db, err := persistence.Open(filepath.Join(t.TempDir(), "catalog.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		s.DB = db
	}
	return s
}

func get(t *testing.T, h http.Handler, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestHealthAndLegend(t *testing.T) {
	h := testServer(t, false).Routes()

	rec := get(t, h, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var legend []rules.SymbolInfo
	rec = get(t, h, "/api/v1/legend", &legend)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, legend, rules.NumKinds)
}

func TestGardenEndpoint(t *testing.T) {
	h := testServer(t, false).Routes()

	var g gardenResponse
	rec := get(t, h, "/api/v1/garden?width=40&height=20&seed=7", &g)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(7), g.Seed)
	assert.Equal(t, 40, g.Width)
	require.Len(t, g.Rows, 20)
	for _, row := range g.Rows {
		assert.Len(t, row, 40)
	}
	assert.Empty(t, g.RunID)
	assert.Contains(t, g.Placements, rules.FineGravel.String())

	var again gardenResponse
	get(t, h, "/api/v1/garden?width=40&height=20&seed=7", &again)
	assert.Equal(t, g.Rows, again.Rows, "same seed, same garden")

	var random gardenResponse
	rec = get(t, h, "/api/v1/garden", &random)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, random.Seed)
	assert.Equal(t, engine.SmallTestConfig().Width, random.Width)
}

func TestGardenEndpointRejectsBadInput(t *testing.T) {
	h := testServer(t, false).Routes()
	for _, target := range []string{
		"/api/v1/garden?width=abc",
		"/api/v1/garden?height=1.5",
		"/api/v1/garden?seed=x",
		"/api/v1/garden?width=10&height=20",
		"/api/v1/garden?width=500&height=20",
	} {
		rec := get(t, h, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), target)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), target)
		assert.NotEmpty(t, body["error"], target)
	}
}

func TestGardenEndpointIsRateLimited(t *testing.T) {
	s := testServer(t, false)
	s.Cfg.Server.RateLimit = 2
	s.Cfg.Server.RateWindow = time.Hour
	h := s.Routes()

	for i := 0; i < 2; i++ {
		rec := get(t, h, "/api/v1/garden?seed=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := get(t, h, "/api/v1/garden?seed=1", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = get(t, h, "/api/v1/legend", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "only generation is limited")
}

func TestRunsEndpoints(t *testing.T) {
	h := testServer(t, true).Routes()

	var g gardenResponse
	rec := get(t, h, "/api/v1/garden?seed=21&save=1", &g)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, g.RunID)

	var runs []persistence.Summary
	rec = get(t, h, "/api/v1/runs", &runs)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, runs, 1)
	assert.Equal(t, g.RunID, runs[0].ID)
	assert.Equal(t, int64(21), runs[0].Seed)

	var run persistence.Run
	rec = get(t, h, "/api/v1/runs/"+g.RunID, &run)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, g.Rows, run.Grid)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/runs/nope", nil).Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/runs?limit=-1", nil).Code)
}

func TestRunsWithoutCatalog(t *testing.T) {
	h := testServer(t, false).Routes()
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/runs", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/runs/abc", nil).Code)
}

func TestCORS(t *testing.T) {
	h := testServer(t, false).Routes()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/legend", nil)
	req.Header.Set("Origin", "https://zen.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://zen.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/legend", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
