package persistence

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs121287/zen/internal/engine"
	"github.com/cs121287/zen/internal/rules"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func smallGarden(t *testing.T, seed int64) *engine.Result {
	t.Helper()
	cfg := engine.SmallTestConfig()
	cfg.Seed = seed
	res, err := engine.Generate(context.Background(), cfg, engine.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return res
}

func TestSaveAndGetRun(t *testing.T) {
	db := openTemp(t)
	res := smallGarden(t, 9)

	id, err := db.SaveRun(res)
	require.NoError(t, err)
	require.Len(t, id, 36)

	run, err := db.GetRun(id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, int64(9), run.Seed)
	assert.Equal(t, res.Grid.Width, run.Width)
	assert.Equal(t, res.Grid.Height, run.Height)
	assert.Equal(t, res.Grid.Rows(), run.Grid)
	assert.Equal(t, res.Placements[rules.FineGravel], run.Placements[rules.FineGravel.String()])
	assert.Len(t, run.Warnings, len(res.Warnings))
	assert.False(t, run.CreatedAt.IsZero())

	total := 0
	for _, s := range run.Symbols {
		total += s.Cells
	}
	assert.Equal(t, res.Grid.Width*res.Grid.Height, total)
	if assert.NotEmpty(t, run.Symbols) {
		assert.GreaterOrEqual(t, run.Symbols[0].Cells, run.Symbols[len(run.Symbols)-1].Cells)
	}
}

func TestGetRunNotFound(t *testing.T) {
	db := openTemp(t)
	_, err := db.GetRun("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentRuns(t *testing.T) {
	db := openTemp(t)
	var ids []string
	for _, seed := range []int64{1, 2, 3} {
		id, err := db.SaveRun(smallGarden(t, seed))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	recent, err := db.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)
	assert.Equal(t, int64(3), recent[0].Seed)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

func TestDeleteRun(t *testing.T) {
	db := openTemp(t)
	id, err := db.SaveRun(smallGarden(t, 4))
	require.NoError(t, err)

	require.NoError(t, db.DeleteRun(id))
	_, err = db.GetRun(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteRun(id), ErrNotFound)
}

func TestMeta(t *testing.T) {
	db := openTemp(t)
	v, err := db.GetMeta("schema_version")
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)

	require.NoError(t, db.SaveMeta("last_seed", "42"))
	v, err = db.GetMeta("last_seed")
	require.NoError(t, err)
	assert.Equal(t, "42", v)
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := Open(path)
	require.NoError(t, err)
	id, err := db.SaveRun(smallGarden(t, 5))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	run, err := db.GetRun(id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), run.Seed)
}
