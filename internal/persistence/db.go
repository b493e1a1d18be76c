// Package persistence provides SQLite-based storage for generated gardens.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cs121287/zen/internal/engine"
)

// ErrNotFound is returned when a run ID is unknown.
var ErrNotFound = errors.New("persistence: run not found")

const schemaVersion = "1"

// DB wraps a SQLite connection for the run catalog.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		grid TEXT NOT NULL,
		placements_json TEXT NOT NULL,
		warnings_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_symbols (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		symbol TEXT NOT NULL,
		cells INTEGER NOT NULL,
		regions INTEGER NOT NULL,
		largest INTEGER NOT NULL,
		PRIMARY KEY (run_id, symbol)
	);

	CREATE TABLE IF NOT EXISTS catalog_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return err
	}
	return db.SaveMeta("schema_version", schemaVersion)
}

// Run is a stored garden.
type Run struct {
	ID         string                       `json:"id"`
	Seed       int64                        `json:"seed"`
	Width      int                          `json:"width"`
	Height     int                          `json:"height"`
	CreatedAt  time.Time                    `json:"created_at"`
	Elapsed    time.Duration                `json:"elapsed"`
	Grid       []string                     `json:"grid"`
	Placements map[string]int               `json:"placements"`
	Warnings   []engine.SoftConstraintUnmet `json:"warnings"`
	Symbols    []SymbolCount                `json:"symbols"`
}

// Summary is the catalog listing view of a run.
type Summary struct {
	ID        string    `db:"id" json:"id"`
	Seed      int64     `db:"seed" json:"seed"`
	Width     int       `db:"width" json:"width"`
	Height    int       `db:"height" json:"height"`
	Warnings  int       `db:"warnings" json:"warnings"`
	CreatedMS int64     `db:"created_at" json:"-"`
	CreatedAt time.Time `db:"-" json:"created_at"`
}

// SymbolCount is one row of a run's per-symbol tally.
type SymbolCount struct {
	Symbol  string `db:"symbol" json:"symbol"`
	Cells   int    `db:"cells" json:"cells"`
	Regions int    `db:"regions" json:"regions"`
	Largest int    `db:"largest" json:"largest"`
}

type runRow struct {
	ID             string `db:"id"`
	Seed           int64  `db:"seed"`
	Width          int    `db:"width"`
	Height         int    `db:"height"`
	CreatedAt      int64  `db:"created_at"`
	ElapsedMS      int64  `db:"elapsed_ms"`
	Warnings       int    `db:"warnings"`
	Grid           string `db:"grid"`
	PlacementsJSON string `db:"placements_json"`
	WarningsJSON   string `db:"warnings_json"`
}

// SaveRun stores a finished garden with its symbol tally and returns the new run ID.
func (db *DB) SaveRun(res *engine.Result) (string, error) {
	placements := make(map[string]int, len(res.Placements))
	for k, n := range res.Placements {
		placements[k.String()] = n
	}
	placementsJSON, err := json.Marshal(placements)
	if err != nil {
		return "", fmt.Errorf("encode placements: %w", err)
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []engine.SoftConstraintUnmet{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return "", fmt.Errorf("encode warnings: %w", err)
	}

	id := uuid.NewString()
	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, seed, width, height, created_at, elapsed_ms, warnings, grid, placements_json, warnings_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.Seed, res.Grid.Width, res.Grid.Height, time.Now().UnixMilli(),
		res.Elapsed.Milliseconds(), len(res.Warnings), res.Grid.String(),
		string(placementsJSON), string(warningsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run %s: %w", id, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO run_symbols
		(run_id, symbol, cells, regions, largest) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, s := range engine.Analyze(res.Grid).Symbols {
		if _, err := stmt.Exec(id, s.Symbol, s.Cells, s.Regions, s.Largest); err != nil {
			return "", fmt.Errorf("insert symbol %q: %w", s.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Debug("run saved", "id", id, "seed", res.Seed)
	return id, nil
}

// GetRun loads a stored garden by ID.
func (db *DB) GetRun(id string) (*Run, error) {
	var row runRow
	err := db.conn.Get(&row, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:        row.ID,
		Seed:      row.Seed,
		Width:     row.Width,
		Height:    row.Height,
		CreatedAt: time.UnixMilli(row.CreatedAt).UTC(),
		Elapsed:   time.Duration(row.ElapsedMS) * time.Millisecond,
		Grid:      strings.Split(row.Grid, "\n"),
	}
	if err := json.Unmarshal([]byte(row.PlacementsJSON), &run.Placements); err != nil {
		return nil, fmt.Errorf("decode placements: %w", err)
	}
	if err := json.Unmarshal([]byte(row.WarningsJSON), &run.Warnings); err != nil {
		return nil, fmt.Errorf("decode warnings: %w", err)
	}
	err = db.conn.Select(&run.Symbols,
		"SELECT symbol, cells, regions, largest FROM run_symbols WHERE run_id = ? ORDER BY cells DESC, symbol",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}
	return run, nil
}

// RecentRuns returns the most recent N runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Summary, error) {
	var runs []Summary
	err := db.conn.Select(&runs,
		"SELECT id, seed, width, height, warnings, created_at FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	for i := range runs {
		runs[i].CreatedAt = time.UnixMilli(runs[i].CreatedMS).UTC()
	}
	return runs, err
}

// DeleteRun removes a run and its symbol tally.
func (db *DB) DeleteRun(id string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_symbols WHERE run_id = ?", id); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx.Commit()
}

// SaveMeta stores a key-value pair in catalog metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO catalog_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM catalog_meta WHERE key = ?", key)
	return value, err
}
