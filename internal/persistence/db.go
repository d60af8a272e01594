// Package persistence archives completed simulation runs in SQLite.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/deltarisk/internal/sim"
)

// DB wraps a SQLite connection for run archival.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
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
		created_at TEXT NOT NULL,
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cells (
		run_id TEXT NOT NULL REFERENCES runs(id),
		scenario TEXT NOT NULL,
		region TEXT NOT NULL,
		total_deaths INTEGER NOT NULL,
		total_displaced INTEGER NOT NULL,
		total_losses REAL NOT NULL,
		avg_annual_loss REAL NOT NULL,
		final_resilience REAL NOT NULL,
		PRIMARY KEY (run_id, scenario, region)
	);

	CREATE TABLE IF NOT EXISTS year_states (
		run_id TEXT NOT NULL REFERENCES runs(id),
		scenario TEXT NOT NULL,
		region TEXT NOT NULL,
		year INTEGER NOT NULL,
		events INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		injuries INTEGER NOT NULL,
		displaced INTEGER NOT NULL,
		lives_saved_warning INTEGER NOT NULL,
		lives_saved_response INTEGER NOT NULL,
		direct_losses REAL NOT NULL,
		indirect_losses REAL NOT NULL,
		governance_score REAL NOT NULL,
		resilience_index REAL NOT NULL,
		detail_json TEXT NOT NULL,
		PRIMARY KEY (run_id, scenario, region, year)
	);

	CREATE INDEX IF NOT EXISTS idx_year_states_run ON year_states(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun archives a completed run and returns its generated ID. config is
// stored as JSON alongside the seed so a run can be reproduced later.
func (db *DB) SaveRun(result *sim.Result, config any) (string, error) {
	runID := uuid.NewString()

	cfgJSON, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (id, seed, created_at, config_json) VALUES (?, ?, ?, ?)",
		runID, result.Seed, time.Now().UTC().Format(time.RFC3339), string(cfgJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, cell := range result.Cells {
		if err := saveCell(tx, runID, cell); err != nil {
			return "", fmt.Errorf("save cell %s/%s: %w", cell.Scenario, cell.Region, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("run archived", "run_id", runID, "cells", len(result.Cells))
	return runID, nil
}

func saveCell(tx *sqlx.Tx, runID string, cell sim.CellResult) error {
	_, err := tx.Exec(`INSERT INTO cells
		(run_id, scenario, region, total_deaths, total_displaced,
		 total_losses, avg_annual_loss, final_resilience)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, cell.Scenario, cell.Region, cell.TotalDeaths, cell.TotalDisplaced,
		cell.TotalLosses, cell.AverageAnnualLoss, cell.FinalResilience,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO year_states
		(run_id, scenario, region, year, events, deaths, injuries, displaced,
		 lives_saved_warning, lives_saved_response, direct_losses,
		 indirect_losses, governance_score, resilience_index, detail_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ys := range cell.Years {
		detail, err := json.Marshal(ys.Events)
		if err != nil {
			return fmt.Errorf("marshal year %d detail: %w", ys.Year, err)
		}
		_, err = stmt.Exec(
			runID, ys.Scenario, ys.Region, ys.Year, len(ys.Events),
			ys.Deaths, ys.Injuries, ys.Displaced,
			ys.LivesSavedWarning, ys.LivesSavedResponse,
			ys.DirectLosses, ys.IndirectLosses,
			ys.GovernanceScore, ys.ResilienceIndex, string(detail),
		)
		if err != nil {
			return fmt.Errorf("insert year %d: %w", ys.Year, err)
		}
	}
	return nil
}

// RunSummary is an archived run header.
type RunSummary struct {
	ID        string `db:"id"`
	Seed      uint64 `db:"seed"`
	CreatedAt string `db:"created_at"`
}

// Runs lists archived runs, newest first.
func (db *DB) Runs() ([]RunSummary, error) {
	var runs []RunSummary
	err := db.conn.Select(&runs,
		"SELECT id, seed, created_at FROM runs ORDER BY created_at DESC")
	return runs, err
}

// CellSummary is an archived (scenario, region) aggregate.
type CellSummary struct {
	RunID           string  `db:"run_id"`
	Scenario        string  `db:"scenario"`
	Region          string  `db:"region"`
	TotalDeaths     int     `db:"total_deaths"`
	TotalDisplaced  int     `db:"total_displaced"`
	TotalLosses     float64 `db:"total_losses"`
	AvgAnnualLoss   float64 `db:"avg_annual_loss"`
	FinalResilience float64 `db:"final_resilience"`
}

// Cells returns the archived aggregates for one run, ordered by scenario then
// region.
func (db *DB) Cells(runID string) ([]CellSummary, error) {
	var cells []CellSummary
	err := db.conn.Select(&cells,
		"SELECT * FROM cells WHERE run_id = ? ORDER BY scenario, region", runID)
	return cells, err
}

// YearRow is one archived year, without the event detail payload.
type YearRow struct {
	Year               int     `db:"year"`
	Events             int     `db:"events"`
	Deaths             int     `db:"deaths"`
	Injuries           int     `db:"injuries"`
	Displaced          int     `db:"displaced"`
	LivesSavedWarning  int     `db:"lives_saved_warning"`
	LivesSavedResponse int     `db:"lives_saved_response"`
	DirectLosses       float64 `db:"direct_losses"`
	IndirectLosses     float64 `db:"indirect_losses"`
	GovernanceScore    float64 `db:"governance_score"`
	ResilienceIndex    float64 `db:"resilience_index"`
}

// Years returns the archived annual series for one (scenario, region).
func (db *DB) Years(runID, scenario, region string) ([]YearRow, error) {
	var years []YearRow
	err := db.conn.Select(&years,
		`SELECT year, events, deaths, injuries, displaced,
		        lives_saved_warning, lives_saved_response,
		        direct_losses, indirect_losses, governance_score, resilience_index
		 FROM year_states
		 WHERE run_id = ? AND scenario = ? AND region = ?
		 ORDER BY year`,
		runID, scenario, region)
	return years, err
}
