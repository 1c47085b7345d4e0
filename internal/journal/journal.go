// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal records installation receipts in a SQLite database
// under the base directory: one row per run, one row per step event.
//
// The journal is strictly observational. Every method is safe on a nil
// *Journal, so callers that failed to open one just lose the receipts,
// never the install. The database lives inside the base directory and is
// removed with it on uninstall.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome values stored on finished runs.
const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// Journal is an open receipts database with at most one active run.
type Journal struct {
	db    *sql.DB
	runID string
	seq   int
}

// Open creates or opens the receipts database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite allows one writer; the installer is single-threaded anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// BeginRun opens a new run receipt and makes it current.
func (j *Journal) BeginRun(mode string) {
	if j == nil || j.db == nil {
		return
	}
	j.runID = uuid.New().String()
	j.seq = 0
	j.db.Exec(
		"INSERT INTO runs (id, mode, started_at) VALUES (?, ?, ?)",
		j.runID, mode, time.Now().Unix(),
	)
}

// RunID returns the current run identifier, "" when no run is open.
func (j *Journal) RunID() string {
	if j == nil {
		return ""
	}
	return j.runID
}

// Event appends one step receipt to the current run.
func (j *Journal) Event(step, detail string, ok bool) {
	if j == nil || j.db == nil || j.runID == "" {
		return
	}
	j.seq++
	okInt := 0
	if ok {
		okInt = 1
	}
	j.db.Exec(
		"INSERT INTO events (run_id, seq, step, detail, ok, at) VALUES (?, ?, ?, ?, ?, ?)",
		j.runID, j.seq, step, detail, okInt, time.Now().Unix(),
	)
}

// FinishRun closes the current run receipt with an outcome.
func (j *Journal) FinishRun(outcome string, runErr error) {
	if j == nil || j.db == nil || j.runID == "" {
		return
	}
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}
	j.db.Exec(
		"UPDATE runs SET finished_at = ?, outcome = ?, error = ? WHERE id = ?",
		time.Now().Unix(), outcome, errText, j.runID,
	)
	j.runID = ""
	j.seq = 0
}

// Prune drops all but the newest keep runs; their events cascade away.
// keep <= 0 removes everything.
func (j *Journal) Prune(keep int) {
	if j == nil || j.db == nil {
		return
	}
	if keep <= 0 {
		j.db.Exec("DELETE FROM runs")
		return
	}
	j.db.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id LIMIT ?
		)`, keep)
}

// RunCount reports how many run receipts are stored.
func (j *Journal) RunCount() (int, error) {
	if j == nil || j.db == nil {
		return 0, nil
	}
	var n int
	err := j.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

// EventCount reports how many step receipts exist for a run.
func (j *Journal) EventCount(runID string) (int, error) {
	if j == nil || j.db == nil {
		return 0, nil
	}
	var n int
	err := j.db.QueryRow("SELECT COUNT(*) FROM events WHERE run_id = ?", runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}
