// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

const (
	// SchemaVersion tracks the receipts schema for future migrations.
	SchemaVersion = 1
)

// SQLite schema for installation receipts.
const Schema = `
-- Runs table: one row per install run
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,           -- UUID
    mode TEXT NOT NULL,            -- Normal or Translation
    started_at INTEGER NOT NULL,   -- Unix timestamp
    finished_at INTEGER,           -- NULL while running / after a crash
    outcome TEXT,                  -- success, failed, cancelled
    error TEXT                     -- failure detail, empty on success
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

-- Events table: ordered step receipts within a run
CREATE TABLE IF NOT EXISTS events (
    run_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    step TEXT NOT NULL,
    detail TEXT,
    ok INTEGER NOT NULL,           -- 0/1
    at INTEGER NOT NULL,           -- Unix timestamp
    PRIMARY KEY (run_id, seq),
    FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
) WITHOUT ROWID;
`
