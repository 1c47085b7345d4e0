// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "receipts.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RunLifecycle(t *testing.T) {
	j := openTemp(t)

	j.BeginRun("normal")
	runID := j.RunID()
	if runID == "" {
		t.Fatal("BeginRun did not assign a run ID")
	}

	j.Event("dependencies", "jq already_installed", true)
	j.Event("fetch", "cloned source", true)
	j.Event("service", "unit written", true)
	j.FinishRun(OutcomeSuccess, nil)

	if j.RunID() != "" {
		t.Error("FinishRun should clear the current run")
	}

	n, err := j.RunCount()
	if err != nil {
		t.Fatalf("RunCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("RunCount = %d, want 1", n)
	}

	events, err := j.EventCount(runID)
	if err != nil {
		t.Fatalf("EventCount failed: %v", err)
	}
	if events != 3 {
		t.Errorf("EventCount = %d, want 3", events)
	}
}

func TestJournal_FailedRunKeepsError(t *testing.T) {
	j := openTemp(t)

	j.BeginRun("translation")
	j.Event("dependencies", "python3 failed", false)
	j.FinishRun(OutcomeFailed, errors.New("apt-get install python3 failed"))

	var outcome, errText string
	err := j.db.QueryRow("SELECT outcome, error FROM runs").Scan(&outcome, &errText)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if outcome != OutcomeFailed {
		t.Errorf("outcome = %q, want %q", outcome, OutcomeFailed)
	}
	if errText == "" {
		t.Error("error text not recorded")
	}
}

func TestJournal_Prune(t *testing.T) {
	j := openTemp(t)

	for i := 0; i < 5; i++ {
		j.BeginRun("normal")
		id := j.RunID()
		j.Event("step", "detail", true)
		j.FinishRun(OutcomeSuccess, nil)
		// started_at has second resolution; pin distinct times so the
		// newest-N ordering is deterministic.
		j.db.Exec("UPDATE runs SET started_at = ? WHERE id = ?", int64(1000+i), id)
	}

	j.Prune(2)

	n, err := j.RunCount()
	if err != nil {
		t.Fatalf("RunCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("RunCount after Prune(2) = %d, want 2", n)
	}

	// Events for pruned runs cascade away.
	var orphans int
	err = j.db.QueryRow("SELECT COUNT(*) FROM events WHERE run_id NOT IN (SELECT id FROM runs)").Scan(&orphans)
	if err != nil {
		t.Fatalf("orphan query failed: %v", err)
	}
	if orphans != 0 {
		t.Errorf("found %d orphaned events after prune", orphans)
	}
}

func TestJournal_PruneAll(t *testing.T) {
	j := openTemp(t)
	j.BeginRun("normal")
	j.FinishRun(OutcomeSuccess, nil)

	j.Prune(0)

	n, err := j.RunCount()
	if err != nil {
		t.Fatalf("RunCount failed: %v", err)
	}
	if n != 0 {
		t.Errorf("RunCount after Prune(0) = %d, want 0", n)
	}
}

func TestJournal_NilSafe(t *testing.T) {
	var j *Journal

	// None of these may panic; a missing journal only loses receipts.
	j.BeginRun("normal")
	j.Event("step", "detail", true)
	j.FinishRun(OutcomeSuccess, nil)
	j.Prune(10)
	if j.RunID() != "" {
		t.Error("nil journal should have no run ID")
	}
	if err := j.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
	if n, _ := j.RunCount(); n != 0 {
		t.Errorf("nil RunCount = %d", n)
	}
}

func TestJournal_EventWithoutRun(t *testing.T) {
	j := openTemp(t)

	// Events outside a run are dropped, not errored.
	j.Event("stray", "no run open", true)

	var n int
	if err := j.db.QueryRow("SELECT COUNT(*) FROM events").Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if n != 0 {
		t.Errorf("stray event was stored, count = %d", n)
	}
}

func TestJournal_ReopenSeesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	j.BeginRun("uninstall")
	j.FinishRun(OutcomeSuccess, nil)
	if err := j.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer again.Close()

	n, err := again.RunCount()
	if err != nil {
		t.Fatalf("RunCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("RunCount after reopen = %d, want 1", n)
	}
}
