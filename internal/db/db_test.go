package db

import (
	"os"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "schedcheck-db-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	tmpFile.Close()

	db, err := Open(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("opening database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(tmpFile.Name())
	}

	return db, cleanup
}

func TestLogRun(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.LogRun(RunRecord{
		RunID:      "run_123",
		Actor:      "service",
		Question:   "Am I free Friday at 13:30?",
		Answer:     "Friday at 13:30 works.",
		ClaimDay:   "friday",
		ClaimTime:  "13:30",
		Complexity: "simple",
		IsValid:    true,
		Reason:     "slot friday 13:00-16:00 contains 13:30",
	})
	if err != nil {
		t.Fatalf("logging run: %v", err)
	}

	runs, err := db.GetRuns("service", nil, 0)
	if err != nil {
		t.Fatalf("getting runs: %v", err)
	}

	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.RunID != "run_123" {
		t.Errorf("expected run_id run_123, got %s", got.RunID)
	}
	if !got.IsValid {
		t.Error("expected valid run")
	}
	if got.ClaimDay != "friday" || got.ClaimTime != "13:30" {
		t.Errorf("claim = (%q, %q)", got.ClaimDay, got.ClaimTime)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestGetRunsFiltersByActor(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for i, actor := range []string{"service", "admin", "service"} {
		err := db.LogRun(RunRecord{
			RunID:   "run_" + string(rune('a'+i)),
			Actor:   actor,
			Answer:  "answer",
			IsValid: false,
			Reason:  "no slot contains the requested time",
		})
		if err != nil {
			t.Fatalf("logging run: %v", err)
		}
	}

	runs, err := db.GetRuns("service", nil, 0)
	if err != nil {
		t.Fatalf("getting runs: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 service runs, got %d", len(runs))
	}
}

func TestGetRunsSinceAndLimit(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	old := time.Now().UTC().Add(-72 * time.Hour)
	recent := time.Now().UTC()

	records := []RunRecord{
		{RunID: "run_old", Actor: "service", Answer: "a", Reason: "r", CreatedAt: old},
		{RunID: "run_new1", Actor: "service", Answer: "b", Reason: "r", CreatedAt: recent.Add(-time.Minute)},
		{RunID: "run_new2", Actor: "service", Answer: "c", Reason: "r", CreatedAt: recent},
	}
	for _, rec := range records {
		if err := db.LogRun(rec); err != nil {
			t.Fatalf("logging run %s: %v", rec.RunID, err)
		}
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	runs, err := db.GetRuns("service", &since, 0)
	if err != nil {
		t.Fatalf("getting runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 recent runs, got %d", len(runs))
	}
	if runs[0].RunID != "run_new2" {
		t.Errorf("expected newest first, got %s", runs[0].RunID)
	}

	runs, err = db.GetRuns("service", nil, 1)
	if err != nil {
		t.Fatalf("getting runs with limit: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run with limit, got %d", len(runs))
	}
}

func TestRunStatsSince(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now().UTC()
	records := []RunRecord{
		{RunID: "run_1", Actor: "service", Answer: "a", IsValid: true, Reason: "r", CreatedAt: now},
		{RunID: "run_2", Actor: "service", Answer: "b", IsValid: false, Reason: "r", CreatedAt: now},
		{RunID: "run_3", Actor: "admin", Answer: "c", IsValid: false, Reason: "r", CreatedAt: now.Add(-48 * time.Hour)},
	}
	for _, rec := range records {
		if err := db.LogRun(rec); err != nil {
			t.Fatalf("logging run: %v", err)
		}
	}

	total, invalid, err := db.RunStatsSince(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("counting runs: %v", err)
	}
	if total != 2 || invalid != 1 {
		t.Errorf("stats = (%d, %d), want (2, 1)", total, invalid)
	}
}

func TestPruneRuns(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now().UTC()
	records := []RunRecord{
		{RunID: "run_stale", Actor: "service", Answer: "a", Reason: "r", CreatedAt: now.Add(-100 * 24 * time.Hour)},
		{RunID: "run_fresh", Actor: "service", Answer: "b", Reason: "r", CreatedAt: now},
	}
	for _, rec := range records {
		if err := db.LogRun(rec); err != nil {
			t.Fatalf("logging run: %v", err)
		}
	}

	removed, err := db.PruneRuns(now.Add(-90 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("pruning runs: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 pruned row, got %d", removed)
	}

	runs, _ := db.GetRuns("service", nil, 0)
	if len(runs) != 1 || runs[0].RunID != "run_fresh" {
		t.Errorf("unexpected surviving runs: %+v", runs)
	}
}

func TestDuplicateRunID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	rec := RunRecord{RunID: "run_dup", Actor: "service", Answer: "a", Reason: "r"}
	if err := db.LogRun(rec); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := db.LogRun(rec); err == nil {
		t.Error("expected error on duplicate run_id")
	}
}
