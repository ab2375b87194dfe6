package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(t.TempDir())
	if err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitDB_CreatesFileAndAppliesMigrations(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	db, err := InitDB(dir)
	if err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, DBFileName)); err != nil {
		t.Fatalf("database file not created: %v", err)
	}

	versions, err := AppliedVersions(db)
	if err != nil {
		t.Fatalf("AppliedVersions() error: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, versions); diff != "" {
		t.Errorf("applied versions mismatch (-want +got):\n%s", diff)
	}
}

func TestInitDB_Reopen(t *testing.T) {
	dir := t.TempDir()
	db, err := InitDB(dir)
	if err != nil {
		t.Fatalf("first InitDB() error: %v", err)
	}
	svc := NewHistoryService(db)
	if _, err := svc.Record(context.Background(), Generation{RunID: "r1", Format: "pptx", OutputPath: "a.pptx"}); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	db.Close()

	db, err = InitDB(dir)
	if err != nil {
		t.Fatalf("second InitDB() error: %v", err)
	}
	defer db.Close()

	n, err := runMigrations(context.Background(), db)
	if err != nil {
		t.Fatalf("runMigrations() error: %v", err)
	}
	if n != 0 {
		t.Errorf("runMigrations() applied %d migrations on an up-to-date database", n)
	}

	got, err := NewHistoryService(db).List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("List() after reopen = %d rows, want 1", len(got))
	}
}

func TestOpenDB_LeavesMigrationsPending(t *testing.T) {
	db, err := OpenDB(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDB() error: %v", err)
	}
	defer db.Close()

	versions, err := AppliedVersions(db)
	if err != nil {
		t.Fatalf("AppliedVersions() error: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("AppliedVersions() = %v, want none", versions)
	}
}

func TestRollbackMigration(t *testing.T) {
	db := setupTestDB(t)

	if err := RollbackMigration(db, 2); err != nil {
		t.Fatalf("RollbackMigration(2) error: %v", err)
	}
	if err := RollbackMigration(db, 2); err == nil {
		t.Error("second RollbackMigration(2) = nil, want error")
	}
	if err := RollbackMigration(db, 99); err == nil {
		t.Error("RollbackMigration(99) = nil, want error")
	}

	versions, err := AppliedVersions(db)
	if err != nil {
		t.Fatalf("AppliedVersions() error: %v", err)
	}
	if diff := cmp.Diff([]int{1}, versions); diff != "" {
		t.Errorf("applied versions mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryService_RecordAndList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHistoryService(db)
	ctx := context.Background()

	inputs := []Generation{
		{RunID: "run-a", Format: "pptx", OutputPath: "docs/a.pptx", SlideCount: 21, SizeBytes: 100, SHA256: "aa", CreatedAt: 1000},
		{RunID: "run-a", Format: "pdf", OutputPath: "docs/a.pdf", SlideCount: 21, SizeBytes: 50, SHA256: "bb", CreatedAt: 1000},
		{RunID: "run-b", Format: "pptx", OutputPath: "docs/b.pptx", SlideCount: 21, SizeBytes: 120, SHA256: "cc", CreatedAt: 2000, Lang: "vi"},
	}
	var recorded []Generation
	for _, in := range inputs {
		g, err := svc.Record(ctx, in)
		if err != nil {
			t.Fatalf("Record() error: %v", err)
		}
		if g.ID == "" {
			t.Error("Record() left ID empty")
		}
		recorded = append(recorded, *g)
	}
	if recorded[0].Lang != "en" {
		t.Errorf("default lang = %q, want en", recorded[0].Lang)
	}

	got, err := svc.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []Generation{recorded[2], recorded[1], recorded[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	limited, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List(1) error: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != "run-b" {
		t.Errorf("List(1) = %+v, want the run-b entry", limited)
	}

	run, err := svc.ListRun(ctx, "run-a")
	if err != nil {
		t.Fatalf("ListRun() error: %v", err)
	}
	if diff := cmp.Diff([]Generation{recorded[0], recorded[1]}, run); diff != "" {
		t.Errorf("ListRun() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryService_RecordValidation(t *testing.T) {
	svc := NewHistoryService(setupTestDB(t))
	ctx := context.Background()

	if _, err := svc.Record(ctx, Generation{OutputPath: "x.pptx"}); err == nil {
		t.Error("Record() without run ID = nil, want error")
	}
	if _, err := svc.Record(ctx, Generation{RunID: "r"}); err == nil {
		t.Error("Record() without output path = nil, want error")
	}

	if _, err := NewHistoryService(nil).List(ctx, 1); err == nil {
		t.Error("List() with nil db = nil, want error")
	}
}
