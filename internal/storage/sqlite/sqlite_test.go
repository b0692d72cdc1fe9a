package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/michaelbrown/adguard-mcp/internal/storage"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(tool, category string, ok bool) *storage.CallRecord {
	return &storage.CallRecord{
		ID:       uuid.New().String(),
		Tool:     tool,
		Category: category,
		Args:     `{}`,
		OK:       ok,
		Duration: 12 * time.Millisecond,
	}
}

func TestRecordAndListCalls(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.RecordCall(ctx, record("get_status", "status", true)); err != nil {
		t.Fatalf("RecordCall: %v", err)
	}
	if err := store.RecordCall(ctx, record("reset_stats", "stats", false)); err != nil {
		t.Fatalf("RecordCall: %v", err)
	}

	calls, err := store.ListCalls(ctx, storage.CallListOptions{})
	if err != nil {
		t.Fatalf("ListCalls: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("ListCalls = %d records, want 2", len(calls))
	}
	for _, c := range calls {
		if c.CreatedAt.IsZero() {
			t.Errorf("record %s has zero created_at", c.Tool)
		}
		if c.Duration != 12*time.Millisecond {
			t.Errorf("record %s duration = %v", c.Tool, c.Duration)
		}
	}
}

func TestListCallsFilters(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.RecordCall(ctx, record("get_status", "status", true))
	store.RecordCall(ctx, record("get_stats", "stats", true))
	store.RecordCall(ctx, record("reset_stats", "stats", false))

	byTool, err := store.ListCalls(ctx, storage.CallListOptions{Tool: "get_stats"})
	if err != nil {
		t.Fatalf("ListCalls: %v", err)
	}
	if len(byTool) != 1 || byTool[0].Tool != "get_stats" {
		t.Errorf("tool filter returned %v", byTool)
	}

	byCategory, err := store.ListCalls(ctx, storage.CallListOptions{Category: "stats"})
	if err != nil {
		t.Fatalf("ListCalls: %v", err)
	}
	if len(byCategory) != 2 {
		t.Errorf("category filter = %d records, want 2", len(byCategory))
	}

	failed, err := store.ListCalls(ctx, storage.CallListOptions{FailedOnly: true})
	if err != nil {
		t.Fatalf("ListCalls: %v", err)
	}
	if len(failed) != 1 || failed[0].Tool != "reset_stats" {
		t.Errorf("failed filter returned %v", failed)
	}
}

func TestListCallsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		store.RecordCall(ctx, record("get_status", "status", true))
	}

	calls, err := store.ListCalls(ctx, storage.CallListOptions{Limit: 3})
	if err != nil {
		t.Fatalf("ListCalls: %v", err)
	}
	if len(calls) != 3 {
		t.Errorf("ListCalls = %d records, want 3", len(calls))
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "audit.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.RecordCall(context.Background(), record("get_status", "status", true)); err != nil {
		t.Fatalf("RecordCall: %v", err)
	}
}
