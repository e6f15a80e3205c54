package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"spendlog/internal/core"
)

func newTestSlot(t *testing.T) *Slot {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "spendlog.db"), "test.expenses")
	if err != nil {
		t.Fatalf("new sqlite slot: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmptySlot(t *testing.T) {
	s := newTestSlot(t)
	records, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty sequence, got %d records", len(records))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestSlot(t)
	ctx := context.Background()

	in := []core.ExpenseRecord{
		{ID: "2", Date: core.NewDay(2024, 2, 2), Amount: core.Money{Cents: 550}, Category: "Food", Note: "coffee"},
		{ID: "1", Date: core.NewDay(2024, 2, 1), Amount: core.Money{Cents: 1000}, Category: core.DefaultCategory},
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 || out[0].ID != "2" || out[1].ID != "1" {
		t.Fatalf("round trip lost order or records: %+v", out)
	}
}

func TestSaveOverwritesPriorContent(t *testing.T) {
	s := newTestSlot(t)
	ctx := context.Background()

	first := []core.ExpenseRecord{
		{ID: "1", Date: core.NewDay(2024, 2, 1), Amount: core.Money{Cents: 100}, Category: core.DefaultCategory},
	}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected overwrite with empty sequence, got %d records", len(out))
	}
}
