package memory

import (
	"context"
	"testing"

	"spendlog/internal/core"
)

func TestLoadEmpty(t *testing.T) {
	s := New()
	records, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty slot, got %d records", len(records))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New()
	in := []core.ExpenseRecord{
		{ID: "2", Date: core.NewDay(2024, 1, 1), Amount: core.Money{Cents: 550}, Category: "Food"},
		{ID: "1", Date: core.NewDay(2024, 1, 1), Amount: core.Money{Cents: 1000}, Category: core.DefaultCategory, Note: "bus"},
	}
	if err := s.Save(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 || out[0].ID != "2" || out[1].ID != "1" {
		t.Fatalf("round trip lost order or records: %+v", out)
	}
}
