package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDay(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-01", true},
		{" 2024-12-31 ", true},
		{"2024-02-30", false},
		{"01/02/2024", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseDay(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestDayStringAndEqual(t *testing.T) {
	d := NewDay(2024, 1, 1)
	if d.String() != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", d.String())
	}
	parsed, err := ParseDay("2024-01-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !d.Equal(parsed) {
		t.Fatalf("expected days to be equal")
	}
	if d.Equal(NewDay(2024, 1, 2)) {
		t.Fatalf("expected days to differ")
	}
}

func TestDayJSON(t *testing.T) {
	out, err := json.Marshal(NewDay(2024, 3, 9))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2024-03-09"` {
		t.Fatalf(`expected "2024-03-09", got %s`, out)
	}
	var d Day
	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	good := ExpenseRecord{
		ID:       "r1",
		Date:     NewDay(2024, 1, 1),
		Amount:   Money{Cents: 1234},
		Category: "Food",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(r ExpenseRecord) ExpenseRecord
	}{
		{"empty id", func(r ExpenseRecord) ExpenseRecord { r.ID = " "; return r }},
		{"zero date", func(r ExpenseRecord) ExpenseRecord { r.Date = Day{}; return r }},
		{"zero amount", func(r ExpenseRecord) ExpenseRecord { r.Amount = Money{}; return r }},
		{"negative amount", func(r ExpenseRecord) ExpenseRecord { r.Amount = Money{Cents: -1}; return r }},
		{"blank category", func(r ExpenseRecord) ExpenseRecord { r.Category = "  "; return r }},
	}
	for _, tc := range cases {
		if err := tc.mut(good).Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestValidateRecords(t *testing.T) {
	a := ExpenseRecord{ID: "a", Date: NewDay(2024, 1, 1), Amount: Money{Cents: 100}, Category: "Food"}
	b := ExpenseRecord{ID: "b", Date: NewDay(2024, 1, 1), Amount: Money{Cents: 200}, Category: "Home"}

	if err := ValidateRecords(nil); err != nil {
		t.Fatalf("expected nil sequence to be valid, got %v", err)
	}
	if err := ValidateRecords([]ExpenseRecord{a, b}); err != nil {
		t.Fatalf("expected valid sequence, got %v", err)
	}

	bad := a
	bad.Amount = Money{Cents: -500}
	if err := ValidateRecords([]ExpenseRecord{bad}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	dup := b
	dup.ID = a.ID
	if err := ValidateRecords([]ExpenseRecord{a, dup}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}
