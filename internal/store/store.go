// Package store holds the authoritative in-memory expense collection.
//
// The store is the single source of truth for the session: records live in
// an ordered slice, newest-first by creation, and the full sequence is
// written to the configured slot after every mutation. A failed save is
// logged and swallowed; the in-memory state stays authoritative.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"spendlog/internal/core"
	applog "spendlog/internal/log"
	"spendlog/internal/slot"
)

// EventKind names a store mutation.
type EventKind string

const (
	RecordAdded   EventKind = "record_added"
	RecordDeleted EventKind = "record_deleted"
)

// Event describes one committed mutation, delivered to subscribers after the
// store has been updated and persisted.
type Event struct {
	Kind   EventKind
	Record core.ExpenseRecord
}

// Candidate is a proposed expense as entered by the user. Amount stays a raw
// string until the store parses it, so non-numeric input is rejected here
// rather than at the form boundary.
type Candidate struct {
	Date     string
	Amount   string
	Category string
	Note     string
}

// Store is the ordered, persisted expense collection.
type Store struct {
	mu      sync.Mutex
	slot    slot.Slot
	records []core.ExpenseRecord
	subs    []func(Event)

	// newID is swappable for tests; defaults to uuid.NewString so two adds
	// in the same clock tick can never collide.
	newID func() string
}

// New constructs a store backed by the given slot and rehydrates it. A load
// failure degrades to an empty store; it never fails construction.
func New(ctx context.Context, s slot.Slot) *Store {
	st := &Store{
		slot:  s,
		newID: uuid.NewString,
	}

	records, err := s.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load persisted expenses, starting empty",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldError, err)
		records = nil
	}
	st.records = records

	slog.InfoContext(ctx, "Expense store ready", "records", len(records))
	return st
}

// Subscribe registers a change listener. Listeners run synchronously after
// each committed mutation, outside the store lock.
func (st *Store) Subscribe(fn func(Event)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.subs = append(st.subs, fn)
}

// Add validates the candidate, assigns a fresh id and prepends the record.
// The amount is rounded to two decimal places; category and note are
// trimmed, and a blank category becomes core.DefaultCategory.
func (st *Store) Add(ctx context.Context, c Candidate) (core.ExpenseRecord, error) {
	cents, err := core.ParseDecimalToCents(c.Amount)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("parse amount %q: %w", c.Amount, err)
	}

	day, err := core.ParseDay(c.Date)
	if err != nil {
		return core.ExpenseRecord{}, err
	}

	category := strings.TrimSpace(c.Category)
	if category == "" {
		category = core.DefaultCategory
	}

	rec := core.ExpenseRecord{
		ID:       st.newID(),
		Date:     day,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Note:     strings.TrimSpace(c.Note),
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	st.mu.Lock()
	st.records = append([]core.ExpenseRecord{rec}, st.records...)
	st.persistLocked(ctx)
	st.mu.Unlock()

	slog.InfoContext(ctx, "Expense recorded",
		applog.FieldOperation, applog.OpAdd,
		applog.FieldRecordID, rec.ID,
		applog.FieldDate, rec.Date.String(),
		applog.FieldAmountCents, rec.Amount.Cents,
		applog.FieldCategory, rec.Category)

	st.notify(Event{Kind: RecordAdded, Record: rec})
	return rec, nil
}

// Delete removes the record with the given id. Deleting an absent id is a
// no-op and reports false.
func (st *Store) Delete(ctx context.Context, id string) bool {
	st.mu.Lock()
	idx := -1
	for i, r := range st.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		st.mu.Unlock()
		return false
	}
	removed := st.records[idx]
	st.records = append(st.records[:idx:idx], st.records[idx+1:]...)
	st.persistLocked(ctx)
	st.mu.Unlock()

	slog.InfoContext(ctx, "Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldRecordID, removed.ID,
		applog.FieldDate, removed.Date.String(),
		applog.FieldAmountCents, removed.Amount.Cents)

	st.notify(Event{Kind: RecordDeleted, Record: removed})
	return true
}

// List returns a copy of the full ordered sequence, newest-first.
func (st *Store) List() []core.ExpenseRecord {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]core.ExpenseRecord, len(st.records))
	copy(out, st.records)
	return out
}

// Len returns the number of records.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.records)
}

// persistLocked writes the full sequence to the slot. Write failures are
// swallowed so the session continues on in-memory state; data loss is then
// possible on restart.
func (st *Store) persistLocked(ctx context.Context) {
	snapshot := make([]core.ExpenseRecord, len(st.records))
	copy(snapshot, st.records)
	if err := st.slot.Save(ctx, snapshot); err != nil {
		slog.WarnContext(ctx, "Failed to persist expenses, in-memory state remains authoritative",
			applog.FieldOperation, applog.OpSave,
			applog.FieldError, err,
			"records", len(snapshot))
	}
}

func (st *Store) notify(e Event) {
	st.mu.Lock()
	subs := append(([]func(Event))(nil), st.subs...)
	st.mu.Unlock()
	for _, fn := range subs {
		fn(e)
	}
}
