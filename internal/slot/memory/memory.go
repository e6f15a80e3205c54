// Package memory provides an in-process slot backend, used as the default
// development backend and in tests.
package memory

import (
	"context"
	"sync"

	"spendlog/internal/core"
	"spendlog/internal/slot"
)

type Slot struct {
	mu      sync.Mutex
	payload []byte
}

func New() *Slot {
	return &Slot{}
}

// Seed pre-populates the slot, mainly for tests.
func Seed(records []core.ExpenseRecord) (*Slot, error) {
	payload, err := slot.EncodeRecords(records)
	if err != nil {
		return nil, err
	}
	return &Slot{payload: payload}, nil
}

func (s *Slot) Load(_ context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slot.DecodeRecords(s.payload), nil
}

func (s *Slot) Save(_ context.Context, records []core.ExpenseRecord) error {
	payload, err := slot.EncodeRecords(records)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = payload
	return nil
}
