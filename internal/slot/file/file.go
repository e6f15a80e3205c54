// Package file provides a slot backend storing the record sequence in a
// single JSON file. Writes go to a temp file in the same directory and are
// renamed into place so readers never see a partial payload.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"spendlog/internal/core"
	"spendlog/internal/slot"
)

type Slot struct {
	path string
}

func New(path string) (*Slot, error) {
	if path == "" {
		return nil, fmt.Errorf("file slot: empty path")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create slot directory: %w", err)
		}
	}
	return &Slot{path: path}, nil
}

func (s *Slot) Load(_ context.Context) ([]core.ExpenseRecord, error) {
	payload, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot file %s: %w", s.path, err)
	}
	return slot.DecodeRecords(payload), nil
}

func (s *Slot) Save(_ context.Context, records []core.ExpenseRecord) error {
	payload, err := slot.EncodeRecords(records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp slot file: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp slot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp slot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace slot file: %w", err)
	}
	return nil
}
