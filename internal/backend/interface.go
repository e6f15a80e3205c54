// Package backend selects and constructs the slot backend from
// configuration.
package backend

import (
	"context"

	"spendlog/internal/slot"
)

// Type names a slot backend implementation.
type Type string

const (
	MemoryBackend Type = "memory"
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	}
	return false
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the constructed slot and an optional cleanup function.
type Result struct {
	Slot    slot.Slot
	Cleanup CleanupFunc
}

// Config holds what the factory needs to build a backend.
type Config struct {
	Type         Type
	SQLiteDBPath string
	FilePath     string
	SlotKey      string
}

// Factory creates slot backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}
