package backend

import (
	"context"
	"fmt"
	"log/slog"

	applog "spendlog/internal/log"
	slotfile "spendlog/internal/slot/file"
	slotmem "spendlog/internal/slot/memory"
	slotsqlite "spendlog/internal/slot/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(_ context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		s, err := slotsqlite.New(config.SQLiteDBPath, config.SlotKey)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite slot: %w", err)
		}
		f.logger.Info("Initialized sqlite backend",
			applog.FieldBackend, string(SQLiteBackend),
			"db_path", config.SQLiteDBPath,
			applog.FieldSlotKey, config.SlotKey)
		return &Result{Slot: s, Cleanup: s.Close}, nil

	case FileBackend:
		s, err := slotfile.New(config.FilePath)
		if err != nil {
			return nil, fmt.Errorf("initialize file slot: %w", err)
		}
		f.logger.Info("Initialized file backend",
			applog.FieldBackend, string(FileBackend),
			applog.FieldPath, config.FilePath)
		return &Result{Slot: s, Cleanup: nil}, nil

	default:
		f.logger.Info("Initialized memory backend",
			applog.FieldBackend, string(MemoryBackend))
		return &Result{Slot: slotmem.New(), Cleanup: nil}, nil
	}
}
