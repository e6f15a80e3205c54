package backend

import (
	"context"
	"path/filepath"
	"testing"
)

func TestCreateBackend(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()
	dir := t.TempDir()

	cases := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"file", Config{Type: FileBackend, FilePath: filepath.Join(dir, "expenses.json")}, false},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "spendlog.db")}, false},
		{"unknown", Config{Type: Type("redis")}, true},
		{"file without path", Config{Type: FileBackend}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := f.CreateBackend(ctx, tc.config)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Slot == nil {
				t.Fatalf("expected a slot")
			}
			if result.Cleanup != nil {
				if err := result.Cleanup(); err != nil {
					t.Fatalf("cleanup: %v", err)
				}
			}
		})
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, typ := range []Type{MemoryBackend, FileBackend, SQLiteBackend} {
		if !typ.IsValid() {
			t.Fatalf("%s should be valid", typ)
		}
	}
	if Type("postgres").IsValid() {
		t.Fatalf("unexpected valid type")
	}
}
