// Package slot defines the persistence port for the expense store: a single
// named storage slot holding the full record sequence as a JSON array.
package slot

import (
	"context"
	"encoding/json"
	"fmt"

	"spendlog/internal/core"
)

// DefaultKey names the storage slot used when none is configured.
const DefaultKey = "spendlog.expenses"

// Slot is the outbound port for durable storage of the record sequence.
type Slot interface {
	// Load reads the slot. An absent or malformed payload yields an empty
	// sequence and a nil error; only backend I/O failures return an error.
	Load(ctx context.Context) ([]core.ExpenseRecord, error)

	// Save overwrites the slot with the given sequence.
	Save(ctx context.Context, records []core.ExpenseRecord) error
}

// EncodeRecords serializes the sequence as a JSON array. A nil sequence
// encodes as an empty array, not JSON null.
func EncodeRecords(records []core.ExpenseRecord) ([]byte, error) {
	if records == nil {
		records = []core.ExpenseRecord{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return payload, nil
}

// DecodeRecords parses a slot payload. Anything that does not parse as an
// array of valid records with distinct ids decodes as an empty sequence;
// there is no schema versioning, so stale payloads are silently orphaned.
func DecodeRecords(payload []byte) []core.ExpenseRecord {
	if len(payload) == 0 {
		return nil
	}
	var records []core.ExpenseRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil
	}
	if err := core.ValidateRecords(records); err != nil {
		return nil
	}
	return records
}
