package events

import (
	"encoding/json"
	"time"

	"spendlog/internal/store"
)

// RecordEventMessage is the wire form of a store change event. It carries
// the full record fields so consumers need no access to the slot.
type RecordEventMessage struct {
	Kind        string    `json:"kind"` // record_added | record_deleted
	RecordID    string    `json:"record_id"`
	Date        string    `json:"date"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Note        string    `json:"note"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRecordEventMessage converts a store event into its wire form.
func NewRecordEventMessage(e store.Event) *RecordEventMessage {
	return &RecordEventMessage{
		Kind:        string(e.Kind),
		RecordID:    e.Record.ID,
		Date:        e.Record.Date.String(),
		AmountCents: e.Record.Amount.Cents,
		Category:    e.Record.Category,
		Note:        e.Record.Note,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordEventMessageFromJSON creates a message from JSON bytes
func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var msg RecordEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
