package events

import (
	"context"
	"log/slog"

	applog "spendlog/internal/log"
	"spendlog/internal/store"
)

// Publisher forwards store change events to the broker. A nil client turns
// every publish into a no-op, so the service runs unchanged without AMQP.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// OnStoreEvent is the store.Subscribe callback. Publish failures are logged
// and swallowed; the mutation has already been committed.
func (p *Publisher) OnStoreEvent(e store.Event) {
	ctx := context.Background()
	if p.client == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping event publish",
			"kind", string(e.Kind),
			applog.FieldRecordID, e.Record.ID)
		return
	}

	if err := p.client.PublishRecordEvent(ctx, NewRecordEventMessage(e)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			applog.FieldOperation, applog.OpPublish,
			applog.FieldError, err,
			"kind", string(e.Kind),
			applog.FieldRecordID, e.Record.ID)
	}
}

func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
