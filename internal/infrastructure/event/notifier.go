package event

import (
	"context"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"go.uber.org/zap"
)

// BusNotifier delivers billing events through an event publisher.
// Publish failures are logged and never returned to the billing run.
type BusNotifier struct {
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewBusNotifier creates a notifier publishing on publisher
func NewBusNotifier(publisher shared.EventPublisher, logger *zap.Logger) *BusNotifier {
	return &BusNotifier{publisher: publisher, logger: logger}
}

// Notify implements billing.Notifier
func (n *BusNotifier) Notify(ctx context.Context, event billing.Event) {
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("failed to deliver billing event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Int64("invoice_id", event.ResourceID()),
			zap.Error(err),
		)
	}
}

var _ billing.Notifier = (*BusNotifier)(nil)
