package event

import (
	"context"
	"fmt"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"go.uber.org/zap"
)

// LoggingHandler writes every billing event to the log
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a new LoggingHandler
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

// Handle logs status changes at info level and failures at warn level
func (h *LoggingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.Int64("invoice_id", event.AggregateID()),
	}
	switch e := event.(type) {
	case *billing.StatusChangedEvent:
		h.logger.Info(e.String(), fields...)
	case *billing.BusinessErrorEvent:
		h.logger.Warn(FailureMessage(e.Message()), fields...)
	case *billing.ApplicationErrorEvent:
		h.logger.Warn(FailureMessage(e.Message()), fields...)
	default:
		h.logger.Debug("unhandled event", fields...)
	}
	return nil
}

// EventTypes returns nil; the handler receives every event
func (h *LoggingHandler) EventTypes() []string { return nil }

// FailureMessage formats a business or application failure for the log
func FailureMessage(message string) string {
	return fmt.Sprintf("The following failure occurred: %s", message)
}

// EventRecorder counts notified events by type.
// telemetry.BillingMetrics implements it.
type EventRecorder interface {
	RecordEvent(ctx context.Context, eventType string)
}

// MetricsHandler counts events by type
type MetricsHandler struct {
	recorder EventRecorder
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(recorder EventRecorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

// Handle implements shared.EventHandler
func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.recorder.RecordEvent(ctx, event.EventType())
	return nil
}

// EventTypes returns nil; the handler receives every event
func (h *MetricsHandler) EventTypes() []string { return nil }
