package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// BillingMetrics records charge outcomes and batch runs.
type BillingMetrics struct {
	chargeOutcomes    *Counter
	invoicesProcessed *Counter
	batchErrors       *Counter
	events            *Counter
	batchDuration     *Histogram
}

// NewBillingMetrics creates the billing instruments on the given meter.
func NewBillingMetrics(meter metric.Meter) (*BillingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		bm  BillingMetrics
		err error
	)

	bm.chargeOutcomes, err = NewCounter(meter,
		"billing_charge_outcomes_total",
		"Charge attempts by outcome",
		"{charges}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoicesProcessed, err = NewCounter(meter,
		"billing_invoices_processed_total",
		"Invoices processed by billing operation",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	bm.batchErrors, err = NewCounter(meter,
		"billing_batch_errors_total",
		"Unclassified and storage errors raised during billing runs",
		"{errors}",
	)
	if err != nil {
		return nil, err
	}

	bm.events, err = NewCounter(meter,
		"billing_events_total",
		"Billing events notified by type",
		"{events}",
	)
	if err != nil {
		return nil, err
	}

	bm.batchDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "billing_batch_duration_seconds",
		Description: "Duration of billing runs",
		Unit:        "s",
		Boundaries:  BatchDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &bm, nil
}

// RecordOutcome counts one charge attempt with the given outcome label.
func (bm *BillingMetrics) RecordOutcome(ctx context.Context, outcome string) {
	bm.chargeOutcomes.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordBatch records a completed run of operation.
func (bm *BillingMetrics) RecordBatch(ctx context.Context, operation string, processed int64, errs int, d time.Duration) {
	bm.invoicesProcessed.Add(ctx, processed, AttrOperation.String(operation))
	if errs > 0 {
		bm.batchErrors.Add(ctx, int64(errs), AttrOperation.String(operation))
	}
	bm.batchDuration.RecordDuration(ctx, d, AttrOperation.String(operation))
}

// RecordEvent counts one notified event.
func (bm *BillingMetrics) RecordEvent(ctx context.Context, eventType string) {
	bm.events.Inc(ctx, AttrEventType.String(eventType))
}
