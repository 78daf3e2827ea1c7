package billing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// settleTimeout bounds the status transition and save that follow a charge.
const settleTimeout = 10 * time.Second

// Operation names used for logs, spans and metrics
const (
	OperationCharge  = "charge"
	OperationOverdue = "overdue"
)

// Charge outcomes as recorded by the RunRecorder
const (
	OutcomePaid          = "paid"
	OutcomeDeclined      = "declined"
	OutcomeUncollectible = "uncollectible"
	OutcomeFailed        = "failed"
	OutcomeUnclassified  = "unclassified"
)

// RunRecorder receives per-invoice outcomes and per-run totals.
// telemetry.BillingMetrics implements it.
type RunRecorder interface {
	RecordOutcome(ctx context.Context, outcome string)
	RecordBatch(ctx context.Context, operation string, processed int64, errs int, d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordOutcome(context.Context, string) {}

func (noopRecorder) RecordBatch(context.Context, string, int64, int, time.Duration) {}

// BillingServiceConfig contains configuration for BillingService
type BillingServiceConfig struct {
	// Workers is the number of concurrent workers and also the page size
	Workers int
	// AbortOnError cancels the run on the first unclassified or storage error
	AbortOnError bool
}

// DefaultBillingServiceConfig returns default configuration
func DefaultBillingServiceConfig() BillingServiceConfig {
	return BillingServiceConfig{
		Workers: 16,
	}
}

// BillingService charges pending invoices and sweeps them to overdue.
type BillingService struct {
	invoiceRepo   billing.InvoiceRepository
	provider      billing.PaymentProvider
	domainService *billing.InvoiceDomainService
	recorder      RunRecorder
	logger        *zap.Logger
	config        BillingServiceConfig
}

// NewBillingService creates a new BillingService. A nil recorder disables run metrics.
func NewBillingService(
	invoiceRepo billing.InvoiceRepository,
	provider billing.PaymentProvider,
	notifier billing.Notifier,
	recorder RunRecorder,
	logger *zap.Logger,
	config BillingServiceConfig,
) *BillingService {
	if config.Workers <= 0 {
		config.Workers = DefaultBillingServiceConfig().Workers
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BillingService{
		invoiceRepo:   invoiceRepo,
		provider:      provider,
		domainService: billing.NewInvoiceDomainService(notifier),
		recorder:      recorder,
		logger:        logger,
		config:        config,
	}
}

// ChargeInvoices attempts to charge every PENDING invoice.
//
// Declines, uncollectible charges and network failures are absorbed: they are
// notified and the run continues. Unclassified provider errors and storage
// errors are returned; see BillingServiceConfig.AbortOnError.
func (s *BillingService) ChargeInvoices(ctx context.Context) error {
	return s.run(ctx, OperationCharge, s.charge)
}

// MarkOverdue moves every PENDING invoice to OVERDUE.
func (s *BillingService) MarkOverdue(ctx context.Context) error {
	return s.run(ctx, OperationOverdue, s.overdue)
}

func (s *BillingService) run(ctx context.Context, operation string, fn func(context.Context, billing.Invoice) error) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "BillingService", operation,
		telemetry.WithAttribute(telemetry.SpanAttrWorkers, s.config.Workers),
	)
	defer span.End()

	start := time.Now()
	s.logger.Info("Billing run started",
		zap.String("operation", operation),
		zap.Int("workers", s.config.Workers),
		zap.Bool("abort_on_error", s.config.AbortOnError),
	)

	processed, errs, abortErr := s.forEachPendingInvoice(ctx, fn)
	elapsed := time.Since(start)

	s.recorder.RecordBatch(ctx, operation, processed, len(errs), elapsed)
	telemetry.SetAttributes(span, telemetry.SpanAttrProcessed, processed)

	if len(errs) == 0 {
		s.logger.Info("Billing run completed",
			zap.String("operation", operation),
			zap.Int64("processed", processed),
			zap.Duration("elapsed", elapsed),
		)
		telemetry.SetOK(span)
		return nil
	}

	err := abortErr
	if err == nil {
		if s.config.AbortOnError {
			err = errs[0]
		} else {
			err = errors.Join(errs...)
		}
	}
	s.logger.Warn("Billing run completed with errors",
		zap.String("operation", operation),
		zap.Int64("processed", processed),
		zap.Int("errors", len(errs)),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
	telemetry.RecordError(span, err)
	return err
}

// forEachPendingInvoice drains the PENDING invoices with a pool of workers
// sharing one page cursor. Each worker claims the next page index, fetches
// that page (page size equals the worker count) and processes its invoices in
// order. A worker stops on an empty page, a failed fetch or a cancelled context.
//
// It returns the number of invoices handed to fn, every error collected in the
// order raised, and the error that stopped the run when AbortOnError is set.
func (s *BillingService) forEachPendingInvoice(ctx context.Context, fn func(context.Context, billing.Invoice) error) (int64, []error, error) {
	g, runCtx := errgroup.WithContext(ctx)

	var (
		cursor    atomic.Int64
		processed atomic.Int64
		mu        sync.Mutex
		errs      []error
	)

	// fail records err. A non-nil return ends the worker and cancels runCtx.
	fail := func(err error) error {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
		if s.config.AbortOnError {
			return err
		}
		return nil
	}

	pageSize := s.config.Workers
	for w := 0; w < s.config.Workers; w++ {
		g.Go(func() error {
			for runCtx.Err() == nil {
				page := cursor.Add(1) - 1
				offset := int(page) * pageSize

				invoices, err := s.invoiceRepo.FetchPageByStatus(runCtx, billing.InvoiceStatusPending, pageSize, offset)
				if err != nil {
					if runCtx.Err() != nil {
						return nil
					}
					s.logger.Error("Failed to fetch pending invoices",
						zap.Int("offset", offset),
						zap.Int("limit", pageSize),
						zap.Error(err),
					)
					return fail(fmt.Errorf("fetch pending invoices at offset %d: %w", offset, err))
				}
				if len(invoices) == 0 {
					return nil
				}

				for _, invoice := range invoices {
					if runCtx.Err() != nil {
						return nil
					}
					processed.Add(1)
					if err := fn(runCtx, invoice); err != nil {
						s.logger.Error("Failed to process invoice",
							zap.Int64("invoice_id", invoice.ID),
							zap.Int64("customer_id", invoice.CustomerID),
							zap.Error(err),
						)
						if err := fail(err); err != nil {
							return err
						}
					}
				}
			}
			return nil
		})
	}
	abortErr := g.Wait()

	// Cancellation by the caller is reported; cancellation by AbortOnError
	// already carries its cause in errs.
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	return processed.Load(), errs, abortErr
}

// settle returns a context for applying an outcome that is already decided.
// It survives cancellation of the run so a charged invoice is always persisted.
func settle(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
}

// charge runs one invoice through the payment provider and applies the outcome.
func (s *BillingService) charge(ctx context.Context, invoice billing.Invoice) error {
	ctx, span := telemetry.StartSpan(ctx, "BillingService.chargeInvoice",
		telemetry.WithAttribute(telemetry.SpanAttrInvoiceID, invoice.ID),
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, invoice.CustomerID),
		telemetry.WithAttribute(telemetry.SpanAttrAmount, invoice.Amount.String()),
	)
	defer span.End()

	charged, chargeErr := s.provider.Charge(ctx, invoice)

	ctx, cancel := settle(ctx)
	defer cancel()

	var (
		updated billing.Invoice
		outcome string
		err     error
	)
	switch {
	case chargeErr == nil && charged:
		outcome = OutcomePaid
		updated, err = s.domainService.Pay(ctx, invoice)
	case chargeErr == nil:
		outcome = OutcomeDeclined
		updated = s.domainService.Decline(ctx, invoice)
	default:
		switch billing.ClassifyChargeError(chargeErr) {
		case billing.ChargeFailureUncollectible:
			outcome = OutcomeUncollectible
			updated, err = s.domainService.Uncollect(ctx, invoice, chargeErr)
		case billing.ChargeFailureTransient:
			outcome = OutcomeFailed
			s.domainService.Fail(ctx, invoice.ID, chargeErr)
			updated = invoice
		case billing.ChargeFailureUnclassified:
			s.recorder.RecordOutcome(ctx, OutcomeUnclassified)
			telemetry.SetAttributes(span, telemetry.SpanAttrOutcome, OutcomeUnclassified)
			err = fmt.Errorf("charge invoice %d: %w", invoice.ID, chargeErr)
			telemetry.RecordError(span, err)
			return err
		}
	}
	if err != nil {
		err = fmt.Errorf("charge invoice %d: %w", invoice.ID, err)
		telemetry.RecordError(span, err)
		return err
	}

	s.recorder.RecordOutcome(ctx, outcome)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOutcome, outcome,
		telemetry.SpanAttrInvoiceStatus, updated.Status().String(),
	)

	if err := s.invoiceRepo.Update(ctx, updated); err != nil {
		err = fmt.Errorf("update invoice %d: %w", invoice.ID, err)
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Debug("Invoice charged",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("outcome", outcome),
		zap.String("status", updated.Status().String()),
	)
	return nil
}

func (s *BillingService) overdue(ctx context.Context, invoice billing.Invoice) error {
	ctx, cancel := settle(ctx)
	defer cancel()

	updated, err := s.domainService.Overdue(ctx, invoice)
	if err != nil {
		return fmt.Errorf("mark invoice %d overdue: %w", invoice.ID, err)
	}
	if err := s.invoiceRepo.Update(ctx, updated); err != nil {
		return fmt.Errorf("update invoice %d: %w", invoice.ID, err)
	}
	return nil
}
