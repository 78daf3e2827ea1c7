package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/antaeus/billing/internal/application/billing"
	"go.uber.org/zap"
)

// BillingRunner executes billing runs. *billing.BillingService implements it.
type BillingRunner interface {
	ChargeInvoices(ctx context.Context) error
	MarkOverdue(ctx context.Context) error
}

// BillingSchedulerConfig holds configuration for the billing scheduler
type BillingSchedulerConfig struct {
	// Enabled turns on the monthly cron loops. Manual triggers work either way.
	Enabled bool

	// ChargeDay and ChargeHour place the monthly charge run
	ChargeDay  int
	ChargeHour int

	// OverdueDay and OverdueHour place the monthly overdue sweep
	OverdueDay  int
	OverdueHour int

	// JobTimeout bounds a scheduled run
	JobTimeout time.Duration

	// ManualTimeout bounds a run started through Trigger
	ManualTimeout time.Duration

	// Location is the time zone the schedule is evaluated in
	Location *time.Location
}

// DefaultBillingSchedulerConfig charges on the 1st and sweeps on the 2nd, both at midnight UTC
func DefaultBillingSchedulerConfig() BillingSchedulerConfig {
	return BillingSchedulerConfig{
		Enabled:       true,
		ChargeDay:     1,
		ChargeHour:    0,
		OverdueDay:    2,
		OverdueHour:   0,
		JobTimeout:    2 * time.Hour,
		ManualTimeout: time.Hour,
		Location:      time.UTC,
	}
}

// BillingScheduler runs the monthly charge and overdue jobs and lets callers
// start either job on demand. A job never overlaps with itself.
type BillingScheduler struct {
	runner BillingRunner
	logger *zap.Logger
	config BillingSchedulerConfig
	now    func() time.Time

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	inFlight  map[string]bool
}

// NewBillingScheduler creates a new billing scheduler
func NewBillingScheduler(runner BillingRunner, logger *zap.Logger, config BillingSchedulerConfig) *BillingScheduler {
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &BillingScheduler{
		runner:   runner,
		logger:   logger,
		config:   config,
		now:      time.Now,
		inFlight: make(map[string]bool),
	}
}

// Start starts the scheduler. Jobs run under ctx until Stop is called.
func (s *BillingScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Info("Billing schedule is disabled, accepting manual triggers only")
		return nil
	}

	s.wg.Add(2)
	go s.runMonthly(runCtx, billing.OperationCharge, s.config.ChargeDay, s.config.ChargeHour)
	go s.runMonthly(runCtx, billing.OperationOverdue, s.config.OverdueDay, s.config.OverdueHour)

	s.logger.Info("Billing scheduler started",
		zap.Int("charge_day", s.config.ChargeDay),
		zap.Int("charge_hour", s.config.ChargeHour),
		zap.Int("overdue_day", s.config.OverdueDay),
		zap.Int("overdue_hour", s.config.OverdueHour),
		zap.String("location", s.config.Location.String()),
	)
	return nil
}

// Stop cancels in-flight jobs and waits for them to return
func (s *BillingScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Billing scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Billing scheduler stop timed out")
		return ctx.Err()
	}
}

// runMonthly waits for each monthly slot of a job and executes it
func (s *BillingScheduler) runMonthly(ctx context.Context, job string, day, hour int) {
	defer s.wg.Done()

	for {
		nextRun := NextMonthlyRun(s.now(), day, hour, s.config.Location)
		delay := nextRun.Sub(s.now())

		s.logger.Info("Billing job scheduled",
			zap.String("job", job),
			zap.Time("next_run", nextRun),
			zap.Duration("delay", delay),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Debug("Billing job loop stopping", zap.String("job", job))
			return
		case <-timer.C:
			if !s.claim(job) {
				s.logger.Warn("Skipping scheduled billing job, previous run still active", zap.String("job", job))
				continue
			}
			s.execute(ctx, job, s.config.JobTimeout)
		}
	}
}

// Trigger starts job in the background and returns immediately.
// It fails with ErrSchedulerNotRunning before Start or after Stop and with
// ErrJobAlreadyRunning while the same job is active.
func (s *BillingScheduler) Trigger(job string) error {
	if job != billing.OperationCharge && job != billing.OperationOverdue {
		return fmt.Errorf("%w: %q", ErrUnknownJob, job)
	}

	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	if s.inFlight[job] {
		s.mu.Unlock()
		return ErrJobAlreadyRunning
	}
	s.inFlight[job] = true
	s.wg.Add(1)
	ctx := s.ctx
	s.mu.Unlock()

	s.logger.Info("Triggering billing job", zap.String("job", job))

	go func() {
		defer s.wg.Done()
		s.execute(ctx, job, s.config.ManualTimeout)
	}()
	return nil
}

// IsJobRunning reports whether job is currently executing
func (s *BillingScheduler) IsJobRunning(job string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[job]
}

// IsRunning returns whether the scheduler is running
func (s *BillingScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *BillingScheduler) claim(job string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[job] {
		return false
	}
	s.inFlight[job] = true
	return true
}

func (s *BillingScheduler) release(job string) {
	s.mu.Lock()
	delete(s.inFlight, job)
	s.mu.Unlock()
}

// execute runs a claimed job with a timeout and logs its execution time
func (s *BillingScheduler) execute(ctx context.Context, job string, timeout time.Duration) {
	defer s.release(job)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	startTime := time.Now()
	var err error
	switch job {
	case billing.OperationCharge:
		err = s.runner.ChargeInvoices(ctx)
	case billing.OperationOverdue:
		err = s.runner.MarkOverdue(ctx)
	}
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Billing job failed",
			zap.String("job", job),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Billing job completed",
		zap.String("job", job),
		zap.Duration("duration", duration),
	)
}

// NextMonthlyRun returns the first instant strictly after now that falls on
// day at hour:00 in loc. Days past the end of a month roll into the next one,
// so callers should keep day within 1..28.
func NextMonthlyRun(now time.Time, day, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), day, hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month()+1, day, hour, 0, 0, 0, loc)
	}
	return next
}
