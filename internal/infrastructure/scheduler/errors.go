package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when triggering a job on a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrJobAlreadyRunning is returned when the requested job is still executing
	ErrJobAlreadyRunning = errors.New("billing job already in progress")

	// ErrUnknownJob is returned for job names other than charge and overdue
	ErrUnknownJob = errors.New("unknown billing job")
)
