package sim

import "github.com/joeycumines/logiface"

// schedulerOptions holds configuration options for Scheduler creation.
type schedulerOptions struct {
	logger         *logiface.Logger[*stumpyEvent]
	maxDeltaRounds int
	clock          int
}

// SchedulerOption configures a Scheduler instance.
type SchedulerOption interface {
	applyScheduler(*schedulerOptions)
}

// schedulerOptionFunc implements SchedulerOption.
type schedulerOptionFunc func(*schedulerOptions)

func (f schedulerOptionFunc) applyScheduler(opts *schedulerOptions) { f(opts) }

// WithLogger configures structured logging of kernel lifecycle events
// (quiescence, explicit finish, process panics, delta-round counts at
// debug level). A nil logger (the default) discards everything.
func WithLogger(logger *logiface.Logger[*stumpyEvent]) SchedulerOption {
	return schedulerOptionFunc(func(opts *schedulerOptions) {
		opts.logger = logger
	})
}

// WithMaxDeltaRounds bounds the number of consecutive delta rounds the
// scheduler will run within a single time step before giving up with a
// CombinationalLoopError. n <= 0 means unbounded, matching the original
// tool's behavior (the default).
func WithMaxDeltaRounds(n int) SchedulerOption {
	return schedulerOptionFunc(func(opts *schedulerOptions) {
		opts.maxDeltaRounds = n
	})
}

// WithClock seeds the scheduler's initial simulation time instead of 0.
// Useful for test fixtures that resume a trace at a known offset.
func WithClock(now int) SchedulerOption {
	return schedulerOptionFunc(func(opts *schedulerOptions) {
		opts.clock = now
	})
}

// resolveSchedulerOptions applies SchedulerOption instances to schedulerOptions.
func resolveSchedulerOptions(opts []SchedulerOption) *schedulerOptions {
	cfg := &schedulerOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(cfg)
	}
	return cfg
}
