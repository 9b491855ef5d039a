// SPDX-License-Identifier: GPL-3.0-or-later

package timings

import (
	"log/slog"
	"time"
)

// At returns a [*LevelledOperation] that starts operations completing at
// the given level.
//
// Unless overridden via [WithAbandonmentLevel], abandoned operations are
// recorded at the same level. The returned value is immutable and may be
// reused to start any number of operations:
//
//	verbose := timings.At(logger, timings.LevelTrace)
//	defer verbose.Time("scanBucket", slog.String("bucket", name)).Done()
//
// When the logger is enabled for neither the completion nor the
// abandonment level, At returns a shared disabled instance whose
// operations are inert: they measure nothing, open no scopes, and
// never emit. Callers cannot observe the difference except through
// [*Operation.ID] and [*Operation.Elapsed] being zero.
//
// This function panics if logger is nil.
func At(logger Logger, completionLevel slog.Level, opts ...Option) *LevelledOperation {
	if logger == nil {
		panic("timings: logger must not be nil")
	}
	lo := &LevelledOperation{
		abandonmentLevel: completionLevel,
		completionLevel:  completionLevel,
		logger:           logger,
		silent:           false,
		timeNow:          time.Now,
		warningThreshold: 0,
	}
	for _, opt := range opts {
		opt(lo)
	}
	if !logger.Enabled(lo.completionLevel) && !logger.Enabled(lo.abandonmentLevel) {
		return disabledOperation
	}
	return lo
}

// Option configures the [*LevelledOperation] returned by [At].
type Option func(lo *LevelledOperation)

// WithAbandonmentLevel records abandoned operations at the given level
// rather than at the completion level.
func WithAbandonmentLevel(level slog.Level) Option {
	return func(lo *LevelledOperation) {
		lo.abandonmentLevel = level
	}
}

// WithWarningThreshold escalates the terminal record of operations
// running longer than threshold to [slog.LevelWarn].
//
// The escalation only raises severity: operations already configured at
// [slog.LevelWarn] or above record at their configured level. A zero or
// negative threshold disables escalation, which is the default.
func WithWarningThreshold(threshold time.Duration) Option {
	return func(lo *LevelledOperation) {
		lo.warningThreshold = threshold
	}
}

// WithTimeNow reads timestamps through timeNow (configurable for testing).
func WithTimeNow(timeNow func() time.Time) Option {
	return func(lo *LevelledOperation) {
		lo.timeNow = timeNow
	}
}

// LevelledOperation starts operations with pre-bound levels, threshold,
// and clock. Construct it with [At].
//
// The type is immutable after [At] returns and is safe for concurrent
// use when its [Logger] is.
type LevelledOperation struct {
	// abandonmentLevel is the severity of the abandoned outcome.
	abandonmentLevel slog.Level

	// completionLevel is the severity of the completed outcome.
	completionLevel slog.Level

	// logger receives the records of the started operations.
	logger Logger

	// silent marks the shared disabled instance.
	silent bool

	// timeNow reads the current time.
	timeNow func() time.Time

	// warningThreshold escalates slower operations to warnings, zero when unset.
	warningThreshold time.Duration
}

// disabledOperation is returned by [At] when neither level is enabled.
var disabledOperation = &LevelledOperation{
	abandonmentLevel: slog.LevelInfo,
	completionLevel:  slog.LevelInfo,
	logger:           discardLogger{},
	silent:           true,
	timeNow:          time.Now,
	warningThreshold: 0,
}

// silentOperation is the inert operation started by [disabledOperation].
var silentOperation = &Operation{
	abandonmentLevel: slog.LevelInfo,
	args:             nil,
	behavior:         behaviorSilent,
	completionLevel:  slog.LevelInfo,
	err:              nil,
	id:               "",
	logger:           discardLogger{},
	msg:              "",
	scopes:           nil,
	start:            time.Time{},
	stop:             time.Time{},
	timeNow:          time.Now,
	warningThreshold: 0,
}

// Begin starts measuring an operation that must be completed explicitly,
// like [Begin] but with this instance's levels, threshold, and clock.
//
// This method panics if msg is empty.
func (lo *LevelledOperation) Begin(msg string, args ...any) *Operation {
	return lo.begin(behaviorAbandon, msg, args)
}

// Time starts measuring an operation that completes when done, like
// [Time] but with this instance's levels, threshold, and clock.
//
// This method panics if msg is empty.
func (lo *LevelledOperation) Time(msg string, args ...any) *Operation {
	return lo.begin(behaviorComplete, msg, args)
}

// begin starts an operation with the given default behavior.
func (lo *LevelledOperation) begin(behavior completionBehavior, msg string, args []any) *Operation {
	if msg == "" {
		panic("timings: msg must not be empty")
	}
	if lo.silent {
		return silentOperation
	}
	id := NewOperationID()
	scope := lo.logger.BeginScope(slog.String(OperationIDKey, id))
	return &Operation{
		abandonmentLevel: lo.abandonmentLevel,
		args:             args,
		behavior:         behavior,
		completionLevel:  lo.completionLevel,
		err:              nil,
		id:               id,
		logger:           lo.logger,
		msg:              msg,
		scopes:           []Scope{scope},
		start:            lo.timeNow(),
		stop:             time.Time{},
		timeNow:          lo.timeNow,
		warningThreshold: lo.warningThreshold,
	}
}
