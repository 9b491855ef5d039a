// SPDX-License-Identifier: GPL-3.0-or-later

package timings

import (
	"log/slog"
	"math"
	"time"
)

// Attr keys used by the records written by an [*Operation].
const (
	// OperationIDKey is the attr key carrying the operation identifier.
	OperationIDKey = "operationId"

	// OutcomeKey is the attr key carrying the outcome of an operation.
	OutcomeKey = "outcome"

	// ElapsedKey is the attr key carrying the elapsed time in milliseconds.
	ElapsedKey = "elapsedMs"
)

// Values of the [OutcomeKey] attr.
const (
	// OutcomeCompleted marks an operation that reached its success path.
	OutcomeCompleted = "completed"

	// OutcomeAbandoned marks an operation that finished without completing.
	OutcomeAbandoned = "abandoned"
)

// completionBehavior selects what the terminal [*Operation.Done] call does.
type completionBehavior int

const (
	// behaviorSilent suppresses any further record.
	behaviorSilent completionBehavior = iota

	// behaviorAbandon records the abandoned outcome.
	behaviorAbandon

	// behaviorComplete records the completed outcome.
	behaviorComplete
)

// Begin starts measuring an operation that must be completed explicitly.
//
// Unless [*Operation.Complete] or one of its variants runs before
// [*Operation.Done], the operation is recorded as abandoned. Use this
// entry point when only a specific code path represents success:
//
//	op := timings.Begin(logger, "fetchProfile", slog.String("userId", userID))
//	defer op.Done()
//	profile, err := fetch(ctx, userID)
//	if err != nil {
//		op.SetError(err)
//		return nil, err
//	}
//	op.Complete()
//	return profile, nil
//
// The completion level is [DefaultCompletionLevel] and the abandonment
// level is [DefaultAbandonmentLevel]. Use [At] to customize levels and
// to configure a warning threshold.
//
// This function panics if logger is nil or msg is empty.
func Begin(logger Logger, msg string, args ...any) *Operation {
	return At(logger, DefaultCompletionLevel,
		WithAbandonmentLevel(DefaultAbandonmentLevel)).Begin(msg, args...)
}

// Time starts measuring an operation that completes when done.
//
// The operation is recorded as completed by [*Operation.Done], so a
// single deferred call suffices for straight-line timing:
//
//	defer timings.Time(logger, "flushQueue", slog.Int("queued", queued)).Done()
//
// The levels are the same as for [Begin].
//
// This function panics if logger is nil or msg is empty.
func Time(logger Logger, msg string, args ...any) *Operation {
	return At(logger, DefaultCompletionLevel,
		WithAbandonmentLevel(DefaultAbandonmentLevel)).Time(msg, args...)
}

// Operation measures a single unit of work and emits one structured
// record describing its outcome.
//
// Obtain a live Operation from [Begin], [Time], or a [*LevelledOperation],
// then finish it with exactly one terminal call: [*Operation.Complete]
// or a variant, [*Operation.Abandon], [*Operation.Cancel], or the
// usually-deferred [*Operation.Done]. The first terminal call wins and
// later ones are no-ops.
//
// While the operation is live it keeps an operationId scope open on its
// [Logger], so records emitted by unrelated code through the same Logger
// carry the identifier too. Every scope owned by the operation is
// released when it finishes, whatever the outcome and whether or not
// the terminal record was emitted.
//
// A single goroutine drives a given Operation. Distinct Operations are
// independent and may run concurrently when the shared [Logger] is safe
// for concurrent use.
type Operation struct {
	// abandonmentLevel is the severity of the abandoned outcome.
	abandonmentLevel slog.Level

	// args holds the structured args captured at begin time.
	args []any

	// behavior selects what Done does.
	behavior completionBehavior

	// completionLevel is the severity of the completed outcome.
	completionLevel slog.Level

	// err is the error attached via SetError, if any.
	err error

	// id is the operation identifier, empty when inert.
	id string

	// logger receives the terminal record and owns the scope state.
	logger Logger

	// msg is the message given at begin time.
	msg string

	// scopes are the open scopes owned by this operation.
	scopes []Scope

	// start is when measurement began, zero when inert.
	start time.Time

	// stop is when the terminal record was written, zero while live.
	stop time.Time

	// timeNow reads the current time.
	timeNow func() time.Time

	// warningThreshold escalates slower operations to warnings, zero when unset.
	warningThreshold time.Duration
}

// Elapsed returns how long the operation has been running.
//
// While the operation is live the value grows with each call. After a
// terminal record has been written the value is frozen. [*Operation.Cancel]
// intentionally does not freeze it: the caller may keep observing the
// advancing duration after cancelling.
//
// The value is never negative, and it is zero for the inert operations
// produced by a disabled [*LevelledOperation].
func (op *Operation) Elapsed() time.Duration {
	if op.start.IsZero() {
		return 0
	}
	end := op.stop
	if end.IsZero() {
		end = op.timeNow()
	}
	elapsed := end.Sub(op.start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// ID returns the identifier carried by the operation's records.
//
// The identifier is empty for the inert operations produced by a
// disabled [*LevelledOperation].
func (op *Operation) ID() string {
	return op.id
}

// EnrichWith opens an additional scope carrying the given attrs, so that
// they appear on the terminal record and on any other record emitted
// through the [Logger] while the operation is live.
//
// The scope is released together with the operation's other scopes.
// Returns op to allow chaining. Has no effect once the operation has
// finished.
func (op *Operation) EnrichWith(attrs ...slog.Attr) *Operation {
	if op.behavior != behaviorSilent && len(attrs) > 0 {
		op.scopes = append(op.scopes, op.logger.BeginScope(attrs...))
	}
	return op
}

// SetError attaches err to the operation so that whichever terminal
// record is eventually written carries the error and its error class.
//
// Attaching an error never changes the outcome: an operation completed
// with an error attached is still recorded as completed.
//
// Returns op to allow chaining. Has no effect once the operation has
// finished.
func (op *Operation) SetError(err error) *Operation {
	if op.behavior != behaviorSilent {
		op.err = err
	}
	return op
}

// Complete records the operation as completed at the configured
// completion level.
func (op *Operation) Complete() {
	if op.behavior == behaviorSilent {
		return
	}
	op.write(op.completionLevel, OutcomeCompleted)
}

// CompleteAt records the operation as completed at the given level
// rather than the configured completion level.
func (op *Operation) CompleteAt(level slog.Level) {
	if op.behavior == behaviorSilent {
		return
	}
	op.write(level, OutcomeCompleted)
}

// CompleteWith is like [*Operation.Complete] but additionally attaches
// a result attr to the record.
//
// This method panics if key is empty.
func (op *Operation) CompleteWith(key string, value any) {
	op.CompleteWithAt(op.completionLevel, key, value)
}

// CompleteWithAt is like [*Operation.CompleteAt] but additionally
// attaches a result attr to the record.
//
// This method panics if key is empty.
func (op *Operation) CompleteWithAt(level slog.Level, key string, value any) {
	if key == "" {
		panic("timings: key must not be empty")
	}
	if op.behavior == behaviorSilent {
		return
	}
	op.scopes = append(op.scopes, op.logger.BeginScope(slog.Any(key, value)))
	op.write(level, OutcomeCompleted)
}

// Abandon records the operation as abandoned at the configured
// abandonment level without waiting for [*Operation.Done].
func (op *Operation) Abandon() {
	if op.behavior == behaviorSilent {
		return
	}
	op.write(op.abandonmentLevel, OutcomeAbandoned)
}

// Cancel finishes the operation without recording anything.
//
// All scopes owned by the operation are released and any later
// Complete, Abandon, or [*Operation.Done] call is a no-op. Cancel does
// not freeze [*Operation.Elapsed].
//
// Has no effect once the operation has finished.
func (op *Operation) Cancel() {
	if op.behavior == behaviorSilent {
		return
	}
	op.behavior = behaviorSilent
	op.releaseScopes()
}

// Done finishes the operation according to what already happened:
//
//   - after [Begin], the operation is recorded as abandoned
//   - after [Time], the operation is recorded as completed
//   - after a terminal Complete, Abandon, or Cancel call, nothing is recorded
//
// Use it with defer right after obtaining the operation.
func (op *Operation) Done() {
	switch op.behavior {
	case behaviorSilent:
		// nothing
	case behaviorAbandon:
		op.write(op.abandonmentLevel, OutcomeAbandoned)
	case behaviorComplete:
		op.write(op.completionLevel, OutcomeCompleted)
	default:
		panic("timings: invalid completion behavior")
	}
}

// write emits the terminal record and releases all owned scopes.
func (op *Operation) write(level slog.Level, outcome string) {
	if op.stop.IsZero() {
		op.stop = op.timeNow()
	}
	op.behavior = behaviorSilent
	elapsed := op.Elapsed()
	if op.warningThreshold > 0 && elapsed > op.warningThreshold && level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	if op.logger.Enabled(level) {
		args := make([]any, 0, len(op.args)+2)
		args = append(args, op.args...)
		args = append(args,
			slog.String(OutcomeKey, outcome),
			slog.Float64(ElapsedKey, elapsedMillis(elapsed)),
		)
		op.logger.Log(level, op.err, op.msg, args...)
	}
	op.releaseScopes()
}

// releaseScopes releases all owned scopes, newest first.
func (op *Operation) releaseScopes() {
	for idx := len(op.scopes) - 1; idx >= 0; idx-- {
		op.scopes[idx].Release()
	}
	op.scopes = nil
}

// elapsedMillis converts elapsed into fractional milliseconds rounded
// to four decimal places.
func elapsedMillis(elapsed time.Duration) float64 {
	millis := float64(elapsed) / float64(time.Millisecond)
	return math.Round(millis*1e4) / 1e4
}
