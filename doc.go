// SPDX-License-Identifier: GPL-3.0-or-later

// Package timings augments structured loggers with timing instrumentation.
//
// # Core Abstraction
//
// The package is built around a single type:
//
//	op := timings.Begin(logger, "fetchProfile", slog.String("userId", userID))
//	defer op.Done()
//	// ... do the work ...
//	op.Complete()
//
// Each [Operation] represents one measured unit of work with exactly one
// terminal record. The record carries the message and args given at begin
// time plus two appended attrs: outcome (completed or abandoned) and
// elapsedMs (fractional milliseconds, four decimal places).
//
// # Entry Points
//
// [Begin] starts an operation that is abandoned unless explicitly
// completed. This suits code with distinct success and failure paths:
// reaching the success path calls [*Operation.Complete], while early
// returns leave the deferred [*Operation.Done] to record abandonment.
//
// [Time] starts an operation that completes when done. This suits
// straight-line code where finishing is succeeding:
//
//	defer timings.Time(logger, "flushQueue").Done()
//
// [At] pre-binds levels, a warning threshold, and a clock into a
// reusable [LevelledOperation]:
//
//	slow := timings.At(logger, slog.LevelDebug,
//		timings.WithWarningThreshold(500*time.Millisecond))
//	op := slow.Time("rebuildIndex")
//
// When the logger is enabled for neither configured level, [At] returns
// a shared disabled instance whose operations are inert. Hot paths can
// therefore instrument verbose operations without paying for identifier
// generation, clock reads, or scope bookkeeping when nobody listens.
//
// # Outcomes and Levels
//
// Completion records at the completion level and abandonment at the
// abandonment level, both chosen at begin time. [*Operation.CompleteAt]
// and [*Operation.CompleteWithAt] override the level for a single
// record. A warning threshold, when configured, escalates the terminal
// record of slower operations to [slog.LevelWarn]; escalation only ever
// raises severity.
//
// [*Operation.Cancel] finishes an operation silently: no record is
// emitted regardless of levels, and only [*Operation.Elapsed] keeps
// advancing.
//
// Severities are [slog.Level] values. [LevelTrace] and [LevelCritical]
// extend the named scale for callers using the conventional
// Trace..Critical range.
//
// # Scoped Context
//
// A live operation holds an operationId scope on its logger, so every
// record emitted through that logger while the operation is in flight
// carries the operation identifier (a time-ordered UUIDv7 from
// [NewOperationID]). [*Operation.EnrichWith] pushes further attrs the
// same way. All scopes owned by an operation are released exactly once
// when it finishes, even when the terminal record is suppressed.
//
// # Logger Adapters
//
// Operations log through the [Logger] interface. The package ships two
// implementations:
//
//   - [SlogLogger]: adapts a [*slog.Logger]
//   - [ZapLogger]: adapts a [*zap.Logger]
//
// Both are safe for concurrent use and decorate records carrying an
// error with err and errClass attrs, the latter computed by a
// configurable [ErrClassifier].
//
// By default, logging is disabled: [DiscardLogger] returns a no-op
// [Logger], following the library convention of not writing to
// stdout/stderr unless explicitly configured.
//
// # Design Boundaries
//
// This package intentionally measures and records single operations.
// The following are out of scope and should be implemented by
// higher-level packages:
//
//   - Distributed tracing and cross-process correlation
//   - Aggregation across operations (histograms, percentiles)
//   - Metrics export
//   - Retry and orchestration logic
//
// These concerns require state beyond a single operation's lifecycle,
// which would compromise the simplicity of the one-record contract.
package timings
