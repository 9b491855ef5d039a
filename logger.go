//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/nop/blob/main/slogger.go
//

package timings

import "log/slog"

// Logger is the structured logger instrumented by an [*Operation].
//
// By using an abstraction we allow for unit testing and alternative
// logging backends. The package ships two implementations:
//
//   - [SlogLogger] adapts a [*slog.Logger]
//   - [ZapLogger] adapts a [*zap.Logger]
//
// Severities are expressed as [slog.Level] values regardless of the
// backend. Implementations must be safe for concurrent use: distinct
// operations may share a single Logger across goroutines.
type Logger interface {
	// Enabled reports whether records at the given level would be emitted.
	Enabled(level slog.Level) bool

	// Log emits a single record. The err argument is optional and, when
	// non-nil, implementations attach it to the record alongside its
	// error class. The args follow the [slog.Logger.Log] conventions:
	// [slog.Attr] values and loose key-value pairs are both accepted.
	Log(level slog.Level, err error, msg string, args ...any)

	// BeginScope pushes contextual attrs that implementations attach to
	// every subsequent record until the returned [Scope] is released.
	BeginScope(attrs ...slog.Attr) Scope
}

// Scope is contextual state pushed by [Logger.BeginScope].
//
// Release removes the scope's attrs from subsequent records. Release is
// idempotent: calling it more than once has no further effect. Scopes
// may be released in any order.
type Scope interface {
	Release()
}

// DiscardLogger returns the default [Logger] to use.
//
// The default is a no-op logger that discards all output. This follows the
// library convention of not writing to stdout/stderr unless explicitly configured.
//
// Use [NewSlogLogger] or [NewZapLogger] for emitting logs.
func DiscardLogger() Logger {
	return discardLogger{}
}

// discardLogger is a no-op [Logger] that discards all log messages.
type discardLogger struct{}

var _ Logger = discardLogger{}

// Enabled implements [Logger].
func (discardLogger) Enabled(level slog.Level) bool {
	return false
}

// Log implements [Logger].
func (discardLogger) Log(level slog.Level, err error, msg string, args ...any) {
	// nothing
}

// BeginScope implements [Logger].
func (discardLogger) BeginScope(attrs ...slog.Attr) Scope {
	return discardScope{}
}

// discardScope is the inert [Scope] returned by [discardLogger].
type discardScope struct{}

var _ Scope = discardScope{}

// Release implements [Scope].
func (discardScope) Release() {
	// nothing
}
