// SPDX-License-Identifier: GPL-3.0-or-later

package timings

import (
	"context"
	"log/slog"
)

// NewSlogLogger returns a new [*SlogLogger] wrapping the given logger.
//
// The logger argument is the [*slog.Logger] that receives the records.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{
		ErrClassifier: DefaultErrClassifier,
		Logger:        logger,
		scopes:        scopeSet{},
	}
}

// SlogLogger adapts a [*slog.Logger] to the [Logger] interface.
//
// Records pass through to the wrapped logger with the attrs of all
// open scopes appended after the caller's args, oldest scope first.
// When a record carries an error, err and errClass attrs are appended
// last.
//
// All fields are safe to modify after construction but before first use.
// The type is safe for concurrent use and must not be copied.
type SlogLogger struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewSlogLogger] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the wrapped [*slog.Logger].
	//
	// Set by [NewSlogLogger] to the user-provided logger.
	Logger *slog.Logger

	// scopes tracks the currently open scopes.
	scopes scopeSet
}

var _ Logger = &SlogLogger{}

// Enabled implements [Logger].
func (sl *SlogLogger) Enabled(level slog.Level) bool {
	return sl.Logger.Enabled(context.Background(), level)
}

// Log implements [Logger].
func (sl *SlogLogger) Log(level slog.Level, err error, msg string, args ...any) {
	all := make([]any, 0, len(args)+4)
	all = append(all, args...)
	for _, attr := range sl.scopes.snapshot() {
		all = append(all, attr)
	}
	if err != nil {
		all = append(all,
			slog.Any("err", err),
			slog.String("errClass", sl.ErrClassifier.Classify(err)),
		)
	}
	sl.Logger.Log(context.Background(), level, msg, all...)
}

// BeginScope implements [Logger].
func (sl *SlogLogger) BeginScope(attrs ...slog.Attr) Scope {
	return sl.scopes.push(attrs)
}
