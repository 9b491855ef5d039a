// SPDX-License-Identifier: GPL-3.0-or-later

package timings

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger returns a new [*ZapLogger] wrapping the given logger.
//
// The logger argument is the [*zap.Logger] that receives the records.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{
		ErrClassifier: DefaultErrClassifier,
		Logger:        logger,
		scopes:        scopeSet{},
	}
}

// ZapLogger adapts a [*zap.Logger] to the [Logger] interface.
//
// Scope and error handling follow the same rules as [SlogLogger]: the
// attrs of all open scopes are appended after the caller's args, oldest
// scope first, and err and errClass fields are appended last when a
// record carries an error.
//
// Severities map onto the coarser zap scale: everything below
// [slog.LevelInfo] becomes [zapcore.DebugLevel], everything at or above
// [slog.LevelError] becomes [zapcore.ErrorLevel], and the two bands in
// between map to [zapcore.InfoLevel] and [zapcore.WarnLevel].
//
// All fields are safe to modify after construction but before first use.
// The type is safe for concurrent use and must not be copied.
type ZapLogger struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewZapLogger] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the wrapped [*zap.Logger].
	//
	// Set by [NewZapLogger] to the user-provided logger.
	Logger *zap.Logger

	// scopes tracks the currently open scopes.
	scopes scopeSet
}

var _ Logger = &ZapLogger{}

// Enabled implements [Logger].
func (zl *ZapLogger) Enabled(level slog.Level) bool {
	return zl.Logger.Core().Enabled(zapLevel(level))
}

// Log implements [Logger].
func (zl *ZapLogger) Log(level slog.Level, err error, msg string, args ...any) {
	entry := zl.Logger.Check(zapLevel(level), msg)
	if entry == nil {
		return
	}
	attrs := argsToAttrs(args)
	scopes := zl.scopes.snapshot()
	fields := make([]zap.Field, 0, len(attrs)+len(scopes)+2)
	for _, attr := range attrs {
		fields = append(fields, zapField(attr))
	}
	for _, attr := range scopes {
		fields = append(fields, zapField(attr))
	}
	if err != nil {
		fields = append(fields,
			zap.NamedError("err", err),
			zap.String("errClass", zl.ErrClassifier.Classify(err)),
		)
	}
	entry.Write(fields...)
}

// BeginScope implements [Logger].
func (zl *ZapLogger) BeginScope(attrs ...slog.Attr) Scope {
	return zl.scopes.push(attrs)
}

// zapLevel maps a [slog.Level] onto the [zapcore.Level] scale.
func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level < slog.LevelInfo:
		return zapcore.DebugLevel
	case level < slog.LevelWarn:
		return zapcore.InfoLevel
	case level < slog.LevelError:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// zapField converts a resolved [slog.Attr] into a [zap.Field].
func zapField(attr slog.Attr) zap.Field {
	return zap.Any(attr.Key, attr.Value.Resolve().Any())
}
