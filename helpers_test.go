// SPDX-License-Identifier: GPL-3.0-or-later

package timings

import (
	"context"
	"log/slog"
	"time"

	"github.com/bassosimone/slogstub"
)

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
func newCapturingLogger() (*SlogLogger, *[]slog.Record) {
	return newCapturingLoggerAt(LevelTrace)
}

// newCapturingLoggerAt is like [newCapturingLogger] but only enables
// records at or above the given level.
func newCapturingLoggerAt(minLevel slog.Level) (*SlogLogger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return level >= minLevel
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}
	return NewSlogLogger(slog.New(handler)), &records
}

// recordAttrs flattens the attrs of a record into a map. When the same key
// appears more than once, the last occurrence wins, mirroring how most
// record consumers resolve duplicated keys.
func recordAttrs(record slog.Record) map[string]any {
	attrs := make(map[string]any)
	record.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Resolve().Any()
		return true
	})
	return attrs
}

// funcLogger is a [Logger] whose behavior is configurable through
// function fields.
type funcLogger struct {
	// BeginScopeFunc implements BeginScope.
	BeginScopeFunc func(attrs ...slog.Attr) Scope

	// EnabledFunc implements Enabled.
	EnabledFunc func(level slog.Level) bool

	// LogFunc implements Log.
	LogFunc func(level slog.Level, err error, msg string, args ...any)
}

var _ Logger = &funcLogger{}

// Enabled implements [Logger].
func (fl *funcLogger) Enabled(level slog.Level) bool {
	return fl.EnabledFunc(level)
}

// Log implements [Logger].
func (fl *funcLogger) Log(level slog.Level, err error, msg string, args ...any) {
	fl.LogFunc(level, err, msg, args...)
}

// BeginScope implements [Logger].
func (fl *funcLogger) BeginScope(attrs ...slog.Attr) Scope {
	return fl.BeginScopeFunc(attrs...)
}

// countingScope is a [Scope] that counts how many times it was released.
type countingScope struct {
	// releases is the number of Release calls so far.
	releases int
}

var _ Scope = &countingScope{}

// Release implements [Scope].
func (cs *countingScope) Release() {
	cs.releases++
}

// testClock is a manually-advanced clock for deterministic timing.
type testClock struct {
	// now is the current fake time.
	now time.Time
}

// newTestClock returns a [*testClock] starting at a fixed instant.
func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, time.March, 15, 9, 58, 15, 0, time.UTC)}
}

// Now returns the current fake time.
func (tc *testClock) Now() time.Time {
	return tc.now
}

// Advance moves the fake time forward by delta.
func (tc *testClock) Advance(delta time.Duration) {
	tc.now = tc.now.Add(delta)
}
