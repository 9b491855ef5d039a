// SPDX-License-Identifier: GPL-3.0-or-later

package timings

import "log/slog"

// Additional severity levels beyond the four named by [log/slog].
//
// The [slog.Level] scale is numeric and leaves a gap of four between
// named levels, which is the documented way to add custom severities.
// These constants extend the scale downwards and upwards so that callers
// can configure operations at the conventional Trace..Critical range.
const (
	// LevelTrace is for high-volume diagnostic events below [slog.LevelDebug].
	LevelTrace slog.Level = slog.LevelDebug - 4

	// LevelCritical is for failures more severe than [slog.LevelError].
	LevelCritical slog.Level = slog.LevelError + 4
)

// Default severity levels used by [Begin] and [Time].
const (
	// DefaultCompletionLevel is the level at which the default-configured
	// entry points record a completed operation.
	DefaultCompletionLevel slog.Level = slog.LevelInfo

	// DefaultAbandonmentLevel is the level at which the default-configured
	// entry points record an abandoned operation.
	DefaultAbandonmentLevel slog.Level = slog.LevelWarn
)
