// SPDX-License-Identifier: GPL-3.0-or-later

package timings

import (
	"log/slog"
	"slices"
	"sync"
)

// scopeSet holds the contextual attrs currently attached to a logging
// backend by [Logger.BeginScope].
//
// This type exists to consolidate the scope bookkeeping shared by
// [SlogLogger] and [ZapLogger]. The zero value is ready to use.
//
// Scopes are kept in insertion order. When two scopes carry the same
// key, the attrs of the scope opened later appear later in the record,
// so they win for consumers applying last-wins semantics.
type scopeSet struct {
	// entries holds the open scopes, oldest first.
	entries []scopeEntry

	// lastID is the identifier assigned to the most recent scope.
	lastID uint64

	// mu protects entries and lastID.
	mu sync.Mutex
}

// scopeEntry is a single open scope inside a [scopeSet].
type scopeEntry struct {
	// attrs are the attrs carried by this scope.
	attrs []slog.Attr

	// id identifies this scope within its set.
	id uint64
}

// push opens a scope carrying the given attrs and returns its handle.
//
// The attrs are copied, so the caller may reuse its slice afterwards.
func (ss *scopeSet) push(attrs []slog.Attr) Scope {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.lastID++
	id := ss.lastID
	ss.entries = append(ss.entries, scopeEntry{
		attrs: slices.Clone(attrs),
		id:    id,
	})
	return &scopeHandle{
		release: func() { ss.remove(id) },
	}
}

// remove closes the scope with the given id, if still open.
func (ss *scopeSet) remove(id uint64) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for idx, entry := range ss.entries {
		if entry.id == id {
			ss.entries = slices.Delete(ss.entries, idx, idx+1)
			return
		}
	}
}

// snapshot returns a flat copy of the attrs of all open scopes, oldest
// scope first.
func (ss *scopeSet) snapshot() []slog.Attr {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	var attrs []slog.Attr
	for _, entry := range ss.entries {
		attrs = append(attrs, entry.attrs...)
	}
	return attrs
}

// scopeHandle is the [Scope] returned by [scopeSet.push].
type scopeHandle struct {
	// once guarantees that release runs at most once.
	once sync.Once

	// release removes the scope from its set.
	release func()
}

var _ Scope = &scopeHandle{}

// Release implements [Scope].
func (sh *scopeHandle) Release() {
	sh.once.Do(sh.release)
}

// argsToAttrs converts loosely-typed args into attrs following the
// [slog.Logger.Log] conventions: [slog.Attr] values pass through and
// key-value pairs are combined into attrs.
func argsToAttrs(args []any) []slog.Attr {
	if len(args) <= 0 {
		return nil
	}
	return slog.Group("", args...).Value.Group()
}
