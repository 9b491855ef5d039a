package timings

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewOperationID returns a UUIDv7 identifying an operation.
//
// Each live operation obtains one of these at begin time and attaches
// it to the logger as an operationId scope, so every record emitted
// while the operation is in flight carries the same identifier.
//
// Being time-ordered, UUIDv7 identifiers sort chronologically, which
// simplifies log analysis across many operations.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewOperationID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
