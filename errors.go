package oastable

import (
	"errors"

	"github.com/oastable/oastable/internal/compile"
)

// Sentinel errors for the two fatal compile failures. Everything else that
// goes wrong during a compile degrades to a Warning on the result; these
// abort the whole document, because a partially compiled schema would
// silently hide fields from the agent-facing search index.
//
// Use the Is*Err helpers to classify wrapped errors.
var (
	// ErrMalformedSchema reports a dangling $ref: the reference target does
	// not exist in the document's component table.
	ErrMalformedSchema = compile.ErrMalformedSchema

	// ErrDuplicateOperationID reports two operations declaring the same
	// explicit operationId. Derived method+path identifiers never trigger
	// this; their collisions get numeric suffixes during naming.
	ErrDuplicateOperationID = compile.ErrDuplicateOperationID
)

// IsMalformedSchemaErr returns true if err is or wraps ErrMalformedSchema.
func IsMalformedSchemaErr(err error) bool {
	return errors.Is(err, ErrMalformedSchema)
}

// IsDuplicateOperationIDErr returns true if err is or wraps ErrDuplicateOperationID.
func IsDuplicateOperationIDErr(err error) bool {
	return errors.Is(err, ErrDuplicateOperationID)
}
