package compile

import "errors"

// Sentinel errors for fatal compile failures. Everything else that goes wrong
// during a compile degrades to a Warning on the result; these two abort the
// whole document because the derived tables would be structurally unsound.
var (
	// ErrMalformedSchema is returned when a $ref points at a component schema
	// that does not exist in the document. A dangling reference means whole
	// subtrees of fields would silently vanish from the agent-facing index,
	// so the compile fails instead of producing a partial schema.
	ErrMalformedSchema = errors.New("oastable: malformed schema")

	// ErrDuplicateOperationID is returned when two operations declare the
	// same explicit operationId. Table identity derives from the operation
	// ID, so the document cannot be compiled. IDs derived from method+path
	// never trigger this; those collisions are resolved with numeric
	// suffixes by the naming pass.
	ErrDuplicateOperationID = errors.New("oastable: duplicate operationId")
)

// IsMalformedSchemaErr returns true if err is or wraps ErrMalformedSchema.
func IsMalformedSchemaErr(err error) bool {
	return errors.Is(err, ErrMalformedSchema)
}

// IsDuplicateOperationIDErr returns true if err is or wraps ErrDuplicateOperationID.
func IsDuplicateOperationIDErr(err error) bool {
	return errors.Is(err, ErrDuplicateOperationID)
}
