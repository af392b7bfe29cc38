package compile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// methodOrder fixes the iteration order of operations within one path item.
// The document model stores paths and responses in maps, so "document order"
// is defined as sorted path order with methods in this sequence.
var methodOrder = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// OperationDescriptor captures one API operation after extraction. Created
// once per compile and read-only afterward.
type OperationDescriptor struct {
	// OperationID is the declared operationId, or a derived
	// "<method>_<path>" identifier when the document omits it.
	OperationID string

	// Explicit is true when OperationID came from the document rather than
	// being derived. Only explicit duplicates are fatal.
	Explicit bool

	Method string // upper-case HTTP method
	Path   string

	// Parameters are the merged path-item and operation parameters, in
	// declaration order.
	Parameters openapi3.Parameters

	// Request is the JSON request body schema, nil when absent.
	Request *openapi3.SchemaRef

	// Response is the schema of the first JSON response in ascending status
	// order, nil when no response carries a JSON body. ResponseStatus is the
	// status code it was taken from.
	Response       *openapi3.SchemaRef
	ResponseStatus string
}

// ExtractOperations walks every path/method pair in the document and builds
// operation descriptors in deterministic order. Two operations declaring the
// same explicit operationId make the document uncompilable.
func ExtractOperations(doc *openapi3.T) ([]OperationDescriptor, error) {
	if doc == nil || doc.Paths == nil {
		return nil, nil
	}

	pathMap := doc.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for p := range pathMap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var ops []OperationDescriptor
	explicit := make(map[string]string) // operationId -> "METHOD path" of first claimant

	for _, path := range paths {
		item := pathMap[path]
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			op := operationFor(item, method)
			if op == nil {
				continue
			}

			desc := OperationDescriptor{
				Method: strings.ToUpper(method),
				Path:   path,
			}

			if op.OperationID != "" {
				desc.OperationID = op.OperationID
				desc.Explicit = true
				if prev, taken := explicit[op.OperationID]; taken {
					return nil, fmt.Errorf("%w: %q used by %s and %s %s",
						ErrDuplicateOperationID, op.OperationID, prev, desc.Method, path)
				}
				explicit[op.OperationID] = desc.Method + " " + path
			} else {
				desc.OperationID = deriveOperationID(method, path)
			}

			// Path-item parameters apply to every operation under the path
			// and come first, matching their position in the document.
			desc.Parameters = append(desc.Parameters, item.Parameters...)
			desc.Parameters = append(desc.Parameters, op.Parameters...)

			if op.RequestBody != nil && op.RequestBody.Value != nil {
				desc.Request = pickJSONSchema(op.RequestBody.Value.Content)
			}
			desc.Response, desc.ResponseStatus = pickResponseSchema(op.Responses)

			ops = append(ops, desc)
		}
	}

	return ops, nil
}

func operationFor(item *openapi3.PathItem, method string) *openapi3.Operation {
	switch method {
	case "get":
		return item.Get
	case "post":
		return item.Post
	case "put":
		return item.Put
	case "patch":
		return item.Patch
	case "delete":
		return item.Delete
	case "head":
		return item.Head
	case "options":
		return item.Options
	}
	return nil
}

// deriveOperationID builds a fallback identifier from the method and path,
// e.g. GET /users/{id} -> "get__users_id".
func deriveOperationID(method, path string) string {
	id := method + "_" + path
	id = strings.ReplaceAll(id, "/", "_")
	id = strings.ReplaceAll(id, "{", "")
	id = strings.ReplaceAll(id, "}", "")
	return id
}

// pickJSONSchema selects the schema of the first JSON-compatible media type.
// Media types are checked in sorted order so the pick is stable.
func pickJSONSchema(content openapi3.Content) *openapi3.SchemaRef {
	if len(content) == 0 {
		return nil
	}
	mimes := make([]string, 0, len(content))
	for m := range content {
		mimes = append(mimes, m)
	}
	sort.Strings(mimes)

	for _, m := range mimes {
		if !isJSONMime(m) {
			continue
		}
		if mt := content[m]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}

// isJSONMime accepts application/json and structured-syntax suffixes such as
// application/problem+json.
func isJSONMime(mime string) bool {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return mime == "application/json" || strings.HasSuffix(mime, "+json")
}

// pickResponseSchema selects the first response carrying a JSON schema, in
// ascending status-code order with "default" considered last.
func pickResponseSchema(responses *openapi3.Responses) (*openapi3.SchemaRef, string) {
	if responses == nil {
		return nil, ""
	}
	m := responses.Map()
	codes := make([]string, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		// "default" and other non-numeric keys sort after numeric codes.
		di, dj := codes[i] == "default", codes[j] == "default"
		if di != dj {
			return dj
		}
		return codes[i] < codes[j]
	})

	for _, c := range codes {
		ref := m[c]
		if ref == nil || ref.Value == nil {
			continue
		}
		if schema := pickJSONSchema(ref.Value.Content); schema != nil {
			return schema, c
		}
	}
	return nil, ""
}
