package loader

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a StructuralError.
type ErrorKind int

const (
	// KindUnsupportedScheme marks a buffer URI that is not an inline octet-stream data URI.
	KindUnsupportedScheme ErrorKind = iota + 1
	// KindMalformedBase64 marks a data URI payload that is not valid base64.
	KindMalformedBase64
	// KindMisalignedBuffer marks a byte range whose length is not a multiple of the element size.
	KindMisalignedBuffer
	// KindIndexOutOfRange marks a cross-reference index that points outside its list.
	KindIndexOutOfRange
	// KindRangeOutOfBounds marks a buffer view range that exceeds its buffer.
	KindRangeOutOfBounds
	// KindInvalidTopology marks a vertex list that does not form whole triangles.
	KindInvalidTopology
	// KindTypeMismatch marks an accessor whose component/element type does not fit its use.
	KindTypeMismatch
	// KindPrimitiveCount marks a mesh that does not have exactly one primitive.
	KindPrimitiveCount
	// KindMissingMesh marks a node without a mesh reference.
	KindMissingMesh
	// KindMissingField marks a required field that was absent from the document.
	KindMissingField
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedScheme:
		return "unsupported scheme"
	case KindMalformedBase64:
		return "malformed base64"
	case KindMisalignedBuffer:
		return "misaligned buffer"
	case KindIndexOutOfRange:
		return "index out of range"
	case KindRangeOutOfBounds:
		return "range out of bounds"
	case KindInvalidTopology:
		return "invalid topology"
	case KindTypeMismatch:
		return "type mismatch"
	case KindPrimitiveCount:
		return "primitive count"
	case KindMissingMesh:
		return "missing mesh"
	case KindMissingField:
		return "missing field"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is matching against a StructuralError of the same kind.
var (
	ErrUnsupportedScheme = &StructuralError{Kind: KindUnsupportedScheme}
	ErrMalformedBase64   = &StructuralError{Kind: KindMalformedBase64}
	ErrMisalignedBuffer  = &StructuralError{Kind: KindMisalignedBuffer}
	ErrIndexOutOfRange   = &StructuralError{Kind: KindIndexOutOfRange}
	ErrRangeOutOfBounds  = &StructuralError{Kind: KindRangeOutOfBounds}
	ErrInvalidTopology   = &StructuralError{Kind: KindInvalidTopology}
	ErrTypeMismatch      = &StructuralError{Kind: KindTypeMismatch}
	ErrPrimitiveCount    = &StructuralError{Kind: KindPrimitiveCount}
	ErrMissingMesh       = &StructuralError{Kind: KindMissingMesh}
	ErrMissingField      = &StructuralError{Kind: KindMissingField}
)

var (
	errUnsupportedFormat = errors.New("unsupported scene format")
)

// StructuralError reports a malformed document. Every StructuralError is fatal for the load.
// Entity and Index identify the offending item (e.g. "accessor", 3); Index is -1 when not applicable.
type StructuralError struct {
	Kind   ErrorKind
	Entity string
	Index  int
	Detail string
}

// newStructuralError builds a StructuralError with a formatted detail message.
//
// Parameters:
//   - kind: the error classification
//   - entity: the kind of item at fault ("node", "mesh", "accessor", ...)
//   - index: the item's index, or -1
//   - format: fmt-style detail describing expected vs. actual
//   - args: format arguments
//
// Returns:
//   - *StructuralError: the populated error
func newStructuralError(kind ErrorKind, entity string, index int, format string, args ...any) *StructuralError {
	return &StructuralError{
		Kind:   kind,
		Entity: entity,
		Index:  index,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *StructuralError) Error() string {
	msg := "structural error (" + e.Kind.String() + ")"
	if e.Entity != "" {
		if e.Index >= 0 {
			msg += fmt.Sprintf(" in %s %d", e.Entity, e.Index)
		} else {
			msg += " in " + e.Entity
		}
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports whether target is a StructuralError of the same Kind.
func (e *StructuralError) Is(target error) bool {
	t, ok := target.(*StructuralError)
	return ok && t.Kind == e.Kind
}

// ParseError wraps a failure to decode the document text itself.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
