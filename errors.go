package jsondoc

import (
	"errors"
	"fmt"
)

// Error definitions for engine operations
var (
	ErrPointerIsNull   = errors.New("jsondoc: nil reference")
	ErrInvalidArgument = errors.New("jsondoc: invalid argument")
	ErrEncoding        = errors.New("jsondoc: invalid encoding state")
	// ErrMaxDepthExceeded is an encoding-state error: errors.Is reports
	// ErrEncoding for it.
	ErrMaxDepthExceeded       = fmt.Errorf("jsondoc: maximum nesting depth exceeded: %w", ErrEncoding)
	ErrInsufficientBufferSize = errors.New("jsondoc: insufficient buffer size")
	ErrJSONTypeMismatch       = errors.New("jsondoc: json type mismatch")
	ErrElementNotFound        = errors.New("jsondoc: element not found")
	ErrIndexOutOfBounds       = errors.New("jsondoc: index out of bounds")
)

// ParseError describes why and where a parse was rejected. The whole
// parse aborts at the first error; no partial tree is returned.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsondoc: %s at offset %d", e.Message, e.Offset)
}

func parseErrorf(offset int, format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Offset: offset}
}
