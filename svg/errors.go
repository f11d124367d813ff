package svg

import (
	"errors"
	"fmt"
)

// Sentinel errors for svg package.
var (
	// ErrSyntax is wrapped by every SyntaxError.
	ErrSyntax = errors.New("svg: syntax error")

	// ErrNoShapes is returned when a document has no drawable element.
	ErrNoShapes = errors.New("svg: document has no shapes")
)

// SyntaxError reports malformed path data, transforms or markup.
type SyntaxError struct {
	Offset int    // byte offset into the parsed string
	Msg    string // what was expected
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("svg: syntax error at offset %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
