package keyvalue

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSyntax = errors.New("invalid key/value syntax")
	// ErrUnsupportedValue is returned by Field.Assign for values it cannot convert.
	ErrUnsupportedValue = errors.New("unsupported key/value field value")
)

// SyntaxError reports a non-blank line without the separator.
type SyntaxError struct {
	Line      int
	Text      string
	Separator string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s in line %d %q, expected: key %s value", ErrInvalidSyntax, e.Line, e.Text, e.Separator)
}

func (e *SyntaxError) Unwrap() error {
	return ErrInvalidSyntax
}

// ValidationError is what a Field reports when stored text does not parse.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
