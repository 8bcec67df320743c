package dataset

import (
	"errors"
	"fmt"
)

// ErrMalformed indicates an embedded literal could not be parsed into a table.
var ErrMalformed = errors.New("failed to parse dataset")

// ParseError locates a parse failure inside a dataset literal.
type ParseError struct {
	Dataset string
	Line    int    // 1-based line in the literal, 0 when not line specific
	Column  string // column name, empty when not column specific
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("%s %q: line %d, column %q: %v", ErrMalformed, e.Dataset, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s %q: line %d: %v", ErrMalformed, e.Dataset, e.Line, e.Err)
	default:
		return fmt.Sprintf("%s %q: %v", ErrMalformed, e.Dataset, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformed for every ParseError so callers can match on the sentinel.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}
