package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInputRead indicates the input text could not be read. No output
	// has been created when it is returned.
	ErrInputRead = errors.New("engine: cannot read input")

	// ErrEmptyInput indicates no token survived tokenizing and trimming.
	ErrEmptyInput = errors.New("engine: no words to render")
)

// RasterizationError aborts a run: every animation needs the bitmap of
// every token.
type RasterizationError struct {
	Index   int
	Token   string
	Wrapped error
}

func (e *RasterizationError) Error() string {
	return fmt.Sprintf("render frame %d (%q): %v", e.Index, e.Token, e.Wrapped)
}

func (e *RasterizationError) Unwrap() error {
	return e.Wrapped
}
