package anim

import (
	"errors"
	"fmt"

	"github.com/san-kum/wordgif/internal/grid"
)

var (
	// ErrSessionClosed is returned by Append or Finish on a session that
	// has already been finished or aborted.
	ErrSessionClosed = errors.New("anim: session closed")

	// ErrFrameSize indicates a tile whose size differs from the session's.
	ErrFrameSize = errors.New("anim: frame size mismatch")

	// ErrInvalidDelay indicates a non-positive frame delay.
	ErrInvalidDelay = errors.New("anim: frame delay must be positive")

	// ErrMissingTile indicates AppendAll was given no tile for a cell.
	ErrMissingTile = errors.New("anim: missing tile for cell")
)

// EncodingError reports a session whose output could not be written.
type EncodingError struct {
	Cell    grid.Cell
	Path    string
	Wrapped error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s cell %s: %v", e.Path, e.Cell, e.Wrapped)
}

func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}
