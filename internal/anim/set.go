package anim

import (
	"errors"
	"fmt"
	"image"

	"github.com/san-kum/wordgif/internal/grid"
	"github.com/san-kum/wordgif/internal/logging"
)

// PathFor names the output file of cell: {base}{col}-{row}.gif.
func PathFor(base string, c grid.Cell) string {
	return fmt.Sprintf("%s%d-%d.gif", base, c.Col, c.Row)
}

// Set owns one session per grid cell. All sessions receive the same
// frames in the same order and are finished together.
type Set struct {
	spec     grid.Spec
	sessions map[grid.Cell]*Session
	frames   int
}

// OpenSet opens one session per cell of spec. If any output cannot be
// created, the sessions opened so far are aborted.
func OpenSet(base string, spec grid.Spec, opts Options) (*Set, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if opts.Size == (image.Point{}) {
		opts.Size = spec.TileSize()
	}

	set := &Set{spec: spec, sessions: make(map[grid.Cell]*Session, spec.NumCells())}
	for _, c := range spec.Cells() {
		s, err := Open(PathFor(base, c), c, opts)
		if err != nil {
			set.Abort()
			return nil, err
		}
		set.sessions[c] = s
	}
	return set, nil
}

func (s *Set) Spec() grid.Spec { return s.spec }

// Session returns the session of cell c, or nil.
func (s *Set) Session(c grid.Cell) *Session { return s.sessions[c] }

// Frames is the number of frames every session holds.
func (s *Set) Frames() int { return s.frames }

// Paths lists the output files row-major.
func (s *Set) Paths() []string {
	paths := make([]string, 0, len(s.sessions))
	for _, c := range s.spec.Cells() {
		paths = append(paths, s.sessions[c].Path())
	}
	return paths
}

// AppendAll appends tiles[c] to the session of every cell c with the
// same delay. Either every session receives the frame or none does.
func (s *Set) AppendAll(tiles map[grid.Cell]*image.RGBA, delayMs int) error {
	cells := s.spec.Cells()
	for _, c := range cells {
		tile, ok := tiles[c]
		if !ok || tile == nil {
			return fmt.Errorf("%w %s", ErrMissingTile, c)
		}
		if err := s.sessions[c].check(tile, delayMs); err != nil {
			return fmt.Errorf("cell %s: %w", c, err)
		}
	}
	for _, c := range cells {
		s.sessions[c].append(tiles[c], delayMs)
	}
	s.frames++
	return nil
}

// Finish finishes every session, continuing past failures. The returned
// error joins every session failure.
func (s *Set) Finish() error {
	var errs []error
	for _, c := range s.spec.Cells() {
		sess := s.sessions[c]
		if err := sess.Finish(); err != nil {
			logging.Logger().Warn("session failed", "cell", c.String(), "path", sess.Path(), "err", err)
			errs = append(errs, err)
			continue
		}
		logging.Logger().Info("wrote animation", "path", sess.Path(), "frames", s.frames)
	}
	return errors.Join(errs...)
}

// Abort closes every still-open session without encoding.
func (s *Set) Abort() {
	for _, sess := range s.sessions {
		if sess.Open() {
			_ = sess.Abort()
		}
	}
}
