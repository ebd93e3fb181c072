package anim

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"

	"github.com/san-kum/wordgif/internal/grid"
	"github.com/san-kum/wordgif/internal/logging"
)

// Options configures every session of a run.
type Options struct {
	// Size of every frame, normally grid.Spec.TileSize().
	Size image.Point
	// Palette frames are quantized to. Nil uses Fallback().
	Palette color.Palette
	// Encoder defaults to an endlessly looping GIFEncoder.
	Encoder Encoder
	// Create opens the output stream. Defaults to os.Create.
	Create func(path string) (io.WriteCloser, error)
}

func (o Options) withDefaults() Options {
	if o.Palette == nil {
		o.Palette = Fallback()
	}
	if o.Encoder == nil {
		o.Encoder = GIFEncoder{LoopCount: 0}
	}
	if o.Create == nil {
		o.Create = func(path string) (io.WriteCloser, error) { return os.Create(path) }
	}
	return o
}

type state int

const (
	stateOpen state = iota
	stateFinished
	stateAborted
)

// Session accumulates the frames of one output animation.
//
// A session is opened, receives frames through Append and is closed
// exactly once by Finish or Abort. Calls after that return
// ErrSessionClosed.
type Session struct {
	cell   grid.Cell
	path   string
	out    io.WriteCloser
	opts   Options
	frames []Frame
	state  state
}

// Open creates the output stream at path for the animation of cell.
func Open(path string, cell grid.Cell, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	if opts.Size.X <= 0 || opts.Size.Y <= 0 {
		return nil, fmt.Errorf("anim: invalid frame size %v", opts.Size)
	}

	out, err := opts.Create(path)
	if err != nil {
		return nil, &EncodingError{Cell: cell, Path: path, Wrapped: err}
	}
	return &Session{
		cell: cell,
		path: path,
		out:  out,
		opts: opts,
	}, nil
}

func (s *Session) Cell() grid.Cell { return s.cell }
func (s *Session) Path() string    { return s.path }
func (s *Session) Len() int        { return len(s.frames) }
func (s *Session) Open() bool      { return s.state == stateOpen }

// Frames returns the buffered frames. The slice must not be modified.
func (s *Session) Frames() []Frame { return s.frames }

// Append quantizes tile to the session palette and buffers it with its
// own delay.
func (s *Session) Append(tile image.Image, delayMs int) error {
	if err := s.check(tile, delayMs); err != nil {
		return err
	}
	s.append(tile, delayMs)
	return nil
}

func (s *Session) check(tile image.Image, delayMs int) error {
	if s.state != stateOpen {
		return ErrSessionClosed
	}
	if delayMs <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDelay, delayMs)
	}
	if got := tile.Bounds().Size(); got != s.opts.Size {
		return fmt.Errorf("%w: got %v, want %v", ErrFrameSize, got, s.opts.Size)
	}
	return nil
}

func (s *Session) append(tile image.Image, delayMs int) {
	pm := image.NewPaletted(image.Rect(0, 0, s.opts.Size.X, s.opts.Size.Y), s.opts.Palette)
	draw.Draw(pm, pm.Bounds(), tile, tile.Bounds().Min, draw.Src)
	s.frames = append(s.frames, Frame{Image: pm, DelayMs: delayMs})
}

// Finish encodes the buffered frames, closes the stream and releases the
// frames.
func (s *Session) Finish() error {
	if s.state != stateOpen {
		return ErrSessionClosed
	}
	s.state = stateFinished

	err := s.opts.Encoder.Encode(s.out, s.frames)
	if cerr := s.out.Close(); err == nil {
		err = cerr
	}
	n := len(s.frames)
	s.frames = nil

	if err != nil {
		return &EncodingError{Cell: s.cell, Path: s.path, Wrapped: err}
	}
	logging.Logger().Debug("session finished", "cell", s.cell.String(), "path", s.path, "frames", n)
	return nil
}

// Abort closes the stream without encoding. Whatever was written so far
// stays on disk.
func (s *Session) Abort() error {
	if s.state != stateOpen {
		return ErrSessionClosed
	}
	s.state = stateAborted
	s.frames = nil
	return s.out.Close()
}
