package grid

import (
	"fmt"
	"image"
)

const (
	DefaultCellSize = 35
	DefaultMargin   = 2

	// The caption occupies this share of the full canvas before it is
	// padded back out to the canvas size.
	DefaultCaptionScaleX = 0.80
	DefaultCaptionScaleY = 0.50
)

// Spec describes the grid of output animations.
type Spec struct {
	Rows       int
	Columns    int
	CellWidth  int
	CellHeight int
	Margin     int
}

// Cell addresses one output animation.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

func (s Spec) Validate() error {
	if s.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", s.Rows)
	}
	if s.Columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", s.Columns)
	}
	if s.CellWidth <= 0 || s.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %dx%d", s.CellWidth, s.CellHeight)
	}
	if s.Margin < 0 {
		return fmt.Errorf("margin must be non-negative, got %d", s.Margin)
	}
	if s.Margin >= min(s.CellWidth, s.CellHeight) {
		return fmt.Errorf("margin %d leaves no room in a %dx%d cell", s.Margin, s.CellWidth, s.CellHeight)
	}
	return nil
}

// TileSize is the pixel size of every frame of every animation.
func (s Spec) TileSize() image.Point {
	return image.Pt(s.CellWidth-s.Margin, s.CellHeight-s.Margin)
}

// CanvasSize is the size of the caption bitmap spanning the whole grid.
func (s Spec) CanvasSize() image.Point {
	return image.Pt(s.CellWidth*s.Columns, s.CellHeight*s.Rows)
}

// Origin is the top-left corner of cell c inside the canvas.
func (s Spec) Origin(c Cell) image.Point {
	return image.Pt(c.Col*s.CellWidth, c.Row*s.CellHeight)
}

func (s Spec) NumCells() int { return s.Rows * s.Columns }

// Cells enumerates the grid row-major.
func (s Spec) Cells() []Cell {
	cells := make([]Cell, 0, s.NumCells())
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Columns; col++ {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return cells
}

// CaptionBox is the area the caption text is fitted into, centered in
// the canvas.
func (s Spec) CaptionBox(scaleX, scaleY float64) image.Point {
	canvas := s.CanvasSize()
	w := int(float64(canvas.X) * scaleX)
	h := int(float64(canvas.Y) * scaleY)
	return image.Pt(max(w, 1), max(h, 1))
}
