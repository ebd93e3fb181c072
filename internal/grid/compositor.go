package grid

import (
	"image"
	"image/draw"
)

// Tile crops the window of cell c out of src onto a transparent canvas
// of the tile size. Parts of the window outside src stay transparent.
func Tile(src image.Image, s Spec, c Cell) *image.RGBA {
	size := s.TileSize()
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))

	sp := src.Bounds().Min.Add(s.Origin(c))
	draw.Draw(dst, dst.Bounds(), src, sp, draw.Over)
	return dst
}

// CompositeTiles slices src into one tile per cell.
func CompositeTiles(src image.Image, s Spec) map[Cell]*image.RGBA {
	tiles := make(map[Cell]*image.RGBA, s.NumCells())
	for _, c := range s.Cells() {
		tiles[c] = Tile(src, s, c)
	}
	return tiles
}
