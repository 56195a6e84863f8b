package png

// Pixel is one fully resolved RGBA value. Color types without all four
// components get widened during decoding, so downstream code never cares
// which variant the file used.
type Pixel struct {
	R, G, B, A uint8
}

// PixelGrid is a row-major grid of resolved pixels with a fixed stride.
// The zero value is an empty grid.
type PixelGrid struct {
	width  int
	height int
	pix    []Pixel
}

func newPixelGrid(width, height int) PixelGrid {
	return PixelGrid{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}
}

func (g *PixelGrid) Width() int {
	return g.width
}

func (g *PixelGrid) Height() int {
	return g.height
}

// At returns the pixel at (x, y). It panics if the coordinates are out of
// bounds, same as indexing a slice.
func (g *PixelGrid) At(x, y int) Pixel {
	if x < 0 || x >= g.width {
		panic("pixel x coordinate out of range")
	}
	return g.pix[y*g.width+x]
}

// Row returns one row of pixels as a slice sharing the grid's storage.
func (g *PixelGrid) Row(y int) []Pixel {
	return g.pix[y*g.width : (y+1)*g.width]
}

func (g *PixelGrid) set(x, y int, p Pixel) {
	g.pix[y*g.width+x] = p
}
