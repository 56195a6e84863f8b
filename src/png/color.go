package png

import "fmt"

const opaque = 0xFF

// resolver returns the function that turns one pixel's reconstructed
// channel bytes into an RGBA pixel. The color type is fixed for the whole
// image, so we pick the conversion once here instead of re-checking it per
// pixel.
func (ct ColorType) resolver() (func([]byte) Pixel, error) {
	switch ct {
	case ColorGrayscale:
		return func(raw []byte) Pixel {
			g := raw[0]
			return Pixel{g, g, g, opaque}
		}, nil
	case ColorTruecolor:
		return func(raw []byte) Pixel {
			return Pixel{raw[0], raw[1], raw[2], opaque}
		}, nil
	case ColorGrayscaleAlpha:
		return func(raw []byte) Pixel {
			g := raw[0]
			return Pixel{g, g, g, raw[1]}
		}, nil
	case ColorTruecolorAlpha:
		return func(raw []byte) Pixel {
			return Pixel{raw[0], raw[1], raw[2], raw[3]}
		}, nil
	case ColorIndexed:
		// Indexed images need the PLTE chunk, which we do not read yet.
		return nil, fmt.Errorf("%w: indexed color requires palette support", ErrUnsupportedColorType)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedColorType, byte(ct))
}

// resolvePixels maps the reconstructed channel bytes into the final pixel
// grid, channels bytes per pixel, rows top to bottom.
func resolvePixels(raw []byte, width, height, channels int, resolve func([]byte) Pixel) PixelGrid {
	grid := newPixelGrid(width, height)
	for y := 0; y < height; y++ {
		rowStart := y * width * channels
		for x := 0; x < width; x++ {
			off := rowStart + x*channels
			grid.set(x, y, resolve(raw[off:off+channels]))
		}
	}
	return grid
}
