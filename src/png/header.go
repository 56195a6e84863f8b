package png

import (
	"encoding/binary"
	"fmt"
)

const headerLength = 13

// The PNG spec caps dimensions at 2^31-1. Enforcing that here means width
// and height always survive a conversion to int.
const maxDimension = 1<<31 - 1

type ColorType byte

const (
	ColorGrayscale      ColorType = 0
	ColorTruecolor      ColorType = 2
	ColorIndexed        ColorType = 3
	ColorGrayscaleAlpha ColorType = 4
	ColorTruecolorAlpha ColorType = 6
)

func (ct ColorType) String() string {
	switch ct {
	case ColorGrayscale:
		return "grayscale"
	case ColorTruecolor:
		return "truecolor"
	case ColorIndexed:
		return "indexed"
	case ColorGrayscaleAlpha:
		return "grayscale+alpha"
	case ColorTruecolorAlpha:
		return "truecolor+alpha"
	}
	return fmt.Sprintf("unknown(%d)", byte(ct))
}

// Channels is the number of bytes each pixel occupies in the reconstructed
// scanline data. Indexed images store one palette index per pixel, which is
// why their count is 1 and not 3.
func (ct ColorType) Channels() int {
	switch ct {
	case ColorGrayscale, ColorIndexed:
		return 1
	case ColorGrayscaleAlpha:
		return 2
	case ColorTruecolor:
		return 3
	case ColorTruecolorAlpha:
		return 4
	}
	return 0
}

type ImageHeader struct {
	Width             uint32
	Height            uint32
	BitDepth          byte
	ColorType         ColorType
	CompressionMethod byte
	FilterMethod      byte
	InterlaceMethod   byte
}

func parseHeader(data []byte) (ImageHeader, error) {
	if len(data) != headerLength {
		return ImageHeader{}, fmt.Errorf("%w: IHDR must be %d bytes, got %d", ErrInvalidHeader, headerLength, len(data))
	}

	hdr := ImageHeader{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         ColorType(data[9]),
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}

	if hdr.Width == 0 || hdr.Height == 0 {
		return ImageHeader{}, fmt.Errorf("%w: zero dimension (%dx%d)", ErrInvalidHeader, hdr.Width, hdr.Height)
	}
	if hdr.Width > maxDimension || hdr.Height > maxDimension {
		return ImageHeader{}, fmt.Errorf("%w: dimensions %dx%d exceed the PNG limit", ErrInvalidHeader, hdr.Width, hdr.Height)
	}
	switch hdr.ColorType {
	case ColorGrayscale, ColorTruecolor, ColorIndexed, ColorGrayscaleAlpha, ColorTruecolorAlpha:
	default:
		return ImageHeader{}, fmt.Errorf("%w: color type %d does not exist", ErrInvalidHeader, byte(hdr.ColorType))
	}
	if hdr.BitDepth != 8 {
		return ImageHeader{}, fmt.Errorf("%w: bit depth %d (only 8 is supported)", ErrInvalidHeader, hdr.BitDepth)
	}
	if hdr.CompressionMethod != 0 {
		return ImageHeader{}, fmt.Errorf("%w: compression method %d does not exist", ErrInvalidHeader, hdr.CompressionMethod)
	}
	if hdr.FilterMethod != 0 {
		return ImageHeader{}, fmt.Errorf("%w: filter method %d does not exist", ErrInvalidHeader, hdr.FilterMethod)
	}

	return hdr, nil
}
