package render

import (
	"fmt"
	"image"
	stdpng "image/png"
	"io"
	"strings"

	"git.handmade.network/hmn/pngview/src/ansicolor"
	"git.handmade.network/hmn/pngview/src/png"
	"git.handmade.network/hmn/pngview/src/utils"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/draw"
)

// ToNRGBA copies a decoded pixel grid into the standard library's image
// type, which is what the encoders below and the x/image scaler speak.
func ToNRGBA(grid *png.PixelGrid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, grid.Width(), grid.Height()))
	for y := 0; y < grid.Height(); y++ {
		for x, p := range grid.Row(y) {
			off := img.PixOffset(x, y)
			img.Pix[off+0] = p.R
			img.Pix[off+1] = p.G
			img.Pix[off+2] = p.B
			img.Pix[off+3] = p.A
		}
	}
	return img
}

// Scale resizes img with bilinear interpolation. Dimensions get clamped to
// at least one pixel so a degenerate request cannot produce an empty image.
func Scale(img *image.NRGBA, width, height int) *image.NRGBA {
	width = utils.IntMax(1, width)
	height = utils.IntMax(1, height)
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func WritePNG(w io.Writer, img *image.NRGBA) error {
	return stdpng.Encode(w, img)
}

func WriteQOI(w io.Writer, img *image.NRGBA) error {
	return qoi.Encode(w, img)
}

// WritePPM writes the binary P6 form: a three-line header followed by raw
// RGB triplets. PPM has no alpha channel, so pixels are composited onto
// black.
func WritePPM(w io.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}

	row := make([]byte, b.Dx()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := 0
		for x := b.Min.X; x < b.Max.X; x++ {
			off := img.PixOffset(x, y)
			a := img.Pix[off+3]
			row[i+0] = mulAlpha(img.Pix[off+0], a)
			row[i+1] = mulAlpha(img.Pix[off+1], a)
			row[i+2] = mulAlpha(img.Pix[off+2], a)
			i += 3
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteANSI draws the image into a terminal with 24-bit color escapes,
// using the upper-half-block glyph to pack two image rows into every text
// line. Images wider than maxWidth cells get scaled down to fit; narrower
// ones render one pixel per cell. Transparent pixels are composited onto
// black, same as WritePPM.
func WriteANSI(w io.Writer, img *image.NRGBA, maxWidth int) error {
	maxWidth = utils.IntMax(1, maxWidth)
	b := img.Bounds()
	if b.Dx() > maxWidth {
		img = Scale(img, maxWidth, utils.IntMax(1, b.Dy()*maxWidth/b.Dx()))
		b = img.Bounds()
	}

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			tr, tg, tb := flattenedAt(img, x, y)
			sb.WriteString(ansicolor.Foreground(tr, tg, tb))

			var br, bg, bb uint8
			if y+1 < b.Max.Y {
				br, bg, bb = flattenedAt(img, x, y+1)
			}
			sb.WriteString(ansicolor.Background(br, bg, bb))

			sb.WriteString("▀")
		}
		sb.WriteString(ansicolor.Reset)
		sb.WriteString("\n")

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		sb.Reset()
	}
	return nil
}

func flattenedAt(img *image.NRGBA, x, y int) (uint8, uint8, uint8) {
	off := img.PixOffset(x, y)
	a := img.Pix[off+3]
	return mulAlpha(img.Pix[off+0], a), mulAlpha(img.Pix[off+1], a), mulAlpha(img.Pix[off+2], a)
}

func mulAlpha(c, a uint8) uint8 {
	return uint8(int(c) * int(a) / 255)
}
