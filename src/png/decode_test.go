package png

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	stdpng "image/png"
	"testing"

	"git.handmade.network/hmn/pngview/src/perf"
	"git.handmade.network/hmn/pngview/src/utils"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
)

// Helpers for building PNG streams by hand. Chunks get garbage CRCs on
// purpose; the decoder must never look at them.

func chunk(typ string, data []byte) []byte {
	var b []byte
	b = binary.BigEndian.AppendUint32(b, uint32(len(data)))
	b = append(b, typ...)
	b = append(b, data...)
	b = append(b, 0xDE, 0xAD, 0xBE, 0xEF)
	return b
}

func buildPNG(chunks ...[]byte) []byte {
	data := []byte(signature)
	for _, c := range chunks {
		data = append(data, c...)
	}
	return data
}

func ihdrPayload(width, height uint32, bitDepth, colorType, compression, filter, interlace byte) []byte {
	payload := make([]byte, headerLength)
	binary.BigEndian.PutUint32(payload[0:4], width)
	binary.BigEndian.PutUint32(payload[4:8], height)
	payload[8] = bitDepth
	payload[9] = colorType
	payload[10] = compression
	payload[11] = filter
	payload[12] = interlace
	return payload
}

func ihdrChunk(width, height uint32, colorType ColorType) []byte {
	return chunk("IHDR", ihdrPayload(width, height, 8, byte(colorType), 0, 0, 0))
}

func compress(scanlines []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	utils.Must1(zw.Write(scanlines))
	utils.Must(zw.Close())
	return buf.Bytes()
}

func idatChunk(scanlines []byte) []byte {
	return chunk("IDAT", compress(scanlines))
}

func TestDecodeTruecolor(t *testing.T) {
	scanlines := []byte{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
		0, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
	}
	img, err := Decode(buildPNG(ihdrChunk(4, 2, ColorTruecolor), idatChunk(scanlines)))
	assert.NoError(t, err)

	assert.EqualValues(t, 4, img.Header.Width)
	assert.EqualValues(t, 2, img.Header.Height)
	assert.Equal(t, 4, img.Pixels.Width())
	assert.Equal(t, 2, img.Pixels.Height())

	v := byte(1)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, Pixel{v, v + 1, v + 2, 255}, img.Pixels.At(x, y), "pixel (%d,%d)", x, y)
			v += 3
		}
	}
}

func TestDecodeGrayscale(t *testing.T) {
	img, err := Decode(buildPNG(ihdrChunk(2, 1, ColorGrayscale), idatChunk([]byte{0, 128, 7})))
	assert.NoError(t, err)
	assert.Equal(t, Pixel{128, 128, 128, 255}, img.Pixels.At(0, 0))
	assert.Equal(t, Pixel{7, 7, 7, 255}, img.Pixels.At(1, 0))
}

func TestDecodeGrayscaleAlpha(t *testing.T) {
	img, err := Decode(buildPNG(ihdrChunk(2, 1, ColorGrayscaleAlpha), idatChunk([]byte{0, 100, 50, 200, 255})))
	assert.NoError(t, err)
	assert.Equal(t, Pixel{100, 100, 100, 50}, img.Pixels.At(0, 0))
	assert.Equal(t, Pixel{200, 200, 200, 255}, img.Pixels.At(1, 0))
}

func TestDecodeTruecolorAlpha(t *testing.T) {
	scanlines := []byte{
		0, 1, 2, 3, 4,
		2, 1, 1, 1, 1, // Up filter: adds the row above
	}
	img, err := Decode(buildPNG(ihdrChunk(1, 2, ColorTruecolorAlpha), idatChunk(scanlines)))
	assert.NoError(t, err)
	assert.Equal(t, Pixel{1, 2, 3, 4}, img.Pixels.At(0, 0))
	assert.Equal(t, Pixel{2, 3, 4, 5}, img.Pixels.At(0, 1))
}

func TestDecodeSubFilterUsesChannelDistance(t *testing.T) {
	// With two channels the left neighbor lives two bytes back, so the
	// second pixel's gray adds to the first pixel's gray, not its alpha.
	scanlines := []byte{1, 10, 20, 5, 6}
	img, err := Decode(buildPNG(ihdrChunk(2, 1, ColorGrayscaleAlpha), idatChunk(scanlines)))
	assert.NoError(t, err)
	assert.Equal(t, Pixel{10, 10, 10, 20}, img.Pixels.At(0, 0))
	assert.Equal(t, Pixel{15, 15, 15, 26}, img.Pixels.At(1, 0))
}

func TestDecodeMultipleIDAT(t *testing.T) {
	scanlines := []byte{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
		0, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
	}
	compressed := compress(scanlines)
	split := len(compressed) / 2

	// The zlib stream is cut mid-way across two IDAT chunks; only their
	// concatenation decompresses.
	img, err := Decode(buildPNG(
		ihdrChunk(4, 2, ColorTruecolor),
		chunk("IDAT", compressed[:split]),
		chunk("IDAT", compressed[split:]),
	))
	assert.NoError(t, err)

	want, err := Decode(buildPNG(ihdrChunk(4, 2, ColorTruecolor), chunk("IDAT", compressed)))
	assert.NoError(t, err)
	assert.Equal(t, want.Pixels, img.Pixels)
}

func TestDecodeSkipsUnknownChunks(t *testing.T) {
	img, err := Decode(buildPNG(
		chunk("gAMA", []byte{0, 1, 134, 160}),
		ihdrChunk(2, 1, ColorGrayscale),
		chunk("pHYs", []byte{0, 0, 11, 19, 0, 0, 11, 19, 1}),
		idatChunk([]byte{0, 1, 2}),
		chunk("IEND", nil),
	))
	assert.NoError(t, err)
	assert.Equal(t, Pixel{1, 1, 1, 255}, img.Pixels.At(0, 0))
	assert.Equal(t, Pixel{2, 2, 2, 255}, img.Pixels.At(1, 0))
}

func TestDecodeIgnoresCRCs(t *testing.T) {
	// Every chunk built by these helpers carries 0xDEADBEEF where the CRC
	// belongs. A decoder that validated checksums would reject all of it.
	img, err := Decode(buildPNG(ihdrChunk(1, 1, ColorGrayscale), idatChunk([]byte{0, 42})))
	assert.NoError(t, err)
	assert.Equal(t, Pixel{42, 42, 42, 255}, img.Pixels.At(0, 0))
}

func TestDecodeMetadata(t *testing.T) {
	img, err := Decode(buildPNG(
		chunk("tEXt", []byte("Author\x00ben")),
		ihdrChunk(1, 1, ColorGrayscale),
		chunk("tEXt", []byte("Comment\x00an image")),
		idatChunk([]byte{0, 1}),
		chunk("tIME", []byte{0x07, 0xD4, 5, 28, 10, 33, 7}),
	))
	assert.NoError(t, err)

	assert.Equal(t, []TextData{
		{Keyword: "Author", Text: "ben"},
		{Keyword: "Comment", Text: "an image"},
	}, img.Texts)

	assert.NotNil(t, img.ModTime)
	assert.EqualValues(t, 2004, img.ModTime.Year)
	assert.Equal(t, "2004/5/28 10:33:07", img.ModTime.String())
}

func TestDecodeNoMetadata(t *testing.T) {
	img, err := Decode(buildPNG(ihdrChunk(1, 1, ColorGrayscale), idatChunk([]byte{0, 1})))
	assert.NoError(t, err)
	assert.Empty(t, img.Texts)
	assert.Nil(t, img.ModTime)
}

func TestDecodeErrors(t *testing.T) {
	valid := func() ([]byte, []byte) {
		return ihdrChunk(2, 1, ColorGrayscale), idatChunk([]byte{0, 1, 2})
	}
	ihdr, idat := valid()

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty input", nil, ErrMalformedSignature},
		{"bad signature", append([]byte("\x88PNG\r\n\x1a\n"), chunk("IHDR", nil)...), ErrMalformedSignature},
		{"partial chunk header", append(buildPNG(), 0, 0, 0, 13), ErrTruncatedChunk},
		{"chunk overruns input", buildPNG(chunk("IHDR", ihdrPayload(2, 1, 8, 0, 0, 0, 0)))[:20], ErrTruncatedChunk},
		{"no chunks at all", buildPNG(), ErrInvalidHeader},
		{"no header", buildPNG(idat), ErrInvalidHeader},
		{"data before header", buildPNG(idat, ihdr), ErrInvalidHeader},
		{"duplicate header", buildPNG(ihdr, ihdr, idat), ErrInvalidHeader},
		{"interlaced", buildPNG(chunk("IHDR", ihdrPayload(2, 1, 8, 0, 0, 0, 1)), idat), ErrInvalidHeader},
		{"16 bit depth", buildPNG(chunk("IHDR", ihdrPayload(2, 1, 16, 0, 0, 0, 0)), idat), ErrInvalidHeader},
		{"bogus color type", buildPNG(chunk("IHDR", ihdrPayload(2, 1, 8, 5, 0, 0, 0)), idat), ErrInvalidHeader},
		{"indexed color", buildPNG(ihdrChunk(2, 1, ColorIndexed), idat), ErrUnsupportedColorType},
		{"no image data", buildPNG(ihdr), ErrDecompressionFailed},
		{"garbage image data", buildPNG(ihdr, chunk("IDAT", []byte{1, 2, 3, 4})), ErrDecompressionFailed},
		{"truncated zlib stream", buildPNG(ihdr, chunk("IDAT", compress([]byte{0, 1, 2})[:4])), ErrDecompressionFailed},
		{"not enough scanline data", buildPNG(ihdr, idatChunk([]byte{0, 1})), ErrDecompressionFailed},
		{"bad filter type", buildPNG(ihdr, idatChunk([]byte{9, 1, 2})), ErrInvalidFilterType},
		{"bad text chunk", buildPNG(ihdr, chunk("tEXt", []byte("no separator")), idat), ErrInvalidText},
		{"bad time chunk", buildPNG(ihdr, chunk("tIME", []byte{1, 2, 3}), idat), ErrInvalidTimestamp},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			img, err := Decode(c.data)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestDecodeReader(t *testing.T) {
	data := buildPNG(ihdrChunk(1, 1, ColorGrayscale), idatChunk([]byte{0, 99}))
	img, err := DecodeReader(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, Pixel{99, 99, 99, 255}, img.Pixels.At(0, 0))
}

func TestDecodeWithPerf(t *testing.T) {
	p := perf.MakeNewDecodePerf("test image")
	data := buildPNG(ihdrChunk(2, 2, ColorGrayscale), idatChunk([]byte{0, 1, 2, 0, 3, 4}))
	_, err := DecodeWithOptions(data, DecodeOptions{Perf: p})
	assert.NoError(t, err)
	p.EndDecode()

	categories := make(map[string]bool)
	for _, b := range p.Blocks {
		categories[b.Category] = true
		assert.False(t, b.End.IsZero())
	}
	assert.True(t, categories["CHUNKS"])
	assert.True(t, categories["INFLATE"])
	assert.True(t, categories["RECON"])
	assert.True(t, categories["RESOLVE"])
}

func TestInspect(t *testing.T) {
	t.Run("whole stream", func(t *testing.T) {
		data := buildPNG(
			ihdrChunk(2, 1, ColorGrayscale),
			chunk("tEXt", []byte("Title\x00x")),
			idatChunk([]byte{0, 1, 2}),
			chunk("tIME", []byte{0x07, 0xD4, 5, 28, 10, 33, 7}),
			chunk("IEND", nil),
		)
		sum, err := Inspect(data)
		assert.NoError(t, err)

		assert.NotNil(t, sum.Header)
		assert.EqualValues(t, 2, sum.Header.Width)
		assert.Len(t, sum.Chunks, 5)
		assert.Equal(t, "IHDR", sum.Chunks[0].Type)
		assert.Equal(t, "IEND", sum.Chunks[4].Type)
		assert.Equal(t, []TextData{{Keyword: "Title", Text: "x"}}, sum.Texts)
		assert.NotNil(t, sum.ModTime)
		assert.Greater(t, sum.DataBytes, 0)
	})
	t.Run("no header is fine", func(t *testing.T) {
		sum, err := Inspect(buildPNG(chunk("tEXt", []byte("Title\x00x"))))
		assert.NoError(t, err)
		assert.Nil(t, sum.Header)
		assert.Len(t, sum.Chunks, 1)
	})
	t.Run("interlaced is fine", func(t *testing.T) {
		sum, err := Inspect(buildPNG(chunk("IHDR", ihdrPayload(2, 1, 8, 0, 0, 0, 1))))
		assert.NoError(t, err)
		assert.NotNil(t, sum.Header)
		assert.EqualValues(t, 1, sum.Header.InterlaceMethod)
	})
	t.Run("still rejects truncation", func(t *testing.T) {
		_, err := Inspect(append(buildPNG(), 0, 0, 0, 13))
		assert.ErrorIs(t, err, ErrTruncatedChunk)
	})
}

// The standard library encoder picks filters adaptively per row, including
// Paeth and Average, so decoding its output exercises the whole pipeline
// against an independent implementation.
func TestDecodeStdlibEncoded(t *testing.T) {
	t.Run("opaque truecolor", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 17, 9))
		for y := 0; y < 9; y++ {
			for x := 0; x < 17; x++ {
				src.SetNRGBA(x, y, color.NRGBA{byte(x * 15), byte(y * 28), byte(x*x + y), 255})
			}
		}
		img := decodeStdlibEncoded(t, src)

		assert.Equal(t, ColorTruecolor, img.Header.ColorType)
		for y := 0; y < 9; y++ {
			for x := 0; x < 17; x++ {
				want := src.NRGBAAt(x, y)
				assert.Equal(t, Pixel{want.R, want.G, want.B, want.A}, img.Pixels.At(x, y), "pixel (%d,%d)", x, y)
			}
		}
	})
	t.Run("with alpha", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				src.SetNRGBA(x, y, color.NRGBA{byte(x * 32), byte(y * 32), 200, byte(x * y * 4)})
			}
		}
		img := decodeStdlibEncoded(t, src)

		assert.Equal(t, ColorTruecolorAlpha, img.Header.ColorType)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				want := src.NRGBAAt(x, y)
				assert.Equal(t, Pixel{want.R, want.G, want.B, want.A}, img.Pixels.At(x, y), "pixel (%d,%d)", x, y)
			}
		}
	})
	t.Run("grayscale", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 13, 5))
		for y := 0; y < 5; y++ {
			for x := 0; x < 13; x++ {
				src.SetGray(x, y, color.Gray{Y: byte(x*19 + y*40)})
			}
		}
		img := decodeStdlibEncoded(t, src)

		assert.Equal(t, ColorGrayscale, img.Header.ColorType)
		for y := 0; y < 5; y++ {
			for x := 0; x < 13; x++ {
				want := src.GrayAt(x, y).Y
				assert.Equal(t, Pixel{want, want, want, 255}, img.Pixels.At(x, y), "pixel (%d,%d)", x, y)
			}
		}
	})
}

func decodeStdlibEncoded(t *testing.T, src image.Image) *Image {
	var buf bytes.Buffer
	err := stdpng.Encode(&buf, src)
	assert.NoError(t, err)

	img, err := Decode(buf.Bytes())
	assert.NoError(t, err)
	return img
}

func BenchmarkDecode(b *testing.B) {
	src := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			src.SetNRGBA(x, y, color.NRGBA{byte(x), byte(y), byte(x ^ y), 255})
		}
	}
	var buf bytes.Buffer
	utils.Must(stdpng.Encode(&buf, src))
	data := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}
