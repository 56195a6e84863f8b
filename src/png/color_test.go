package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver(t *testing.T) {
	t.Run("grayscale fans out with opaque alpha", func(t *testing.T) {
		resolve, err := ColorGrayscale.resolver()
		assert.NoError(t, err)
		assert.Equal(t, Pixel{128, 128, 128, 255}, resolve([]byte{128}))
		assert.Equal(t, Pixel{0, 0, 0, 255}, resolve([]byte{0}))
	})
	t.Run("grayscale+alpha keeps its alpha", func(t *testing.T) {
		resolve, err := ColorGrayscaleAlpha.resolver()
		assert.NoError(t, err)
		assert.Equal(t, Pixel{200, 200, 200, 17}, resolve([]byte{200, 17}))
	})
	t.Run("truecolor is opaque", func(t *testing.T) {
		resolve, err := ColorTruecolor.resolver()
		assert.NoError(t, err)
		assert.Equal(t, Pixel{1, 2, 3, 255}, resolve([]byte{1, 2, 3}))
	})
	t.Run("truecolor+alpha is a straight copy", func(t *testing.T) {
		resolve, err := ColorTruecolorAlpha.resolver()
		assert.NoError(t, err)
		assert.Equal(t, Pixel{1, 2, 3, 4}, resolve([]byte{1, 2, 3, 4}))
	})
	t.Run("indexed is not supported", func(t *testing.T) {
		_, err := ColorIndexed.resolver()
		assert.ErrorIs(t, err, ErrUnsupportedColorType)
	})
}

func TestResolvePixels(t *testing.T) {
	resolve, err := ColorGrayscaleAlpha.resolver()
	assert.NoError(t, err)

	raw := []byte{
		10, 255, 20, 128,
		30, 0, 40, 1,
	}
	grid := resolvePixels(raw, 2, 2, 2, resolve)
	assert.Equal(t, 2, grid.Width())
	assert.Equal(t, 2, grid.Height())
	assert.Equal(t, Pixel{10, 10, 10, 255}, grid.At(0, 0))
	assert.Equal(t, Pixel{20, 20, 20, 128}, grid.At(1, 0))
	assert.Equal(t, Pixel{30, 30, 30, 0}, grid.At(0, 1))
	assert.Equal(t, Pixel{40, 40, 40, 1}, grid.At(1, 1))
	assert.Equal(t, []Pixel{{30, 30, 30, 0}, {40, 40, 40, 1}}, grid.Row(1))
}
