package colormap

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.RGBA{uint8(i), uint8(255 - i), 0, 255}
	}
	return p
}

func TestImage(t *testing.T) {
	m, err := Image(testPalette())
	require.NoError(t, err)

	require.Equal(t, 16, m.Bounds().Dx())
	require.Equal(t, 16, m.Bounds().Dy())

	// Entry 0 top-left, entry 255 bottom-right, row-major in between
	require.Equal(t, color.RGBA{0, 255, 0, 255}, m.At(0, 0))
	require.Equal(t, color.RGBA{17, 238, 0, 255}, m.At(1, 1))
	require.Equal(t, color.RGBA{255, 0, 0, 255}, m.At(15, 15))
}

func TestImageWrongSize(t *testing.T) {
	_, err := Image(make(color.Palette, 16))
	require.Error(t, err)
}

func TestEncode(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, testPalette()))

	c, err := png.DecodeConfig(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 16, c.Width)
	require.Equal(t, 16, c.Height)
}
