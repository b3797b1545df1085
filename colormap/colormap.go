/*
Package colormap renders a decoded resource's 256 entry color table as a
16 by 16 swatch image, one pixel per entry in index order.
*/
package colormap

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
)

const swatchDim = 16

// Image returns the palette rendered as a 16 by 16 image with entry 0 in
// the top-left corner, running left to right then top to bottom.
func Image(p color.Palette) (*image.RGBA, error) {
	if len(p) != swatchDim*swatchDim {
		return nil, errors.New("colormap: palette must have 256 entries")
	}

	m := image.NewRGBA(image.Rect(0, 0, swatchDim, swatchDim))
	for i, c := range p {
		m.Set(i%swatchDim, i/swatchDim, c)
	}

	return m, nil
}

// Encode writes the palette swatch for p to w as a PNG.
func Encode(w io.Writer, p color.Palette) error {
	m, err := Image(p)
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}
