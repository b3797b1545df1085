package bitmap

import (
	"image"
	"image/color"
)

// Image is the decoded pixel buffer. It holds three parallel planes in
// stream order: a packed RGB plane, an alpha plane and the raw palette
// indices. Every cell starts out as palette entry 0, which is what a
// delta escape leaves behind for the cells it skips.
//
// The resource stores its scanlines bottom-up, so the image.Image view
// applies a vertical flip at read time; the planes themselves are never
// reordered. Row 0 of the planes is the first row decoded, which is the
// bottom row of the picture.
type Image struct {
	dim     int
	rgb     []uint8 // 3 bytes per cell, row-major
	alpha   []uint8
	index   []uint8
	palette color.Palette
	status  DecodeStatus
}

func newImage(dim int, palette color.Palette) *Image {
	m := &Image{
		dim:     dim,
		rgb:     make([]uint8, 3*dim*dim),
		alpha:   make([]uint8, dim*dim),
		index:   make([]uint8, dim*dim),
		palette: palette,
	}
	bg := palette[0].(color.RGBA)
	for i := 0; i < dim*dim; i++ {
		m.rgb[3*i+0] = bg.R
		m.rgb[3*i+1] = bg.G
		m.rgb[3*i+2] = bg.B
		m.alpha[i] = bg.A
	}
	return m
}

func (m *Image) set(row, col int, v uint8) {
	c := m.palette[v].(color.RGBA)
	i := row*m.dim + col
	m.rgb[3*i+0] = c.R
	m.rgb[3*i+1] = c.G
	m.rgb[3*i+2] = c.B
	m.alpha[i] = c.A
	m.index[i] = v
}

// Dim returns the width and height of the square image.
func (m *Image) Dim() int { return m.dim }

// Palette returns the 256 entry color table.
func (m *Image) Palette() color.Palette { return m.palette }

// Status reports whether decoding stopped on the end marker or by
// exhausting the input.
func (m *Image) Status() DecodeStatus { return m.status }

// Index returns the raw palette index at (row, col) in stream order.
func (m *Image) Index(row, col int) uint8 { return m.index[row*m.dim+col] }

// Alpha returns the alpha value at (row, col) in stream order.
func (m *Image) Alpha(row, col int) uint8 { return m.alpha[row*m.dim+col] }

// RGB returns the color channels at (row, col) in stream order.
func (m *Image) RGB(row, col int) (r, g, b uint8) {
	i := 3 * (row*m.dim + col)
	return m.rgb[i], m.rgb[i+1], m.rgb[i+2]
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return m.palette }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.dim, m.dim) }

// At implements image.Image, flipping the bottom-up scanline order so
// that (0, 0) is the top-left corner of the picture.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || x >= m.dim || y < 0 || y >= m.dim {
		return color.RGBA{}
	}
	i := (m.dim-1-y)*m.dim + x
	return color.RGBA{m.rgb[3*i], m.rgb[3*i+1], m.rgb[3*i+2], m.alpha[i]}
}

// IndexImage returns the palette index plane as a grayscale image with
// the same vertical flip applied as At.
func (m *Image) IndexImage() *image.Gray {
	g := image.NewGray(m.Bounds())
	for y := 0; y < m.dim; y++ {
		row := (m.dim - 1 - y) * m.dim
		copy(g.Pix[y*g.Stride:y*g.Stride+m.dim], m.index[row:row+m.dim])
	}
	return g
}
