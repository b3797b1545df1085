package bitmap

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) writeHeader(dim int, p color.Palette) error {
	var hdr [headerSize]byte

	hdr[dimOffset] = byte(dim)
	hdr[dimOffset+1] = byte(dim >> 8)

	// Color table entries are blue, green, red, alpha; unused entries
	// are left as transparent black.
	for i, c := range p {
		r, g, b, a := c.RGBA()
		o := paletteOffset + 4*i

		hdr[o+0] = byte(b >> 8)
		hdr[o+1] = byte(g >> 8)
		hdr[o+2] = byte(r >> 8)
		hdr[o+3] = byte(a >> 8)
	}

	_, err := e.w.Write(hdr[:])
	return err
}

// runLength returns how many leading bytes of s hold the same value.
func runLength(s []byte) int {
	n := 1
	for n < len(s) && s[n] == s[0] {
		n++
	}
	return n
}

func (e *encoder) writeEncodedRun(n int, v byte) error {
	for n > 0 {
		k := n
		if k > 0xff {
			k = 0xff
		}
		if _, err := e.w.Write([]byte{byte(k), v}); err != nil {
			return err
		}
		n -= k
	}
	return nil
}

func (e *encoder) encode(pm *image.Paletted) error {
	dim := pm.Rect.Dx()

	if err := e.writeHeader(dim, pm.Palette); err != nil {
		return err
	}

	// Scanlines are stored bottom-up. Runs are free to cross line
	// boundaries as the decoder wraps purely on the image width.
	idx := make([]byte, 0, dim*dim)
	for y := dim - 1; y >= 0; y-- {
		idx = append(idx, pm.Pix[y*pm.Stride:y*pm.Stride+dim]...)
	}

	for i := 0; i < len(idx); {
		if n := runLength(idx[i:]); n >= 3 {
			if err := e.writeEncodedRun(n, idx[i]); err != nil {
				return err
			}
			i += n
			continue
		}

		// Gather pixels without a worthwhile run into one literal
		// group.
		j := i + 1
		for j < len(idx) && j-i < maxLiteralRun && runLength(idx[j:]) < 3 {
			j++
		}

		if j-i >= 3 {
			// Absolute run; the count byte carries the bias.
			if _, err := e.w.Write([]byte{0x00, byte(j - i + countBias)}); err != nil {
				return err
			}
			if _, err := e.w.Write(idx[i:j]); err != nil {
				return err
			}
			i = j
			continue
		}

		// One or two stragglers are cheaper as tiny encoded runs and
		// keep the count byte clear of the escape values.
		for i < j {
			n := 1
			if i+1 < j && idx[i+1] == idx[i] {
				n = 2
			}
			if _, err := e.w.Write([]byte{byte(n), idx[i]}); err != nil {
				return err
			}
			i += n
		}
	}

	_, err := e.w.Write([]byte{0x00, escEnd})
	return err
}

// Encode writes the Image m to w as a maze bitmap resource, quantizing
// to 256 colors if necessary. The image must be square.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() != b.Dy() {
		return errors.New("bitmap: image is not square")
	}
	if b.Dx() == 0 || b.Dx() > 0xffff {
		return errors.New("bitmap: image is wrong size")
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= paletteEntries {
			pm = image.NewPaletted(b, cp)
			draw.Draw(pm, b, m, b.Min, draw.Src)
		}
	}
	if pm == nil || len(pm.Palette) > paletteEntries {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, paletteEntries), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	e := encoder{w: w}

	return e.encode(pm)
}
