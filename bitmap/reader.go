package bitmap

import (
	"image"
	"image/color"
	"io"
	"io/ioutil"
)

type decoder struct {
	buf []byte
	pos int

	dim     int
	palette color.Palette

	img *Image
	cur cursor
}

func (d *decoder) parseHeader() error {
	if len(d.buf) < dimOffset+2 {
		return ErrTruncatedHeader
	}
	d.dim = int(d.buf[dimOffset]) | int(d.buf[dimOffset+1])<<8
	if d.dim == 0 {
		return FormatError("zero dimension")
	}

	var err error
	if d.palette, err = parsePalette(d.buf); err != nil {
		return err
	}

	d.pos = headerSize
	return nil
}

func (d *decoder) paint(v uint8) error {
	if d.cur.row >= d.dim {
		return ErrRowOverflow
	}
	d.img.set(d.cur.row, d.cur.col, v)
	d.cur.advance()
	return nil
}

// decodePixels walks the stream that follows the color table. Each step
// looks at the leading byte: a non-zero value is a run of that many
// pixels of the single following index, while zero introduces an escape
// distinguished by the second byte.
func (d *decoder) decodePixels() error {
	d.cur = cursor{dim: d.dim}
	d.img = newImage(d.dim, d.palette)
	d.img.status = StreamExhausted

	for len(d.buf)-d.pos >= 2 {
		b0, b1 := d.buf[d.pos], d.buf[d.pos+1]
		d.pos += 2

		if b0 != 0 {
			// Encoded run: b0 pixels of index b1.
			for i := 0; i < int(b0); i++ {
				if err := d.paint(b1); err != nil {
					return err
				}
			}
			continue
		}

		switch {
		case b1 == escEnd:
			d.img.status = EndMarker
			return nil
		case b1 == escDelta:
			if len(d.buf)-d.pos < 2 {
				// Truncated mid-escape; nothing was painted.
				d.pos = len(d.buf)
				continue
			}
			dx, dy := int(d.buf[d.pos]), int(d.buf[d.pos+1])
			d.pos += 2
			// The skipped cells keep the background color the
			// buffer was initialized with.
			d.cur.jump(dx, dy)
		case b1 > countBias:
			// Absolute run: b1-2 literal indices follow. Paint
			// whatever a truncated stream still holds.
			count := int(b1) - countBias
			if rest := len(d.buf) - d.pos; count > rest {
				count = rest
			}
			for _, v := range d.buf[d.pos : d.pos+count] {
				if err := d.paint(v); err != nil {
					return err
				}
			}
			d.pos += count
		default:
			// 00 00 is the standard scheme's end-of-line escape,
			// which this variant never produces.
			return ErrInvalidEscape
		}
	}

	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	var err error
	if d.buf, err = ioutil.ReadAll(r); err != nil {
		return err
	}

	if err := d.parseHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	return d.decodePixels()
}

// Decode reads a maze bitmap resource from r and returns the decoded
// image.
func Decode(r io.Reader) (*Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.img, nil
}

// DecodeConfig returns the color model and dimensions of a maze bitmap
// resource without decoding the pixel stream.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: d.palette,
		Width:      d.dim,
		Height:     d.dim,
	}, nil
}
