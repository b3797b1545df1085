package bitmap

import "image/color"

// parsePalette reads the 256 entry color table that follows the header.
// Entries are stored blue, green, red, alpha on disk and are reordered
// to RGBA here.
func parsePalette(buf []byte) (color.Palette, error) {
	if len(buf) < headerSize {
		return nil, ErrTruncatedHeader
	}
	p := make(color.Palette, paletteEntries)
	for i := range p {
		e := buf[paletteOffset+4*i:]
		p[i] = color.RGBA{e[2], e[1], e[0], e[3]}
	}
	return p, nil
}
