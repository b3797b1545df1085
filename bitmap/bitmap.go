/*
Package bitmap implements a decoder and encoder for the run-length-encoded
indexed bitmap resources embedded in the legacy 3D maze screensaver.

Each resource starts with a 24 byte header of which only the 16-bit
little-endian value at offset 4 is used; it holds the image dimension and
the image is always square. The header is followed by a 256 entry color
table of 4 bytes per entry in blue, green, red, alpha order, and then by
the RLE pixel stream which runs to the end of the file.

The pixel stream is close to, but not the same as, the documented 8-bit
BMP RLE scheme. There is no end-of-line escape; lines wrap purely on the
image width. An escape of 00 01 ends the stream, 00 02 dx dy moves the
write position without painting, and 00 nn for nn >= 3 introduces nn-2
literal palette indices; the stored count is biased by two so that the
escape values remain unambiguous. Any other leading byte nn is a run of
nn pixels of the single following index. Scanlines are stored bottom-up.
*/
package bitmap

const (
	dimOffset      = 4
	paletteOffset  = 24
	paletteEntries = 256
	headerSize     = paletteOffset + paletteEntries*4
)

const (
	escEnd   = 0x01
	escDelta = 0x02

	// Absolute run counts are stored biased by two so the smallest
	// literal run header is 00 03.
	countBias = 2

	// The longest literal run that still fits in a biased count byte.
	maxLiteralRun = 0xff - countBias
)

// A FormatError reports that the input is not a valid maze bitmap
// resource.
type FormatError string

func (e FormatError) Error() string { return "bitmap: invalid format: " + string(e) }

var (
	// ErrTruncatedHeader is returned when the input ends before the
	// dimension field or the color table.
	ErrTruncatedHeader = FormatError("truncated header")

	// ErrInvalidEscape is returned for an escape sequence this variant
	// of the format never produces, such as 00 00.
	ErrInvalidEscape = FormatError("invalid escape sequence")

	// ErrRowOverflow is returned when a run tries to paint below the
	// last row of the image.
	ErrRowOverflow = FormatError("pixel run overflows image")
)

// DecodeStatus records how decoding of the pixel stream terminated.
type DecodeStatus int

const (
	// EndMarker means the stream was terminated by the 00 01 escape.
	EndMarker DecodeStatus = iota

	// StreamExhausted means the input ran out before an end marker was
	// seen. Truncated resources exist in the wild so this is not an
	// error, but callers may want to report it.
	StreamExhausted
)

func (s DecodeStatus) String() string {
	if s == EndMarker {
		return "end marker"
	}
	return "stream exhausted"
}
