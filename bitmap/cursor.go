package bitmap

// cursor tracks the current pixel write position in stream order. The
// stream carries no end-of-line escape so the column wraps purely on the
// image width.
type cursor struct {
	row, col, dim int
}

func (c *cursor) advance() {
	c.col++
	if c.col == c.dim {
		c.col = 0
		c.row++
	}
}

// jump applies a delta escape. At least one resource in the wild carries
// a horizontal delta that runs past the right edge; the original decoder
// clamps the column back to the start of the line and leaves the row
// alone, so the same is done here. The row is never clamped and never
// decremented.
func (c *cursor) jump(dx, dy int) {
	c.col += dx
	c.row += dy
	if c.col >= c.dim {
		c.col = 0
	}
}
