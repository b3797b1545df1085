package mazeres

import "github.com/bodgit/mazeres/bitmap"

type kind int

const (
	kindUnknown kind = iota
	kindTexture      // fully opaque; walls, floors and ceilings
	kindSprite       // carries transparency; the rat, the smiley, etc.
)

func (k kind) String() string {
	switch k {
	case kindTexture:
		return "texture"
	case kindSprite:
		return "sprite"
	}
	return "unknown"
}

func classify(m *bitmap.Image) kind {
	for row := 0; row < m.Dim(); row++ {
		for col := 0; col < m.Dim(); col++ {
			if m.Alpha(row, col) != 0xff {
				return kindSprite
			}
		}
	}
	return kindTexture
}
