package mazeres

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/mazeres/bitmap"
	"github.com/bodgit/mazeres/colormap"
	"golang.org/x/image/draw"
)

// The textures are tiny so the debug preview is scaled up to be
// viewable.
const previewScale = 4

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, m)
}

// DecodeFile decodes the resource in file and writes the picture next to
// it with a .png extension. With debug set it also writes the raw
// palette index plane, the color table swatch and an upscaled preview.
func (m *MazeRes) DecodeFile(file string, debug bool) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := bitmap.Decode(f)
	if err != nil {
		return err
	}

	m.logger.Printf("\"%s\": %dx%d %s, %s\n", file, img.Dim(), img.Dim(), classify(img), img.Status())

	base := strings.TrimSuffix(file, filepath.Ext(file))

	if err := writePNG(base+".png", img); err != nil {
		return err
	}

	if !debug {
		return nil
	}

	if err := writePNG(base+".index.png", img.IndexImage()); err != nil {
		return err
	}

	cm, err := os.Create(base + ".colormap.png")
	if err != nil {
		return err
	}
	defer cm.Close()

	if err := colormap.Encode(cm, img.Palette()); err != nil {
		return err
	}

	preview := image.NewRGBA(image.Rect(0, 0, previewScale*img.Dim(), previewScale*img.Dim()))
	draw.NearestNeighbor.Scale(preview, preview.Bounds(), img, img.Bounds(), draw.Src, nil)

	return writePNG(base+".preview.png", preview)
}

// EncodeFile converts the image in file (PNG, GIF or JPEG) into a
// resource written next to it with a .bin extension.
func (m *MazeRes) EncodeFile(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	out, err := os.Create(strings.TrimSuffix(file, filepath.Ext(file)) + resourceExt)
	if err != nil {
		return err
	}
	defer out.Close()

	return bitmap.Encode(out, img)
}

// ExportCRC writes the catalogued PNG for crc to file.
func (m *MazeRes) ExportCRC(crc uint32, file string) error {
	b, err := m.db.FindPNGByCRC(crc)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("no resource with CRC %s", crcString(crc))
	}

	return ioutil.WriteFile(file, b, 0644)
}
