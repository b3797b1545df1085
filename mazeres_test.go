package mazeres

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/mazeres/bitmap"
	"github.com/bodgit/mazeres/manifest"
	"github.com/stretchr/testify/require"
)

// makeResource builds a minimal resource: the 24 byte header, a color
// table where entry 1 is opaque red and entry 0 transparent black, and
// the given pixel stream.
func makeResource(dim int, stream ...byte) []byte {
	buf := make([]byte, 24+256*4, 24+256*4+len(stream))
	buf[4] = byte(dim)
	buf[5] = byte(dim >> 8)

	// BGRA on disk
	copy(buf[24+4:], []byte{0, 0, 255, 255})

	return append(buf, stream...)
}

func discard() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

func TestClassify(t *testing.T) {
	// Fully painted with the opaque entry
	img, err := bitmap.Decode(bytes.NewReader(makeResource(2, 4, 1, 0x00, 0x01)))
	require.NoError(t, err)
	require.Equal(t, kindTexture, classify(img))
	require.Equal(t, "texture", classify(img).String())

	// Half painted, the rest keeps the transparent background
	img, err = bitmap.Decode(bytes.NewReader(makeResource(2, 2, 1, 0x00, 0x01)))
	require.NoError(t, err)
	require.Equal(t, kindSprite, classify(img))
	require.Equal(t, "sprite", classify(img).String())
}

func TestScan(t *testing.T) {
	dir, err := ioutil.TempDir("", "mazeres")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "wall.bin")
	require.NoError(t, ioutil.WriteFile(file, makeResource(2, 4, 1, 0x00, 0x01), 0644))

	// Malformed resources are logged and skipped, not fatal
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "bogus.bin"), makeResource(2, 0x00, 0x00), 0644))

	db, err := NewResourceDB(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	m := New(db, discard())
	require.NoError(t, m.Scan(dir))

	_, err = os.Stat(filepath.Join(dir, "wall.png"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "bogus.png"))
	require.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, manifest.Filename))
	require.NoError(t, err)

	crc, err := crcFile(file)
	require.NoError(t, err)

	b, err := db.FindPNGByCRC(crc)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	c, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	require.Equal(t, 2, c.Width)

	// A second scan skips everything the manifest already lists
	require.NoError(t, m.Scan(dir))
}

func TestDecodeFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "mazeres")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "rat.bin")
	require.NoError(t, ioutil.WriteFile(file, makeResource(2, 2, 1, 0x00, 0x01), 0644))

	m := New(nil, discard())
	require.NoError(t, m.DecodeFile(file, true))

	for _, name := range []string{"rat.png", "rat.index.png", "rat.colormap.png", "rat.preview.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	// The preview is upscaled
	f, err := os.Open(filepath.Join(dir, "rat.preview.png"))
	require.NoError(t, err)
	defer f.Close()

	c, err := png.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 8, c.Width)
}

func TestEncodeFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "mazeres")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	pm := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 0, 0, 255},
	})
	pm.SetColorIndex(1, 1, 1)

	file := filepath.Join(dir, "icon.png")
	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, pm))
	require.NoError(t, f.Close())

	m := New(nil, discard())
	require.NoError(t, m.EncodeFile(file))

	g, err := os.Open(filepath.Join(dir, "icon.bin"))
	require.NoError(t, err)
	defer g.Close()

	img, err := bitmap.Decode(g)
	require.NoError(t, err)
	require.Equal(t, 4, img.Dim())
	require.Equal(t, pm.At(1, 1), img.At(1, 1))
}

func TestExportCRC(t *testing.T) {
	dir, err := ioutil.TempDir("", "mazeres")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewResourceDB(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.addResource(crcString(0xdeadbeef), "wall.png", "texture", 2, "end marker", []byte("png bytes"))
	require.NoError(t, err)

	m := New(db, discard())

	out := filepath.Join(dir, "out.png")
	require.NoError(t, m.ExportCRC(0xdeadbeef, out))

	b, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte("png bytes"), b)

	require.Error(t, m.ExportCRC(0x1, filepath.Join(dir, "missing.png")))
}
