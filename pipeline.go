package mazeres

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/mazeres/bitmap"
	"github.com/bodgit/mazeres/manifest"
)

// resourceExt is the extension the resource extractor gives each bitmap
// pulled out of the screensaver executable.
const resourceExt = ".bin"

// Resources are a 24 byte header, a 1 KB color table and at worst two
// bytes per pixel, so anything bigger than this isn't one.
const maxResourceSize = 1 << 20

func loadManifest(dir string) (*manifest.DB, error) {
	db := manifest.New()

	b, err := ioutil.ReadFile(filepath.Join(dir, manifest.Filename))
	if err != nil {
		if os.IsNotExist(err) {
			return db, nil
		}
		return nil, err
	}

	if err := db.UnmarshalBinary(b); err != nil {
		return nil, err
	}

	return db, nil
}

func (m *MazeRes) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (m *MazeRes) decodeResource(file string) (*bitmap.Image, []byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	img, err := bitmap.Decode(f)
	if err != nil {
		return nil, nil, err
	}

	b := new(bytes.Buffer)
	if err := png.Encode(b, img); err != nil {
		return nil, nil, err
	}

	return img, b.Bytes(), nil
}

func (m *MazeRes) directoryWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			idx, err := loadManifest(dir)
			if err != nil {
				errc <- err
				return
			}

			files, err := ioutil.ReadDir(dir)
			if err != nil {
				errc <- err
				return
			}

			var added int
			for _, info := range files {
				if !info.Mode().IsRegular() || info.Name()[0] == '.' {
					continue
				}
				if filepath.Ext(info.Name()) != resourceExt || info.Size() > maxResourceSize {
					continue
				}

				file := filepath.Join(dir, info.Name())

				crc, err := crcFile(file)
				if err != nil {
					errc <- err
					return
				}

				// Already decoded by an earlier scan
				if _, ok := idx.Get(crc); ok {
					continue
				}

				img, encoded, err := m.decodeResource(file)
				if err != nil {
					var ferr bitmap.FormatError
					if errors.As(err, &ferr) {
						m.logger.Printf("Skipping \"%s\": %v\n", file, err)
						continue
					}
					errc <- err
					return
				}

				name := strings.TrimSuffix(info.Name(), resourceExt) + ".png"
				if err := ioutil.WriteFile(filepath.Join(dir, name), encoded, 0644); err != nil {
					errc <- err
					return
				}

				if m.db != nil {
					if _, err := m.db.addResource(crcString(crc), name, classify(img).String(), img.Dim(), img.Status().String(), encoded); err != nil {
						errc <- err
						return
					}
				}

				idx.Set(crc, manifest.Entry{Dim: uint16(img.Dim()), Name: name})
				added++
			}

			if added > 0 {
				b, err := idx.MarshalBinary()
				if err != nil {
					errc <- err
					return
				}

				if err := ioutil.WriteFile(filepath.Join(dir, manifest.Filename), b, 0644); err != nil {
					errc <- err
					return
				}
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree rooted at path, decodes every resource
// file it finds to a PNG alongside it, records each one in the catalog
// and writes a manifest per directory so later scans skip work already
// done.
func (m *MazeRes) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := m.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := m.directoryWorker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
