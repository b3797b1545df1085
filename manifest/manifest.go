/*
Package manifest implements the small index file written to each scanned
directory recording which resources have already been decoded there.

The file holds a little-endian entry count followed by one record per
resource: the CRC-32 of the source file, the image dimension and the
name of the decoded output. Records are sorted by CRC.
*/
package manifest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sort"
)

// Filename is the expected filename used when writing to disk
const Filename = "mazeres.idx"

var magic = [8]byte{'M', 'Z', 'R', 'I', 'D', 'X', 0, 1}

// Entry records one decoded resource.
type Entry struct {
	Dim  uint16
	Name string
}

// DB is the manifest object. It implements the encoding.BinaryMarshaler
// and encoding.BinaryUnmarshaler interfaces.
type DB struct {
	entries map[uint32]Entry
}

// New returns an empty manifest
func New() *DB {
	return &DB{
		entries: make(map[uint32]Entry),
	}
}

// Length returns the number of entries in the manifest
func (db *DB) Length() int {
	return len(db.entries)
}

// Set stores the entry for the given CRC, replacing any previous one
func (db *DB) Set(crc uint32, e Entry) {
	db.entries[crc] = e
}

// Get returns the entry for the given CRC if there is one
func (db *DB) Get(crc uint32) (Entry, bool) {
	e, ok := db.entries[crc]
	return e, ok
}

// MarshalBinary encodes the manifest into binary form and returns the result
func (db *DB) MarshalBinary() ([]byte, error) {
	keys := make([]uint32, 0, len(db.entries))
	for k := range db.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	b := new(bytes.Buffer)

	if _, err := b.Write(magic[:]); err != nil {
		return nil, err
	}

	count := uint32(len(keys))
	if err := binary.Write(b, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	for _, k := range keys {
		e := db.entries[k]

		if err := binary.Write(b, binary.LittleEndian, &k); err != nil {
			return nil, err
		}
		if err := binary.Write(b, binary.LittleEndian, &e.Dim); err != nil {
			return nil, err
		}

		name := []byte(e.Name)
		length := uint16(len(name))
		if err := binary.Write(b, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		if _, err := b.Write(name); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the manifest from binary form
func (db *DB) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	var m [8]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return errors.New("manifest: missing magic")
	}
	if m != magic {
		return errors.New("manifest: bad magic")
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return err
	}

	db.entries = make(map[uint32]Entry, count)

	for i := uint32(0); i < count; i++ {
		var crc uint32
		var e Entry

		if err := binary.Read(r, binary.LittleEndian, &crc); err != nil {
			return err
		}
		if err := binary.Read(r, binary.LittleEndian, &e.Dim); err != nil {
			return err
		}

		var length uint16
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return err
		}

		name := make([]byte, length)
		if _, err := io.ReadFull(r, name); err != nil {
			return errors.New("manifest: insufficient data")
		}
		e.Name = string(name)

		db.entries[crc] = e
	}

	return nil
}
