package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	db := New()
	require.Equal(t, 0, db.Length())

	db.Set(0xdeadbeef, Entry{Dim: 64, Name: "wall.png"})
	db.Set(0xcafebabe, Entry{Dim: 128, Name: "rat.png"})
	db.Set(0xdeadbeef, Entry{Dim: 32, Name: "wall.png"})

	require.Equal(t, 2, db.Length())

	e, ok := db.Get(0xdeadbeef)
	require.True(t, ok)
	require.Equal(t, Entry{Dim: 32, Name: "wall.png"}, e)

	_, ok = db.Get(0x12345678)
	require.False(t, ok)
}

func TestMarshalRoundTrip(t *testing.T) {
	db := New()
	db.Set(0xdeadbeef, Entry{Dim: 64, Name: "wall.png"})
	db.Set(0xcafebabe, Entry{Dim: 128, Name: "rat.png"})
	db.Set(0x00000001, Entry{Dim: 16, Name: ""})

	b, err := db.MarshalBinary()
	require.NoError(t, err)

	got := New()
	require.NoError(t, got.UnmarshalBinary(b))
	require.Equal(t, db.Length(), got.Length())

	for _, crc := range []uint32{0xdeadbeef, 0xcafebabe, 0x00000001} {
		want, _ := db.Get(crc)
		e, ok := got.Get(crc)
		require.True(t, ok)
		require.Equal(t, want, e)
	}
}

func TestUnmarshalBadInput(t *testing.T) {
	require.Error(t, New().UnmarshalBinary(nil))
	require.Error(t, New().UnmarshalBinary([]byte("not a manifest")))

	// Valid magic but truncated records
	db := New()
	db.Set(1, Entry{Dim: 16, Name: "x.png"})
	b, err := db.MarshalBinary()
	require.NoError(t, err)
	require.Error(t, New().UnmarshalBinary(b[:len(b)-2]))
}
