package buffer

import (
	"math"
	"testing"

	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Scalars(t *testing.T) {
	b := []byte{0x00, 0x00, 0x12, 0x34, 0x56, 0x78}
	t.Run("big endian", func(t *testing.T) {
		r, err := NewReader(b, BigEndian, 2)
		require.NoError(t, err)
		v, err := r.Read(token.Uint16, token.NoSize)
		require.NoError(t, err)
		require.Equal(t, uint16(0x1234), v)
		v, err = r.Read(token.Uint16, token.NoSize)
		require.NoError(t, err)
		require.Equal(t, uint16(0x5678), v)
		require.Equal(t, 6, r.Offset())
		require.Equal(t, 4, r.Size())
		require.Equal(t, 0, r.Remaining())
	})
	t.Run("little endian", func(t *testing.T) {
		r, err := NewReader(b, LittleEndian, 2)
		require.NoError(t, err)
		v, err := r.Read(token.Uint32, token.NoSize)
		require.NoError(t, err)
		require.Equal(t, uint32(0x78563412), v)
	})
	t.Run("signed", func(t *testing.T) {
		r, err := NewReader([]byte{0xff, 0xff, 0xfe}, BigEndian, 0)
		require.NoError(t, err)
		v, err := r.Read(token.Int16, token.NoSize)
		require.NoError(t, err)
		require.Equal(t, int16(-1), v)
		v, err = r.Read(token.Int8, token.NoSize)
		require.NoError(t, err)
		require.Equal(t, int8(-2), v)
	})
}

func TestReader_Floats(t *testing.T) {
	w := NewGrowingWriter(LittleEndian)
	defer w.Release()
	require.NoError(t, w.Write(token.Float32, 1.5, token.NoSize))
	require.NoError(t, w.Write(token.Float64, math.Pi, token.NoSize))

	r, err := NewReader(w.Bytes(), LittleEndian, 0)
	require.NoError(t, err)
	v, err := r.Read(token.Float32, token.NoSize)
	require.NoError(t, err)
	require.Equal(t, float32(1.5), v)
	v, err = r.Read(token.Float64, token.NoSize)
	require.NoError(t, err)
	require.Equal(t, math.Pi, v)
}

func TestReader_Regions(t *testing.T) {
	b := []byte{'a', 'b', 0, 0, 1, 2, 3}
	r, err := NewReader(b, BigEndian, 0)
	require.NoError(t, err)

	v, err := r.Read(token.Text, 4)
	require.NoError(t, err)
	require.Equal(t, "ab", v)

	v, err = r.Read(token.Bytes, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, v)

	// The result must not alias the source.
	v.([]byte)[0] = 9
	require.Equal(t, byte(1), b[4])

	_, err = r.Read(token.Text, token.NoSize)
	require.ErrorIs(t, err, errs.ErrSize)
}

func TestReader_Bounds(t *testing.T) {
	_, err := NewReader([]byte{1}, BigEndian, 2)
	require.ErrorIs(t, err, errs.ErrBounds)
	_, err = NewReader([]byte{1}, BigEndian, -1)
	require.ErrorIs(t, err, errs.ErrBounds)

	r, err := NewReader([]byte{1}, BigEndian, 1)
	require.NoError(t, err)
	_, err = r.Read(token.Uint8, token.NoSize)
	require.ErrorIs(t, err, errs.ErrBounds)

	r, err = NewReader([]byte{1, 2, 3}, BigEndian, 0)
	require.NoError(t, err)
	_, err = r.Read(token.Uint32, token.NoSize)
	require.ErrorIs(t, err, errs.ErrBounds)
	require.Equal(t, 0, r.Offset())
}

func TestFixedWriter(t *testing.T) {
	b := make([]byte, 6)
	w, err := NewFixedWriter(b, BigEndian, 2)
	require.NoError(t, err)
	require.NoError(t, w.Write(token.Uint16, 0x1234, token.NoSize))
	require.NoError(t, w.Write(token.Uint16, uint64(0x5678), token.NoSize))
	require.Equal(t, []byte{0, 0, 0x12, 0x34, 0x56, 0x78}, b)
	require.Equal(t, 6, w.Offset())
	require.Equal(t, 4, w.Size())

	err = w.Write(token.Uint8, 1, token.NoSize)
	require.ErrorIs(t, err, errs.ErrBounds)
}

func TestWriter_Text(t *testing.T) {
	w := NewGrowingWriter(BigEndian)
	defer w.Release()

	require.NoError(t, w.Write(token.Text, "ab", 4))
	require.NoError(t, w.Write(token.Text, "abcdef", 3))
	require.NoError(t, w.Write(token.Text, "xyz", token.NoSize))
	require.Equal(t, []byte{'a', 'b', 0, 0, 'a', 'b', 'c', 'x', 'y', 'z'}, w.Bytes())
	require.Equal(t, 10, w.Size())
}

func TestWriter_ByteRegion(t *testing.T) {
	w := NewGrowingWriter(BigEndian)
	defer w.Release()

	require.NoError(t, w.Write(token.Bytes, []byte{1, 2}, 4))
	require.Equal(t, []byte{1, 2, 0, 0}, w.Bytes())

	err := w.Write(token.Bytes, []byte{1, 2, 3}, 2)
	require.ErrorIs(t, err, errs.ErrSize)

	err = w.Write(token.Bytes, 12, token.NoSize)
	require.ErrorIs(t, err, errs.ErrValue)
}

func TestCoerce(t *testing.T) {
	for _, test := range []struct {
		kind token.Kind
		in   any
		want any
	}{
		{token.Uint8, 255, uint8(255)},
		{token.Int8, -128, int8(-128)},
		{token.Uint16, float64(4660), uint16(4660)},
		{token.Int64, uint32(7), int64(7)},
		{token.Float32, 2, float32(2)},
		{token.Float64, float32(0.5), float64(0.5)},
		{token.Uint32, nil, uint32(0)},
	} {
		got, err := Coerce(test.kind, test.in)
		require.NoError(t, err, "%s %v", test.kind, test.in)
		assert.Equal(t, test.want, got)
	}

	for _, test := range []struct {
		kind token.Kind
		in   any
	}{
		{token.Uint8, 256},
		{token.Uint8, -1},
		{token.Int8, 128},
		{token.Uint16, 1.5},
		{token.Uint16, math.NaN()},
		{token.Int32, "12"},
		{token.Uint8, true},
		{token.Float32, math.MaxFloat64},
	} {
		_, err := Coerce(test.kind, test.in)
		assert.ErrorIs(t, err, errs.ErrValue, "%s %v", test.kind, test.in)
	}
}

func TestCountOf(t *testing.T) {
	n, err := CountOf(uint16(3))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = CountOf(int8(-1))
	require.ErrorIs(t, err, errs.ErrSize)

	require.True(t, CountFits(token.Uint8, 255))
	require.False(t, CountFits(token.Uint8, 256))
}

func TestParseEndian(t *testing.T) {
	e, err := ParseEndian("LE")
	require.NoError(t, err)
	require.Equal(t, LittleEndian, e)
	e, err = ParseEndian("big")
	require.NoError(t, err)
	require.Equal(t, BigEndian, e)
	_, err = ParseEndian("middle")
	require.Error(t, err)
}
