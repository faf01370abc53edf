package buffer

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/token"
	"github.com/valyala/bytebufferpool"
)

// Writer encodes scalars and regions at a cursor.
type Writer interface {
	// Write encodes v as kind k. For special kinds a size other than
	// token.NoSize makes the region exactly size bytes: text is truncated or
	// NUL padded, byte regions are zero padded. Without a size the value's
	// own bytes are written.
	Write(k token.Kind, v any, size int) error
	Offset() int
	Size() int
}

type reserver interface {
	reserve(n int) ([]byte, error)
}

func write(r reserver, order binary.ByteOrder, k token.Kind, v any, size int) error {
	if k.IsNumeric() {
		n, err := Coerce(k, v)
		if err != nil {
			return err
		}
		p, err := r.reserve(k.Width())
		if err != nil {
			return err
		}
		putScalar(order, p, n)
		return nil
	}

	data, err := BytesOf(v)
	if err != nil {
		return err
	}
	if size == token.NoSize {
		size = len(data)
	}
	if len(data) > size {
		if k != token.Text {
			return errs.Size("", "size of value %d is greater than %d", len(data), size)
		}
		data = data[:size]
	}
	p, err := r.reserve(size)
	if err != nil {
		return err
	}
	copy(p, data)
	return nil
}

func putScalar(order binary.ByteOrder, p []byte, n any) {
	switch x := n.(type) {
	case uint8:
		p[0] = x
	case int8:
		p[0] = byte(x)
	case uint16:
		order.PutUint16(p, x)
	case int16:
		order.PutUint16(p, uint16(x))
	case uint32:
		order.PutUint32(p, x)
	case int32:
		order.PutUint32(p, uint32(x))
	case uint64:
		order.PutUint64(p, x)
	case int64:
		order.PutUint64(p, uint64(x))
	case float32:
		order.PutUint32(p, math.Float32bits(x))
	case float64:
		order.PutUint64(p, math.Float64bits(x))
	}
}

// FixedWriter writes into a caller-owned buffer and never grows it.
type FixedWriter struct {
	b     []byte
	order binary.ByteOrder
	start int
	pos   int
}

func NewFixedWriter(b []byte, e Endian, offset int) (*FixedWriter, error) {
	if offset < 0 || offset > len(b) {
		return nil, errs.Bounds("", "offset %d outside buffer of length %d", offset, len(b))
	}
	return &FixedWriter{
		b:     b,
		order: e.Order(),
		start: offset,
		pos:   offset,
	}, nil
}

func (w *FixedWriter) Write(k token.Kind, v any, size int) error {
	return write(w, w.order, k, v, size)
}

func (w *FixedWriter) reserve(n int) ([]byte, error) {
	if n > len(w.b)-w.pos {
		return nil, errs.Bounds("",
			"not enough space, expected %d at offset %d, found %d", n, w.pos, len(w.b)-w.pos)
	}
	p := w.b[w.pos : w.pos+n]
	clear(p)
	w.pos += n
	return p, nil
}

// Bytes returns the whole caller buffer.
func (w *FixedWriter) Bytes() []byte {
	return w.b
}

func (w *FixedWriter) Offset() int {
	return w.pos
}

func (w *FixedWriter) Size() int {
	return w.pos - w.start
}

// GrowingWriter appends to a pooled scratch buffer. Bytes hands out an
// exactly sized copy; Release must be called once the writer is done.
type GrowingWriter struct {
	buf   *bytebufferpool.ByteBuffer
	order binary.ByteOrder
}

func NewGrowingWriter(e Endian) *GrowingWriter {
	return &GrowingWriter{
		buf:   bytebufferpool.Get(),
		order: e.Order(),
	}
}

func (w *GrowingWriter) Write(k token.Kind, v any, size int) error {
	return write(w, w.order, k, v, size)
}

func (w *GrowingWriter) reserve(n int) ([]byte, error) {
	l := len(w.buf.B)
	w.buf.B = slices.Grow(w.buf.B, n)[:l+n]
	p := w.buf.B[l:]
	clear(p)
	return p, nil
}

// Bytes allocates a buffer of exactly Size bytes holding everything written.
func (w *GrowingWriter) Bytes() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.B)
	return out
}

func (w *GrowingWriter) Release() {
	bytebufferpool.Put(w.buf)
	w.buf = nil
}

func (w *GrowingWriter) Offset() int {
	return w.buf.Len()
}

func (w *GrowingWriter) Size() int {
	return w.buf.Len()
}
