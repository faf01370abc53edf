package buffer

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/token"
)

// Reader decodes scalars and regions from a caller-owned buffer. It never
// writes to the buffer and never returns slices aliasing it.
type Reader struct {
	b     []byte
	order binary.ByteOrder
	start int
	pos   int
}

func NewReader(b []byte, e Endian, offset int) (*Reader, error) {
	if offset < 0 || offset > len(b) {
		return nil, errs.Bounds("", "offset %d outside buffer of length %d", offset, len(b))
	}
	return &Reader{
		b:     b,
		order: e.Order(),
		start: offset,
		pos:   offset,
	}, nil
}

// Read decodes one value of kind k. size is the byte count of special kinds
// and is ignored for numeric kinds. Text is returned as a string without its
// trailing NUL padding, byte and transcoded regions as a fresh []byte.
func (r *Reader) Read(k token.Kind, size int) (any, error) {
	if k.IsNumeric() {
		p, err := r.next(k.Width())
		if err != nil {
			return nil, err
		}
		return r.scalar(k, p), nil
	}
	if size < 0 {
		return nil, errs.Size("", "region of kind %s has no size", k)
	}
	p, err := r.next(size)
	if err != nil {
		return nil, err
	}
	if k == token.Text {
		return string(bytes.TrimRight(p, "\x00")), nil
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out, nil
}

func (r *Reader) scalar(k token.Kind, p []byte) any {
	switch k {
	case token.Uint8:
		return p[0]
	case token.Int8:
		return int8(p[0])
	case token.Uint16:
		return r.order.Uint16(p)
	case token.Int16:
		return int16(r.order.Uint16(p))
	case token.Uint32:
		return r.order.Uint32(p)
	case token.Int32:
		return int32(r.order.Uint32(p))
	case token.Uint64:
		return r.order.Uint64(p)
	case token.Int64:
		return int64(r.order.Uint64(p))
	case token.Float32:
		return math.Float32frombits(r.order.Uint32(p))
	default:
		return math.Float64frombits(r.order.Uint64(p))
	}
}

func (r *Reader) next(n int) ([]byte, error) {
	if n > len(r.b)-r.pos {
		return nil, errs.Bounds("",
			"not enough bytes, expected %d at offset %d, found %d", n, r.pos, len(r.b)-r.pos)
	}
	p := r.b[r.pos : r.pos+n]
	r.pos += n
	return p, nil
}

// Offset is the absolute cursor position.
func (r *Reader) Offset() int {
	return r.pos
}

// Size is the number of bytes consumed since the start offset.
func (r *Reader) Size() int {
	return r.pos - r.start
}

// Remaining is the number of bytes left after the cursor.
func (r *Reader) Remaining() int {
	return len(r.b) - r.pos
}
