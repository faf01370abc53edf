package cstruct

import (
	"github.com/pwnedgod/cstruct/buffer"
	"github.com/pwnedgod/cstruct/engine"
)

type (
	ReadResult struct {
		// The decoded value tree: map[string]any for mappings, []any for
		// sequences and arrays, exact Go scalars, string and []byte for leaves.
		Value any

		// Absolute cursor after the call.
		Offset int

		// Bytes consumed by the call.
		Size int

		trace *engine.Trace
	}

	WriteResult struct {
		// The buffer written to. For Struct.Make it is freshly allocated and
		// exactly Size bytes long.
		Buffer []byte

		Offset int
		Size   int

		trace *engine.Trace
	}

	Struct interface {
		// Decode a value starting at offset. The buffer is never modified.
		Read(buf []byte, offset int) (ReadResult, error)

		// Same as Read, then bind the decoded value into out, a pointer.
		// Field names follow msgpack struct tags.
		ReadInto(buf []byte, offset int, out any) (ReadResult, error)

		// Encode v into buf starting at offset.
		// The buffer must be large enough, it is never grown.
		Write(buf []byte, v any, offset int) (WriteResult, error)

		// Encode v into a new buffer of exactly the encoded size.
		Make(v any) (WriteResult, error)

		Endian() buffer.Endian
	}
)

// Atoms returns the diagnostic trace of the call, one entry per leaf or count.
func (r ReadResult) Atoms() []string {
	return atomsOf(r.trace)
}

func (r WriteResult) Atoms() []string {
	return atomsOf(r.trace)
}

func atomsOf(t *engine.Trace) []string {
	if t == nil {
		return nil
	}
	return t.Atoms()
}
