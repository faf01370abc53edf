// Package engine walks a compiled Model and drives the buffer primitives.
//
// The traversal is shared by the three drivers. Decode builds a fresh value
// tree, Encode writes into a caller-owned buffer and Make encodes into a
// buffer allocated to the exact size of the output. Every call keeps its own
// cursor and trace; an Engine holds nothing mutable and can be used from many
// goroutines at once.
package engine

import (
	"maps"

	"github.com/pwnedgod/cstruct/buffer"
	"github.com/pwnedgod/cstruct/codec"
	"github.com/pwnedgod/cstruct/logger"
	"github.com/pwnedgod/cstruct/logger/nop"
	"github.com/pwnedgod/cstruct/model"
)

// Transcoders maps a transcoded kind letter to its codec.
type Transcoders map[byte]codec.Codec

func (t Transcoders) Transcoder(letter byte) (codec.Codec, bool) {
	c, ok := t[letter]
	return c, ok
}

type Options struct {
	Endian      buffer.Endian
	Transcoders Transcoders
	Logger      logger.Logger
}

type Engine struct {
	root   model.Node
	endian buffer.Endian
	codecs Transcoders
	logger logger.Logger
}

type Result struct {
	// Value is the decoded value tree, nil for encode calls.
	Value any
	// Buffer is the caller buffer for Encode and the new buffer for Make.
	Buffer []byte
	// Offset is the absolute cursor after the call.
	Offset int
	// Size is the number of bytes processed by the call.
	Size  int
	Trace *Trace
}

func New(root model.Node, opts Options) *Engine {
	l := opts.Logger
	if l == nil {
		l = nop.NewLogger()
	}
	return &Engine{
		root:   root,
		endian: opts.Endian,
		codecs: maps.Clone(opts.Transcoders),
		logger: l,
	}
}

func (e *Engine) Endian() buffer.Endian {
	return e.endian
}

// Decode reads one value starting at offset. The buffer is never modified.
func (e *Engine) Decode(buf []byte, offset int) (Result, error) {
	e.logger.Debug("decode", e.endian, "offset", offset, "length", len(buf))

	r, err := buffer.NewReader(buf, e.endian, offset)
	if err != nil {
		return e.fail("decode", err)
	}
	trace := &Trace{}
	w := &walker{dir: &decoder{r: r, codecs: e.codecs, trace: trace}}
	v, err := w.walk(e.root, nil, "")
	if err != nil {
		return e.fail("decode", err)
	}

	e.logger.Debug("decoded", "offset", r.Offset(), "size", r.Size(), "atoms", trace.Len())
	return Result{
		Value:  v,
		Offset: r.Offset(),
		Size:   r.Size(),
		Trace:  trace,
	}, nil
}

// Encode writes v into buf starting at offset. buf must already be large
// enough; it is never grown.
func (e *Engine) Encode(buf []byte, v any, offset int) (Result, error) {
	e.logger.Debug("encode", e.endian, "offset", offset, "length", len(buf))

	fw, err := buffer.NewFixedWriter(buf, e.endian, offset)
	if err != nil {
		return e.fail("encode", err)
	}
	trace, err := e.encode(fw, v)
	if err != nil {
		return e.fail("encode", err)
	}

	e.logger.Debug("encoded", "offset", fw.Offset(), "size", fw.Size(), "atoms", trace.Len())
	return Result{
		Buffer: buf,
		Offset: fw.Offset(),
		Size:   fw.Size(),
		Trace:  trace,
	}, nil
}

// Make encodes v into a new buffer of exactly the encoded size.
func (e *Engine) Make(v any) (Result, error) {
	e.logger.Debug("make", e.endian)

	gw := buffer.NewGrowingWriter(e.endian)
	defer gw.Release()
	trace, err := e.encode(gw, v)
	if err != nil {
		return e.fail("make", err)
	}

	e.logger.Debug("made", "size", gw.Size(), "atoms", trace.Len())
	return Result{
		Buffer: gw.Bytes(),
		Offset: gw.Offset(),
		Size:   gw.Size(),
		Trace:  trace,
	}, nil
}

func (e *Engine) encode(bw buffer.Writer, v any) (*Trace, error) {
	trace := &Trace{}
	w := &walker{
		dir:      &encoder{w: bw, codecs: e.codecs, trace: trace},
		encoding: true,
	}
	if _, err := w.walk(e.root, v, ""); err != nil {
		return nil, err
	}
	return trace, nil
}

func (e *Engine) fail(op string, err error) (Result, error) {
	e.logger.Error(op, "failed:", err)
	return Result{}, err
}
