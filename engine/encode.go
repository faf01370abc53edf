package engine

import (
	"github.com/pwnedgod/cstruct/buffer"
	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/token"
)

type encoder struct {
	w      buffer.Writer
	codecs Transcoders
	trace  *Trace
}

func (e *encoder) leaf(desc token.Descriptor, v any, path string) (any, error) {
	if desc.Kind.IsNumeric() {
		offset := e.w.Offset()
		if err := e.w.Write(desc.Kind, v, token.NoSize); err != nil {
			return nil, errs.WithPath(err, path)
		}
		e.trace.add(offset, path, desc.Token, v)
		return nil, nil
	}

	data, err := e.payload(desc, v, path)
	if err != nil {
		return nil, err
	}

	// Only static regions forward their size, dynamic ones are written as is.
	size := token.NoSize
	if desc.Static {
		if desc.Kind != token.Text && len(data) > desc.Size {
			return nil, errs.Size(path, "size of value %d is greater than %d", len(data), desc.Size)
		}
		size = desc.Size
	}
	if desc.Kind == token.Bytes && (size == 0 || size == token.NoSize && len(data) == 0) {
		return nil, errs.Size(path, "zero-length byte region")
	}
	if !desc.Static {
		if err := e.count(desc.Count, len(data), path); err != nil {
			return nil, err
		}
	}

	kind := desc.Kind
	if kind == token.Transcoded {
		kind = token.Bytes
	}
	offset := e.w.Offset()
	if err := e.w.Write(kind, data, size); err != nil {
		return nil, errs.WithPath(err, path)
	}
	e.trace.add(offset, path, desc.String(), v)
	return nil, nil
}

func (e *encoder) payload(desc token.Descriptor, v any, path string) ([]byte, error) {
	if desc.Kind != token.Transcoded {
		data, err := buffer.BytesOf(v)
		if err != nil {
			return nil, errs.WithPath(err, path)
		}
		return data, nil
	}

	c, ok := e.codecs.Transcoder(desc.Letter)
	if !ok {
		return nil, errs.Schema(path, "unknown token %q", desc.Token)
	}
	data, err := c.Marshal(v)
	if err != nil {
		return nil, errs.WrapValue(path, err, "cannot encode %q region", desc.Token)
	}
	return data, nil
}

func (e *encoder) length(l token.Length, n int, path string) (int, error) {
	if l.Static {
		if n > l.Size {
			return 0, errs.Size(path, "%d items exceed static length %d", n, l.Size)
		}
		return l.Size, nil
	}
	if err := e.count(l.Count, n, path); err != nil {
		return 0, err
	}
	return n, nil
}

func (e *encoder) count(k token.Kind, n int, path string) error {
	if !buffer.CountFits(k, n) {
		return errs.Size(path, "count %d does not fit %s", n, k)
	}
	offset := e.w.Offset()
	if err := e.w.Write(k, n, token.NoSize); err != nil {
		return errs.WithPath(err, path)
	}
	e.trace.add(offset, path+"#", k.String(), n)
	return nil
}

func (e *encoder) remaining() int {
	return 0
}
