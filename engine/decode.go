package engine

import (
	"bytes"

	"github.com/pwnedgod/cstruct/buffer"
	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/token"
)

type decoder struct {
	r      *buffer.Reader
	codecs Transcoders
	trace  *Trace
}

func (d *decoder) leaf(desc token.Descriptor, _ any, path string) (any, error) {
	if desc.Kind.IsNumeric() {
		offset := d.r.Offset()
		v, err := d.r.Read(desc.Kind, token.NoSize)
		if err != nil {
			return nil, errs.WithPath(err, path)
		}
		d.trace.add(offset, path, desc.Token, v)
		return v, nil
	}

	size := desc.Size
	if !desc.Static {
		n, err := d.count(desc.Count, path)
		if err != nil {
			return nil, err
		}
		size = n
	}
	if desc.Kind == token.Bytes && size == 0 {
		return nil, errs.Size(path, "zero-length byte region")
	}

	kind := desc.Kind
	if kind == token.Transcoded {
		kind = token.Bytes
	}
	offset := d.r.Offset()
	v, err := d.r.Read(kind, size)
	if err != nil {
		return nil, errs.WithPath(err, path)
	}

	if desc.Kind == token.Transcoded {
		data := v.([]byte)
		if desc.Static {
			data = bytes.TrimRight(data, "\x00")
		}
		if v, err = d.transcode(desc, data, path); err != nil {
			return nil, err
		}
	}
	d.trace.add(offset, path, desc.String(), v)
	return v, nil
}

func (d *decoder) transcode(desc token.Descriptor, data []byte, path string) (any, error) {
	c, ok := d.codecs.Transcoder(desc.Letter)
	if !ok {
		return nil, errs.Schema(path, "unknown token %q", desc.Token)
	}
	var v any
	if err := c.Unmarshal(data, &v); err != nil {
		return nil, errs.WrapValue(path, err, "cannot decode %q region", desc.Token)
	}
	return v, nil
}

func (d *decoder) length(l token.Length, _ int, path string) (int, error) {
	if l.Static {
		return l.Size, nil
	}
	return d.count(l.Count, path)
}

func (d *decoder) count(k token.Kind, path string) (int, error) {
	offset := d.r.Offset()
	v, err := d.r.Read(k, token.NoSize)
	if err != nil {
		return 0, errs.WithPath(err, path)
	}
	n, err := buffer.CountOf(v)
	if err != nil {
		return 0, errs.WithPath(err, path)
	}
	d.trace.add(offset, path+"#", k.String(), v)
	return n, nil
}

func (d *decoder) remaining() int {
	return d.r.Remaining()
}
