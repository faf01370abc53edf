package cstruct

import (
	"github.com/pwnedgod/cstruct/buffer"
	"github.com/pwnedgod/cstruct/engine"
	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/logger"
	"github.com/pwnedgod/cstruct/model"
)

type defaultStruct struct {
	engine *engine.Engine
	logger logger.Logger
}

// New compiles m and binds it to a byte order, big endian unless WithEndian
// says otherwise. m is a type token, a []any sequence or an ordered mapping
// (see model.Ordered and model.Load). Any malformed token is reported here.
func New(m any, opts ...Option) (Struct, error) {
	c := newConfig(opts)
	if c.err != nil {
		c.logger.Error(c.err)
		return nil, c.err
	}

	root, err := model.Compile(m, model.Config{
		Parser: c.parser,
		Types:  c.types,
		HasTranscoder: func(letter byte) bool {
			_, ok := c.transcoders[letter]
			return ok
		},
	})
	if err != nil {
		c.logger.Error("compile failed:", err)
		return nil, err
	}

	return &defaultStruct{
		engine: engine.New(root, engine.Options{
			Endian:      c.endian,
			Transcoders: c.transcoders,
			Logger:      c.logger,
		}),
		logger: c.logger,
	}, nil
}

func NewBE(m any, opts ...Option) (Struct, error) {
	return New(m, append(opts, WithEndian(buffer.BigEndian))...)
}

func NewLE(m any, opts ...Option) (Struct, error) {
	return New(m, append(opts, WithEndian(buffer.LittleEndian))...)
}

func (s defaultStruct) Read(buf []byte, offset int) (ReadResult, error) {
	res, err := s.engine.Decode(buf, offset)
	if err != nil {
		return ReadResult{}, err
	}
	return ReadResult{
		Value:  res.Value,
		Offset: res.Offset,
		Size:   res.Size,
		trace:  res.Trace,
	}, nil
}

func (s defaultStruct) ReadInto(buf []byte, offset int, out any) (ReadResult, error) {
	res, err := s.Read(buf, offset)
	if err != nil {
		return ReadResult{}, err
	}
	if err := engine.Bind(res.Value, out); err != nil {
		err = errs.WrapValue("", err, "cannot bind decoded value into %T", out)
		s.logger.Error(err)
		return ReadResult{}, err
	}
	return res, nil
}

func (s defaultStruct) Write(buf []byte, v any, offset int) (WriteResult, error) {
	res, err := s.engine.Encode(buf, v, offset)
	if err != nil {
		return WriteResult{}, err
	}
	return writeResult(res), nil
}

func (s defaultStruct) Make(v any) (WriteResult, error) {
	res, err := s.engine.Make(v)
	if err != nil {
		return WriteResult{}, err
	}
	return writeResult(res), nil
}

func (s defaultStruct) Endian() buffer.Endian {
	return s.engine.Endian()
}

func writeResult(res engine.Result) WriteResult {
	return WriteResult{
		Buffer: res.Buffer,
		Offset: res.Offset,
		Size:   res.Size,
		trace:  res.Trace,
	}
}
