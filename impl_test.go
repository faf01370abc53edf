package cstruct_test

import (
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/pwnedgod/cstruct"
	"github.com/pwnedgod/cstruct/buffer"
	"github.com/pwnedgod/cstruct/codec/cbor"
	"github.com/pwnedgod/cstruct/codec/msgpack"
	"github.com/pwnedgod/cstruct/logger"
	"github.com/pwnedgod/cstruct/logger/std"
	"github.com/pwnedgod/cstruct/model"
	"github.com/stretchr/testify/suite"
)

type op int

const (
	opRead op = iota
	opWrite
	opMake
)

type tCase struct {
	op             op
	model          any
	buffer         string
	value          any
	offset         int
	expectedErr    error
	expectedValue  any
	expectedBuffer string
	expectedOffset int
	expectedSize   int
}

type testPoint struct {
	X int16 `msgpack:"x"`
	Y int16 `msgpack:"y"`
}

type testRecord struct {
	ID     uint32      `msgpack:"id"`
	Name   string      `msgpack:"name"`
	Points []testPoint `msgpack:"points"`
}

func hexToBuffer(s string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		panic(err)
	}
	return b
}

func (c tCase) run(sut *StructTestSuite, newStruct func(any, ...cstruct.Option) (cstruct.Struct, error)) {
	s, err := newStruct(c.model, cstruct.WithLogger(sut.logger))
	if !sut.Assert().NoError(err) {
		return
	}

	switch c.op {
	case opRead:
		res, err := s.Read(hexToBuffer(c.buffer), c.offset)
		if c.expectedErr != nil {
			sut.Assert().ErrorIs(err, c.expectedErr)
			return
		}
		sut.Assert().NoError(err)
		sut.Assert().Equal(c.expectedValue, res.Value)
		sut.Assert().Equal(c.expectedOffset, res.Offset)
		sut.Assert().Equal(c.expectedSize, res.Size)
	case opWrite:
		buf := hexToBuffer(c.buffer)
		res, err := s.Write(buf, c.value, c.offset)
		if c.expectedErr != nil {
			sut.Assert().ErrorIs(err, c.expectedErr)
			return
		}
		sut.Assert().NoError(err)
		sut.Assert().Equal(hexToBuffer(c.expectedBuffer), buf)
		sut.Assert().Equal(hexToBuffer(c.expectedBuffer), res.Buffer)
		sut.Assert().Equal(c.expectedOffset, res.Offset)
		sut.Assert().Equal(c.expectedSize, res.Size)
	case opMake:
		res, err := s.Make(c.value)
		if c.expectedErr != nil {
			sut.Assert().ErrorIs(err, c.expectedErr)
			return
		}
		sut.Assert().NoError(err)
		sut.Assert().Equal(hexToBuffer(c.expectedBuffer), res.Buffer)
		sut.Assert().Equal(c.expectedOffset, res.Offset)
		sut.Assert().Equal(c.expectedSize, res.Size)
	}
}

func runCases(sut *StructTestSuite, newStruct func(any, ...cstruct.Option) (cstruct.Struct, error), cases []tCase) {
	for i, c := range cases {
		sut.Run(fmt.Sprintf("Test Case #%d", i), func() {
			c.run(sut, newStruct)
		})
	}
}

type StructTestSuite struct {
	suite.Suite
	logger logger.Logger
}

var (
	recordModel = model.Ordered("r", []any{"u16", "u16"})
	pairModel   = []any{"u16", "u16"}
	textModel   = []any{"s4", "s4"}
)

func (s *StructTestSuite) SetupTest() {
	s.logger = std.NewLogger()
}

func (s *StructTestSuite) TestReadBE() {
	runCases(s, cstruct.NewBE, []tCase{
		{
			op:             opRead,
			model:          recordModel,
			buffer:         "1234 5678",
			expectedValue:  map[string]any{"r": []any{uint16(0x1234), uint16(0x5678)}},
			expectedOffset: 4,
			expectedSize:   4,
		},
		{
			op:             opRead,
			model:          recordModel,
			buffer:         "0000 1234 5678",
			offset:         2,
			expectedValue:  map[string]any{"r": []any{uint16(0x1234), uint16(0x5678)}},
			expectedOffset: 6,
			expectedSize:   4,
		},
		{
			op:             opRead,
			model:          pairModel,
			buffer:         "0000 1234 5678",
			offset:         2,
			expectedValue:  []any{uint16(0x1234), uint16(0x5678)},
			expectedOffset: 6,
			expectedSize:   4,
		},
		{
			op:             opRead,
			model:          textModel,
			buffer:         "0000 61620000 63640000",
			offset:         2,
			expectedValue:  []any{"ab", "cd"},
			expectedOffset: 10,
			expectedSize:   8,
		},
		{
			op:          opRead,
			model:       pairModel,
			buffer:      "1234 56",
			expectedErr: cstruct.ErrBounds,
		},
		{
			op:          opRead,
			model:       pairModel,
			buffer:      "1234",
			offset:      3,
			expectedErr: cstruct.ErrBounds,
		},
	})
}

func (s *StructTestSuite) TestReadLE() {
	runCases(s, cstruct.NewLE, []tCase{
		{
			op:             opRead,
			model:          recordModel,
			buffer:         "3412 7856",
			expectedValue:  map[string]any{"r": []any{uint16(0x1234), uint16(0x5678)}},
			expectedOffset: 4,
			expectedSize:   4,
		},
		{
			op:             opRead,
			model:          pairModel,
			buffer:         "0000 3412 7856",
			offset:         2,
			expectedValue:  []any{uint16(0x1234), uint16(0x5678)},
			expectedOffset: 6,
			expectedSize:   4,
		},
		{
			op:             opRead,
			model:          textModel,
			buffer:         "0000 61620000 63640000",
			offset:         2,
			expectedValue:  []any{"ab", "cd"},
			expectedOffset: 10,
			expectedSize:   8,
		},
	})
}

func (s *StructTestSuite) TestMake() {
	runCases(s, cstruct.NewBE, []tCase{
		{
			op:             opMake,
			model:          recordModel,
			value:          map[string]any{"r": []any{0x1234, 0x5678}},
			expectedBuffer: "1234 5678",
			expectedOffset: 4,
			expectedSize:   4,
		},
		{
			op:             opMake,
			model:          pairModel,
			value:          []int{0x1234, 0x5678},
			expectedBuffer: "1234 5678",
			expectedOffset: 4,
			expectedSize:   4,
		},
		{
			op:             opMake,
			model:          textModel,
			value:          []string{"ab", "cd"},
			expectedBuffer: "61620000 63640000",
			expectedOffset: 8,
			expectedSize:   8,
		},
		{
			op:             opMake,
			model:          map[string]any{"name.i16": "u8"},
			value:          map[string]any{"name": []byte{7, 8, 9}},
			expectedBuffer: "0003 070809",
			expectedOffset: 5,
			expectedSize:   5,
		},
		{
			op:          opMake,
			model:       map[string]any{"blob.2": "b"},
			value:       map[string]any{"blob": []byte{1, 2, 3}},
			expectedErr: cstruct.ErrSize,
		},
		{
			op:          opMake,
			model:       "b0",
			value:       nil,
			expectedErr: cstruct.ErrSize,
		},
		{
			op:          opMake,
			model:       "u8",
			value:       "not a number",
			expectedErr: cstruct.ErrValue,
		},
	})
	runCases(s, cstruct.NewLE, []tCase{
		{
			op:             opMake,
			model:          recordModel,
			value:          map[string]any{"r": []any{0x1234, 0x5678}},
			expectedBuffer: "3412 7856",
			expectedOffset: 4,
			expectedSize:   4,
		},
		{
			op:             opMake,
			model:          textModel,
			value:          []any{"ab", "cd"},
			expectedBuffer: "61620000 63640000",
			expectedOffset: 8,
			expectedSize:   8,
		},
	})
}

func (s *StructTestSuite) TestWrite() {
	runCases(s, cstruct.NewBE, []tCase{
		{
			op:             opWrite,
			model:          recordModel,
			buffer:         "0000 0000",
			value:          map[string]any{"r": []any{0x1234, 0x5678}},
			expectedBuffer: "1234 5678",
			expectedOffset: 4,
			expectedSize:   4,
		},
		{
			op:             opWrite,
			model:          recordModel,
			buffer:         "0000 0000 0000",
			value:          map[string]any{"r": []any{0x1234, 0x5678}},
			offset:         2,
			expectedBuffer: "0000 1234 5678",
			expectedOffset: 6,
			expectedSize:   4,
		},
		{
			op:             opWrite,
			model:          textModel,
			buffer:         "0000 00000000 00000000",
			value:          []any{"ab", "cd"},
			offset:         2,
			expectedBuffer: "0000 61620000 63640000",
			expectedOffset: 10,
			expectedSize:   8,
		},
		{
			op:          opWrite,
			model:       pairModel,
			buffer:      "0000 00",
			value:       []any{1, 2},
			expectedErr: cstruct.ErrBounds,
		},
	})
	runCases(s, cstruct.NewLE, []tCase{
		{
			op:             opWrite,
			model:          pairModel,
			buffer:         "0000 0000 0000",
			value:          []any{0x1234, 0x5678},
			offset:         2,
			expectedBuffer: "0000 3412 7856",
			expectedOffset: 6,
			expectedSize:   4,
		},
	})
}

func (s *StructTestSuite) TestSchemaErrors() {
	for _, m := range []any{
		"u12",
		[]any{"u8", "s"},
		map[string]any{"a": "u8", "b": "u8"},
		model.Ordered("n.f32", "u8"),
		"m[u8]",
	} {
		_, err := cstruct.New(m, cstruct.WithLogger(s.logger))
		s.Assert().True(cstruct.IsSchemaError(err), "%v: %v", m, err)
	}

	_, err := cstruct.New("u8", cstruct.WithTranscoder('s', msgpack.NewCodec()))
	s.Assert().True(cstruct.IsSchemaError(err))
	_, err = cstruct.New("u8", cstruct.WithTranscoder('M', msgpack.NewCodec()))
	s.Assert().True(cstruct.IsSchemaError(err))
}

func (s *StructTestSuite) TestAtoms() {
	st, err := cstruct.NewBE(model.Ordered("id", "u8", "name.u8", "s"))
	s.Require().NoError(err)

	res, err := st.Make(map[string]any{"id": 1, "name": "x"})
	s.Require().NoError(err)
	s.Assert().Equal([]string{`0 id u8 1`, `1 name# u8 1`, `2 name s[u8] "x"`}, res.Atoms())

	read, err := st.Read(res.Buffer, 0)
	s.Require().NoError(err)
	s.Assert().Len(read.Atoms(), 3)
	s.Assert().Nil(cstruct.ReadResult{}.Atoms())
}

func (s *StructTestSuite) TestNamedTypesAndReadInto() {
	st, err := cstruct.NewLE(
		model.Ordered("id", "u32", "name.u8", "s", "points.u8", "Point"),
		cstruct.WithTypes(map[string]any{"Point": model.Ordered("x", "i16", "y", "i16")}),
	)
	s.Require().NoError(err)
	s.Assert().Equal(buffer.LittleEndian, st.Endian())

	in := testRecord{ID: 9, Name: "track", Points: []testPoint{{X: 1, Y: -1}, {X: -300, Y: 300}}}
	made, err := st.Make(in)
	s.Require().NoError(err)
	s.Assert().Equal(4+1+5+1+8, made.Size)

	var out testRecord
	res, err := st.ReadInto(made.Buffer, 0, &out)
	s.Require().NoError(err)
	s.Assert().Equal(made.Size, res.Size)
	if diff := deep.Equal(out, in); diff != nil {
		s.T().Error(diff)
	}
}

func (s *StructTestSuite) TestTranscoders() {
	cborCodec, err := cbor.NewCodec()
	s.Require().NoError(err)

	st, err := cstruct.New(
		model.Ordered("doc.u16", "j", "packed.u8", "m", "compact", "c[u8]"),
		cstruct.WithTranscoder('m', msgpack.NewCodec()),
		cstruct.WithTranscoder('c', cborCodec),
	)
	s.Require().NoError(err)

	value := map[string]any{
		"doc":     map[string]any{"kind": "json"},
		"packed":  map[string]any{"kind": "msgpack"},
		"compact": map[string]any{"kind": "cbor"},
	}
	made, err := st.Make(value)
	s.Require().NoError(err)

	res, err := st.Read(made.Buffer, 0)
	s.Require().NoError(err)
	if diff := deep.Equal(res.Value, any(value)); diff != nil {
		s.T().Error(diff)
	}
}

func TestRunStructTestSuite(t *testing.T) {
	suite.Run(t, new(StructTestSuite))
}
