package msgpack

import (
	"github.com/pwnedgod/cstruct/codec"
	"github.com/vmihailenco/msgpack/v5"
)

type msgpackCodec struct {
}

func NewCodec() codec.Codec {
	return &msgpackCodec{}
}

func (c msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
