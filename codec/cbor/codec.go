package cbor

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/pwnedgod/cstruct/codec"
)

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCodec returns a CBOR transcoder using canonical encoding. Maps decoded
// into an interface are map[string]any.
func NewCodec() (codec.Codec, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return nil, err
	}
	return &cborCodec{enc: enc, dec: dec}, nil
}

func (c cborCodec) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c cborCodec) Unmarshal(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
