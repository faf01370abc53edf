package json

import (
	"bytes"
	"encoding/json"

	"github.com/pwnedgod/cstruct/codec"
)

type jsonCodec struct {
}

// NewCodec is the codec of `j` regions. Output is compact and leaves HTML
// characters unescaped, so a region holds exactly the text a reader expects.
func NewCodec() codec.Codec {
	return &jsonCodec{}
}

func (c jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (c jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
