package codec_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/pwnedgod/cstruct/codec"
	"github.com/pwnedgod/cstruct/codec/cbor"
	"github.com/pwnedgod/cstruct/codec/json"
	"github.com/pwnedgod/cstruct/codec/msgpack"
	"github.com/stretchr/testify/require"
)

func TestCodecs(t *testing.T) {
	cborCodec, err := cbor.NewCodec()
	require.NoError(t, err)

	for name, c := range map[string]codec.Codec{
		"json":    json.NewCodec(),
		"msgpack": msgpack.NewCodec(),
		"cbor":    cborCodec,
	} {
		t.Run(name, func(t *testing.T) {
			data, err := c.Marshal(map[string]any{"name": "probe", "tags": []any{"a", "b"}})
			require.NoError(t, err)
			require.NotEmpty(t, data)

			var out any
			require.NoError(t, c.Unmarshal(data, &out))
			m, ok := out.(map[string]any)
			require.True(t, ok, "decoded %T", out)
			if diff := deep.Equal(m, map[string]any{"name": "probe", "tags": []any{"a", "b"}}); diff != nil {
				t.Error(diff)
			}

			require.Error(t, c.Unmarshal([]byte{0xc1}, &out))
		})
	}
}

func TestCBORIsCanonical(t *testing.T) {
	c, err := cbor.NewCodec()
	require.NoError(t, err)

	a, err := c.Marshal(map[string]any{"b": 1, "a": 2})
	require.NoError(t, err)
	b, err := c.Marshal(map[string]any{"a": 2, "b": 1})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestJSONIsCompact(t *testing.T) {
	data, err := json.NewCodec().Marshal(map[string]any{"html": "<b>&</b>"})
	require.NoError(t, err)
	require.Equal(t, `{"html":"<b>&</b>"}`, string(data))
}
