// Package codec defines the transcoders attached to transcoded special kinds.
// A transcoder turns a structured value into the bytes of a region and back.
package codec

type Codec interface {
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into v, a pointer. Decoding into *any must yield
	// map[string]any for objects.
	Unmarshal(data []byte, v any) error
}
