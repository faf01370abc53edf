// Package buffer implements the fixed-width scalar and raw region primitives
// the traversal engine delegates byte-level work to. Readers and writers track
// the absolute cursor (Offset) and the bytes processed since the start offset
// (Size); touching bytes outside the buffer is a bounds error.
package buffer

import (
	"encoding/binary"
	"fmt"
	"strings"
)

type Endian int

const (
	BigEndian Endian = iota
	LittleEndian
)

func (e Endian) Order() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (e Endian) String() string {
	if e == LittleEndian {
		return "le"
	}
	return "be"
}

// ParseEndian accepts be/le and big/little in any case.
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "be", "big", "bigendian":
		return BigEndian, nil
	case "le", "little", "littleendian":
		return LittleEndian, nil
	default:
		return BigEndian, fmt.Errorf("buffer: unknown endianness %q", s)
	}
}
