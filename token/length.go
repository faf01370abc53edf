package token

import (
	"strconv"
	"strings"

	"github.com/pwnedgod/cstruct/errs"
)

// NoSize marks a descriptor or length whose byte size is not fixed by the schema.
const NoSize = -1

// ResolveLengthSpec splits a mapping field name or a type token into its base
// and its length specifier. Both `base.spec` and `base[spec]` are recognised;
// ok is false when the input carries no specifier. The specifier itself is
// not checked here, see ParseLength.
func ResolveLengthSpec(s string) (base, spec string, ok bool) {
	if strings.HasSuffix(s, "]") {
		if i := strings.LastIndexByte(s, '['); i > 0 {
			return s[:i], s[i+1 : len(s)-1], true
		}
	}
	if i := strings.LastIndexByte(s, '.'); i > 0 && i < len(s)-1 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

// Length is a validated length specifier.
type Length struct {
	// Static lengths are fixed by the schema and never appear on the wire.
	Static bool
	// Size is the static count, NoSize for dynamic lengths.
	Size int
	// Count is the integer kind carrying a dynamic count on the wire.
	Count Kind
}

// ParseLength validates a specifier produced by ResolveLengthSpec. A decimal
// literal is a static length, an integer token a dynamic one.
func ParseLength(spec string) (Length, error) {
	if spec == "" {
		return Length{}, errs.Schema("", "empty length specifier")
	}
	if isDecimal(spec) {
		n, err := strconv.Atoi(spec)
		if err != nil {
			return Length{}, errs.Schema("", "length %q out of range", spec)
		}
		return Length{Static: true, Size: n}, nil
	}
	kind, ok := numericTokens[spec]
	if !ok {
		return Length{}, errs.Schema("", "unknown length specifier %q", spec)
	}
	if !kind.IsInteger() {
		return Length{}, errs.Schema("", "length specifier %q is not an integer kind", spec)
	}
	return Length{Size: NoSize, Count: kind}, nil
}

func (l Length) String() string {
	if l.Static {
		return strconv.Itoa(l.Size)
	}
	return l.Count.String()
}

func isDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
