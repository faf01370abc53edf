package engine

import (
	"fmt"
	"strconv"
)

// Trace is the ordered diagnostic log of one call, one atom per leaf or count
// operation: `<offset> <path> <token> <value>`.
type Trace struct {
	atoms []string
}

func (t *Trace) add(offset int, path, tok string, v any) {
	if path == "" {
		path = "."
	}
	t.atoms = append(t.atoms, strconv.Itoa(offset)+" "+path+" "+tok+" "+formatValue(v))
}

// Atoms returns a copy of the recorded atoms.
func (t *Trace) Atoms() []string {
	out := make([]string, len(t.atoms))
	copy(out, t.atoms)
	return out
}

func (t *Trace) Len() int {
	return len(t.atoms)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case []byte:
		return fmt.Sprintf("0x%x", x)
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprint(x)
	}
}
