package engine

import (
	"strconv"

	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/model"
	"github.com/pwnedgod/cstruct/token"
)

// direction is the byte-level half of a driver. The walker owns the shape of
// the traversal, a direction owns what happens at leaves and counts.
type direction interface {
	// leaf processes one Leaf node. Encoders receive the bound input value,
	// decoders nil; only decoders return a value.
	leaf(d token.Descriptor, v any, path string) (any, error)
	// length resolves the repetition count of an Array node. n is the number
	// of input items and is only meaningful when encoding.
	length(l token.Length, n int, path string) (int, error)
	// remaining bounds how many decoded items are worth preallocating.
	remaining() int
}

type walker struct {
	dir      direction
	encoding bool
}

func (w *walker) walk(node model.Node, v any, path string) (any, error) {
	switch n := node.(type) {
	case *model.Leaf:
		return w.dir.leaf(n.Desc, v, path)
	case *model.Sequence:
		return w.sequence(n, v, path)
	case *model.Mapping:
		return w.mapping(n, v, path)
	case *model.Array:
		return w.array(n, v, path)
	default:
		return nil, errs.Schema(path, "unexpected model node %T", node)
	}
}

func (w *walker) sequence(n *model.Sequence, v any, path string) (any, error) {
	var items []any
	if w.encoding {
		var err error
		if items, err = itemsOf(v, path); err != nil {
			return nil, err
		}
		if items != nil && len(items) != len(n.Items) {
			return nil, errs.Value(path, "sequence needs %d items, got %d", len(n.Items), len(items))
		}
	}

	var out []any
	if !w.encoding {
		out = make([]any, len(n.Items))
	}
	for i, child := range n.Items {
		var item any
		if items != nil {
			item = items[i]
		}
		x, err := w.walk(child, item, join(path, i))
		if err != nil {
			return nil, err
		}
		if out != nil {
			out[i] = x
		}
	}
	return out, nil
}

func (w *walker) mapping(n *model.Mapping, v any, path string) (any, error) {
	fields := noFields
	if w.encoding {
		var err error
		if fields, err = fieldsOf(v, path); err != nil {
			return nil, err
		}
	}

	var out map[string]any
	if !w.encoding {
		out = make(map[string]any, len(n.Fields))
	}
	for _, f := range n.Fields {
		x, err := w.walk(f.Node, fields(f.Name), joinName(path, f.Name))
		if err != nil {
			return nil, err
		}
		if out != nil {
			out[f.Name] = x
		}
	}
	return out, nil
}

func (w *walker) array(n *model.Array, v any, path string) (any, error) {
	var items []any
	if w.encoding {
		var err error
		if items, err = itemsOf(v, path); err != nil {
			return nil, err
		}
	}

	count, err := w.dir.length(n.Length, len(items), path)
	if err != nil {
		return nil, err
	}

	var out []any
	if !w.encoding {
		out = make([]any, 0, min(count, w.dir.remaining()))
	}
	for i := 0; i < count; i++ {
		var item any
		if i < len(items) {
			item = items[i]
		}
		x, err := w.walk(n.Item, item, join(path, i))
		if err != nil {
			return nil, err
		}
		if !w.encoding {
			out = append(out, x)
		}
	}
	return out, nil
}

func join(path string, i int) string {
	return joinName(path, strconv.Itoa(i))
}

func joinName(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
