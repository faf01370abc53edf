package model

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/pwnedgod/cstruct/errs"
	"gopkg.in/yaml.v3"
)

// Ordered builds a Mapping from alternating keys and values, keeping the
// declared order:
//
//	model.Ordered("id", "u32", "name.u8", "s")
//
// It panics on an odd argument count or a non-string key.
func Ordered(kv ...any) *orderedmap.OrderedMap[string, any] {
	if len(kv)%2 != 0 {
		panic("model: Ordered needs key/value pairs")
	}
	m := orderedmap.NewOrderedMap[string, any]()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("model: Ordered key %d is %T, not string", i/2, kv[i]))
		}
		m.Set(key, kv[i+1])
	}
	return m
}

// Document is a schema file: a model with its named types and an optional
// byte order ("be" or "le").
type Document struct {
	Endian string
	Types  map[string]any
	Model  any
}

var documentKeys = map[string]bool{"endian": true, "types": true, "model": true}

// Load parses a YAML (or JSON) schema into a raw Model, keeping mapping order.
func Load(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errs.Schema("", "malformed schema: %v", err)
	}
	return convert(&root, "")
}

// LoadDocument parses a schema file. When the top level is a mapping holding
// a `model` key and nothing besides `endian` and `types`, it is read as a
// Document; otherwise the whole file is the model.
func LoadDocument(data []byte) (Document, error) {
	raw, err := Load(data)
	if err != nil {
		return Document{}, err
	}
	top, ok := raw.(*orderedmap.OrderedMap[string, any])
	if !ok || !isDocument(top) {
		return Document{Model: raw}, nil
	}

	doc := Document{}
	doc.Model, _ = top.Get("model")
	if v, ok := top.Get("endian"); ok {
		if doc.Endian, ok = v.(string); !ok {
			return Document{}, errs.Schema("endian", "expected a string")
		}
	}
	if v, ok := top.Get("types"); ok {
		types, ok := v.(*orderedmap.OrderedMap[string, any])
		if !ok {
			return Document{}, errs.Schema("types", "expected a mapping of named types")
		}
		doc.Types = make(map[string]any, types.Len())
		for el := types.Front(); el != nil; el = el.Next() {
			doc.Types[el.Key] = el.Value
		}
	}
	return doc, nil
}

func isDocument(top *orderedmap.OrderedMap[string, any]) bool {
	if _, ok := top.Get("model"); !ok {
		return false
	}
	for el := top.Front(); el != nil; el = el.Next() {
		if !documentKeys[el.Key] {
			return false
		}
	}
	return true
}

func convert(n *yaml.Node, path string) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, errs.Schema("", "empty schema")
		}
		return convert(n.Content[0], path)
	case yaml.AliasNode:
		return convert(n.Alias, path)
	case yaml.ScalarNode:
		return strings.TrimSpace(n.Value), nil
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, child := range n.Content {
			item, err := convert(child, join(path, fmt.Sprint(i)))
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	case yaml.MappingNode:
		m := orderedmap.NewOrderedMap[string, any]()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if _, dup := m.Get(key); dup {
				return nil, errs.Schema(join(path, key), "duplicate key %q at line %d", key, n.Content[i].Line)
			}
			value, err := convert(n.Content[i+1], join(path, key))
			if err != nil {
				return nil, err
			}
			m.Set(key, value)
		}
		return m, nil
	default:
		return nil, errs.Schema(path, "unexpected yaml node kind %d", n.Kind)
	}
}
