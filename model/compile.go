package model

import (
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/token"
)

type Config struct {
	// Parser resolves tokens; token.DefaultParser() when nil.
	Parser *token.Parser
	// Types are named Models usable wherever a token is expected.
	Types map[string]any
	// HasTranscoder reports whether a transcoded kind letter is registered.
	// When nil only token.LetterJSON is accepted.
	HasTranscoder func(letter byte) bool
}

type compiler struct {
	cfg       Config
	named     map[string]Node
	resolving map[string]bool
}

// Compile turns a raw Model into its node tree. Any unresolvable token is a
// schema error reported with the path of the offending node.
func Compile(raw any, cfg Config) (Node, error) {
	if cfg.Parser == nil {
		cfg.Parser = token.DefaultParser()
	}
	if cfg.HasTranscoder == nil {
		cfg.HasTranscoder = func(letter byte) bool { return letter == token.LetterJSON }
	}
	c := &compiler{
		cfg:       cfg,
		named:     make(map[string]Node),
		resolving: make(map[string]bool),
	}
	if err := c.checkTypeNames(); err != nil {
		return nil, err
	}
	return c.compile(raw, "")
}

func (c *compiler) checkTypeNames() error {
	for name := range c.cfg.Types {
		if name == "" || strings.ContainsAny(name, ".[]") {
			return errs.Schema(name, "invalid type name %q", name)
		}
		if _, err := c.cfg.Parser.Parse(name); err == nil {
			return errs.Schema(name, "type name %q shadows a built-in token", name)
		}
	}
	return nil
}

func (c *compiler) compile(raw any, path string) (Node, error) {
	switch v := raw.(type) {
	case string:
		return c.compileToken(v, path)
	case []any:
		return c.compileSequence(v, path)
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return c.compileSequence(items, path)
	case *orderedmap.OrderedMap[string, any]:
		fields := make([][2]any, 0, v.Len())
		for el := v.Front(); el != nil; el = el.Next() {
			fields = append(fields, [2]any{el.Key, el.Value})
		}
		return c.compileMapping(fields, path)
	case map[string]any:
		if len(v) > 1 {
			return nil, errs.Schema(path, "mapping with %d fields has no defined order, use model.Ordered", len(v))
		}
		fields := make([][2]any, 0, len(v))
		for key, value := range v {
			fields = append(fields, [2]any{key, value})
		}
		return c.compileMapping(fields, path)
	case nil:
		return nil, errs.Schema(path, "empty model node")
	default:
		return nil, errs.Schema(path, "unsupported model node %T", raw)
	}
}

func (c *compiler) compileSequence(items []any, path string) (Node, error) {
	seq := &Sequence{Items: make([]Node, len(items))}
	for i, item := range items {
		node, err := c.compile(item, join(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		seq.Items[i] = node
	}
	return seq, nil
}

func (c *compiler) compileMapping(fields [][2]any, path string) (Node, error) {
	m := &Mapping{Fields: make([]Field, 0, len(fields))}
	seen := make(map[string]bool, len(fields))
	for _, kv := range fields {
		key := kv[0].(string)
		field, err := c.compileField(key, kv[1], path)
		if err != nil {
			return nil, err
		}
		if seen[field.Name] {
			return nil, errs.Schema(join(path, field.Name), "duplicate field %q", field.Name)
		}
		seen[field.Name] = true
		m.Fields = append(m.Fields, field)
	}
	return m, nil
}

func (c *compiler) compileField(key string, raw any, path string) (Field, error) {
	name, spec, ok := token.ResolveLengthSpec(key)
	fieldPath := join(path, name)
	if !ok {
		node, err := c.compile(raw, fieldPath)
		if err != nil {
			return Field{}, err
		}
		return Field{Name: key, Key: key, Node: node}, nil
	}

	length, err := token.ParseLength(spec)
	if err != nil {
		return Field{}, errs.WithPath(err, fieldPath)
	}

	// A special kind under a length key is a single region, anything else is
	// repeated.
	if tok, isToken := raw.(string); isToken && !c.isNamed(tok) {
		d, err := c.cfg.Parser.ParseWithLength(tok, spec)
		if err == nil && d.Special() != token.SpecialNone {
			if err := c.checkTranscoder(d, fieldPath); err != nil {
				return Field{}, err
			}
			return Field{Name: name, Key: key, Node: &Leaf{Desc: d}}, nil
		}
	}

	item, err := c.compile(raw, fieldPath)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name, Key: key, Node: &Array{Length: length, Item: item}}, nil
}

func (c *compiler) compileToken(tok, path string) (Node, error) {
	if c.isNamed(tok) {
		return c.compileNamed(tok, path)
	}
	if base, spec, ok := token.ResolveLengthSpec(tok); ok && c.isNamed(base) {
		length, err := token.ParseLength(spec)
		if err != nil {
			return nil, errs.WithPath(err, path)
		}
		item, err := c.compileNamed(base, path)
		if err != nil {
			return nil, err
		}
		return &Array{Length: length, Item: item}, nil
	}

	d, err := c.cfg.Parser.Parse(tok)
	if err != nil {
		return nil, errs.WithPath(err, path)
	}
	if err := c.checkTranscoder(d, path); err != nil {
		return nil, err
	}
	if !d.IsArray() {
		return &Leaf{Desc: d}, nil
	}

	item, err := c.cfg.Parser.Parse(d.Token)
	if err != nil {
		return nil, errs.WithPath(err, path)
	}
	return &Array{
		Length: token.Length{Static: d.Static, Size: d.Size, Count: d.Count},
		Item:   &Leaf{Desc: item},
	}, nil
}

func (c *compiler) compileNamed(name, path string) (Node, error) {
	if node, ok := c.named[name]; ok {
		return node, nil
	}
	if c.resolving[name] {
		return nil, errs.Schema(path, "type %q refers to itself", name)
	}
	c.resolving[name] = true
	defer delete(c.resolving, name)

	node, err := c.compile(c.cfg.Types[name], path)
	if err != nil {
		return nil, err
	}
	c.named[name] = node
	return node, nil
}

func (c *compiler) isNamed(tok string) bool {
	_, ok := c.cfg.Types[tok]
	return ok
}

func (c *compiler) checkTranscoder(d token.Descriptor, path string) error {
	if d.Kind == token.Transcoded && !c.cfg.HasTranscoder(d.Letter) {
		return errs.Schema(path, "unknown token %q", d.Token)
	}
	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
