// Package model compiles a raw schema into an immutable tree of nodes.
//
// A raw Model is a type token (string), a Sequence ([]any or []string), or a
// Mapping (*orderedmap.OrderedMap[string, any], see Ordered and Load).
// Compilation resolves every token and length specifier once; the traversal
// engine only switches on the node variants defined here.
package model

import (
	"github.com/pwnedgod/cstruct/token"
)

type Node interface {
	isNode()
}

// Leaf is a single scalar or special-kind token, possibly carrying a length
// (`s[u8]`, `b4`, `j[9]`).
type Leaf struct {
	Desc token.Descriptor
}

// Sequence is a positional list of children with fixed arity.
type Sequence struct {
	Items []Node
}

// Mapping is an ordered list of uniquely named children.
type Mapping struct {
	Fields []Field
}

type Field struct {
	// Name is the field name with its length suffix removed; it keys the value.
	Name string
	// Key is the field name as declared.
	Key  string
	Node Node
}

// Array repeats Item Length times. Static lengths never reach the wire,
// dynamic ones are carried by a count of kind Length.Count right before the
// items.
type Array struct {
	Length token.Length
	Item   Node
}

func (*Leaf) isNode()     {}
func (*Sequence) isNode() {}
func (*Mapping) isNode()  {}
func (*Array) isNode()    {}
