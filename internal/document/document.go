// SPDX-License-Identifier: Apache-2.0

// Package document provides the generic tree form that config documents are
// normalized into before the extract/embed walkers run over them. A Node is
// an ordered object, an array, or a scalar; key order from the source text is
// preserved through decode, mutation, and re-encode.
package document

import "strconv"

// Kind identifies the variant a Node holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value entry of an object Node.
type Member struct {
	Key   string
	Value *Node
}

// Node is one value in a config document tree. Only the fields matching its
// kind are meaningful.
type Node struct {
	kind Kind

	boolVal bool
	numVal  string // verbatim numeric literal
	strVal  string

	elems   []*Node
	members []Member
}

func Null() *Node { return &Node{kind: KindNull} }

func Bool(b bool) *Node { return &Node{kind: KindBool, boolVal: b} }

func Number(n string) *Node { return &Node{kind: KindNumber, numVal: n} }

func String(s string) *Node { return &Node{kind: KindString, strVal: s} }
func Array(el ...*Node) *Node {
	return &Node{kind: KindArray, elems: el}
}
func Object(members ...Member) *Node {
	return &Node{kind: KindObject, members: members}
}

// Kind returns the variant this node holds.
func (n *Node) Kind() Kind { return n.kind }

// AsString returns the string value and true if the node is a string.
func (n *Node) AsString() (string, bool) {
	if n.kind != KindString {
		return "", false
	}
	return n.strVal, true
}

// Members returns the object members in document order, or nil for
// non-object nodes. The member values are shared, so mutating them mutates
// the tree.
func (n *Node) Members() []Member {
	if n.kind != KindObject {
		return nil
	}
	return n.members
}

// Elems returns the array elements in document order, or nil for non-array
// nodes.
func (n *Node) Elems() []*Node {
	if n.kind != KindArray {
		return nil
	}
	return n.elems
}

// Field returns the value of the first object member with the given key, or
// nil if the node is not an object or has no such member.
func (n *Node) Field(key string) *Node {
	if n.kind != KindObject {
		return nil
	}
	for _, m := range n.members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// SetString rewrites the node in place to a string value. The walkers use
// this to swap a content field between its inline and placeholder forms.
func (n *Node) SetString(s string) {
	*n = Node{kind: KindString, strVal: s}
}

// Equal reports structural equality: object member order is ignored, all
// other structure must match. Numbers compare by literal first, then
// numerically, so a round-tripped document compares equal even if a literal
// was rewritten to an equivalent spelling.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case KindNull:
		return true
	case KindBool:
		return n.boolVal == other.boolVal
	case KindNumber:
		if n.numVal == other.numVal {
			return true
		}
		a, errA := strconv.ParseFloat(n.numVal, 64)
		b, errB := strconv.ParseFloat(other.numVal, 64)
		return errA == nil && errB == nil && a == b
	case KindString:
		return n.strVal == other.strVal
	case KindArray:
		if len(n.elems) != len(other.elems) {
			return false
		}
		for i, el := range n.elems {
			if !el.Equal(other.elems[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(n.members) != len(other.members) {
			return false
		}
		for _, m := range n.members {
			ov := other.Field(m.Key)
			if ov == nil || !m.Value.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// StripDefaults removes default-valued members and elements: null, empty
// string, empty array, empty object, false, and unsigned integer zero.
// Filtering happens before recursing into the survivors, so a container that
// only becomes empty once its own children are stripped is kept.
func (n *Node) StripDefaults() {
	switch n.kind {
	case KindObject:
		kept := n.members[:0]
		for _, m := range n.members {
			if !m.Value.isDefault() {
				kept = append(kept, m)
			}
		}
		n.members = kept
		for _, m := range n.members {
			m.Value.StripDefaults()
		}
	case KindArray:
		kept := n.elems[:0]
		for _, el := range n.elems {
			if !el.isDefault() {
				kept = append(kept, el)
			}
		}
		n.elems = kept
		for _, el := range n.elems {
			el.StripDefaults()
		}
	}
}

func (n *Node) isDefault() bool {
	switch n.kind {
	case KindNull:
		return true
	case KindBool:
		return !n.boolVal
	case KindNumber:
		u, err := strconv.ParseUint(n.numVal, 10, 64)
		return err == nil && u == 0
	case KindString:
		return n.strVal == ""
	case KindArray:
		return len(n.elems) == 0
	case KindObject:
		return len(n.members) == 0
	}
	return false
}
