package xapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// nodeKind discriminates the three shapes a parsed JSON value can take.
type nodeKind int

const (
	kindScalar nodeKind = iota
	kindObject
	kindArray
)

// Node is one value in a parsed JSON document. Object fields keep their
// document order so traversal is deterministic, and every node retains its
// original bytes so a matched sub-object can be decoded into a typed entity
// without re-serializing.
type Node struct {
	kind   nodeKind
	fields []nodeField
	elems  []*Node
	str    string // scalar string value, set when the scalar is a string
	isStr  bool
	raw    json.RawMessage
}

type nodeField struct {
	key  string
	node *Node
}

// ParseTree parses an arbitrary JSON document into a Node tree.
func ParseTree(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := decodeValue(dec, data)
	if err != nil {
		return nil, fmt.Errorf("parse response tree: %w", err)
	}
	return n, nil
}

// decodeValue consumes exactly one JSON value from dec. Offsets into data
// are used to slice out each node's raw bytes.
func decodeValue(dec *json.Decoder, data []byte) (*Node, error) {
	start := dec.InputOffset()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '{':
			n := &Node{kind: kindObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				child, err := decodeValue(dec, data)
				if err != nil {
					return nil, err
				}
				n.fields = append(n.fields, nodeField{key: key, node: child})
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			n.raw = rawSlice(data, start, dec.InputOffset())
			return n, nil
		case '[':
			n := &Node{kind: kindArray}
			for dec.More() {
				child, err := decodeValue(dec, data)
				if err != nil {
					return nil, err
				}
				n.elems = append(n.elems, child)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			n.raw = rawSlice(data, start, dec.InputOffset())
			return n, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", d)
		}
	}

	n := &Node{kind: kindScalar}
	if s, ok := tok.(string); ok {
		n.str = s
		n.isStr = true
	}
	n.raw = rawSlice(data, start, dec.InputOffset())
	return n, nil
}

// rawSlice trims the separators (whitespace, comma, colon) that precede a
// value inside its parent container.
func rawSlice(data []byte, start, end int64) json.RawMessage {
	return json.RawMessage(bytes.TrimLeft(data[start:end], " \t\r\n,:"))
}

// Raw returns the node's original JSON bytes.
func (n *Node) Raw() json.RawMessage { return n.raw }

// Field returns the named field of an object node, or nil.
func (n *Node) Field(key string) *Node {
	if n == nil || n.kind != kindObject {
		return nil
	}
	for _, f := range n.fields {
		if f.key == key {
			return f.node
		}
	}
	return nil
}

// Text returns the scalar string value of the node, or "" for anything that
// is not a string scalar.
func (n *Node) Text() string {
	if n == nil || n.kind != kindScalar {
		return ""
	}
	return n.str
}

// FindAll collects every object node in the tree whose key field equals the
// given string value. Traversal is depth-first pre-order, left to right, and
// keeps descending into matched nodes so nested matches are collected too.
// A tree with no matches yields nil.
func (n *Node) FindAll(key, value string) []*Node {
	var out []*Node
	n.walk(key, value, &out)
	return out
}

func (n *Node) walk(key, value string, out *[]*Node) {
	if n == nil {
		return
	}
	switch n.kind {
	case kindObject:
		if f := n.Field(key); f != nil && f.isStr && f.str == value {
			*out = append(*out, n)
		}
		for _, f := range n.fields {
			f.node.walk(key, value, out)
		}
	case kindArray:
		for _, e := range n.elems {
			e.walk(key, value, out)
		}
	}
}
