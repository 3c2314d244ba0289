// Package ctml builds and serializes CTML documents: a tree of named nodes
// with ordered attributes, text values and comments.
package ctml

import "strings"

// commentName marks comment nodes.
const commentName = "_comment_"

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value string
}

// Node is an element or comment in a document tree.
type Node struct {
	name     string
	value    string
	attrs    []Attr
	children []*Node
}

// NewNode creates a detached node. Leading whitespace of the value is dropped.
func NewNode(name, value string) *Node {
	return &Node{name: name, value: strings.TrimLeft(value, " \t\n\r")}
}

// Name returns the tag name.
func (n *Node) Name() string { return n.name }

// Value returns the text value.
func (n *Node) Value() string { return n.value }

// IsComment reports whether the node is a comment.
func (n *Node) IsComment() bool { return n.name == commentName }

// AddChild appends a new child element and returns it.
func (n *Node) AddChild(name, value string) *Node {
	c := NewNode(name, value)
	n.children = append(n.children, c)
	return c
}

// AddComment appends a comment.
func (n *Node) AddComment(text string) {
	n.children = append(n.children, NewNode(commentName, text))
}

// Set sets an attribute, keeping the position of an existing key.
func (n *Node) Set(key, value string) *Node {
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			n.attrs[i].Value = value
			return n
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Value: value})
	return n
}

// Attr returns an attribute value and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns the attributes in insertion order.
func (n *Node) Attrs() []Attr {
	return append([]Attr(nil), n.attrs...)
}

// Children returns child nodes, comments included.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Child returns the last child element with the given name.
func (n *Node) Child(name string) *Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		if n.children[i].name == name {
			return n.children[i]
		}
	}
	return nil
}

// Elements returns child elements with the given name, in order.
func (n *Node) Elements(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first descendant element, depth first, whose name matches
// and whose attributes include every key/value pair given.
func (n *Node) Find(name string, attrs ...string) *Node {
	for _, c := range n.children {
		if c.name == name && c.hasAttrs(attrs) {
			return c
		}
		if f := c.Find(name, attrs...); f != nil {
			return f
		}
	}
	return nil
}

func (n *Node) hasAttrs(kv []string) bool {
	for i := 0; i+1 < len(kv); i += 2 {
		if v, ok := n.Attr(kv[i]); !ok || v != kv[i+1] {
			return false
		}
	}
	return true
}
