package htmltree

import "maps"

// Node is a single element of a document tree: a tag name, its props
// (attributes), and an ordered list of children. Children are either *Node
// values or plain values rendered as escaped text.
//
// Trees are treated as immutable once built. Transforms such as form data
// reflection produce new trees via Clone instead of mutating in place.
type Node struct {
	Tag      string
	Props    map[string]any
	Children []any
}

// El creates a new element node.
//
// Example:
//
//	htmltree.El("input", htmltree.Props{"type": "text", "name": "email"})
//	htmltree.El("p", nil, "Welcome back, ", userName)
func El(tag string, props map[string]any, children ...any) *Node {
	if props == nil {
		props = map[string]any{}
	}
	return &Node{Tag: tag, Props: props, Children: children}
}

// Text creates a text child. Plain strings work as children directly; Text
// exists for readability when mixing nodes and text.
func Text(s string) any {
	return s
}

// Props is a convenience alias for element attribute maps.
type Props = map[string]any

// Clone returns a shallow copy of the node: a fresh props map and children
// slice pointing at the same child values. Mutating the clone's props or
// replacing its children never affects the original.
func (n *Node) Clone() *Node {
	out := &Node{
		Tag:   n.Tag,
		Props: make(map[string]any, len(n.Props)),
	}
	maps.Copy(out.Props, n.Props)
	if len(n.Children) > 0 {
		out.Children = make([]any, len(n.Children))
		copy(out.Children, n.Children)
	}
	return out
}

// Prop returns the prop value by name, or nil if unset.
func (n *Node) Prop(name string) any {
	if n.Props == nil {
		return nil
	}
	return n.Props[name]
}

// PropString returns the prop value as a string.
// Returns empty string if the prop is unset or not a string.
func (n *Node) PropString(name string) string {
	s, _ := n.Prop(name).(string)
	return s
}
