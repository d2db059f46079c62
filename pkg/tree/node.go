// Package tree models the parsed document as nested nodes whose named child
// slots hold either a single node or an ordered sequence of same-named nodes.
// Both shapes are valid; consumers call Slot.Nodes to normalise them.
package tree

// Node is one element of the document tree. A nil *Node is valid everywhere
// and behaves as an empty leaf.
type Node struct {
	Name  string
	Attrs map[string]string
	// Text holds the character data directly inside the element.
	Text  string
	Slots []Slot
}

// Slot is a named child position. Exactly one of Node or Many is expected to
// be set; when both are set Many wins.
type Slot struct {
	Name string
	Node *Node
	Many []*Node
}

// Nodes normalises the slot into an ordered sequence: a single node becomes a
// one-element slice and an empty slot yields nil.
func (s Slot) Nodes() []*Node {
	if s.Many != nil {
		return s.Many
	}
	if s.Node != nil {
		return []*Node{s.Node}
	}
	return nil
}

// NewNode constructs a node holding its own copy of attrs.
func NewNode(name string, attrs map[string]string) *Node {
	n := &Node{Name: name}
	if len(attrs) > 0 {
		n.Attrs = make(map[string]string, len(attrs))
		for k, v := range attrs {
			n.Attrs[k] = v
		}
	}
	return n
}

// Attr returns the named attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrValue returns the named attribute or def when absent.
func (n *Node) AttrValue(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// Children returns every node held by slots with the given name, in slot
// order. Missing slots yield nil.
func (n *Node) Children(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, slot := range n.Slots {
		if slot.Name != name {
			continue
		}
		out = append(out, slot.Nodes()...)
	}
	return out
}

// Append adds child under a slot named after it. Consecutive children sharing
// a name collapse into a single sequence slot, so document order is kept
// across interleaved names.
func (n *Node) Append(child *Node) *Node {
	if n == nil || child == nil {
		return n
	}
	last := len(n.Slots) - 1
	if last >= 0 && n.Slots[last].Name == child.Name {
		slot := &n.Slots[last]
		if slot.Many == nil {
			slot.Many = []*Node{slot.Node}
			slot.Node = nil
		}
		slot.Many = append(slot.Many, child)
		return n
	}
	n.Slots = append(n.Slots, Slot{Name: child.Name, Node: child})
	return n
}

// IsLeaf reports whether the node has no child slots.
func (n *Node) IsLeaf() bool {
	return n == nil || len(n.Slots) == 0
}

// Walk visits n and its descendants in pre-order, depth-first, left-to-right.
// Returning false from fn prunes the subtree below the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || fn == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, slot := range n.Slots {
		for _, child := range slot.Nodes() {
			Walk(child, fn)
		}
	}
}
