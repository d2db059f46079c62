package tree

import "strings"

// Content returns the innermost text payload beneath n: the first non-empty
// character data found descending through child elements in order, falling
// back to the node's own text. It returns "" when nothing is found.
func Content(n *Node) string {
	if n == nil {
		return ""
	}
	for _, slot := range n.Slots {
		for _, child := range slot.Nodes() {
			if text := Content(child); text != "" {
				return text
			}
		}
	}
	return strings.TrimSpace(n.Text)
}
