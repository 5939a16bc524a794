// SPDX-License-Identifier: MIT

package composition

import "strings"

// Node is one declared component. It is a plain value: copying a Node
// never copies list membership.
type Node struct {
	Kind           Kind
	Name           string
	Density        Density
	VolumeFraction float64
}

// Qualifier returns the part of Name after the first ':' or the whole name
// when there is none. It prefixes isotope labels built from this node.
func (n Node) Qualifier() string {
	if i := strings.IndexByte(n.Name, ':'); i >= 0 {
		return n.Name[i+1:]
	}
	return n.Name
}

// List is the ordered component sequence of one mixture.
// The zero value is an empty list ready for use.
type List struct {
	nodes []Node
}

// NewList returns a list holding copies of nodes.
func NewList(nodes ...Node) *List {
	return &List{nodes: append([]Node(nil), nodes...)}
}

// Append adds n at the tail.
func (l *List) Append(n Node) { l.nodes = append(l.nodes, n) }

// Len returns the number of nodes; a nil list is empty.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.nodes)
}

// At returns the node at index i.
func (l *List) At(i int) (Node, error) {
	if i < 0 || i >= l.Len() {
		return Node{}, ErrIndexOutOfRange
	}
	return l.nodes[i], nil
}

// Nodes returns a copy of the nodes in order.
func (l *List) Nodes() []Node {
	if l == nil {
		return nil
	}
	return append([]Node(nil), l.nodes...)
}

// Index returns the position of the first node of kind k, or -1.
func (l *List) Index(k Kind) int {
	for i := 0; i < l.Len(); i++ {
		if l.nodes[i].Kind == k {
			return i
		}
	}
	return -1
}

// ReplaceSimilar splices a scaled copy of other in place of the Similar
// node at index at.
//
// Every node of other is copied with its VolumeFraction multiplied by the
// Similar node's own fraction, so fractions compose multiplicatively. The
// node that followed the Similar node follows the last copy. The returned
// index is that of the last spliced copy, letting the caller resume a scan
// right after the spliced region; when other is empty the Similar node is
// simply removed and at-1 is returned.
//
// Errors: ErrIndexOutOfRange, ErrNotSimilar.
// Complexity: O(len(l) + len(other)).
func (l *List) ReplaceSimilar(at int, other *List) (int, error) {
	if at < 0 || at >= l.Len() {
		return 0, ErrIndexOutOfRange
	}
	sim := l.nodes[at]
	if sim.Kind != KindSimilar {
		return 0, ErrNotSimilar
	}

	// Copy first: other may be l itself.
	copies := other.Nodes()
	for i := range copies {
		copies[i].VolumeFraction *= sim.VolumeFraction
	}

	spliced := make([]Node, 0, len(l.nodes)-1+len(copies))
	spliced = append(spliced, l.nodes[:at]...)
	spliced = append(spliced, copies...)
	spliced = append(spliced, l.nodes[at+1:]...)
	l.nodes = spliced

	return at + len(copies) - 1, nil
}
