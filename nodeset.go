package canopy

import (
	"cmp"
	"slices"
)

// nodeSet is an identity set of nodes with O(1) membership. Used for the
// selection and outline indexes.
type nodeSet map[*Node]struct{}

func (s nodeSet) add(n *Node) bool {
	if _, ok := s[n]; ok {
		return false
	}
	s[n] = struct{}{}
	return true
}

func (s nodeSet) remove(n *Node) bool {
	if _, ok := s[n]; !ok {
		return false
	}
	delete(s, n)
	return true
}

func (s nodeSet) has(n *Node) bool {
	_, ok := s[n]
	return ok
}

// sorted returns the members ordered by node ID.
func (s nodeSet) sorted() []*Node {
	out := make([]*Node, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sortByID(out)
	return out
}

// ids returns the member IDs in ascending order.
func (s nodeSet) ids() []uint32 {
	nodes := s.sorted()
	out := make([]uint32, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func sortByID(nodes []*Node) {
	slices.SortFunc(nodes, func(a, b *Node) int { return cmp.Compare(a.ID, b.ID) })
}
