package datastructure

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/roadrouter/pkg/util"
)

// PathSegment is one node of an immutable predecessor chain. The chain root has no predecessor and
// zero weight; every other node holds the cumulative weight from the root.
// Segments are never mutated after construction so chains can be shared between searches.
type PathSegment struct {
	vertex Index
	weight float64
	from   *PathSegment
}

func NewPathSegmentRoot(vertex Index) *PathSegment {
	return &PathSegment{vertex: vertex}
}

func NewPathSegment(vertex Index, weight float64, from *PathSegment) *PathSegment {
	return &PathSegment{vertex: vertex, weight: weight, from: from}
}

func (p *PathSegment) Vertex() Index {
	return p.vertex
}

func (p *PathSegment) Weight() float64 {
	return p.weight
}

func (p *PathSegment) From() *PathSegment {
	return p.from
}

func (p *PathSegment) Root() *PathSegment {
	cur := p
	for cur.from != nil {
		cur = cur.from
	}
	return cur
}

func (p *PathSegment) Length() int {
	n := 0
	for cur := p; cur != nil; cur = cur.from {
		n++
	}
	return n
}

// Reverse returns a new chain rooted at the leaf of p.
func (p *PathSegment) Reverse() *PathSegment {
	reversed := NewPathSegmentRoot(p.vertex)
	for cur := p.from; cur != nil; cur = cur.from {
		reversed = NewPathSegment(cur.vertex, p.weight-cur.weight, reversed)
	}
	return reversed
}

// ConcatenateAfter returns the chain that walks other and continues along p. The root of p must be
// the leaf of other; the weights of p are shifted by the weight of other.
func (p *PathSegment) ConcatenateAfter(other *PathSegment) *PathSegment {
	nodes := p.toSegments()
	util.AssertPanic(nodes[0].vertex == other.vertex,
		fmt.Sprintf("cannot concatenate: chain rooted at %d does not continue %d", nodes[0].vertex, other.vertex))

	joined := other
	for _, n := range nodes[1:] {
		joined = NewPathSegment(n.vertex, n.weight+other.weight, joined)
	}
	return joined
}

// toSegments lists the nodes of p from root to leaf.
func (p *PathSegment) toSegments() []*PathSegment {
	nodes := make([]*PathSegment, p.Length())
	i := len(nodes) - 1
	for cur := p; cur != nil; cur = cur.from {
		nodes[i] = cur
		i--
	}
	return nodes
}

// ToArray returns vertex ids from root to leaf.
func (p *PathSegment) ToArray() []Index {
	ids := make([]Index, p.Length())
	i := len(ids) - 1
	for cur := p; cur != nil; cur = cur.from {
		ids[i] = cur.vertex
		i--
	}
	return ids
}

// Weights returns the cumulative weights from root to leaf, aligned with ToArray.
func (p *PathSegment) Weights() []float64 {
	ws := make([]float64, p.Length())
	i := len(ws) - 1
	for cur := p; cur != nil; cur = cur.from {
		ws[i] = cur.weight
		i--
	}
	return ws
}

// Contains reports whether vertex appears anywhere on the chain.
func (p *PathSegment) Contains(vertex Index) bool {
	for cur := p; cur != nil; cur = cur.from {
		if cur.vertex == vertex {
			return true
		}
	}
	return false
}

func (p *PathSegment) String() string {
	var sb strings.Builder
	for i, id := range p.ToArray() {
		if i > 0 {
			sb.WriteString("->")
		}
		fmt.Fprintf(&sb, "%d", id)
	}
	fmt.Fprintf(&sb, " (%g)", p.weight)
	return sb.String()
}
