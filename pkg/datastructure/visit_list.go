package datastructure

import (
	"sort"

	"github.com/samber/lo"
)

// VisitList holds the best known segment per vertex for one endpoint of a query. neighbour1 and
// neighbour2 are the endpoints of the arc the point was resolved onto, NoVertex when unknown.
type VisitList struct {
	visited    map[Index]*PathSegment
	neighbour1 Index
	neighbour2 Index
}

func NewVisitList() *VisitList {
	return NewVisitListWithNeighbours(NoVertex, NoVertex)
}

func NewVisitListWithNeighbours(neighbour1, neighbour2 Index) *VisitList {
	return &VisitList{
		visited:    make(map[Index]*PathSegment),
		neighbour1: neighbour1,
		neighbour2: neighbour2,
	}
}

// NewVisitListFromVertex seeds a list with the zero-weight root of vertex.
func NewVisitListFromVertex(vertex Index) *VisitList {
	vl := NewVisitListWithNeighbours(vertex, vertex)
	vl.UpdateVertex(NewPathSegmentRoot(vertex))
	return vl
}

func (vl *VisitList) Neighbour1() Index {
	return vl.neighbour1
}

func (vl *VisitList) Neighbour2() Index {
	return vl.neighbour2
}

// ResolutionArc returns the arc the point was split from, if it is a real arc.
func (vl *VisitList) ResolutionArc() (Index, Index, bool) {
	if vl.neighbour1 == NoVertex || vl.neighbour2 == NoVertex || vl.neighbour1 == vl.neighbour2 {
		return 0, 0, false
	}
	return vl.neighbour1, vl.neighbour2, true
}

// UpdateVertex keeps segment only when it improves the current entry of its vertex.
func (vl *VisitList) UpdateVertex(segment *PathSegment) bool {
	if existing, ok := vl.visited[segment.vertex]; ok && existing.weight <= segment.weight {
		return false
	}
	vl.visited[segment.vertex] = segment
	return true
}

// GetFirst removes and returns the lightest entry, nil when empty. Ties go to the lowest id.
func (vl *VisitList) GetFirst() *PathSegment {
	var best *PathSegment
	for _, seg := range vl.visited {
		if best == nil || seg.weight < best.weight ||
			(seg.weight == best.weight && seg.vertex < best.vertex) {
			best = seg
		}
	}
	if best != nil {
		delete(vl.visited, best.vertex)
	}
	return best
}

func (vl *VisitList) Contains(vertex Index) bool {
	_, ok := vl.visited[vertex]
	return ok
}

func (vl *VisitList) GetPathTo(vertex Index) *PathSegment {
	return vl.visited[vertex]
}

// GetVertices returns the visited ids in ascending order.
func (vl *VisitList) GetVertices() []Index {
	ids := lo.Keys(vl.visited)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (vl *VisitList) Count() int {
	return len(vl.visited)
}
