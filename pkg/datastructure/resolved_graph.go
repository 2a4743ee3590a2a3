package datastructure

import (
	"sort"

	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/samber/lo"
)

type edgeKey struct {
	low, high Index
}

func newEdgeKey(a, b Index) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{low: a, high: b}
}

// ResolvedGraph holds the points spliced onto main-graph edges. Resolved vertices use negative ids;
// the endpoints of every split edge are mirrored here under their main-graph ids so split chains
// can be walked without touching the main graph.
type ResolvedGraph struct {
	vertices map[Index]Vertex
	arcs     map[Index][]Arc
	// position of every resolved vertex along its original edge, 0 at the lower id endpoint
	positions map[Index]float64
	origin    map[Index]edgeKey
	edges     map[edgeKey]struct{}
}

func NewResolvedGraph() *ResolvedGraph {
	return &ResolvedGraph{
		vertices:  make(map[Index]Vertex),
		arcs:      make(map[Index][]Arc),
		positions: make(map[Index]float64),
		origin:    make(map[Index]edgeKey),
		edges:     make(map[edgeKey]struct{}),
	}
}

// AddVertex adds or moves id. The id is chosen by the caller.
func (rg *ResolvedGraph) AddVertex(id Index, lat, lon float64) {
	rg.vertices[id] = NewVertex(lat, lon)
	if _, ok := rg.arcs[id]; !ok {
		rg.arcs[id] = make([]Arc, 0, 2)
	}
}

func (rg *ResolvedGraph) HasVertex(id Index) bool {
	_, ok := rg.vertices[id]
	return ok
}

func (rg *ResolvedGraph) GetVertex(id Index) (float64, float64, bool) {
	v, ok := rg.vertices[id]
	if !ok {
		return 0, 0, false
	}
	return v.GetLat(), v.GetLon(), true
}

func (rg *ResolvedGraph) AddArc(from, to Index, data EdgeData, comparer EdgeComparer) error {
	if !rg.HasVertex(from) || !rg.HasVertex(to) {
		return util.WrapErrorf(ErrVertexNotFound, util.ErrNotFound, "add resolved arc %d->%d", from, to)
	}
	if comparer == nil {
		comparer = KeepLighter
	}
	if i := findArc(rg.arcs[from], to); i >= 0 {
		if comparer(rg.arcs[from][i].Data, data) {
			rg.arcs[from][i].Data = data
		}
		return nil
	}
	rg.arcs[from] = append(rg.arcs[from], Arc{Neighbour: to, Data: data})
	return nil
}

func (rg *ResolvedGraph) GetArcs(id Index) []Arc {
	return rg.arcs[id]
}

func (rg *ResolvedGraph) GetArc(from, to Index) (EdgeData, bool) {
	if i := findArc(rg.arcs[from], to); i >= 0 {
		return rg.arcs[from][i].Data, true
	}
	return EdgeData{}, false
}

func (rg *ResolvedGraph) DeleteArc(from, to Index) bool {
	i := findArc(rg.arcs[from], to)
	if i < 0 {
		return false
	}
	rg.arcs[from] = removeArcAt(rg.arcs[from], i)
	return true
}

func (rg *ResolvedGraph) VertexCount() int {
	return len(rg.vertices)
}

// GetVertices returns every vertex id, mirrored endpoints included, in ascending order.
func (rg *ResolvedGraph) GetVertices() []Index {
	ids := lo.Keys(rg.vertices)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ResolvedCount is the number of negative-id vertices.
func (rg *ResolvedGraph) ResolvedCount() int {
	return lo.CountBy(lo.Keys(rg.vertices), func(id Index) bool { return id.IsResolved() })
}

// ShortestResolvedPath finds the lightest path from -> to that only passes through resolved
// vertices. Arc directions are ignored here; callers walk split chains, not routes.
func (rg *ResolvedGraph) ShortestResolvedPath(from, to Index) *PathSegment {
	visits := NewVisitList()
	visits.UpdateVertex(NewPathSegmentRoot(from))
	settled := make(map[Index]struct{})

	for seg := visits.GetFirst(); seg != nil; seg = visits.GetFirst() {
		if _, ok := settled[seg.vertex]; ok {
			continue
		}
		settled[seg.vertex] = struct{}{}
		if seg.vertex == to {
			return seg
		}
		if seg.vertex != from && !seg.vertex.IsResolved() {
			continue
		}

		for _, arc := range rg.arcs[seg.vertex] {
			n := arc.Neighbour
			if _, ok := settled[n]; ok {
				continue
			}
			if !n.IsResolved() && n != to {
				continue
			}
			visits.UpdateVertex(NewPathSegment(n, seg.weight+arc.Data.Weight, seg))
		}
	}
	return nil
}

// InsertOnEdge splices the resolved vertex id into the main-graph edge (a,b) at position, 0 at a and
// 1 at b. The edge is copied from base the first time it is split; later points are inserted into
// whichever sub-segment of the existing chain they fall on. Both arc directions are split and
// each pair of halves sums to the weight it replaces.
func (rg *ResolvedGraph) InsertOnEdge(base Graph, id, a, b Index, position float64, lat, lon float64) error {
	if !id.IsResolved() || rg.HasVertex(id) {
		return util.WrapErrorf(ErrInvalidSplice, util.ErrConflict, "resolved id %d is not a fresh negative id", id)
	}
	if a == b || a.IsResolved() || b.IsResolved() {
		return util.WrapErrorf(ErrInvalidSplice, util.ErrBadParamInput, "cannot split edge %d-%d", a, b)
	}
	if position < 0 || position > 1 {
		return util.WrapErrorf(ErrInvalidSplice, util.ErrBadParamInput, "position %f outside [0,1]", position)
	}
	if a > b {
		a, b = b, a
		position = 1 - position
	}

	chain, err := rg.edgeChain(base, a, b)
	if err != nil {
		return err
	}

	for i := 1; i < len(chain); i++ {
		u, w := chain[i-1], chain[i]
		pu, pw := rg.positionOn(u, a, b), rg.positionOn(w, a, b)
		if position > pw && i < len(chain)-1 {
			continue
		}

		relative := 0.0
		if pw > pu {
			relative = util.Clamp((position-pu)/(pw-pu), 0, 1)
		}
		rg.AddVertex(id, lat, lon)
		rg.positions[id] = position
		rg.origin[id] = newEdgeKey(a, b)
		return rg.Splice(u, w, id, relative)
	}

	return util.WrapErrorf(ErrInvalidSplice, util.ErrInternalServerError, "empty chain for edge %d-%d", a, b)
}

// edgeChain returns the vertices of the split chain of (a,b) from a to b, copying the edge from
// base on first use.
func (rg *ResolvedGraph) edgeChain(base Graph, a, b Index) ([]Index, error) {
	key := newEdgeKey(a, b)
	if _, ok := rg.edges[key]; !ok {
		if err := rg.copyEdge(base, a, b); err != nil {
			return nil, err
		}
		rg.edges[key] = struct{}{}
		return []Index{a, b}, nil
	}

	if path := rg.ShortestResolvedPath(a, b); path != nil {
		return path.ToArray(), nil
	}
	if path := rg.ShortestResolvedPath(b, a); path != nil {
		return util.ReverseG(path.ToArray()), nil
	}
	return nil, util.WrapErrorf(ErrInvalidSplice, util.ErrInternalServerError,
		"split chain of edge %d-%d is broken", a, b)
}

func (rg *ResolvedGraph) copyEdge(base Graph, a, b Index) error {
	ab, okAB := base.GetArc(a, b)
	ba, okBA := base.GetArc(b, a)
	if !okAB && !okBA {
		return util.WrapErrorf(ErrInvalidSplice, util.ErrNotFound, "no edge between %d and %d", a, b)
	}

	for _, v := range []Index{a, b} {
		if rg.HasVertex(v) {
			continue
		}
		lat, lon, ok := base.GetVertex(v)
		if !ok {
			return util.WrapErrorf(ErrVertexNotFound, util.ErrNotFound, "vertex %d", v)
		}
		rg.AddVertex(v, lat, lon)
	}

	if okAB {
		if err := rg.AddArc(a, b, ab, AlwaysReplace); err != nil {
			return err
		}
	}
	if okBA {
		if err := rg.AddArc(b, a, ba, AlwaysReplace); err != nil {
			return err
		}
	}
	return nil
}

// Splice replaces the arcs between u and w with arcs through r, r sitting at relative position
// along u->w. Each direction present is split separately.
func (rg *ResolvedGraph) Splice(u, w, r Index, relative float64) error {
	if relative < 0 || relative > 1 {
		return util.WrapErrorf(ErrInvalidSplice, util.ErrBadParamInput, "relative position %f outside [0,1]", relative)
	}
	uw, okUW := rg.GetArc(u, w)
	wu, okWU := rg.GetArc(w, u)
	if !okUW && !okWU {
		return util.WrapErrorf(ErrInvalidSplice, util.ErrNotFound, "no arc between %d and %d", u, w)
	}

	if okUW {
		rg.DeleteArc(u, w)
		first := uw.Weight * relative
		if err := rg.AddArc(u, r, NewEdgeData(first, uw.TagsID, uw.Forward), AlwaysReplace); err != nil {
			return err
		}
		if err := rg.AddArc(r, w, NewEdgeData(uw.Weight-first, uw.TagsID, uw.Forward), AlwaysReplace); err != nil {
			return err
		}
	}
	if okWU {
		rg.DeleteArc(w, u)
		first := wu.Weight * (1 - relative)
		if err := rg.AddArc(w, r, NewEdgeData(first, wu.TagsID, wu.Forward), AlwaysReplace); err != nil {
			return err
		}
		if err := rg.AddArc(r, u, NewEdgeData(wu.Weight-first, wu.TagsID, wu.Forward), AlwaysReplace); err != nil {
			return err
		}
	}
	return nil
}

func (rg *ResolvedGraph) positionOn(v, low, high Index) float64 {
	switch v {
	case low:
		return 0
	case high:
		return 1
	default:
		return rg.positions[v]
	}
}

// Position returns where id sits along its original edge, measured from the lower endpoint id.
func (rg *ResolvedGraph) Position(id Index) (float64, bool) {
	p, ok := rg.positions[id]
	return p, ok
}

// OriginalEdge returns the main-graph edge a resolved vertex was spliced into, lower id first.
func (rg *ResolvedGraph) OriginalEdge(id Index) (Index, Index, bool) {
	key, ok := rg.origin[id]
	return key.low, key.high, ok
}
