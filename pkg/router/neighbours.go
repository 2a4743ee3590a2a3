package router

import (
	"sort"

	"github.com/lintang-b-s/roadrouter/pkg"
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
)

func (r *Router) vertexCoordinate(id da.Index) (float64, float64, bool) {
	if id.IsResolved() {
		return r.resolved.GetVertex(id)
	}
	return r.graph.GetVertex(id)
}

// edgeData returns the arc between two consecutive route vertices in either direction. Pairs of
// main vertices come from the main graph, anything touching a resolved vertex from the resolved graph.
func (r *Router) edgeData(from, to da.Index) (da.EdgeData, bool) {
	var g da.Graph = r.graph
	if from.IsResolved() || to.IsResolved() {
		g = r.resolved
	}
	if data, ok := g.GetArc(from, to); ok {
		return data, true
	}
	return g.GetArc(to, from)
}

// visitList seeds a search from (forward) or into (backward) point. A vertex point seeds itself; a
// resolved point walks the resolved graph until it reaches main vertices, honouring one-way tags in
// the direction of the search.
func (r *Router) visitList(profile pkg.Profile, point RouterPoint, forward bool) *da.VisitList {
	if !point.ID.IsResolved() {
		return da.NewVisitListFromVertex(point.ID)
	}

	vl := da.NewVisitListWithNeighbours(point.Neighbour1, point.Neighbour2)
	edges := r.interp.Edges()
	frontier := da.NewVisitList()
	frontier.UpdateVertex(da.NewPathSegmentRoot(point.ID))
	settled := make(map[da.Index]struct{})

	for seg := frontier.GetFirst(); seg != nil; seg = frontier.GetFirst() {
		v := seg.Vertex()
		if _, ok := settled[v]; ok {
			continue
		}
		settled[v] = struct{}{}
		if !v.IsResolved() {
			vl.UpdateVertex(seg)
			continue
		}

		for _, arc := range r.resolved.GetArcs(v) {
			if _, ok := settled[arc.Neighbour]; ok {
				continue
			}
			tags, ok := r.graph.Tags().Get(arc.Data.TagsID)
			if !ok || !edges.IsTraversable(tags, profile) {
				continue
			}
			oneway := edges.IsOneWay(tags, profile)
			if oneway != nil && ((forward && *oneway != arc.Data.Forward) ||
				(!forward && *oneway == arc.Data.Forward)) {
				continue
			}
			frontier.UpdateVertex(da.NewPathSegment(arc.Neighbour, seg.Weight()+arc.Data.Weight, seg))
		}
	}
	return vl
}

func (r *Router) visitLists(profile pkg.Profile, points []RouterPoint, forward bool) []*da.VisitList {
	lists := make([]*da.VisitList, len(points))
	for i, p := range points {
		lists[i] = r.visitList(profile, p, forward)
	}
	return lists
}

// undirectedNeighbours lists the vertices sharing an edge with id, ignoring direction. For a main
// vertex on a split edge the resolved vertex closest to it replaces the far endpoint.
func (r *Router) undirectedNeighbours(id da.Index) []da.Arc {
	if id.IsResolved() {
		return r.resolved.GetArcs(id)
	}

	byNeighbour := make(map[da.Index]da.Arc)
	for _, arc := range r.graph.GetArcs(id) {
		byNeighbour[arc.Neighbour] = arc
	}
	for _, arc := range r.resolved.GetArcs(id) {
		if !arc.Neighbour.IsResolved() {
			continue
		}
		low, high, ok := r.resolved.OriginalEdge(arc.Neighbour)
		if !ok {
			continue
		}
		far := high
		if high == id {
			far = low
		}
		delete(byNeighbour, far)
		byNeighbour[arc.Neighbour] = arc
	}

	neighbours := make([]da.Arc, 0, len(byNeighbour))
	for _, arc := range byNeighbour {
		neighbours = append(neighbours, arc)
	}
	sort.Slice(neighbours, func(i, j int) bool { return neighbours[i].Neighbour < neighbours[j].Neighbour })
	return neighbours
}
