package datastructure

import (
	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

// DynamicGraph is the main road graph. Ids are dense and non-negative. Every way segment is stored as
// two arcs, one per direction, and direction rules are applied at search time.
type DynamicGraph struct {
	vertices []Vertex
	arcs     [][]Arc
	numArcs  int
	profiles map[pkg.Profile]struct{}
	tags     *TagsIndex
}

func NewDynamicGraph(profiles ...pkg.Profile) *DynamicGraph {
	g := &DynamicGraph{
		vertices: make([]Vertex, 0),
		arcs:     make([][]Arc, 0),
		profiles: make(map[pkg.Profile]struct{}, len(profiles)),
		tags:     NewTagsIndex(),
	}
	for _, p := range profiles {
		g.profiles[p] = struct{}{}
	}
	return g
}

func (g *DynamicGraph) AddVertex(lat, lon float64) Index {
	g.vertices = append(g.vertices, NewVertex(lat, lon))
	g.arcs = append(g.arcs, make([]Arc, 0, 2))
	return Index(len(g.vertices) - 1)
}

func (g *DynamicGraph) exists(id Index) bool {
	return id >= 0 && int(id) < len(g.vertices) && !g.vertices[id].deleted
}

func (g *DynamicGraph) GetVertex(id Index) (float64, float64, bool) {
	if !g.exists(id) {
		return 0, 0, false
	}
	v := g.vertices[id]
	return v.GetLat(), v.GetLon(), true
}

// AddArc inserts from->to. An existing arc to the same neighbour is replaced only when comparer
// says so; a nil comparer keeps the lighter arc.
func (g *DynamicGraph) AddArc(from, to Index, data EdgeData, comparer EdgeComparer) error {
	if !g.exists(from) {
		return util.WrapErrorf(ErrVertexNotFound, util.ErrNotFound, "add arc %d->%d: unknown source", from, to)
	}
	if !g.exists(to) {
		return util.WrapErrorf(ErrVertexNotFound, util.ErrNotFound, "add arc %d->%d: unknown target", from, to)
	}
	if comparer == nil {
		comparer = KeepLighter
	}

	if i := findArc(g.arcs[from], to); i >= 0 {
		if comparer(g.arcs[from][i].Data, data) {
			g.arcs[from][i].Data = data
		}
		return nil
	}
	g.arcs[from] = append(g.arcs[from], Arc{Neighbour: to, Data: data})
	g.numArcs++
	return nil
}

// GetArcs returns the outgoing arcs of id. The slice is owned by the graph and must not be modified.
func (g *DynamicGraph) GetArcs(id Index) []Arc {
	if !g.exists(id) {
		return nil
	}
	return g.arcs[id]
}

func (g *DynamicGraph) GetArc(from, to Index) (EdgeData, bool) {
	if !g.exists(from) {
		return EdgeData{}, false
	}
	if i := findArc(g.arcs[from], to); i >= 0 {
		return g.arcs[from][i].Data, true
	}
	return EdgeData{}, false
}

func (g *DynamicGraph) DeleteArc(from, to Index) bool {
	if !g.exists(from) {
		return false
	}
	i := findArc(g.arcs[from], to)
	if i < 0 {
		return false
	}
	g.arcs[from] = removeArcAt(g.arcs[from], i)
	g.numArcs--
	return true
}

// DeleteVertex tombstones id and drops every arc touching it. Only used while pre-processing.
func (g *DynamicGraph) DeleteVertex(id Index) bool {
	if !g.exists(id) {
		return false
	}
	for u := range g.arcs {
		if Index(u) == id {
			continue
		}
		g.DeleteArc(Index(u), id)
	}
	g.numArcs -= len(g.arcs[id])
	g.arcs[id] = nil
	g.vertices[id].deleted = true
	return true
}

// VertexCount is the size of the id space, tombstoned ids included.
func (g *DynamicGraph) VertexCount() int {
	return len(g.vertices)
}

func (g *DynamicGraph) ArcCount() int {
	return g.numArcs
}

func (g *DynamicGraph) GetVertices() []Index {
	ids := make([]Index, 0, len(g.vertices))
	for i := range g.vertices {
		if !g.vertices[i].deleted {
			ids = append(ids, Index(i))
		}
	}
	return ids
}

func (g *DynamicGraph) ForVertices(handle func(id Index, lat, lon float64)) {
	for i, v := range g.vertices {
		if v.deleted {
			continue
		}
		handle(Index(i), v.GetLat(), v.GetLon())
	}
}

func (g *DynamicGraph) SupportsProfile(p pkg.Profile) bool {
	_, ok := g.profiles[p]
	return ok
}

func (g *DynamicGraph) Profiles() []pkg.Profile {
	profiles := make([]pkg.Profile, 0, len(g.profiles))
	for p := range g.profiles {
		profiles = append(profiles, p)
	}
	return pkg.SortProfiles(profiles)
}

func (g *DynamicGraph) AddProfile(p pkg.Profile) {
	g.profiles[p] = struct{}{}
}

func (g *DynamicGraph) Tags() *TagsIndex {
	return g.tags
}
