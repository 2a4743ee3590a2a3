package graphbuilder

import (
	"fmt"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/interpreter"
	"go.uber.org/zap"
)

// Builder feeds ways into a DynamicGraph. Node ids are external (e.g. osm node ids) and mapped onto
// dense graph ids on first use.
type Builder struct {
	graph    *datastructure.DynamicGraph
	edges    interpreter.EdgeInterpreter
	comparer datastructure.EdgeComparer
	profile  pkg.Profile
	nodes    map[int64]datastructure.Index
	coords   map[int64]geo.Coordinate
	log      *zap.Logger

	skippedWays int
}

type Option func(*Builder)

// WithWeightProfile selects the profile arc weights are computed for.
func WithWeightProfile(profile pkg.Profile) Option {
	return func(b *Builder) {
		b.profile = profile
	}
}

func WithComparer(comparer datastructure.EdgeComparer) Option {
	return func(b *Builder) {
		b.comparer = comparer
	}
}

func New(graph *datastructure.DynamicGraph, edges interpreter.EdgeInterpreter, log *zap.Logger, opts ...Option) *Builder {
	b := &Builder{
		graph:    graph,
		edges:    edges,
		comparer: datastructure.KeepLighter,
		nodes:    make(map[int64]datastructure.Index),
		coords:   make(map[int64]geo.Coordinate),
		log:      log,
	}
	if profiles := graph.Profiles(); len(profiles) > 0 {
		b.profile = profiles[0]
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddNode registers the coordinate of an external node. The vertex is only created once a
// routable way references it.
func (b *Builder) AddNode(id int64, lat, lon float64) {
	b.coords[id] = geo.NewCoordinate(lat, lon)
}

func (b *Builder) vertexOf(node int64) (datastructure.Index, error) {
	if v, ok := b.nodes[node]; ok {
		return v, nil
	}
	coord, ok := b.coords[node]
	if !ok {
		return 0, fmt.Errorf("way references unknown node %d", node)
	}
	v := b.graph.AddVertex(coord.Lat, coord.Lon)
	b.nodes[node] = v
	return v, nil
}

// AddWay adds every segment of a way as a forward arc and its mirrored backward arc. Ways that are
// not routable are skipped.
func (b *Builder) AddWay(nodes []int64, tags map[string]string) error {
	if len(nodes) < 2 || !b.edges.IsRoutable(tags) {
		b.skippedWays++
		return nil
	}
	tagsID := b.graph.Tags().Add(tags)

	for i := 1; i < len(nodes); i++ {
		from, err := b.vertexOf(nodes[i-1])
		if err != nil {
			return err
		}
		to, err := b.vertexOf(nodes[i])
		if err != nil {
			return err
		}
		if from == to {
			continue
		}

		var previous *geo.Coordinate
		if i >= 2 {
			c := b.coords[nodes[i-2]]
			previous = &c
		}
		weight := b.segmentWeight(tags, previous, b.coords[nodes[i-1]], b.coords[nodes[i]])
		data := datastructure.NewEdgeData(weight, tagsID, true)
		if err := b.graph.AddArc(from, to, data, b.comparer); err != nil {
			return err
		}
		if err := b.graph.AddArc(to, from, data.Reversed(), b.comparer); err != nil {
			return err
		}
	}
	return nil
}

// segmentWeight weighs from->to. Motorcycle weights also charge the bend from the previous segment of
// the same way.
func (b *Builder) segmentWeight(tags map[string]string, previous *geo.Coordinate, from, to geo.Coordinate) float64 {
	switch {
	case b.profile == "":
		return from.DistanceTo(to)
	case b.profile == pkg.MOTORCYCLE && previous != nil:
		return b.edges.TurningWeight(tags, b.profile, *previous, from, to)
	default:
		return b.edges.Weight(tags, b.profile, from, to)
	}
}

// Vertex returns the graph id assigned to an external node.
func (b *Builder) Vertex(node int64) (datastructure.Index, bool) {
	v, ok := b.nodes[node]
	return v, ok
}

func (b *Builder) Graph() *datastructure.DynamicGraph {
	b.log.Info("graph built",
		zap.Int("vertices", b.graph.VertexCount()),
		zap.Int("arcs", b.graph.ArcCount()),
		zap.Int("tags", b.graph.Tags().Count()),
		zap.Int("skipped_ways", b.skippedWays))
	return b.graph
}
