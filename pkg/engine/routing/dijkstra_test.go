package routing

import (
	"context"
	"testing"

	"github.com/lintang-b-s/roadrouter/pkg"
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/interpreter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	residential = map[string]string{"highway": "residential"}
	oneway      = map[string]string{"highway": "residential", "oneway": "yes"}
	motorway    = map[string]string{"highway": "motorway"}
	primary     = map[string]string{"highway": "primary"}
)

type testEdge struct {
	from, to da.Index
	weight   float64
	tags     map[string]string
}

// buildGraph creates numVertices vertices on the meridian and adds every edge in both directions.
func buildGraph(t *testing.T, numVertices int, edges []testEdge) *da.DynamicGraph {
	t.Helper()
	g := da.NewDynamicGraph(pkg.CAR, pkg.PEDESTRIAN)
	for i := 0; i < numVertices; i++ {
		g.AddVertex(float64(i), 0)
	}
	for _, e := range edges {
		tagsID := g.Tags().Add(e.tags)
		require.NoError(t, g.AddArc(e.from, e.to, da.NewEdgeData(e.weight, tagsID, true), nil))
		require.NoError(t, g.AddArc(e.to, e.from, da.NewEdgeData(e.weight, tagsID, false), nil))
	}
	return g
}

func newTestDijkstra(g *da.DynamicGraph, opts ...interpreter.Option) *Dijkstra {
	return NewDijkstra(g, g.Tags(), interpreter.NewOsmRoutingInterpreter(opts...), zap.NewNop())
}

func vl(v da.Index) *da.VisitList {
	return da.NewVisitListFromVertex(v)
}

func lineGraph(t *testing.T, n int, tags map[string]string) *da.DynamicGraph {
	edges := make([]testEdge, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, testEdge{from: da.Index(i - 1), to: da.Index(i), weight: 1, tags: tags})
	}
	return buildGraph(t, n, edges)
}

func TestDijkstraCalculate(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		graph      func(t *testing.T) *da.DynamicGraph
		profile    pkg.Profile
		from, to   da.Index
		wantPath   []da.Index
		wantWeight float64
	}{
		{
			name:       "straight line",
			graph:      func(t *testing.T) *da.DynamicGraph { return lineGraph(t, 3, residential) },
			profile:    pkg.CAR,
			from:       0,
			to:         2,
			wantPath:   []da.Index{0, 1, 2},
			wantWeight: 2,
		},
		{
			name:       "same vertex",
			graph:      func(t *testing.T) *da.DynamicGraph { return lineGraph(t, 3, residential) },
			profile:    pkg.CAR,
			from:       1,
			to:         1,
			wantPath:   []da.Index{1},
			wantWeight: 0,
		},
		{
			name:       "oneway along",
			graph:      func(t *testing.T) *da.DynamicGraph { return lineGraph(t, 2, oneway) },
			profile:    pkg.CAR,
			from:       0,
			to:         1,
			wantPath:   []da.Index{0, 1},
			wantWeight: 1,
		},
		{
			name:     "oneway against",
			graph:    func(t *testing.T) *da.DynamicGraph { return lineGraph(t, 2, oneway) },
			profile:  pkg.CAR,
			from:     1,
			to:       0,
			wantPath: nil,
		},
		{
			name:       "pedestrian ignores oneway",
			graph:      func(t *testing.T) *da.DynamicGraph { return lineGraph(t, 2, oneway) },
			profile:    pkg.PEDESTRIAN,
			from:       1,
			to:         0,
			wantPath:   []da.Index{1, 0},
			wantWeight: 1,
		},
		{
			name:     "pedestrian cannot use motorway",
			graph:    func(t *testing.T) *da.DynamicGraph { return lineGraph(t, 3, motorway) },
			profile:  pkg.PEDESTRIAN,
			from:     0,
			to:       2,
			wantPath: nil,
		},
		{
			name: "picks lighter of two routes",
			graph: func(t *testing.T) *da.DynamicGraph {
				return buildGraph(t, 4, []testEdge{
					{from: 0, to: 1, weight: 1, tags: residential},
					{from: 1, to: 3, weight: 5, tags: residential},
					{from: 0, to: 2, weight: 2, tags: residential},
					{from: 2, to: 3, weight: 2, tags: residential},
				})
			},
			profile:    pkg.CAR,
			from:       0,
			to:         3,
			wantPath:   []da.Index{0, 2, 3},
			wantWeight: 4,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDijkstra(tt.graph(t))
			path, err := d.Calculate(ctx, tt.profile, vl(tt.from), vl(tt.to), pkg.INF_WEIGHT)
			require.NoError(t, err)

			weight, err := d.CalculateWeight(ctx, tt.profile, vl(tt.from), vl(tt.to), pkg.INF_WEIGHT)
			require.NoError(t, err)

			if tt.wantPath == nil {
				assert.Nil(t, path)
				assert.Equal(t, pkg.INF_WEIGHT, weight)
				return
			}
			require.NotNil(t, path)
			assert.Equal(t, tt.wantPath, path.ToArray())
			assert.InDelta(t, tt.wantWeight, path.Weight(), 1e-9)
			assert.InDelta(t, tt.wantWeight, weight, 1e-9)

			ws := path.Weights()
			for i := 1; i < len(ws); i++ {
				assert.LessOrEqual(t, ws[i-1], ws[i])
			}
		})
	}
}

func TestDijkstraManyToManyCycle(t *testing.T) {
	g := buildGraph(t, 4, []testEdge{
		{from: 0, to: 1, weight: 1, tags: residential},
		{from: 1, to: 2, weight: 1, tags: residential},
		{from: 2, to: 3, weight: 1, tags: residential},
		{from: 3, to: 0, weight: 1, tags: residential},
	})
	d := newTestDijkstra(g)

	sources := []*da.VisitList{vl(0), vl(1)}
	targets := []*da.VisitList{vl(2), vl(3)}

	weights, err := d.CalculateManyToManyWeight(context.Background(), pkg.CAR, sources, targets, pkg.INF_WEIGHT)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 1}, {1, 2}}, weights)

	paths, err := d.CalculateManyToMany(context.Background(), pkg.CAR, sources, targets, pkg.INF_WEIGHT)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, []da.Index{0, 3}, paths[0][1].ToArray())
	assert.Equal(t, []da.Index{1, 2}, paths[1][0].ToArray())
}

func TestDijkstraOneToManyPartial(t *testing.T) {
	g := lineGraph(t, 3, residential)
	isolated := g.AddVertex(10, 10)
	d := newTestDijkstra(g)

	weights, err := d.CalculateOneToManyWeight(context.Background(), pkg.CAR, vl(0),
		[]*da.VisitList{vl(2), vl(isolated), vl(1)}, pkg.INF_WEIGHT)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, pkg.INF_WEIGHT, 1}, weights)

	paths, err := d.CalculateOneToMany(context.Background(), pkg.CAR, vl(0), nil, pkg.INF_WEIGHT)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDijkstraCalculateToClosest(t *testing.T) {
	d := newTestDijkstra(lineGraph(t, 5, residential))

	path, idx, err := d.CalculateToClosest(context.Background(), pkg.CAR, vl(0),
		[]*da.VisitList{vl(4), vl(2), vl(3)}, pkg.INF_WEIGHT)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []da.Index{0, 1, 2}, path.ToArray())

	g := lineGraph(t, 2, residential)
	isolated := g.AddVertex(5, 5)
	path, idx, err = newTestDijkstra(g).CalculateToClosest(context.Background(), pkg.CAR, vl(0),
		[]*da.VisitList{vl(isolated)}, pkg.INF_WEIGHT)
	require.NoError(t, err)
	assert.Nil(t, path)
	assert.Equal(t, -1, idx)
}

func TestDijkstraCalculateToClosestPicksLightestOfSamePop(t *testing.T) {
	d := newTestDijkstra(lineGraph(t, 3, residential))

	// -1 at 0.8 and -2 at 0.2 along the edge 1-2, both first reached when 2 is popped
	far := da.NewVisitListWithNeighbours(1, 2)
	far.UpdateVertex(da.NewPathSegment(1, 0.8, da.NewPathSegmentRoot(-1)))
	far.UpdateVertex(da.NewPathSegment(2, 0.2, da.NewPathSegmentRoot(-1)))

	near := da.NewVisitListWithNeighbours(1, 2)
	near.UpdateVertex(da.NewPathSegment(1, 0.2, da.NewPathSegmentRoot(-2)))
	near.UpdateVertex(da.NewPathSegment(2, 0.8, da.NewPathSegmentRoot(-2)))

	path, idx, err := d.CalculateToClosest(context.Background(), pkg.CAR, vl(0),
		[]*da.VisitList{far, near}, pkg.INF_WEIGHT)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 1.2, path.Weight(), 1e-9)
	assert.Equal(t, []da.Index{0, 1, -2}, path.ToArray())
}

func TestDijkstraRange(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		tags          map[string]string
		source        da.Index
		weight        float64
		forward       bool
		wantBoundary  []da.Index
		wantConnected bool
	}{
		{name: "both sides of a two way line", tags: residential, source: 2, weight: 1.5, forward: true,
			wantBoundary: []da.Index{0, 4}, wantConnected: true},
		{name: "bound larger than graph", tags: residential, source: 0, weight: 10, forward: true,
			wantBoundary: []da.Index{}, wantConnected: false},
		{name: "oneway forward", tags: oneway, source: 0, weight: 0.5, forward: true,
			wantBoundary: []da.Index{1}, wantConnected: false},
		{name: "oneway backward", tags: oneway, source: 0, weight: 0.5, forward: false,
			wantBoundary: []da.Index{}, wantConnected: false},
		{name: "oneway middle", tags: oneway, source: 2, weight: 0.5, forward: false,
			wantBoundary: []da.Index{1}, wantConnected: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDijkstra(lineGraph(t, 5, tt.tags))

			boundary, err := d.CalculateRange(ctx, pkg.CAR, vl(tt.source), tt.weight, tt.forward)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBoundary, boundary)

			connected, err := d.CheckConnectivity(ctx, pkg.CAR, vl(tt.source), vl(tt.source), tt.weight)
			require.NoError(t, err)
			assert.Equal(t, tt.wantConnected, connected)
		})
	}
}

func TestDijkstraCheckConnectivityOnOneWay(t *testing.T) {
	ctx := context.Background()
	d := newTestDijkstra(lineGraph(t, 4, oneway))

	// resolved point halfway along a one-way edge, reached from from and leaving towards to
	resolvedOn := func(from, to da.Index) (*da.VisitList, *da.VisitList) {
		forward := da.NewVisitListWithNeighbours(from, to)
		forward.UpdateVertex(da.NewPathSegment(to, 0.5, da.NewPathSegmentRoot(-1)))
		backward := da.NewVisitListWithNeighbours(from, to)
		backward.UpdateVertex(da.NewPathSegment(from, 0.5, da.NewPathSegmentRoot(-1)))
		return forward, backward
	}

	forward, backward := resolvedOn(1, 2)
	connected, err := d.CheckConnectivity(ctx, pkg.CAR, forward, backward, 0.6)
	require.NoError(t, err)
	assert.True(t, connected)

	// nothing enters vertex 0 on a one-way line
	forward, backward = resolvedOn(0, 1)
	connected, err = d.CheckConnectivity(ctx, pkg.CAR, forward, backward, 0.6)
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestDijkstraTurnRestriction(t *testing.T) {
	g := buildGraph(t, 4, []testEdge{
		{from: 0, to: 1, weight: 1, tags: residential},
		{from: 1, to: 2, weight: 1, tags: residential},
		{from: 1, to: 3, weight: 1, tags: residential},
		{from: 3, to: 2, weight: 1.5, tags: residential},
	})

	free := newTestDijkstra(g)
	path, err := free.Calculate(context.Background(), pkg.CAR, vl(0), vl(2), pkg.INF_WEIGHT)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{0, 1, 2}, path.ToArray())

	restricted := newTestDijkstra(g, interpreter.WithTurnRestriction(0, 1, 2))
	path, err = restricted.Calculate(context.Background(), pkg.CAR, vl(0), vl(2), pkg.INF_WEIGHT)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, []da.Index{0, 1, 3, 2}, path.ToArray())
	assert.InDelta(t, 3.5, path.Weight(), 1e-9)

	// the reverse direction is a different turn
	path, err = restricted.Calculate(context.Background(), pkg.CAR, vl(2), vl(0), pkg.INF_WEIGHT)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{2, 1, 0}, path.ToArray())
}

func TestDijkstraRoadClassConstraints(t *testing.T) {
	g := buildGraph(t, 5, []testEdge{
		{from: 0, to: 1, weight: 1, tags: motorway},
		{from: 1, to: 2, weight: 1, tags: residential},
		{from: 2, to: 3, weight: 1, tags: motorway},
		{from: 1, to: 4, weight: 2, tags: primary},
		{from: 4, to: 3, weight: 2, tags: motorway},
	})

	plain := newTestDijkstra(g)
	path, err := plain.Calculate(context.Background(), pkg.CAR, vl(0), vl(3), pkg.INF_WEIGHT)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{0, 1, 2, 3}, path.ToArray())

	constrained := newTestDijkstra(g, interpreter.WithConstraints(interpreter.NewRoadClassConstraints()))
	path, err = constrained.Calculate(context.Background(), pkg.CAR, vl(0), vl(3), pkg.INF_WEIGHT)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, []da.Index{0, 1, 4, 3}, path.ToArray())
	assert.InDelta(t, 5.0, path.Weight(), 1e-9)
}

func TestDijkstraBansResolutionArc(t *testing.T) {
	g := buildGraph(t, 3, []testEdge{
		{from: 0, to: 1, weight: 1, tags: residential},
		{from: 1, to: 2, weight: 1, tags: residential},
		{from: 2, to: 0, weight: 2, tags: residential},
	})
	d := newTestDijkstra(g)

	// a point resolved onto 0-1 that can only leave towards 1
	source := da.NewVisitListWithNeighbours(0, 1)
	source.UpdateVertex(da.NewPathSegment(1, 0.1, da.NewPathSegmentRoot(-1)))

	path, err := d.Calculate(context.Background(), pkg.CAR, source, vl(0), pkg.INF_WEIGHT)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, []da.Index{-1, 1, 2, 0}, path.ToArray())
	assert.InDelta(t, 3.1, path.Weight(), 1e-9)
}

func TestDijkstraShortcutOnSameEdge(t *testing.T) {
	d := newTestDijkstra(lineGraph(t, 2, residential))

	// -1 at 0.25 and -2 at 0.75 on the edge 0-1
	source := da.NewVisitListWithNeighbours(0, 1)
	source.UpdateVertex(da.NewPathSegment(0, 0.25, da.NewPathSegmentRoot(-1)))
	source.UpdateVertex(da.NewPathSegment(1, 0.75, da.NewPathSegment(-2, 0.5, da.NewPathSegmentRoot(-1))))

	target := da.NewVisitListWithNeighbours(0, 1)
	target.UpdateVertex(da.NewPathSegment(1, 0.25, da.NewPathSegmentRoot(-2)))
	target.UpdateVertex(da.NewPathSegment(0, 0.75, da.NewPathSegment(-1, 0.5, da.NewPathSegmentRoot(-2))))

	path, err := d.Calculate(context.Background(), pkg.CAR, source, target, pkg.INF_WEIGHT)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, []da.Index{-1, -2}, path.ToArray())
	assert.InDelta(t, 0.5, path.Weight(), 1e-9)
}

func TestDijkstraCancelled(t *testing.T) {
	d := newTestDijkstra(lineGraph(t, 5, residential))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Calculate(ctx, pkg.CAR, vl(0), vl(4), pkg.INF_WEIGHT)
	assert.ErrorIs(t, err, context.Canceled)
}
