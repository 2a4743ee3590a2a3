package router

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/roadrouter/pkg"
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/interpreter"
	"github.com/lintang-b-s/roadrouter/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const radiusKm = 1.0

var residential = map[string]string{"highway": "residential"}

type testEdge struct {
	from, to da.Index
	weight   float64
	tags     map[string]string
}

func newTestRouter(t *testing.T, coords []geo.Coordinate, edges []testEdge) *Router {
	t.Helper()
	g := da.NewDynamicGraph(pkg.CAR, pkg.PEDESTRIAN)
	for _, c := range coords {
		g.AddVertex(c.Lat, c.Lon)
	}
	for _, e := range edges {
		tagsID := g.Tags().Add(e.tags)
		require.NoError(t, g.AddArc(e.from, e.to, da.NewEdgeData(e.weight, tagsID, true), nil))
		require.NoError(t, g.AddArc(e.to, e.from, da.NewEdgeData(e.weight, tagsID, false), nil))
	}

	index := spatialindex.NewRtree()
	index.Build(g, 0.05, zap.NewNop())
	return New(g, interpreter.NewOsmRoutingInterpreter(), index, zap.NewNop())
}

// A(0,0) - B(1,0) - C(2,0), unit weights
func lineRouter(t *testing.T, tags map[string]string) *Router {
	return newTestRouter(t,
		[]geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(1, 0), geo.NewCoordinate(2, 0)},
		[]testEdge{{0, 1, 1, tags}, {1, 2, 1, tags}})
}

func resolve(t *testing.T, r *Router, lat, lon float64) RouterPoint {
	t.Helper()
	p, err := r.Resolve(pkg.CAR, geo.NewCoordinate(lat, lon), radiusKm)
	require.NoError(t, err)
	return p
}

func TestResolveOnVertex(t *testing.T) {
	r := lineRouter(t, residential)

	a := resolve(t, r, 0, 0)
	assert.Equal(t, da.Index(0), a.ID)
	assert.True(t, a.IsVertex())

	c := resolve(t, r, 2.0000001, 0)
	assert.Equal(t, da.Index(2), c.ID)
	assert.Equal(t, 0, r.resolved.ResolvedCount())
}

func TestResolveSplitsEdge(t *testing.T) {
	r := lineRouter(t, residential)

	d := resolve(t, r, 1.5, 0)
	assert.Equal(t, da.Index(-1), d.ID)
	assert.False(t, d.IsVertex())
	assert.ElementsMatch(t, []da.Index{1, 2}, []da.Index{d.Neighbour1, d.Neighbour2})
	assert.InDelta(t, 1.5, d.Coordinate.Lat, 1e-6)

	first, ok := r.resolved.GetArc(1, -1)
	require.True(t, ok)
	second, ok := r.resolved.GetArc(-1, 2)
	require.True(t, ok)
	assert.InDelta(t, 1.0, first.Weight+second.Weight, 1e-9)
	assert.InDelta(t, 0.5, first.Weight, 1e-6)

	again := resolve(t, r, 1.5, 0)
	assert.Equal(t, d, again)
	assert.Equal(t, 1, r.resolved.ResolvedCount())

	// main graph is never modified by resolution
	_, ok = r.graph.GetArc(1, 2)
	assert.True(t, ok)
}

func TestResolveFailures(t *testing.T) {
	r := lineRouter(t, residential)

	_, err := r.Resolve(pkg.CAR, geo.NewCoordinate(50, 50), radiusKm)
	assert.True(t, errors.Is(err, ErrResolutionFailed))

	_, err = r.Resolve(pkg.BICYCLE, geo.NewCoordinate(0, 0), radiusKm)
	assert.True(t, errors.Is(err, ErrProfileUnsupported))

	footway := lineRouter(t, map[string]string{"highway": "footway"})
	_, err = footway.Resolve(pkg.CAR, geo.NewCoordinate(1.5, 0), radiusKm)
	assert.True(t, errors.Is(err, ErrResolutionFailed))
	p, err := footway.Resolve(pkg.PEDESTRIAN, geo.NewCoordinate(1.5, 0), radiusKm)
	require.NoError(t, err)
	assert.True(t, p.ID.IsResolved())
}

func TestResolveMany(t *testing.T) {
	r := lineRouter(t, residential)

	points, err := r.ResolveMany(pkg.CAR, []geo.Coordinate{
		geo.NewCoordinate(0, 0),
		geo.NewCoordinate(50, 50),
		geo.NewCoordinate(0.5, 0),
	}, radiusKm)
	require.NoError(t, err)
	require.Len(t, points, 3)
	require.NotNil(t, points[0])
	assert.Equal(t, da.Index(0), points[0].ID)
	assert.Nil(t, points[1])
	require.NotNil(t, points[2])
	assert.Equal(t, da.Index(-1), points[2].ID)
}

func TestSearch(t *testing.T) {
	r := lineRouter(t, residential)

	coord, id, err := r.Search(pkg.CAR, geo.NewCoordinate(1.001, 0), radiusKm)
	require.NoError(t, err)
	assert.Equal(t, da.Index(1), id)
	assert.Equal(t, geo.NewCoordinate(1, 0), coord)

	_, _, err = r.Search(pkg.CAR, geo.NewCoordinate(1.5, 0), radiusKm)
	assert.True(t, errors.Is(err, ErrResolutionFailed))
}

func TestCalculateAlongLine(t *testing.T) {
	ctx := context.Background()
	r := lineRouter(t, residential)
	a, c := resolve(t, r, 0, 0), resolve(t, r, 2, 0)

	route, err := r.Calculate(ctx, pkg.CAR, a, c)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, route.TotalWeight, 1e-9)
	require.Len(t, route.Entries, 3)
	assert.Equal(t, ENTRY_START, route.Entries[0].Type)
	assert.Equal(t, ENTRY_ALONG, route.Entries[1].Type)
	assert.Equal(t, ENTRY_STOP, route.Entries[2].Type)
	assert.Equal(t, []RouterPoint{a}, route.Entries[0].Points)
	assert.Equal(t, []RouterPoint{c}, route.Entries[2].Points)
	assert.Equal(t, "residential", route.Entries[1].Tags["highway"])
	assert.InDelta(t, 222.39, route.TotalDistance/1000, 0.1)

	coords, err := geo.CoordsFromPolyline(route.Polyline)
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.InDelta(t, 1.0, coords[1].Lat, 1e-5)
}

func TestCalculateWithResolvedPoint(t *testing.T) {
	ctx := context.Background()
	r := lineRouter(t, residential)
	a, c := resolve(t, r, 0, 0), resolve(t, r, 2, 0)
	d := resolve(t, r, 1.5, 0)

	toD, err := r.Calculate(ctx, pkg.CAR, a, d)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, toD.TotalWeight, 1e-6)
	require.Len(t, toD.Entries, 3)
	assert.Empty(t, toD.Entries[1].SideStreets)

	fromD, err := r.CalculateWeight(ctx, pkg.CAR, d, c)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fromD, 1e-6)

	// two points on the same edge connect along the split chain
	e := resolve(t, r, 1.25, 0)
	w, err := r.CalculateWeight(ctx, pkg.CAR, e, d)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, w, 1e-6)

	same, err := r.Calculate(ctx, pkg.CAR, d, d)
	require.NoError(t, err)
	assert.InDelta(t, 0, same.TotalWeight, 1e-9)
	require.Len(t, same.Entries, 2)
	assert.Equal(t, ENTRY_STOP, same.Entries[1].Type)
}

func TestCalculateOneWay(t *testing.T) {
	ctx := context.Background()
	r := newTestRouter(t,
		[]geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(1, 0)},
		[]testEdge{{0, 1, 1, map[string]string{"highway": "residential", "oneway": "yes"}}})
	a, b := resolve(t, r, 0, 0), resolve(t, r, 1, 0)

	_, err := r.Calculate(ctx, pkg.CAR, a, b)
	require.NoError(t, err)

	_, err = r.Calculate(ctx, pkg.CAR, b, a)
	assert.True(t, errors.Is(err, ErrNoRouteFound))

	w, err := r.CalculateWeight(ctx, pkg.CAR, b, a)
	require.NoError(t, err)
	assert.Equal(t, pkg.INF_WEIGHT, w)

	_, err = r.Calculate(ctx, pkg.PEDESTRIAN, b, a)
	assert.NoError(t, err)
}

func TestCalculateManyToManyOnCycle(t *testing.T) {
	ctx := context.Background()
	r := newTestRouter(t,
		[]geo.Coordinate{
			geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 1),
			geo.NewCoordinate(1, 1), geo.NewCoordinate(1, 0),
		},
		[]testEdge{
			{0, 1, 1, residential}, {1, 2, 1, residential},
			{2, 3, 1, residential}, {3, 0, 1, residential},
		})
	sources := []RouterPoint{resolve(t, r, 0, 0), resolve(t, r, 0, 1)}
	targets := []RouterPoint{resolve(t, r, 1, 1), resolve(t, r, 1, 0)}

	weights, err := r.CalculateManyToManyWeight(ctx, pkg.CAR, sources, targets)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 1}, {1, 2}}, weights)

	routes, err := r.CalculateManyToMany(ctx, pkg.CAR, sources, targets)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	for i := range routes {
		for j := range routes[i] {
			require.NotNil(t, routes[i][j])
			assert.Equal(t, weights[i][j], routes[i][j].TotalWeight)
		}
	}
}

func TestCalculateOneToManyAndClosest(t *testing.T) {
	ctx := context.Background()
	r := newTestRouter(t,
		[]geo.Coordinate{
			geo.NewCoordinate(0, 0), geo.NewCoordinate(1, 0),
			geo.NewCoordinate(2, 0), geo.NewCoordinate(5, 5),
		},
		[]testEdge{{0, 1, 1, residential}, {1, 2, 1, residential}})
	a := resolve(t, r, 0, 0)
	c := resolve(t, r, 2, 0)
	island := RouterPoint{ID: 3, Coordinate: geo.NewCoordinate(5, 5), Neighbour1: 3, Neighbour2: 3}
	d := resolve(t, r, 1.5, 0)

	routes, err := r.CalculateOneToMany(ctx, pkg.CAR, a, []RouterPoint{c, island, d})
	require.NoError(t, err)
	require.Len(t, routes, 3)
	assert.InDelta(t, 2.0, routes[0].TotalWeight, 1e-9)
	assert.Nil(t, routes[1])
	assert.InDelta(t, 1.5, routes[2].TotalWeight, 1e-6)

	weights, err := r.CalculateOneToManyWeight(ctx, pkg.CAR, a, []RouterPoint{c, island})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, pkg.INF_WEIGHT}, weights)

	closest, idx, err := r.CalculateToClosest(ctx, pkg.CAR, a, []RouterPoint{island, c, d})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.InDelta(t, 1.5, closest.TotalWeight, 1e-6)

	_, idx, err = r.CalculateToClosest(ctx, pkg.CAR, a, []RouterPoint{island})
	assert.True(t, errors.Is(err, ErrNoRouteFound))
	assert.Equal(t, -1, idx)
}

func TestResolveCrossingEdgesPerProfile(t *testing.T) {
	// a footway along lon 0 crossing a residential road along lat 0, no shared vertex
	r := newTestRouter(t,
		[]geo.Coordinate{geo.NewCoordinate(-1, 0), geo.NewCoordinate(1, 0),
			geo.NewCoordinate(0, -1), geo.NewCoordinate(0, 1)},
		[]testEdge{{0, 1, 2, map[string]string{"highway": "footway"}}, {2, 3, 2, residential}})

	walk, err := r.Resolve(pkg.PEDESTRIAN, geo.NewCoordinate(0, 0), radiusKm)
	require.NoError(t, err)
	assert.True(t, walk.ID.IsResolved())

	drive, err := r.Resolve(pkg.CAR, geo.NewCoordinate(0, 0), radiusKm)
	require.NoError(t, err)
	assert.True(t, drive.ID.IsResolved())
	assert.ElementsMatch(t, []da.Index{2, 3}, []da.Index{drive.Neighbour1, drive.Neighbour2})

	again, err := r.Resolve(pkg.CAR, geo.NewCoordinate(0, 0), radiusKm)
	require.NoError(t, err)
	assert.Equal(t, drive, again)
}

func TestCalculateToClosestOnSameEdge(t *testing.T) {
	ctx := context.Background()
	r := lineRouter(t, residential)
	a := resolve(t, r, 0, 0)
	far := resolve(t, r, 1.8, 0)
	near := resolve(t, r, 1.2, 0)

	closest, idx, err := r.CalculateToClosest(ctx, pkg.CAR, a, []RouterPoint{far, near})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 1.2, closest.TotalWeight, 1e-6)
}

func TestRangeAndConnectivity(t *testing.T) {
	ctx := context.Background()
	r := lineRouter(t, residential)
	a := resolve(t, r, 0, 0)
	d := resolve(t, r, 1.5, 0)

	coords, err := r.CalculateRange(ctx, pkg.CAR, a, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{geo.NewCoordinate(2, 0)}, coords)

	ok, err := r.CheckConnectivity(ctx, pkg.CAR, d, 0.2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CheckConnectivity(ctx, pkg.CAR, d, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	many, err := r.CheckConnectivityMany(ctx, pkg.CAR, []RouterPoint{a, d}, 0.2)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, many)
}

func TestSideStreets(t *testing.T) {
	ctx := context.Background()
	side := map[string]string{"highway": "residential", "name": "Side Street", "name:id": "Jalan Samping"}
	r := newTestRouter(t,
		[]geo.Coordinate{
			geo.NewCoordinate(0, 0), geo.NewCoordinate(1, 0),
			geo.NewCoordinate(2, 0), geo.NewCoordinate(1, 1),
		},
		[]testEdge{{0, 1, 1, residential}, {1, 2, 1, residential}, {1, 3, 1, side}})
	a, c := resolve(t, r, 0, 0), resolve(t, r, 2, 0)

	route, err := r.Calculate(ctx, pkg.CAR, a, c)
	require.NoError(t, err)
	require.Len(t, route.Entries, 3)
	streets := route.Entries[1].SideStreets
	require.Len(t, streets, 1)
	assert.Equal(t, "Side Street", streets[0].Name)
	assert.Equal(t, map[string]string{"id": "Jalan Samping"}, streets[0].Names)
	assert.Equal(t, geo.NewCoordinate(1, 1), streets[0].Coordinate)
}

func TestQueriesRejectBadInput(t *testing.T) {
	ctx := context.Background()
	r := lineRouter(t, residential)
	a := resolve(t, r, 0, 0)

	_, err := r.Calculate(ctx, pkg.BICYCLE, a, a)
	assert.True(t, errors.Is(err, ErrProfileUnsupported))

	ghost := RouterPoint{ID: -42, Neighbour1: 0, Neighbour2: 1}
	_, err = r.Calculate(ctx, pkg.CAR, a, ghost)
	assert.True(t, errors.Is(err, ErrVertexNotFound))
}
