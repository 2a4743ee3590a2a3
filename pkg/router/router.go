package router

import (
	"context"

	"github.com/lintang-b-s/roadrouter/pkg"
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/engine/routing"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/interpreter"
	"github.com/lintang-b-s/roadrouter/pkg/spatialindex"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// RouterPoint is a coordinate attached to the road network. For a point on a vertex ID is the
// vertex and both neighbours equal it; otherwise ID is a negative resolved id and the neighbours are
// the endpoints of the edge it was spliced into.
type RouterPoint struct {
	ID         da.Index       `json:"id"`
	Coordinate geo.Coordinate `json:"coordinate"`
	Neighbour1 da.Index       `json:"neighbour1"`
	Neighbour2 da.Index       `json:"neighbour2"`
}

func (p RouterPoint) IsVertex() bool {
	return p.Neighbour1 == p.Neighbour2
}

type requestKey struct {
	profile pkg.Profile
	coord   geo.Coordinate
}

// Router resolves coordinates onto the graph and answers routing queries between resolved points.
// The resolved graph, the id counter and both point caches are owned by one Router and guarded by
// mu: Resolve writes, every query reads.
type Router struct {
	graph  *da.DynamicGraph
	interp interpreter.RoutingInterpreter
	index  *spatialindex.Rtree
	engine *routing.Dijkstra
	log    *zap.Logger

	mu             *xsync.RBMutex
	resolved       *da.ResolvedGraph
	nextResolvedID da.Index
	byRequest      map[requestKey]RouterPoint
	bySnapped      map[requestKey]RouterPoint

	maxWeight float64
}

type Option func(*Router)

// WithMaxWeight bounds every search; routes heavier than this are reported as not found.
func WithMaxWeight(w float64) Option {
	return func(r *Router) {
		r.maxWeight = w
	}
}

func New(graph *da.DynamicGraph, interp interpreter.RoutingInterpreter, index *spatialindex.Rtree,
	log *zap.Logger, opts ...Option) *Router {
	r := &Router{
		graph:          graph,
		interp:         interp,
		index:          index,
		engine:         routing.NewDijkstra(graph, graph.Tags(), interp, log),
		log:            log,
		mu:             xsync.NewRBMutex(),
		resolved:       da.NewResolvedGraph(),
		nextResolvedID: -1,
		byRequest:      make(map[requestKey]RouterPoint),
		bySnapped:      make(map[requestKey]RouterPoint),
		maxWeight:      pkg.INF_WEIGHT,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) SupportsProfile(profile pkg.Profile) bool {
	return r.graph.SupportsProfile(profile)
}

func (r *Router) checkProfile(profile pkg.Profile) error {
	if !r.SupportsProfile(profile) {
		return util.WrapErrorf(ErrProfileUnsupported, util.ErrBadParamInput, "profile %q", profile)
	}
	return nil
}

func (r *Router) checkPoints(points ...RouterPoint) error {
	for _, p := range points {
		if _, _, ok := r.vertexCoordinate(p.ID); !ok {
			return util.WrapErrorf(ErrVertexNotFound, util.ErrNotFound, "router point %d", p.ID)
		}
	}
	return nil
}

// Calculate returns the route from source to target, ErrNoRouteFound when there is none.
func (r *Router) Calculate(ctx context.Context, profile pkg.Profile, source, target RouterPoint) (*Route, error) {
	if err := r.checkProfile(profile); err != nil {
		return nil, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(source, target); err != nil {
		return nil, err
	}

	path, err := r.engine.Calculate(ctx, profile, r.visitList(profile, source, true),
		r.visitList(profile, target, false), r.maxWeight)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, util.WrapErrorf(ErrNoRouteFound, util.ErrNotFound, "from %d to %d", source.ID, target.ID)
	}
	return r.buildRoute(profile, path, source, target)
}

func (r *Router) CalculateWeight(ctx context.Context, profile pkg.Profile, source, target RouterPoint) (float64, error) {
	if err := r.checkProfile(profile); err != nil {
		return pkg.INF_WEIGHT, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(source, target); err != nil {
		return pkg.INF_WEIGHT, err
	}

	return r.engine.CalculateWeight(ctx, profile, r.visitList(profile, source, true),
		r.visitList(profile, target, false), r.maxWeight)
}

// CalculateToClosest returns the route to the nearest reachable target and its index in targets.
func (r *Router) CalculateToClosest(ctx context.Context, profile pkg.Profile, source RouterPoint,
	targets []RouterPoint) (*Route, int, error) {
	if err := r.checkProfile(profile); err != nil {
		return nil, -1, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(append([]RouterPoint{source}, targets...)...); err != nil {
		return nil, -1, err
	}

	path, idx, err := r.engine.CalculateToClosest(ctx, profile, r.visitList(profile, source, true),
		r.visitLists(profile, targets, false), r.maxWeight)
	if err != nil {
		return nil, -1, err
	}
	if path == nil {
		return nil, -1, util.WrapErrorf(ErrNoRouteFound, util.ErrNotFound, "from %d to any of %d targets",
			source.ID, len(targets))
	}
	route, err := r.buildRoute(profile, path, source, targets[idx])
	if err != nil {
		return nil, -1, err
	}
	return route, idx, nil
}

// CalculateOneToMany returns one route per target; unreachable targets get a nil route.
func (r *Router) CalculateOneToMany(ctx context.Context, profile pkg.Profile, source RouterPoint,
	targets []RouterPoint) ([]*Route, error) {
	if err := r.checkProfile(profile); err != nil {
		return nil, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(append([]RouterPoint{source}, targets...)...); err != nil {
		return nil, err
	}

	paths, err := r.engine.CalculateOneToMany(ctx, profile, r.visitList(profile, source, true),
		r.visitLists(profile, targets, false), r.maxWeight)
	if err != nil {
		return nil, err
	}
	return r.buildRoutes(profile, paths, source, targets)
}

func (r *Router) CalculateOneToManyWeight(ctx context.Context, profile pkg.Profile, source RouterPoint,
	targets []RouterPoint) ([]float64, error) {
	if err := r.checkProfile(profile); err != nil {
		return nil, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(append([]RouterPoint{source}, targets...)...); err != nil {
		return nil, err
	}

	return r.engine.CalculateOneToManyWeight(ctx, profile, r.visitList(profile, source, true),
		r.visitLists(profile, targets, false), r.maxWeight)
}

func (r *Router) CalculateManyToMany(ctx context.Context, profile pkg.Profile, sources,
	targets []RouterPoint) ([][]*Route, error) {
	if err := r.checkProfile(profile); err != nil {
		return nil, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(append(append([]RouterPoint{}, sources...), targets...)...); err != nil {
		return nil, err
	}

	matrix, err := r.engine.CalculateManyToMany(ctx, profile, r.visitLists(profile, sources, true),
		r.visitLists(profile, targets, false), r.maxWeight)
	if err != nil {
		return nil, err
	}

	routes := make([][]*Route, len(sources))
	for i, paths := range matrix {
		if routes[i], err = r.buildRoutes(profile, paths, sources[i], targets); err != nil {
			return nil, err
		}
	}
	return routes, nil
}

func (r *Router) CalculateManyToManyWeight(ctx context.Context, profile pkg.Profile, sources,
	targets []RouterPoint) ([][]float64, error) {
	if err := r.checkProfile(profile); err != nil {
		return nil, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(append(append([]RouterPoint{}, sources...), targets...)...); err != nil {
		return nil, err
	}

	return r.engine.CalculateManyToManyWeight(ctx, profile, r.visitLists(profile, sources, true),
		r.visitLists(profile, targets, false), r.maxWeight)
}

// CalculateRange returns the coordinates of the vertices first reached beyond weight from source.
func (r *Router) CalculateRange(ctx context.Context, profile pkg.Profile, source RouterPoint,
	weight float64) ([]geo.Coordinate, error) {
	if err := r.checkProfile(profile); err != nil {
		return nil, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(source); err != nil {
		return nil, err
	}

	ids, err := r.engine.CalculateRange(ctx, profile, r.visitList(profile, source, true), weight, true)
	if err != nil {
		return nil, err
	}
	coords := make([]geo.Coordinate, 0, len(ids))
	for _, id := range ids {
		lat, lon, ok := r.vertexCoordinate(id)
		if !ok {
			return nil, util.WrapErrorf(ErrVertexNotFound, util.ErrInternalServerError, "range vertex %d", id)
		}
		coords = append(coords, geo.NewCoordinate(lat, lon))
	}
	return coords, nil
}

// CheckConnectivity reports whether point reaches and is reached from beyond weight.
func (r *Router) CheckConnectivity(ctx context.Context, profile pkg.Profile, point RouterPoint,
	weight float64) (bool, error) {
	if err := r.checkProfile(profile); err != nil {
		return false, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(point); err != nil {
		return false, err
	}

	return r.checkConnectivity(ctx, profile, point, weight)
}

func (r *Router) checkConnectivity(ctx context.Context, profile pkg.Profile, point RouterPoint,
	weight float64) (bool, error) {
	return r.engine.CheckConnectivity(ctx, profile, r.visitList(profile, point, true),
		r.visitList(profile, point, false), weight)
}

func (r *Router) CheckConnectivityMany(ctx context.Context, profile pkg.Profile, points []RouterPoint,
	weight float64) ([]bool, error) {
	if err := r.checkProfile(profile); err != nil {
		return nil, err
	}
	t := r.mu.RLock()
	defer r.mu.RUnlock(t)
	if err := r.checkPoints(points...); err != nil {
		return nil, err
	}

	connected := make([]bool, len(points))
	for i, p := range points {
		ok, err := r.checkConnectivity(ctx, profile, p, weight)
		if err != nil {
			return nil, err
		}
		connected[i] = ok
	}
	return connected, nil
}
