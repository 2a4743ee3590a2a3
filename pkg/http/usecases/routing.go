package usecases

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/guidance"
	"github.com/lintang-b-s/roadrouter/pkg/router"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type routeKey struct {
	profile     pkg.Profile
	origin      geo.Coordinate
	destination geo.Coordinate
}

type cachedRoute struct {
	route      *router.Route
	directions []guidance.DrivingDirection
}

type RoutingService struct {
	log             *zap.Logger
	engine          RoutingEngine
	searchRadius    float64
	routeCache      *lru.Cache[routeKey, cachedRoute]
	clockwise       bool // roundabouts are driven clockwise
	lefthandTraffic bool
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, searchRadius float64,
	routeCacheSize int, clockwise, lefthandTraffic bool) (*RoutingService, error) {
	cache, err := lru.New[routeKey, cachedRoute](routeCacheSize)
	if err != nil {
		return nil, err
	}
	return &RoutingService{
		log:             log,
		engine:          engine,
		searchRadius:    searchRadius,
		routeCache:      cache,
		clockwise:       clockwise,
		lefthandTraffic: lefthandTraffic,
	}, nil
}

func (rs *RoutingService) Resolve(profile pkg.Profile, lat, lon float64) (router.RouterPoint, error) {
	return rs.engine.Resolve(profile, geo.NewCoordinate(lat, lon), rs.searchRadius)
}

// ShortestPath resolves both coordinates, routes between them and builds the driving directions. Results
// are cached per profile and coordinate pair.
func (rs *RoutingService) ShortestPath(ctx context.Context, profile pkg.Profile, origLat, origLon,
	dstLat, dstLon float64) (*router.Route, []guidance.DrivingDirection, error) {
	key := routeKey{
		profile:     profile,
		origin:      geo.NewCoordinate(origLat, origLon),
		destination: geo.NewCoordinate(dstLat, dstLon),
	}
	if cached, ok := rs.routeCache.Get(key); ok {
		return cached.route, cached.directions, nil
	}

	source, err := rs.engine.Resolve(profile, key.origin, rs.searchRadius)
	if err != nil {
		return nil, nil, err
	}
	target, err := rs.engine.Resolve(profile, key.destination, rs.searchRadius)
	if err != nil {
		return nil, nil, err
	}

	route, err := rs.engine.Calculate(ctx, profile, source, target)
	if err != nil {
		return nil, nil, err
	}
	directions := guidance.NewDirectionBuilder(rs.clockwise, rs.lefthandTraffic).GetDrivingDirections(route)
	rs.routeCache.Add(key, cachedRoute{route: route, directions: directions})
	return route, directions, nil
}

// Matrix returns the weight of the shortest path between every source and target.
func (rs *RoutingService) Matrix(ctx context.Context, profile pkg.Profile, sources,
	targets []geo.Coordinate) ([][]float64, error) {
	var sourcePoints, targetPoints []router.RouterPoint

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sourcePoints, err = rs.resolveAll(profile, sources, "source")
		return err
	})
	g.Go(func() error {
		var err error
		targetPoints, err = rs.resolveAll(profile, targets, "target")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rs.engine.CalculateManyToManyWeight(ctx, profile, sourcePoints, targetPoints)
}

func (rs *RoutingService) resolveAll(profile pkg.Profile, coords []geo.Coordinate, kind string) ([]router.RouterPoint, error) {
	resolved, err := rs.engine.ResolveMany(profile, coords, rs.searchRadius)
	if err != nil {
		return nil, err
	}
	points := make([]router.RouterPoint, len(resolved))
	for i, p := range resolved {
		if p == nil {
			return nil, util.WrapErrorf(router.ErrResolutionFailed, util.ErrNotFound,
				"%s %d (lat %f lon %f)", kind, i, coords[i].Lat, coords[i].Lon)
		}
		points[i] = *p
	}
	return points, nil
}

// Range returns the coordinates first reached beyond weight from (lat, lon).
func (rs *RoutingService) Range(ctx context.Context, profile pkg.Profile, lat, lon,
	weight float64) ([]geo.Coordinate, error) {
	source, err := rs.engine.Resolve(profile, geo.NewCoordinate(lat, lon), rs.searchRadius)
	if err != nil {
		return nil, err
	}
	return rs.engine.CalculateRange(ctx, profile, source, weight)
}

func (rs *RoutingService) Connectivity(ctx context.Context, profile pkg.Profile, lat, lon,
	weight float64) (bool, error) {
	point, err := rs.engine.Resolve(profile, geo.NewCoordinate(lat, lon), rs.searchRadius)
	if err != nil {
		return false, err
	}
	return rs.engine.CheckConnectivity(ctx, profile, point, weight)
}
