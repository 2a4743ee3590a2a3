package usecases

import (
	"context"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/router"
)

type RoutingEngine interface {
	Resolve(profile pkg.Profile, coord geo.Coordinate, radiusKm float64) (router.RouterPoint, error)
	ResolveMany(profile pkg.Profile, coords []geo.Coordinate, radiusKm float64) ([]*router.RouterPoint, error)
	Calculate(ctx context.Context, profile pkg.Profile, source, target router.RouterPoint) (*router.Route, error)
	CalculateManyToManyWeight(ctx context.Context, profile pkg.Profile, sources,
		targets []router.RouterPoint) ([][]float64, error)
	CalculateRange(ctx context.Context, profile pkg.Profile, source router.RouterPoint,
		weight float64) ([]geo.Coordinate, error)
	CheckConnectivity(ctx context.Context, profile pkg.Profile, point router.RouterPoint,
		weight float64) (bool, error)
}
