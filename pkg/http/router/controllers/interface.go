package controllers

import (
	"context"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/guidance"
	"github.com/lintang-b-s/roadrouter/pkg/router"
)

type RoutingService interface {
	Resolve(profile pkg.Profile, lat, lon float64) (router.RouterPoint, error)
	ShortestPath(ctx context.Context, profile pkg.Profile, origLat, origLon, dstLat, dstLon float64) (*router.Route, []guidance.DrivingDirection, error)
	Matrix(ctx context.Context, profile pkg.Profile, sources, targets []geo.Coordinate) ([][]float64, error)
	Range(ctx context.Context, profile pkg.Profile, lat, lon, weight float64) ([]geo.Coordinate, error)
	Connectivity(ctx context.Context, profile pkg.Profile, lat, lon, weight float64) (bool, error)
}
