package controllers

import (
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/guidance"
	"github.com/lintang-b-s/roadrouter/pkg/router"
)

type pointRequest struct {
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lon     float64 `json:"lon" validate:"min=-180,max=180"`
	Profile string  `json:"profile" validate:"required,oneof=car bicycle pedestrian motorcycle"`
}

type weightedPointRequest struct {
	pointRequest
	Weight float64 `json:"weight" validate:"gt=0"`
}

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	Profile        string  `json:"profile" validate:"required,oneof=car bicycle pedestrian motorcycle"`
}

type coordinateRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type matrixRequest struct {
	Profile string              `json:"profile" validate:"required,oneof=car bicycle pedestrian motorcycle"`
	Sources []coordinateRequest `json:"sources" validate:"required,min=1,max=100,dive"`
	Targets []coordinateRequest `json:"targets" validate:"required,min=1,max=100,dive"`
}

func toCoordinates(reqs []coordinateRequest) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(reqs))
	for i, c := range reqs {
		coords[i] = geo.NewCoordinate(c.Lat, c.Lon)
	}
	return coords
}

type shortestPathResponse struct {
	Weight     float64                     `json:"weight"`
	Dist       float64                     `json:"distance"`
	Path       string                      `json:"path"`
	Entries    []router.RouteEntry         `json:"entries"`
	Directions []guidance.DrivingDirection `json:"directions"`
}

func NewShortestPathResponse(route *router.Route, directions []guidance.DrivingDirection) shortestPathResponse {
	return shortestPathResponse{
		Weight:     route.TotalWeight,
		Dist:       route.TotalDistance,
		Path:       route.Polyline,
		Entries:    route.Entries,
		Directions: directions,
	}
}

type matrixResponse struct {
	Weights [][]float64 `json:"weights"`
}

type rangeResponse struct {
	Boundary []geo.Coordinate `json:"boundary"`
}

type connectivityResponse struct {
	Connected bool `json:"connected"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
