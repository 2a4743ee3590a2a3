package router

import (
	"github.com/lintang-b-s/roadrouter/pkg"
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

type RouteEntryType string

const (
	ENTRY_START RouteEntryType = "start"
	ENTRY_ALONG RouteEntryType = "along"
	ENTRY_STOP  RouteEntryType = "stop"
)

type SideStreet struct {
	Coordinate geo.Coordinate    `json:"coordinate"`
	Tags       map[string]string `json:"tags"`
	Name       string            `json:"name,omitempty"`
	Names      map[string]string `json:"names,omitempty"`
}

// RouteEntry is one vertex of a route. Tags and names describe the edge that led to it, Distance and
// Weight are cumulative from the start.
type RouteEntry struct {
	Type         RouteEntryType    `json:"type"`
	Coordinate   geo.Coordinate    `json:"coordinate"`
	Tags         map[string]string `json:"tags,omitempty"`
	WayFromName  string            `json:"way_from_name,omitempty"`
	WayFromNames map[string]string `json:"way_from_names,omitempty"`
	SideStreets  []SideStreet      `json:"side_streets,omitempty"`
	Points       []RouterPoint     `json:"points,omitempty"`
	Distance     float64           `json:"distance"`
	Weight       float64           `json:"weight"`
}

type Route struct {
	Profile       pkg.Profile  `json:"profile"`
	Entries       []RouteEntry `json:"entries"`
	TotalDistance float64      `json:"total_distance"`
	TotalWeight   float64      `json:"total_weight"`
	Polyline      string       `json:"polyline"`
}

func (r *Router) buildRoutes(profile pkg.Profile, paths []*da.PathSegment, source RouterPoint,
	targets []RouterPoint) ([]*Route, error) {
	routes := make([]*Route, len(paths))
	for i, path := range paths {
		if path == nil {
			continue
		}
		route, err := r.buildRoute(profile, path, source, targets[i])
		if err != nil {
			return nil, err
		}
		routes[i] = route
	}
	return routes, nil
}

func (r *Router) buildRoute(profile pkg.Profile, path *da.PathSegment, source, target RouterPoint) (*Route, error) {
	ids := path.ToArray()
	weights := path.Weights()
	edges := r.interp.Edges()

	coords := make([]geo.Coordinate, len(ids))
	for i, id := range ids {
		lat, lon, ok := r.vertexCoordinate(id)
		if !ok {
			return nil, util.WrapErrorf(ErrVertexNotFound, util.ErrInternalServerError, "route vertex %d", id)
		}
		coords[i] = geo.NewCoordinate(lat, lon)
	}

	route := &Route{
		Profile:     profile,
		Entries:     make([]RouteEntry, 0, len(ids)+1),
		TotalWeight: path.Weight(),
	}

	distance := 0.0
	for i, id := range ids {
		entry := RouteEntry{
			Type:       ENTRY_ALONG,
			Coordinate: coords[i],
			Weight:     weights[i],
		}
		if i > 0 {
			distance += coords[i-1].DistanceTo(coords[i])
			data, ok := r.edgeData(ids[i-1], id)
			if !ok {
				return nil, util.WrapErrorf(ErrVertexNotFound, util.ErrInternalServerError,
					"no edge between route vertices %d and %d", ids[i-1], id)
			}
			if tags, ok := r.graph.Tags().Get(data.TagsID); ok {
				entry.Tags = tags
				entry.WayFromName = edges.GetName(tags)
				entry.WayFromNames = edges.GetNamesByLanguage(tags)
			}
		}
		entry.Distance = distance

		switch {
		case i == 0:
			entry.Type = ENTRY_START
			entry.Points = []RouterPoint{source}
		case i == len(ids)-1:
			entry.Type = ENTRY_STOP
			entry.Points = []RouterPoint{target}
		default:
			entry.SideStreets = r.sideStreets(id, ids[i-1], ids[i+1])
		}
		route.Entries = append(route.Entries, entry)
	}

	// a route that never leaves its start still ends somewhere
	if len(ids) == 1 {
		stop := route.Entries[0]
		stop.Type = ENTRY_STOP
		stop.Points = []RouterPoint{target}
		route.Entries = append(route.Entries, stop)
	}

	route.TotalDistance = distance
	route.Polyline = geo.PolylineFromCoords(coords)
	return route, nil
}

// sideStreets lists the edges leaving an intersection other than the ones the route uses.
func (r *Router) sideStreets(id, previous, next da.Index) []SideStreet {
	neighbours := r.undirectedNeighbours(id)
	if len(neighbours) <= 2 {
		return nil
	}

	edges := r.interp.Edges()
	streets := make([]SideStreet, 0, len(neighbours)-2)
	for _, arc := range neighbours {
		if arc.Neighbour == previous || arc.Neighbour == next {
			continue
		}
		lat, lon, ok := r.vertexCoordinate(arc.Neighbour)
		if !ok {
			continue
		}
		street := SideStreet{Coordinate: geo.NewCoordinate(lat, lon)}
		if tags, ok := r.graph.Tags().Get(arc.Data.TagsID); ok {
			street.Tags = tags
			street.Name = edges.GetName(tags)
			street.Names = edges.GetNamesByLanguage(tags)
		}
		streets = append(streets, street)
	}
	return streets
}
