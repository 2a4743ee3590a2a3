package router

import (
	"github.com/lintang-b-s/roadrouter/pkg"
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"go.uber.org/zap"
)

type snapCandidate struct {
	from, to  da.Index
	snapped   geo.Coordinate
	position  float64
	distance  float64
	fromCoord geo.Coordinate
	toCoord   geo.Coordinate
}

// Resolve attaches coord to the closest edge traversable by profile within radiusKm. Points closer
// than pkg.VERTEX_SNAP_METERS to an edge endpoint resolve to that vertex; otherwise a resolved vertex
// is spliced into the edge. Resolving the same coordinate, or a coordinate that snaps to an already
// resolved location, returns the existing point.
func (r *Router) Resolve(profile pkg.Profile, coord geo.Coordinate, radiusKm float64) (RouterPoint, error) {
	if err := r.checkProfile(profile); err != nil {
		return RouterPoint{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(profile, coord, radiusKm)
}

// ResolveMany resolves every coordinate; entries that cannot be resolved are nil.
func (r *Router) ResolveMany(profile pkg.Profile, coords []geo.Coordinate, radiusKm float64) ([]*RouterPoint, error) {
	if err := r.checkProfile(profile); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	points := make([]*RouterPoint, len(coords))
	for i, c := range coords {
		p, err := r.resolve(profile, c, radiusKm)
		if err != nil {
			r.log.Debug("coordinate not resolved", zap.Int("index", i), zap.Error(err))
			continue
		}
		points[i] = &p
	}
	return points, nil
}

func (r *Router) resolve(profile pkg.Profile, coord geo.Coordinate, radiusKm float64) (RouterPoint, error) {
	key := requestKey{profile: profile, coord: coord}
	if p, ok := r.byRequest[key]; ok {
		return p, nil
	}

	best, ok := r.closestEdge(profile, coord, radiusKm)
	if !ok {
		return RouterPoint{}, util.WrapErrorf(ErrResolutionFailed, util.ErrNotFound,
			"lat %f lon %f radius %f km", coord.Lat, coord.Lon, radiusKm)
	}

	var point RouterPoint
	switch {
	case best.snapped.DistanceTo(best.fromCoord) <= pkg.VERTEX_SNAP_METERS:
		point = RouterPoint{ID: best.from, Coordinate: best.fromCoord, Neighbour1: best.from, Neighbour2: best.from}
	case best.snapped.DistanceTo(best.toCoord) <= pkg.VERTEX_SNAP_METERS:
		point = RouterPoint{ID: best.to, Coordinate: best.toCoord, Neighbour1: best.to, Neighbour2: best.to}
	default:
		snappedKey := requestKey{profile: profile, coord: best.snapped}
		if existing, ok := r.bySnapped[snappedKey]; ok {
			point = existing
			break
		}

		id := r.nextResolvedID
		err := r.resolved.InsertOnEdge(r.graph, id, best.from, best.to, best.position,
			best.snapped.Lat, best.snapped.Lon)
		if err != nil {
			return RouterPoint{}, err
		}
		r.nextResolvedID--

		point = RouterPoint{ID: id, Coordinate: best.snapped, Neighbour1: best.from, Neighbour2: best.to}
		r.bySnapped[snappedKey] = point
		r.log.Debug("resolved point spliced", zap.Int64("id", int64(id)),
			zap.Int64("from", int64(best.from)), zap.Int64("to", int64(best.to)),
			zap.Float64("position", best.position))
	}

	r.byRequest[key] = point
	return point, nil
}

func (r *Router) closestEdge(profile pkg.Profile, coord geo.Coordinate, radiusKm float64) (snapCandidate, bool) {
	edges := r.interp.Edges()
	var (
		best  snapCandidate
		found bool
	)
	for _, entry := range r.index.SearchWithinRadius(coord.Lat, coord.Lon, radiusKm) {
		from, to := entry.GetFrom(), entry.GetTo()
		data, ok := r.graph.GetArc(from, to)
		if !ok {
			if data, ok = r.graph.GetArc(to, from); !ok {
				continue
			}
		}
		tags, ok := r.graph.Tags().Get(data.TagsID)
		if !ok || !edges.IsTraversable(tags, profile) {
			continue
		}

		fromLat, fromLon, _ := r.graph.GetVertex(from)
		toLat, toLon, _ := r.graph.GetVertex(to)
		fromCoord, toCoord := geo.NewCoordinate(fromLat, fromLon), geo.NewCoordinate(toLat, toLon)
		snapped, position := geo.ProjectPointToSegment(fromCoord, toCoord, coord)
		distance := coord.DistanceTo(snapped)
		if distance > radiusKm*1000 {
			continue
		}

		if !found || distance < best.distance || (distance == best.distance && from < best.from) {
			best = snapCandidate{
				from:      from,
				to:        to,
				snapped:   snapped,
				position:  position,
				distance:  distance,
				fromCoord: fromCoord,
				toCoord:   toCoord,
			}
			found = true
		}
	}
	return best, found
}

// Search returns the routable vertex closest to coord within radiusKm.
func (r *Router) Search(profile pkg.Profile, coord geo.Coordinate, radiusKm float64) (geo.Coordinate, da.Index, error) {
	if err := r.checkProfile(profile); err != nil {
		return geo.Coordinate{}, da.NoVertex, err
	}

	t := r.mu.RLock()
	defer r.mu.RUnlock(t)

	edges := r.interp.Edges()
	var (
		bestCoord geo.Coordinate
		bestID    = da.NoVertex
		bestDist  = radiusKm * 1000
	)
	for _, entry := range r.index.SearchWithinRadius(coord.Lat, coord.Lon, radiusKm) {
		data, ok := r.graph.GetArc(entry.GetFrom(), entry.GetTo())
		if !ok {
			if data, ok = r.graph.GetArc(entry.GetTo(), entry.GetFrom()); !ok {
				continue
			}
		}
		tags, ok := r.graph.Tags().Get(data.TagsID)
		if !ok || !edges.IsTraversable(tags, profile) {
			continue
		}
		for _, v := range []da.Index{entry.GetFrom(), entry.GetTo()} {
			lat, lon, ok := r.graph.GetVertex(v)
			if !ok {
				continue
			}
			c := geo.NewCoordinate(lat, lon)
			d := coord.DistanceTo(c)
			if d < bestDist || (d == bestDist && bestID != da.NoVertex && v < bestID) {
				bestCoord, bestID, bestDist = c, v, d
			}
		}
	}
	if bestID == da.NoVertex {
		return geo.Coordinate{}, da.NoVertex, util.WrapErrorf(ErrResolutionFailed, util.ErrNotFound,
			"no routable vertex near lat %f lon %f", coord.Lat, coord.Lon)
	}
	return bestCoord, bestID, nil
}
