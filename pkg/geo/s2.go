package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

func toS2(c Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

// ProjectPointToSegment snaps p onto the great-circle segment (a,b). It returns the projected
// coordinate and its fractional position along the segment, 0 at a and 1 at b.
func ProjectPointToSegment(a, b, p Coordinate) (Coordinate, float64) {
	pa, pb, pp := toS2(a), toS2(b), toS2(p)
	projection := s2.Project(pp, pa, pb)
	ll := s2.LatLngFromPoint(projection)

	total := pa.Distance(pb).Radians()
	position := 0.0
	if total > 0 {
		position = pa.Distance(projection).Radians() / total
	}
	return NewCoordinate(ll.Lat.Degrees(), ll.Lng.Degrees()), util.Clamp(position, 0, 1)
}

// PointLinePerpendicularDistance returns the distance from snap to segment (a,b) in meters.
func PointLinePerpendicularDistance(a, b, snap Coordinate) float64 {
	projection, _ := ProjectPointToSegment(a, b, snap)
	return snap.DistanceTo(projection)
}
