package guidance

import (
	"math"

	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

// computeInitialBearing returns the bearing leaving a towards b, in radians.
// https://www.movable-type.co.uk/scripts/latlong.html
func computeInitialBearing(a, b geo.Coordinate) float64 {
	return util.DegreeToRadians(geo.BearingTo(a.Lat, a.Lon, b.Lat, b.Lon))
}

// computeFinalBearing returns the bearing arriving at b from a, in radians.
func computeFinalBearing(a, b geo.Coordinate) float64 {
	bearing := geo.BearingTo(b.Lat, b.Lon, a.Lat, a.Lon)
	bearing = math.Mod(bearing+180, 360)
	return util.DegreeToRadians(bearing)
}

// computeDeltaBearing is the signed change from prevInitialBearing to the bearing of tail->head. Negative
// values turn left.
func computeDeltaBearing(tail, head geo.Coordinate, prevInitialBearing float64) float64 {
	initialBearing := computeInitialBearing(tail, head)
	prevInitialBearing, initialBearing = alignInitialBearing(prevInitialBearing, initialBearing)
	return initialBearing - prevInitialBearing
}

/*
alignInitialBearing keeps the difference of two bearings inside [-180°, 180°].

	          \
			   \ initialBearing (350°)
				\
				/
			   /		prevInitialBearing (20°)
			  /

350° - 20° = 330° reads as a right turn while the road bends left, so 360° is added to
prevInitialBearing. The mirrored case (10° after 340°) adds 360° to initialBearing.
*/
func alignInitialBearing(prevInitialBearing, initialBearing float64) (float64, float64) {
	dif := util.RadiansToDegree(initialBearing) - util.RadiansToDegree(prevInitialBearing)
	if dif > 180 {
		prevInitialBearing += 2 * math.Pi
	} else if dif < -180 {
		initialBearing += 2 * math.Pi
	}
	return prevInitialBearing, initialBearing
}

func getTurnDirection(tail, head geo.Coordinate, prevInitialBearing float64) int {
	delta := computeDeltaBearing(tail, head, prevInitialBearing)
	deltaDegree := util.RadiansToDegree(math.Abs(delta))
	switch {
	case deltaDegree < 12:
		return CONTINUE_ON_STREET
	case deltaDegree < 40:
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	case deltaDegree < 105:
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	case delta < 0:
		return TURN_SHARP_LEFT
	default:
		return TURN_SHARP_RIGHT
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
