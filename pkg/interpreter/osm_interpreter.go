package interpreter

import (
	"strconv"
	"strings"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
)

const (
	bicycleSpeed    = 15.0
	pedestrianSpeed = 5.0
	defaultSpeed    = 30.0

	// extra seconds for a full u-turn, scaled down linearly with the turn angle
	uTurnPenaltySeconds = 10.0
)

var routableHighway = map[pkg.OsmHighwayType]struct{}{
	pkg.MOTORWAY: {}, pkg.TRUNK: {}, pkg.PRIMARY: {}, pkg.SECONDARY: {}, pkg.TERTIARY: {},
	pkg.RESIDENTIAL: {}, pkg.SERVICE: {}, pkg.UNCLASSIFIED: {}, pkg.MOTORWAY_LINK: {},
	pkg.TRUNK_LINK: {}, pkg.PRIMARY_LINK: {}, pkg.SECONDARY_LINK: {}, pkg.TERTIARY_LINK: {},
	pkg.LIVING_STREET: {}, pkg.ROAD: {}, pkg.TRACK: {}, pkg.MOTORROAD: {}, pkg.FOOTWAY: {},
	pkg.CYCLEWAY: {}, pkg.PATH: {}, pkg.STEPS: {}, pkg.PEDESTRIAN_WAY: {},
}

var (
	slowWays  = []pkg.OsmHighwayType{pkg.FOOTWAY, pkg.PATH, pkg.STEPS, pkg.PEDESTRIAN_WAY, pkg.CYCLEWAY}
	fastWays  = []pkg.OsmHighwayType{pkg.MOTORWAY, pkg.MOTORWAY_LINK, pkg.MOTORROAD}
	trunkWays = []pkg.OsmHighwayType{pkg.TRUNK, pkg.TRUNK_LINK}
)

func contains(types []pkg.OsmHighwayType, t pkg.OsmHighwayType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// OsmEdgeInterpreter reads OpenStreetMap highway tags.
type OsmEdgeInterpreter struct{}

func NewOsmEdgeInterpreter() *OsmEdgeInterpreter {
	return &OsmEdgeInterpreter{}
}

func (o *OsmEdgeInterpreter) IsRoutable(tags map[string]string) bool {
	if highway, ok := tags["highway"]; ok {
		_, routable := routableHighway[pkg.GetHighwayType(highway)]
		return routable
	}
	_, ok := tags["junction"]
	return ok
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted" || value == "private"
}

func (o *OsmEdgeInterpreter) IsTraversable(tags map[string]string, profile pkg.Profile) bool {
	if !o.IsRoutable(tags) {
		return false
	}
	if isRestricted(tags["access"]) {
		return false
	}

	highway := pkg.GetHighwayType(tags["highway"])
	switch profile {
	case pkg.CAR, pkg.MOTORCYCLE:
		if isRestricted(tags["motor_vehicle"]) || isRestricted(tags[string(profile)]) {
			return false
		}
		if profile == pkg.CAR && isRestricted(tags["motorcar"]) {
			return false
		}
		return !contains(slowWays, highway)
	case pkg.BICYCLE:
		if isRestricted(tags["bicycle"]) {
			return false
		}
		return !contains(fastWays, highway) && highway != pkg.STEPS && highway != pkg.FOOTWAY
	case pkg.PEDESTRIAN:
		if isRestricted(tags["foot"]) {
			return false
		}
		return !contains(fastWays, highway) && !contains(trunkWays, highway)
	default:
		return false
	}
}

// MaxSpeed returns the travel speed in km/h for profile.
func (o *OsmEdgeInterpreter) MaxSpeed(tags map[string]string, profile pkg.Profile) float64 {
	switch profile {
	case pkg.PEDESTRIAN:
		return pedestrianSpeed
	case pkg.BICYCLE:
		if speed := parseMaxSpeed(tags["maxspeed"]); speed > 0 && speed < bicycleSpeed {
			return speed
		}
		return bicycleSpeed
	}

	if speed := parseMaxSpeed(tags["maxspeed"]); speed > 0 {
		return speed
	}
	if speed := roadTypeMaxSpeed(tags["highway"]); speed > 0 {
		return speed
	}
	return defaultSpeed
}

// parseMaxSpeed understands "50", "50 km/h", "30 mph" and "10 knots". Unknown values yield 0.
func parseMaxSpeed(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	factor := 1.0
	switch {
	case strings.HasSuffix(value, "mph"):
		factor = 1.60934
		value = strings.TrimSuffix(value, "mph")
	case strings.HasSuffix(value, "km/h"):
		value = strings.TrimSuffix(value, "km/h")
	case strings.HasSuffix(value, "knots"):
		factor = 1.852
		value = strings.TrimSuffix(value, "knots")
	}

	speed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || speed <= 0 {
		return 0
	}
	return speed * factor
}

func roadTypeMaxSpeed(roadType string) float64 {
	switch pkg.GetHighwayType(roadType) {
	case pkg.MOTORWAY:
		return 100
	case pkg.TRUNK:
		return 70
	case pkg.PRIMARY:
		return 65
	case pkg.SECONDARY:
		return 60
	case pkg.TERTIARY:
		return 50
	case pkg.UNCLASSIFIED:
		return 40
	case pkg.RESIDENTIAL:
		return 30
	case pkg.SERVICE:
		return 20
	case pkg.MOTORWAY_LINK:
		return 70
	case pkg.TRUNK_LINK:
		return 65
	case pkg.PRIMARY_LINK:
		return 60
	case pkg.SECONDARY_LINK:
		return 50
	case pkg.TERTIARY_LINK:
		return 40
	case pkg.LIVING_STREET:
		return 5
	case pkg.ROAD:
		return 20
	case pkg.TRACK:
		return 15
	case pkg.MOTORROAD:
		return 90
	default:
		return 0
	}
}

// Weight is the travel time in seconds between from and to.
func (o *OsmEdgeInterpreter) Weight(tags map[string]string, profile pkg.Profile, from, to geo.Coordinate) float64 {
	distance := from.DistanceTo(to)
	speed := o.MaxSpeed(tags, profile) / 3.6
	return distance / speed
}

// TurningWeight adds a penalty growing with the heading change between previous->from and from->to.
func (o *OsmEdgeInterpreter) TurningWeight(tags map[string]string, profile pkg.Profile, previous, from, to geo.Coordinate) float64 {
	weight := o.Weight(tags, profile, from, to)
	if previous == from || from == to {
		return weight
	}

	in := geo.BearingTo(previous.Lat, previous.Lon, from.Lat, from.Lon)
	out := geo.BearingTo(from.Lat, from.Lon, to.Lat, to.Lon)
	turn := out - in
	for turn > 180 {
		turn -= 360
	}
	for turn < -180 {
		turn += 360
	}
	if turn < 0 {
		turn = -turn
	}
	return weight + uTurnPenaltySeconds*turn/180
}

func (o *OsmEdgeInterpreter) IsOneWay(tags map[string]string, profile pkg.Profile) *bool {
	if profile == pkg.PEDESTRIAN {
		return nil
	}
	if profile == pkg.BICYCLE && tags["oneway:bicycle"] == "no" {
		return nil
	}

	forward, backward := true, false
	switch tags["oneway"] {
	case "yes", "true", "1":
		return &forward
	case "-1", "reverse":
		return &backward
	case "no", "false", "0":
		return nil
	}

	if tags["junction"] == "roundabout" || tags["junction"] == "circular" {
		return &forward
	}
	if isRestricted(tags["vehicle:forward"]) || (profile != pkg.BICYCLE && isRestricted(tags["motor_vehicle:forward"])) {
		return &backward
	}
	if isRestricted(tags["vehicle:backward"]) || (profile != pkg.BICYCLE && isRestricted(tags["motor_vehicle:backward"])) {
		return &forward
	}
	return nil
}

func (o *OsmEdgeInterpreter) GetName(tags map[string]string) string {
	if name := tags["name"]; name != "" {
		return name
	}
	return tags["ref"]
}

func (o *OsmEdgeInterpreter) GetNamesByLanguage(tags map[string]string) map[string]string {
	names := make(map[string]string)
	for k, v := range tags {
		if lang, ok := strings.CutPrefix(k, "name:"); ok && lang != "" {
			names[lang] = v
		}
	}
	return names
}
