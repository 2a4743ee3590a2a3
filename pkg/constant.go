package pkg

import "sort"

const (
	INF_WEIGHT float64 = 1e15

	// resolved points closer than this to an arc endpoint snap onto the endpoint itself
	VERTEX_SNAP_METERS = 1.0
)

// Profile is the vehicle class a graph is built for and a query is evaluated with.
type Profile string

const (
	CAR        Profile = "car"
	BICYCLE    Profile = "bicycle"
	PEDESTRIAN Profile = "pedestrian"
	MOTORCYCLE Profile = "motorcycle"
)

func ParseProfile(s string) (Profile, bool) {
	switch Profile(s) {
	case CAR, BICYCLE, PEDESTRIAN, MOTORCYCLE:
		return Profile(s), true
	default:
		return "", false
	}
}

// SortProfiles orders profiles alphabetically in place and returns them.
func SortProfiles(profiles []Profile) []Profile {
	sort.Slice(profiles, func(i, j int) bool { return profiles[i] < profiles[j] })
	return profiles
}

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	FOOTWAY        OsmHighwayType = 17
	CYCLEWAY       OsmHighwayType = 18
	PATH           OsmHighwayType = 19
	STEPS          OsmHighwayType = 20
	PEDESTRIAN_WAY OsmHighwayType = 21
	UNKNOWN        OsmHighwayType = 22
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	case "footway":
		return FOOTWAY
	case "cycleway":
		return CYCLEWAY
	case "path":
		return PATH
	case "steps":
		return STEPS
	case "pedestrian":
		return PEDESTRIAN_WAY
	default:
		return UNKNOWN
	}
}
