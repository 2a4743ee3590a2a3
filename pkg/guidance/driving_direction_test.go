package guidance

import (
	"testing"

	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/router"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func residential(name string) map[string]string {
	return map[string]string{"highway": "residential", "name": name}
}

func entry(typ router.RouteEntryType, lat, lon float64, name string, tags map[string]string,
	weight float64) router.RouteEntry {
	return router.RouteEntry{
		Type:        typ,
		Coordinate:  geo.NewCoordinate(lat, lon),
		Tags:        tags,
		WayFromName: name,
		Weight:      weight,
	}
}

func withDistances(route *router.Route) *router.Route {
	for i := 1; i < len(route.Entries); i++ {
		route.Entries[i].Distance = route.Entries[i-1].Distance +
			route.Entries[i-1].Coordinate.DistanceTo(route.Entries[i].Coordinate)
	}
	return route
}

func TestGetDrivingDirectionsLeftTurn(t *testing.T) {
	route := withDistances(&router.Route{Entries: []router.RouteEntry{
		entry(router.ENTRY_START, 0, 0, "", nil, 0),
		entry(router.ENTRY_ALONG, 0, 0.001, "Jalan A", residential("Jalan A"), 10),
		entry(router.ENTRY_STOP, 0.001, 0.001, "Jalan B", residential("Jalan B"), 20),
	}})

	directions := NewDirectionBuilder(true, true).GetDrivingDirections(route)
	require.Len(t, directions, 3)

	assert.Equal(t, "Head East toward Jalan A", directions[0].Instruction)
	assert.Equal(t, "START", directions[0].TurnType)

	assert.Equal(t, "Turn left onto Jalan B", directions[1].Instruction)
	assert.Equal(t, "TURN_LEFT", directions[1].TurnType)
	assert.Equal(t, 10.0, directions[1].Weight)
	assert.InDelta(t, 111.19, directions[1].Distance, 0.1)
	assert.Equal(t, geo.NewCoordinate(0, 0.001), directions[1].Point)

	assert.Equal(t, "you have arrived at your destination", directions[2].Instruction)
	assert.Equal(t, "FINISH", directions[2].TurnType)
	assert.Equal(t, 10.0, directions[2].Weight)
}

func TestGetDrivingDirectionsIgnoresStraightIntersection(t *testing.T) {
	middle := entry(router.ENTRY_ALONG, 0, 0.001, "Jalan A", residential("Jalan A"), 10)
	middle.SideStreets = []router.SideStreet{{
		Coordinate: geo.NewCoordinate(0.001, 0.001),
		Tags:       residential("Jalan Samping"),
		Name:       "Jalan Samping",
	}}
	route := withDistances(&router.Route{Entries: []router.RouteEntry{
		entry(router.ENTRY_START, 0, 0, "", nil, 0),
		middle,
		entry(router.ENTRY_STOP, 0, 0.002, "Jalan A", residential("Jalan A"), 20),
	}})

	directions := NewDirectionBuilder(true, true).GetDrivingDirections(route)
	require.Len(t, directions, 2)
	assert.Equal(t, "START", directions[0].TurnType)
	assert.Equal(t, "FINISH", directions[1].TurnType)
	assert.Equal(t, 20.0, directions[1].Weight)
	assert.NotEmpty(t, directions[1].Polyline)
}

func TestGetDrivingDirectionsRoundabout(t *testing.T) {
	roundabout := map[string]string{"highway": "residential", "junction": "roundabout"}
	enter := entry(router.ENTRY_ALONG, 0.0005, 0.0015, "", roundabout, 15)
	enter.SideStreets = []router.SideStreet{{
		Coordinate: geo.NewCoordinate(0.001, 0.002),
		Tags:       residential("Jalan D"),
	}}
	route := withDistances(&router.Route{Entries: []router.RouteEntry{
		entry(router.ENTRY_START, 0, 0, "", nil, 0),
		entry(router.ENTRY_ALONG, 0, 0.001, "Jalan A", residential("Jalan A"), 10),
		enter,
		entry(router.ENTRY_ALONG, 0.001, 0.001, "", roundabout, 20),
		entry(router.ENTRY_STOP, 0.002, 0.001, "Jalan C", residential("Jalan C"), 30),
	}})

	directions := NewDirectionBuilder(true, true).GetDrivingDirections(route)
	require.Len(t, directions, 3)
	assert.Equal(t, "USE_ROUNDABOUT", directions[1].TurnType)
	assert.Equal(t, "At Roundabout, take the exit point 2 clockwise onto Jalan C", directions[1].Instruction)
	assert.Equal(t, "Jalan C", directions[1].StreetName)

	counter := NewDirectionBuilder(false, false).GetDrivingDirections(route)
	assert.Contains(t, counter[1].Instruction, "counter-clockwise")
}

func TestGetDrivingDirectionsEmptyRoute(t *testing.T) {
	assert.Empty(t, NewDirectionBuilder(true, true).GetDrivingDirections(nil))
	assert.Empty(t, NewDirectionBuilder(true, true).GetDrivingDirections(&router.Route{}))
}

func TestGetTurnDirection(t *testing.T) {
	tail := geo.NewCoordinate(0, 0)
	north := util.DegreeToRadians(0)

	tests := []struct {
		name       string
		head       geo.Coordinate
		prev       float64
		expectSign int
	}{
		{"straight", geo.NewCoordinate(0.001, 0), north, CONTINUE_ON_STREET},
		{"slight right", geo.NewCoordinate(0.001, 0.0004), north, TURN_SLIGHT_RIGHT},
		{"right", geo.NewCoordinate(0, 0.001), north, TURN_RIGHT},
		{"left", geo.NewCoordinate(0, -0.001), north, TURN_LEFT},
		{"sharp right", geo.NewCoordinate(-0.001, 0.001), north, TURN_SHARP_RIGHT},
		{"across north", geo.NewCoordinate(0.001, 0.0002), util.DegreeToRadians(340), TURN_SLIGHT_RIGHT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectSign, getTurnDirection(tail, tt.head, tt.prev))
		})
	}
}

func TestRoadClass(t *testing.T) {
	class, link := roadClass(map[string]string{"highway": "primary_link"})
	assert.Equal(t, "primary", class)
	assert.True(t, link)

	class, link = roadClass(map[string]string{"highway": "tertiary"})
	assert.Equal(t, "tertiary", class)
	assert.False(t, link)

	assert.False(t, isSameName("", ""))
	assert.True(t, isLeavingCurrentStreet("Jalan A", "Jalan B",
		map[string]string{"highway": "primary"}, map[string]string{"highway": "residential"}))
	assert.False(t, isLeavingCurrentStreet("Jalan A", "Jalan A",
		map[string]string{"highway": "primary"}, map[string]string{"highway": "residential"}))
}
