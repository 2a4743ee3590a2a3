package guidance

import (
	"strings"

	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/router"
)

/*
getAlternativeTurns counts the ways out of an intersection: the route's own edge plus every side street.

		 |
	 alternative
		 |
--prev-- B --current---
		 |
	 alternative
		 |

B has 3 alternative turns.
*/
func getAlternativeTurns(entry router.RouteEntry) (int, []router.SideStreet) {
	return 1 + len(entry.SideStreets), entry.SideStreets
}

// roadClass splits the highway tag into its class and whether it is a link road.
func roadClass(tags map[string]string) (string, bool) {
	highway := tags["highway"]
	if class, ok := strings.CutSuffix(highway, "_link"); ok {
		return class, true
	}
	return highway, false
}

func isRoundabout(tags map[string]string) bool {
	junction := tags["junction"]
	return junction == "roundabout" || junction == "circular"
}

func isLeavingCurrentStreet(prevStreetName, currentStreetName string, prevTags, currTags map[string]string) bool {
	if isSameName(currentStreetName, prevStreetName) {
		return false
	}
	prevClass, prevLink := roadClass(prevTags)
	currClass, currLink := roadClass(currTags)
	return !isSameRoadClassAndLink(prevClass, prevLink, currClass, currLink)
}

func isSameRoadClassAndLink(prevClass string, prevLink bool, currClass string, currLink bool) bool {
	return prevClass == currClass && prevLink == currLink
}

/*
getOtherContinueDirection finds a side street that leaves tail roughly straight ahead.

				---- current -----
--prev-- tail
				---- other -------
*/
func getOtherContinueDirection(tail geo.Coordinate, prevInitialBearing float64,
	alternatives []router.SideStreet) *router.SideStreet {
	for i := range alternatives {
		if absInt(getTurnDirection(tail, alternatives[i].Coordinate, prevInitialBearing)) <= 1 {
			return &alternatives[i]
		}
	}
	return nil
}

func isMajorRoad(roadClass string) bool {
	return roadClass == "motorway" || roadClass == "trunk" || roadClass == "primary" ||
		roadClass == "secondary" || roadClass == "tertiary"
}

// isSameName treats a missing name as different from everything, unnamed ways are common.
func isSameName(name1, name2 string) bool {
	if name1 == "" || name2 == "" {
		return false
	}
	return name1 == name2
}
