package guidance

import (
	"math"

	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/router"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

// DirectionBuilder turns the entries of a route into turn-by-turn instructions. A builder is used for one
// route only.
type DirectionBuilder struct {
	instructions             []*Instruction
	prevInitialBearing       float64
	doublePrevInitialBearing float64
	prevInstruction          *Instruction
	prevInRoundabout         bool
	doublePrevStreetName     string
	points                   []geo.Coordinate
	clockwise                bool // roundabouts are driven clockwise (left-hand traffic)
	lefthand                 bool // left-hand traffic
}

func NewDirectionBuilder(clockwise, lefthand bool) *DirectionBuilder {
	return &DirectionBuilder{
		instructions: make([]*Instruction, 0),
		points:       make([]geo.Coordinate, 0),
		clockwise:    clockwise,
		lefthand:     lefthand,
	}
}

func (db *DirectionBuilder) GetDrivingDirections(route *router.Route) []DrivingDirection {
	if route == nil || len(route.Entries) < 2 {
		return []DrivingDirection{}
	}

	entries := route.Entries
	for step := 1; step < len(entries); step++ {
		db.buildInstruction(entries, step)
	}
	db.buildFinalInstruction(entries)

	drivingDirections := make([]DrivingDirection, len(db.instructions))
	for i, ins := range db.instructions {
		var stepWeight, stepDistance float64
		if i > 0 {
			stepWeight = ins.GetCumulativeWeight() - db.instructions[i-1].GetCumulativeWeight()
			stepDistance = ins.GetCumulativeDistance() - db.instructions[i-1].GetCumulativeDistance()
		}
		drivingDirections[i] = NewDrivingDirection(ins, ins.GetTurnDescription(db.clockwise), stepWeight, stepDistance)
	}
	return drivingDirections
}

// buildInstruction handles the edge entries[step-1] -> entries[step].
func (db *DirectionBuilder) buildInstruction(entries []router.RouteEntry, step int) {
	tailEntry, headEntry := entries[step-1], entries[step]
	tail, head := tailEntry.Coordinate, headEntry.Coordinate
	streetName := headEntry.WayFromName
	roundabout := isRoundabout(headEntry.Tags)

	switch {
	case db.prevInstruction == nil && !roundabout:
		turnBearing := computeInitialBearing(tail, head)
		ins := NewInstruction(START, streetName, tail, tailEntry.Distance, tailEntry.Weight, db.points, turnBearing)
		ins.SetHeading(util.RadiansToDegree(turnBearing))
		db.addInstruction(ins)
	case roundabout:
		if !db.prevInRoundabout {
			var turnBearing float64
			db.doublePrevInitialBearing = db.prevInitialBearing
			if step >= 2 {
				prev := entries[step-2].Coordinate
				db.prevInitialBearing = computeInitialBearing(prev, tail)
				turnBearing = computeFinalBearing(prev, tail)
			} else {
				db.prevInitialBearing = computeInitialBearing(tail, head)
			}
			db.addInstruction(NewInstruction(USE_ROUNDABOUT, streetName, tail, tailEntry.Distance, tailEntry.Weight,
				db.points, turnBearing))
		}

		// every non-roundabout way leaving head is an exit, including the one the route takes
		for _, street := range headEntry.SideStreets {
			if !isRoundabout(street.Tags) {
				db.prevInstruction.IncrementExitNumber()
			}
		}
		if step+1 < len(entries) && !isRoundabout(entries[step+1].Tags) {
			db.prevInstruction.IncrementExitNumber()
		}
	case db.prevInRoundabout:
		db.prevInstruction.SetStreetName(streetName)
		db.prevInstruction.SetExited()
		db.doublePrevStreetName = tailEntry.WayFromName
	default:
		turnSign := db.getTurnSign(entries, step)
		if turnSign == IGNORE {
			break
		}
		if uTurn, uTurnType := db.checkUTurn(turnSign, streetName, tail, head); uTurn {
			db.prevInstruction.SetSign(uTurnType)
			db.prevInstruction.SetStreetName(streetName)
			break
		}
		turnBearing := computeFinalBearing(entries[step-2].Coordinate, tail)
		db.addInstruction(NewInstruction(turnSign, streetName, tail, tailEntry.Distance, tailEntry.Weight,
			db.points, turnBearing))
		db.doublePrevInitialBearing = db.prevInitialBearing
		db.doublePrevStreetName = tailEntry.WayFromName
	}

	db.prevInRoundabout = roundabout
	db.points = append(db.points, tail, head)
}

func (db *DirectionBuilder) addInstruction(ins *Instruction) {
	db.prevInstruction = ins
	db.instructions = append(db.instructions, ins)
	db.points = make([]geo.Coordinate, 0)
}

func (db *DirectionBuilder) buildFinalInstruction(entries []router.RouteEntry) {
	last := entries[len(entries)-1]
	tail := entries[len(entries)-2].Coordinate
	finish := NewInstruction(FINISH, last.WayFromName, last.Coordinate, last.Distance, last.Weight, db.points,
		computeFinalBearing(tail, last.Coordinate))
	db.instructions = append(db.instructions, finish)
}

/*
checkUTurn reports whether the current edge completes a U-turn:

A --doublePrev--> B
				  |
				 prev
				  |
D <--current----- C

Two turns towards the same side onto the street we came from, with the bearing of C->D roughly opposite to
the bearing of A->B.
*/
func (db *DirectionBuilder) checkUTurn(sign int, name string, tail, head geo.Coordinate) (bool, int) {
	prevSign := db.prevInstruction.GetTurnSign()
	if db.doublePrevInitialBearing == 0 || (sign > 0) != (prevSign > 0) ||
		!db.turnsAcrossTraffic(sign) || !db.turnsAcrossTraffic(prevSign) ||
		!isSameName(db.doublePrevStreetName, name) {
		return false, U_TURN_UNKNOWN
	}

	currentInitialBearing := computeInitialBearing(tail, head)
	diffAngle := util.RadiansToDegree(math.Abs(db.doublePrevInitialBearing - currentInitialBearing))
	if diffAngle > 155 && diffAngle < 205 {
		if sign < 0 {
			return true, U_TURN_LEFT
		}
		return true, U_TURN_RIGHT
	}
	return false, U_TURN_UNKNOWN
}

// turnsAcrossTraffic is true for right turns under left-hand traffic and left turns otherwise.
func (db *DirectionBuilder) turnsAcrossTraffic(sign int) bool {
	if db.lefthand {
		return sign >= TURN_SLIGHT_RIGHT && sign <= TURN_SHARP_RIGHT
	}
	return sign <= TURN_SLIGHT_LEFT && sign >= TURN_SHARP_LEFT
}

/*
getTurnSign classifies the turn at tail from the bearing difference of two adjacent edges:

prevNode ---prev--- tail
					  |
					current
					  |
					 head
*/
func (db *DirectionBuilder) getTurnSign(entries []router.RouteEntry, step int) int {
	prevNode := entries[step-2].Coordinate
	tailEntry, headEntry := entries[step-1], entries[step]
	tail, head := tailEntry.Coordinate, headEntry.Coordinate
	name, prevStreetName := headEntry.WayFromName, tailEntry.WayFromName

	db.prevInitialBearing = computeInitialBearing(prevNode, tail)
	sign := getTurnDirection(tail, head, db.prevInitialBearing)

	alternativeTurnsCount, alternativeTurns := getAlternativeTurns(tailEntry)
	if alternativeTurnsCount == 1 {
		if absInt(sign) > 1 {
			return sign
		}
		return IGNORE
	}

	if absInt(sign) > 1 {
		if isSameName(name, prevStreetName) {
			return IGNORE
		}
		return sign
	}

	if tailEntry.Weight-entries[step-2].Weight == 0 {
		return sign
	}

	deltaBearing := computeDeltaBearing(tail, head, db.prevInitialBearing)
	other := getOtherContinueDirection(tail, db.prevInitialBearing, alternativeTurns)
	if other != nil && !isSameName(name, prevStreetName) {
		class, link := roadClass(headEntry.Tags)
		prevClass, prevLink := roadClass(tailEntry.Tags)
		otherClass, otherLink := roadClass(other.Tags)

		if isMajorRoad(class) && class == prevClass && link == prevLink &&
			(otherClass != prevClass || otherLink != prevLink) {
			return IGNORE
		}

		if class == "residential" || prevClass == "residential" ||
			(class == "unclassified" && prevClass == "unclassified") {
			return IGNORE
		}

		otherDeltaBearing := computeDeltaBearing(tail, other.Coordinate, db.prevInitialBearing)
		if deltaBearing > otherDeltaBearing {
			return KEEP_RIGHT
		}
		return KEEP_LEFT
	}

	if util.RadiansToDegree(math.Abs(deltaBearing)) > 34 ||
		isLeavingCurrentStreet(prevStreetName, name, tailEntry.Tags, headEntry.Tags) {
		return sign
	}
	return IGNORE
}
