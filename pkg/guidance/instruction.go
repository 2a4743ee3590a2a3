package guidance

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

const (
	UNKNOWN            = -9999
	U_TURN_UNKNOWN     = -999
	U_TURN_LEFT        = -8
	KEEP_LEFT          = -7
	TURN_SHARP_LEFT    = -3
	TURN_LEFT          = -2
	TURN_SLIGHT_LEFT   = -1
	CONTINUE_ON_STREET = 0
	TURN_SLIGHT_RIGHT  = 1
	TURN_RIGHT         = 2
	TURN_SHARP_RIGHT   = 3
	FINISH             = 4
	USE_ROUNDABOUT     = 6
	KEEP_RIGHT         = 7
	U_TURN_RIGHT       = 8
	START              = 101
	IGNORE             = 9999999
)

type RoundaboutInstruction struct {
	exitNumber int
	exited     bool
}

func NewRoundaboutInstruction() *RoundaboutInstruction {
	return &RoundaboutInstruction{}
}

type Instruction struct {
	point              geo.Coordinate
	turnSign           int
	streetName         string
	cumulativeDistance float64
	cumulativeWeight   float64
	heading            *float64
	roundabout         *RoundaboutInstruction
	points             []geo.Coordinate
	turnBearing        float64
}

func NewInstruction(sign int, name string, p geo.Coordinate, cumulativeDistance, cumulativeWeight float64,
	points []geo.Coordinate, turnBearing float64) *Instruction {
	return &Instruction{
		turnSign:           sign,
		streetName:         name,
		point:              p,
		roundabout:         NewRoundaboutInstruction(),
		cumulativeDistance: cumulativeDistance,
		cumulativeWeight:   cumulativeWeight,
		points:             points,
		turnBearing:        turnBearing,
	}
}

func (ins *Instruction) GetStreetName() string {
	return ins.streetName
}

func (ins *Instruction) SetStreetName(streetName string) {
	ins.streetName = streetName
}

func (ins *Instruction) GetTurnSign() int {
	return ins.turnSign
}

func (ins *Instruction) SetSign(sign int) {
	ins.turnSign = sign
}

func (ins *Instruction) SetHeading(heading float64) {
	ins.heading = &heading
}

func (ins *Instruction) GetPoint() geo.Coordinate {
	return ins.point
}

func (ins *Instruction) GetCumulativeDistance() float64 {
	return ins.cumulativeDistance
}

func (ins *Instruction) GetCumulativeWeight() float64 {
	return ins.cumulativeWeight
}

func (ins *Instruction) GetPoints() []geo.Coordinate {
	return ins.points
}

func (ins *Instruction) GetTurnBearing() float64 {
	return ins.turnBearing
}

func (ins *Instruction) IncrementExitNumber() {
	ins.roundabout.exitNumber++
}

func (ins *Instruction) SetExited() {
	ins.roundabout.exited = true
}

// GetTurnDescription renders the instruction as an English sentence.
func (ins *Instruction) GetTurnDescription(clockwise bool) string {
	streetName := ins.streetName
	switch ins.turnSign {
	case CONTINUE_ON_STREET:
		if isEmpty(streetName) {
			return "Continue"
		}
		return fmt.Sprintf("Continue onto %s", streetName)
	case START:
		if ins.heading != nil {
			heading := *ins.heading
			if heading < 0 {
				heading += 360
			}
			return fmt.Sprintf("Head %s toward %s", bearingToCompass(heading), streetName)
		}
		return fmt.Sprintf("Head toward %s", streetName)
	case FINISH:
		return "you have arrived at your destination"
	}

	dir, _ := getDirectionDescription(ins.turnSign, ins, clockwise)
	switch {
	case dir == "":
		return fmt.Sprintf("unknown %d", ins.turnSign)
	case isEmpty(streetName):
		return dir
	case ins.turnSign == KEEP_LEFT || ins.turnSign == KEEP_RIGHT:
		return fmt.Sprintf("%s to continue on %s", dir, streetName)
	default:
		return fmt.Sprintf("%s onto %s", dir, streetName)
	}
}

func (ins *Instruction) turnType() string {
	if ins.turnSign == START {
		return "START"
	}
	if ins.turnSign == FINISH {
		return "FINISH"
	}
	_, t := getDirectionDescription(ins.turnSign, ins, true)
	return t
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}

func getDirectionDescription(sign int, instruction *Instruction, clockwise bool) (string, string) {
	switch sign {
	case CONTINUE_ON_STREET:
		return "Continue", "CONTINUE_ON_STREET"
	case U_TURN_UNKNOWN:
		return "Make U-turn", "U_TURN_UNKNOWN"
	case U_TURN_RIGHT:
		return "Make U-turn right", "U_TURN_RIGHT"
	case U_TURN_LEFT:
		return "Make U-turn left", "U_TURN_LEFT"
	case KEEP_LEFT:
		return "Keep left", "KEEP_LEFT"
	case TURN_SHARP_LEFT:
		return "Turn sharp left", "TURN_SHARP_LEFT"
	case TURN_LEFT:
		return "Turn left", "TURN_LEFT"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left", "TURN_SLIGHT_LEFT"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right", "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "Turn right", "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right", "TURN_SHARP_RIGHT"
	case KEEP_RIGHT:
		return "Keep right", "KEEP_RIGHT"
	case USE_ROUNDABOUT:
		if !instruction.roundabout.exited {
			return "Enter the roundabout", "USE_ROUNDABOUT"
		}
		roundaboutDir := "clockwise"
		if !clockwise {
			roundaboutDir = "counter-clockwise"
		}
		return fmt.Sprintf("At Roundabout, take the exit point %d %s", instruction.roundabout.exitNumber,
			roundaboutDir), "USE_ROUNDABOUT"
	default:
		return "", ""
	}
}

func bearingToCompass(bearing float64) string {
	if bearing < 22.5 {
		return "North"
	} else if bearing < 67.5 {
		return "North East"
	} else if bearing < 112.5 {
		return "East"
	} else if bearing < 157.5 {
		return "South East"
	} else if bearing < 202.5 {
		return "South"
	} else if bearing < 247.5 {
		return "South West"
	} else if bearing < 292.5 {
		return "West"
	} else if bearing < 337.5 {
		return "North West"
	}
	return "North"
}

// DrivingDirection is one rendered instruction. Distance and Weight cover the leg leading to it.
type DrivingDirection struct {
	Instruction string         `json:"instruction"`
	Point       geo.Coordinate `json:"point"`
	StreetName  string         `json:"street_name"`
	Weight      float64        `json:"weight"`
	Distance    float64        `json:"distance"`
	Polyline    string         `json:"polyline"`
	TurnBearing float64        `json:"turn_bearing"`
	TurnType    string         `json:"turn_type"`
}

func NewDrivingDirection(ins *Instruction, description string, weight, distance float64) DrivingDirection {
	return DrivingDirection{
		Instruction: description,
		Point:       ins.point,
		StreetName:  ins.streetName,
		Weight:      util.RoundFloat(weight, 2),
		Distance:    util.RoundFloat(distance, 2),
		Polyline:    geo.PolylineFromCoords(ins.points),
		TurnBearing: util.RoundFloat(util.RadiansToDegree(ins.turnBearing), 2),
		TurnType:    ins.turnType(),
	}
}
