package interpreter

import (
	"github.com/lintang-b-s/roadrouter/pkg"
)

const (
	LabelMotorway    RoutingLabel = "motorway"
	LabelResidential RoutingLabel = "residential"
	LabelGeneral     RoutingLabel = "general"
)

// RoadClassConstraints forbids getting back onto a motorway after leaving it through a residential
// street, which is how short cuts through neighbourhoods show up in a shortest path.
type RoadClassConstraints struct{}

func NewRoadClassConstraints() *RoadClassConstraints {
	return &RoadClassConstraints{}
}

func (c *RoadClassConstraints) LabelFor(tags map[string]string) RoutingLabel {
	switch pkg.GetHighwayType(tags["highway"]) {
	case pkg.MOTORWAY, pkg.MOTORWAY_LINK, pkg.MOTORROAD:
		return LabelMotorway
	case pkg.RESIDENTIAL, pkg.LIVING_STREET, pkg.SERVICE:
		return LabelResidential
	default:
		return LabelGeneral
	}
}

func (c *RoadClassConstraints) ForwardSequenceAllowed(history []RoutingLabel, next RoutingLabel) bool {
	if next != LabelMotorway {
		return true
	}

	leftThroughResidential := false
	for i := len(history) - 1; i >= 0; i-- {
		switch history[i] {
		case LabelResidential:
			leftThroughResidential = true
		case LabelMotorway:
			return !leftThroughResidential
		}
	}
	return true
}
