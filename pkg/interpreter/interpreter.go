package interpreter

import (
	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
)

// EdgeInterpreter turns way tags into routing decisions for a profile.
type EdgeInterpreter interface {
	// IsRoutable reports whether a way with these tags belongs in the graph at all.
	IsRoutable(tags map[string]string) bool
	IsTraversable(tags map[string]string, profile pkg.Profile) bool
	Weight(tags map[string]string, profile pkg.Profile, from, to geo.Coordinate) float64
	// TurningWeight is Weight for the segment from->to entered coming from previous.
	TurningWeight(tags map[string]string, profile pkg.Profile, previous, from, to geo.Coordinate) float64
	// IsOneWay returns nil for two-way roads, otherwise the direction travel is allowed in,
	// true meaning along the way's drawing direction.
	IsOneWay(tags map[string]string, profile pkg.Profile) *bool
	GetName(tags map[string]string) string
	GetNamesByLanguage(tags map[string]string) map[string]string
}

type RoutingLabel string

// RoutingConstraints validates sequences of road classes along a path.
type RoutingConstraints interface {
	LabelFor(tags map[string]string) RoutingLabel
	ForwardSequenceAllowed(history []RoutingLabel, next RoutingLabel) bool
}

type RoutingInterpreter interface {
	Edges() EdgeInterpreter
	CanTraverseTriple(from, along, to datastructure.Index) bool
	// Constraints returns nil when no sequence constraints apply.
	Constraints() RoutingConstraints
}
