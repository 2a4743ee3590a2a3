package interpreter

import (
	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
)

type turnTriple struct {
	from, via, to datastructure.Index
}

// OsmRoutingInterpreter bundles the edge interpreter with turn restrictions and optional
// road class constraints.
type OsmRoutingInterpreter struct {
	edges        EdgeInterpreter
	restrictions map[turnTriple]struct{}
	constraints  RoutingConstraints
}

type Option func(*OsmRoutingInterpreter)

func WithEdgeInterpreter(edges EdgeInterpreter) Option {
	return func(o *OsmRoutingInterpreter) {
		o.edges = edges
	}
}

func WithConstraints(constraints RoutingConstraints) Option {
	return func(o *OsmRoutingInterpreter) {
		o.constraints = constraints
	}
}

// WithTurnRestriction forbids driving from -> via -> to.
func WithTurnRestriction(from, via, to datastructure.Index) Option {
	return func(o *OsmRoutingInterpreter) {
		o.restrictions[turnTriple{from: from, via: via, to: to}] = struct{}{}
	}
}

func NewOsmRoutingInterpreter(opts ...Option) *OsmRoutingInterpreter {
	o := &OsmRoutingInterpreter{
		edges:        NewOsmEdgeInterpreter(),
		restrictions: make(map[turnTriple]struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *OsmRoutingInterpreter) Edges() EdgeInterpreter {
	return o.edges
}

func (o *OsmRoutingInterpreter) CanTraverseTriple(from, along, to datastructure.Index) bool {
	_, forbidden := o.restrictions[turnTriple{from: from, via: along, to: to}]
	return !forbidden
}

func (o *OsmRoutingInterpreter) Constraints() RoutingConstraints {
	return o.constraints
}
