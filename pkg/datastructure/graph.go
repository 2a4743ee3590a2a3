package datastructure

import (
	"math"
)

type Index int64

// NoVertex marks an absent vertex reference, e.g. a visit list without resolution neighbours.
const NoVertex Index = math.MinInt64

func (i Index) IsResolved() bool {
	return i < 0 && i != NoVertex
}

type Vertex struct {
	lat     float32
	lon     float32
	deleted bool
}

func NewVertex(lat, lon float64) Vertex {
	return Vertex{lat: float32(lat), lon: float32(lon)}
}

func (v Vertex) GetLat() float64 {
	return float64(v.lat)
}

func (v Vertex) GetLon() float64 {
	return float64(v.lon)
}

// EdgeData is the payload of a directed arc. Forward is true when the arc runs in the direction
// the way was drawn, which is what one-way restrictions are evaluated against.
type EdgeData struct {
	Weight  float64 `json:"weight"`
	TagsID  uint32  `json:"tags_id"`
	Forward bool    `json:"forward"`
}

func NewEdgeData(weight float64, tagsID uint32, forward bool) EdgeData {
	return EdgeData{Weight: weight, TagsID: tagsID, Forward: forward}
}

// Reversed returns the data of the mirrored arc.
func (e EdgeData) Reversed() EdgeData {
	return EdgeData{Weight: e.Weight, TagsID: e.TagsID, Forward: !e.Forward}
}

type Arc struct {
	Neighbour Index
	Data      EdgeData
}

// EdgeComparer decides whether candidate replaces the existing arc to the same neighbour.
type EdgeComparer func(existing, candidate EdgeData) bool

func KeepLighter(existing, candidate EdgeData) bool {
	return candidate.Weight < existing.Weight
}

func AlwaysReplace(existing, candidate EdgeData) bool {
	return true
}

// Graph is the read side of a routing graph shared by the search engine and the router.
type Graph interface {
	GetVertex(id Index) (float64, float64, bool)
	GetArcs(id Index) []Arc
	GetArc(from, to Index) (EdgeData, bool)
	VertexCount() int
}

func findArc(arcs []Arc, to Index) int {
	for i := range arcs {
		if arcs[i].Neighbour == to {
			return i
		}
	}
	return -1
}

func removeArcAt(arcs []Arc, i int) []Arc {
	last := len(arcs) - 1
	arcs[i] = arcs[last]
	return arcs[:last]
}
