package spatialindex

import (
	"math"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const maxSearchResults = 64

type Rtree struct {
	tr *rtree.RTreeG[ArcEntry]
}

// ArcEntry is one road segment of the main graph, stored once per vertex pair.
type ArcEntry struct {
	from datastructure.Index
	to   datastructure.Index
}

func NewArcEntry(from, to datastructure.Index) ArcEntry {
	return ArcEntry{from: from, to: to}
}

func (ae ArcEntry) GetFrom() datastructure.Index {
	return ae.from
}

func (ae ArcEntry) GetTo() datastructure.Index {
	return ae.to
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[ArcEntry]
	return &Rtree{
		tr: &tr,
	}
}

// Build indexes every arc of graph. Each leaf box is the arc's extent padded by boundingBoxRadius km.
func (rt *Rtree) Build(graph *datastructure.DynamicGraph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")

	total := graph.VertexCount()
	done := 0
	graph.ForVertices(func(from datastructure.Index, fromLat, fromLon float64) {
		done++
		if total > 10 && done%(total/10) == 0 {
			log.Info("Building R-tree spatial index...", zap.Float64("progress", 100*float64(done)/float64(total)))
		}

		for _, arc := range graph.GetArcs(from) {
			to := arc.Neighbour
			if _, hasReverse := graph.GetArc(to, from); hasReverse && to < from {
				continue
			}
			toLat, toLon, ok := graph.GetVertex(to)
			if !ok {
				continue
			}
			rt.Insert(from, fromLat, fromLon, to, toLat, toLon, boundingBoxRadius)
		}
	})

	log.Info("R-tree spatial index built.", zap.Int("entries", rt.tr.Len()))
}

func (rt *Rtree) Insert(from datastructure.Index, fromLat, fromLon float64,
	to datastructure.Index, toLat, toLon float64, boundingBoxRadius float64) {
	lowerFrom, upperFrom := geo.BoundingBox(fromLat, fromLon, boundingBoxRadius)
	lowerTo, upperTo := geo.BoundingBox(toLat, toLon, boundingBoxRadius)

	minLat := math.Min(lowerFrom[0], lowerTo[0])
	minLon := math.Min(lowerFrom[1], lowerTo[1])
	maxLat := math.Max(upperFrom[0], upperTo[0])
	maxLon := math.Max(upperFrom[1], upperTo[1])

	rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, NewArcEntry(from, to))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius returns the arcs whose boxes intersect the square of radius km around (qLat, qLon).
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []ArcEntry {
	lower, upper := geo.BoundingBox(qLat, qLon, radius)

	results := make([]ArcEntry, 0, 10)
	rt.tr.Search([2]float64{lower[1], lower[0]}, [2]float64{upper[1], upper[0]},
		func(min, max [2]float64, data ArcEntry) bool {
			results = append(results, data)
			return len(results) < maxSearchResults
		})
	return results
}
