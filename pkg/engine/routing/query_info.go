package routing

import (
	"github.com/lintang-b-s/roadrouter/pkg"
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/interpreter"
)

// frontierEntry is a heap item. The label history belongs to this frontier entry only and is
// dropped once its vertex is settled.
type frontierEntry struct {
	segment *da.PathSegment
	labels  []interpreter.RoutingLabel
}

type searchQuery struct {
	profile   pkg.Profile
	source    *da.VisitList
	targets   []*da.VisitList
	maxWeight float64
	// forward is false when the search runs against the direction of travel, e.g. from a target.
	forward bool
	// stopAtFirst returns as soon as the nearest target is known.
	stopAtFirst bool
	// collectRange gathers every vertex popped beyond maxWeight instead of stopping there.
	collectRange bool
}

func newSearchQuery(profile pkg.Profile, source *da.VisitList, targets []*da.VisitList, maxWeight float64) searchQuery {
	return searchQuery{
		profile:   profile,
		source:    source,
		targets:   targets,
		maxWeight: maxWeight,
		forward:   true,
	}
}

type searchResult struct {
	paths    []*da.PathSegment
	closest  int
	boundary map[da.Index]*da.PathSegment
	settled  int
}

func newSearchResult(numTargets int) *searchResult {
	return &searchResult{
		paths:    make([]*da.PathSegment, numTargets),
		closest:  -1,
		boundary: make(map[da.Index]*da.PathSegment),
	}
}

// pickClosest sets closest to the lightest found path among the targets marked in candidates.
func (r *searchResult) pickClosest(candidates []bool) {
	r.closest = -1
	for i, p := range r.paths {
		if p == nil || (candidates != nil && !candidates[i]) {
			continue
		}
		if r.closest < 0 || p.Weight() < r.paths[r.closest].Weight() {
			r.closest = i
		}
	}
}
