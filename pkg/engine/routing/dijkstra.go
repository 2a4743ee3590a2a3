package routing

import (
	"context"
	"errors"
	"runtime"
	"sort"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/concurrent"
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/interpreter"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"go.uber.org/zap"
)

var ErrUnknownTags = errors.New("arc references unknown tags")

// Dijkstra answers shortest path queries between visit lists over the main graph. It keeps no
// per-query state, so one instance serves concurrent queries as long as the graph is not written.
type Dijkstra struct {
	graph      Graph
	tags       TagsSource
	interp     interpreter.RoutingInterpreter
	log        *zap.Logger
	numWorkers int
}

func NewDijkstra(graph Graph, tags TagsSource, interp interpreter.RoutingInterpreter, log *zap.Logger) *Dijkstra {
	return &Dijkstra{
		graph:      graph,
		tags:       tags,
		interp:     interp,
		log:        log,
		numWorkers: runtime.GOMAXPROCS(0),
	}
}

// Calculate returns the shortest path from -> to, nil when to is unreachable within maxWeight.
func (d *Dijkstra) Calculate(ctx context.Context, profile pkg.Profile, from, to *da.VisitList,
	maxWeight float64) (*da.PathSegment, error) {
	q := newSearchQuery(profile, from, []*da.VisitList{to}, maxWeight)
	res, err := d.doCalculation(ctx, q)
	if err != nil {
		return nil, err
	}
	return res.paths[0], nil
}

// CalculateWeight is Calculate reduced to the path weight, pkg.INF_WEIGHT when unreachable.
func (d *Dijkstra) CalculateWeight(ctx context.Context, profile pkg.Profile, from, to *da.VisitList,
	maxWeight float64) (float64, error) {
	path, err := d.Calculate(ctx, profile, from, to, maxWeight)
	if err != nil {
		return pkg.INF_WEIGHT, err
	}
	return weightOf(path), nil
}

// CalculateToClosest returns the path to the nearest of targets and its position in targets,
// (nil, -1) when none is reachable.
func (d *Dijkstra) CalculateToClosest(ctx context.Context, profile pkg.Profile, from *da.VisitList,
	targets []*da.VisitList, maxWeight float64) (*da.PathSegment, int, error) {
	q := newSearchQuery(profile, from, targets, maxWeight)
	q.stopAtFirst = true
	res, err := d.doCalculation(ctx, q)
	if err != nil {
		return nil, -1, err
	}
	if res.closest < 0 {
		return nil, -1, nil
	}
	return res.paths[res.closest], res.closest, nil
}

// CalculateOneToMany returns one path per target, nil entries for unreachable targets.
func (d *Dijkstra) CalculateOneToMany(ctx context.Context, profile pkg.Profile, from *da.VisitList,
	targets []*da.VisitList, maxWeight float64) ([]*da.PathSegment, error) {
	if len(targets) == 0 {
		return []*da.PathSegment{}, nil
	}
	res, err := d.doCalculation(ctx, newSearchQuery(profile, from, targets, maxWeight))
	if err != nil {
		return nil, err
	}
	return res.paths, nil
}

func (d *Dijkstra) CalculateOneToManyWeight(ctx context.Context, profile pkg.Profile, from *da.VisitList,
	targets []*da.VisitList, maxWeight float64) ([]float64, error) {
	paths, err := d.CalculateOneToMany(ctx, profile, from, targets, maxWeight)
	if err != nil {
		return nil, err
	}
	return weightsOf(paths), nil
}

type oneToManyResult struct {
	paths []*da.PathSegment
	err   error
}

// CalculateManyToMany runs an independent one-to-many search per source on the worker pool.
func (d *Dijkstra) CalculateManyToMany(ctx context.Context, profile pkg.Profile, sources, targets []*da.VisitList,
	maxWeight float64) ([][]*da.PathSegment, error) {
	results := concurrent.Map(d.numWorkers, sources, func(source *da.VisitList) oneToManyResult {
		paths, err := d.CalculateOneToMany(ctx, profile, source, targets, maxWeight)
		return oneToManyResult{paths: paths, err: err}
	})

	matrix := make([][]*da.PathSegment, len(sources))
	for i, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		matrix[i] = res.paths
	}
	return matrix, nil
}

func (d *Dijkstra) CalculateManyToManyWeight(ctx context.Context, profile pkg.Profile, sources, targets []*da.VisitList,
	maxWeight float64) ([][]float64, error) {
	matrix, err := d.CalculateManyToMany(ctx, profile, sources, targets, maxWeight)
	if err != nil {
		return nil, err
	}
	weights := make([][]float64, len(matrix))
	for i, row := range matrix {
		weights[i] = weightsOf(row)
	}
	return weights, nil
}

// CalculateRange returns the vertices first reached beyond weight, in ascending id order. With
// forward false the search follows arcs against the direction of travel.
func (d *Dijkstra) CalculateRange(ctx context.Context, profile pkg.Profile, source *da.VisitList,
	weight float64, forward bool) ([]da.Index, error) {
	q := newSearchQuery(profile, source, nil, weight)
	q.forward = forward
	q.collectRange = true
	res, err := d.doCalculation(ctx, q)
	if err != nil {
		return nil, err
	}

	ids := make([]da.Index, 0, len(res.boundary))
	for id := range res.boundary {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// CheckConnectivity reports whether a point can both leave and be reached from beyond weight.
// forward and backward are the point's visit lists for each search direction, they differ for points
// resolved on one-way edges.
func (d *Dijkstra) CheckConnectivity(ctx context.Context, profile pkg.Profile, forward, backward *da.VisitList,
	weight float64) (bool, error) {
	leaving, err := d.CalculateRange(ctx, profile, forward, weight, true)
	if err != nil || len(leaving) == 0 {
		return false, err
	}
	arriving, err := d.CalculateRange(ctx, profile, backward, weight, false)
	if err != nil {
		return false, err
	}
	return len(arriving) > 0, nil
}

func weightOf(path *da.PathSegment) float64 {
	if path == nil {
		return pkg.INF_WEIGHT
	}
	return path.Weight()
}

func weightsOf(paths []*da.PathSegment) []float64 {
	weights := make([]float64, len(paths))
	for i, p := range paths {
		weights[i] = weightOf(p)
	}
	return weights
}

// shortcut looks for a vertex shared by the predecessor chains of source and target, which is how
// two points resolved onto the same edge connect without touching the main graph.
func shortcut(source, target *da.VisitList) *da.PathSegment {
	var best *da.PathSegment
	for _, sv := range source.GetVertices() {
		for s := source.GetPathTo(sv); s != nil; s = s.From() {
			for _, tv := range target.GetVertices() {
				for t := target.GetPathTo(tv); t != nil; t = t.From() {
					if s.Vertex() != t.Vertex() {
						continue
					}
					if best != nil && s.Weight()+t.Weight() >= best.Weight() {
						continue
					}
					best = t.Reverse().ConcatenateAfter(s)
				}
			}
		}
	}
	return best
}

func (d *Dijkstra) doCalculation(ctx context.Context, q searchQuery) (*searchResult, error) {
	res := newSearchResult(len(q.targets))
	final := make([]bool, len(q.targets))
	remaining := len(q.targets)

	for i, target := range q.targets {
		if target == nil {
			final[i] = true
			remaining--
			continue
		}
		res.paths[i] = shortcut(q.source, target)
	}

	// a target is final once nothing left on the heap can beat its best path. Several targets can
	// become final on the same pop, the closest search picks the lightest of them.
	finalize := func(frontier float64) bool {
		reached := false
		for i, p := range res.paths {
			if final[i] || p == nil || !util.Le(p.Weight(), frontier) {
				continue
			}
			final[i] = true
			remaining--
			reached = true
		}
		if q.stopAtFirst && reached {
			res.pickClosest(final)
			return true
		}
		return len(q.targets) > 0 && remaining == 0
	}

	pq := da.NewFourAryHeap[*frontierEntry]()
	for _, v := range q.source.GetVertices() {
		seg := q.source.GetPathTo(v)
		pq.Insert(da.NewPriorityQueueNode(seg.Weight(), &frontierEntry{segment: seg}))
	}

	banFrom, banTo, hasBan := q.source.ResolutionArc()
	edges := d.interp.Edges()
	constraints := d.interp.Constraints()
	settled := make(map[da.Index]struct{})

	done := false
	for !pq.IsEmpty() && !done {
		if util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		node, _ := pq.ExtractMin()
		entry := node.GetItem()
		current := entry.segment
		v := current.Vertex()
		if _, ok := settled[v]; ok {
			continue
		}

		if finalize(current.Weight()) {
			done = true
			break
		}

		if current.Weight() > q.maxWeight {
			if !q.collectRange {
				break
			}
			settled[v] = struct{}{}
			res.boundary[v] = current
			continue
		}

		settled[v] = struct{}{}
		res.settled++

		for i, target := range q.targets {
			if final[i] || !target.Contains(v) {
				continue
			}
			toTarget := target.GetPathTo(v).Reverse().ConcatenateAfter(current)
			if res.paths[i] == nil || toTarget.Weight() < res.paths[i].Weight() {
				res.paths[i] = toTarget
			}
		}
		if finalize(current.Weight()) {
			done = true
			break
		}

		previous := current.From()
		for _, arc := range d.graph.GetArcs(v) {
			n := arc.Neighbour
			if _, ok := settled[n]; ok {
				continue
			}
			if hasBan && ((v == banFrom && n == banTo) || (v == banTo && n == banFrom)) {
				continue
			}

			tags, ok := d.tags.Get(arc.Data.TagsID)
			if !ok {
				return nil, util.WrapErrorf(ErrUnknownTags, util.ErrInternalServerError,
					"arc %d->%d has tags id %d", v, n, arc.Data.TagsID)
			}
			if !edges.IsTraversable(tags, q.profile) {
				continue
			}

			oneway := edges.IsOneWay(tags, q.profile)
			if oneway != nil && ((q.forward && *oneway != arc.Data.Forward) ||
				(!q.forward && *oneway == arc.Data.Forward)) {
				continue
			}

			if previous != nil {
				allowed := d.interp.CanTraverseTriple(previous.Vertex(), v, n)
				if !q.forward {
					allowed = d.interp.CanTraverseTriple(n, v, previous.Vertex())
				}
				if !allowed {
					continue
				}
			}

			labels := entry.labels
			if constraints != nil && q.forward {
				label := constraints.LabelFor(tags)
				if len(labels) == 0 || labels[len(labels)-1] != label {
					if !constraints.ForwardSequenceAllowed(labels, label) {
						continue
					}
					labels = append(labels[:len(labels):len(labels)], label)
				}
			}

			weight := current.Weight() + arc.Data.Weight
			if weight >= pkg.INF_WEIGHT {
				continue
			}
			next := da.NewPathSegment(n, weight, current)
			pq.Insert(da.NewPriorityQueueNode(weight, &frontierEntry{segment: next, labels: labels}))
		}
	}

	if !done {
		// exhausted: whatever was found is the best there is
		finalize(pkg.INF_WEIGHT)
		if q.stopAtFirst {
			res.pickClosest(nil)
		}
	}

	d.log.Debug("dijkstra finished",
		zap.String("profile", string(q.profile)),
		zap.Int("settled", res.settled),
		zap.Int("boundary", len(res.boundary)),
		zap.Bool("forward", q.forward))

	return res, nil
}
