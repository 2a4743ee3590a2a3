package engine

import (
	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/interpreter"
	"github.com/lintang-b-s/roadrouter/pkg/router"
	"github.com/lintang-b-s/roadrouter/pkg/spatialindex"
	"go.uber.org/zap"
)

// Engine owns everything a running server needs: the main graph, its spatial index and the router
// answering queries over both.
type Engine struct {
	graph  *datastructure.DynamicGraph
	index  *spatialindex.Rtree
	router *router.Router
}

func (e *Engine) GetRouter() *router.Router {
	return e.router
}

func (e *Engine) GetGraph() *datastructure.DynamicGraph {
	return e.graph
}

func (e *Engine) GetSpatialIndex() *spatialindex.Rtree {
	return e.index
}

// NewEngine loads the graph snapshot at graphFilePath and prepares it for routing.
func NewEngine(graphFilePath string, leafBoundingBoxRadius float64, logger *zap.Logger,
	opts ...interpreter.Option) (*Engine, error) {
	logger.Info("Starting road router engine...")

	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("Graph loaded", zap.Int("vertices", graph.VertexCount()), zap.Int("arcs", graph.ArcCount()),
		zap.Any("profiles", graph.Profiles()))

	return NewEngineFromGraph(graph, leafBoundingBoxRadius, logger, opts...), nil
}

func NewEngineFromGraph(graph *datastructure.DynamicGraph, leafBoundingBoxRadius float64, logger *zap.Logger,
	opts ...interpreter.Option) *Engine {
	rtree := spatialindex.NewRtree()
	rtree.Build(graph, leafBoundingBoxRadius, logger)

	interp := interpreter.NewOsmRoutingInterpreter(opts...)
	return &Engine{
		graph:  graph,
		index:  rtree,
		router: router.New(graph, interp, rtree, logger),
	}
}
