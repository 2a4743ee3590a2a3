package main

import (
	"flag"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/graphbuilder"
	"github.com/lintang-b-s/roadrouter/pkg/interpreter"
	"github.com/lintang-b-s/roadrouter/pkg/logger"
	"go.uber.org/zap"
)

var (
	rows      = flag.Int("rows", 50, "number of east-west streets")
	cols      = flag.Int("cols", 50, "number of north-south streets")
	originLat = flag.Float64("lat", -7.7956, "latitude of the south-west corner")
	originLon = flag.Float64("lon", 110.3695, "longitude of the south-west corner")
	spacing   = flag.Float64("spacing", 0.001, "block size in degrees")
	out       = flag.String("out", "./data/road.graph", "output graph snapshot")
)

// gridgen writes a synthetic street grid: residential streets everywhere, a primary avenue every
// tenth row and one-way streets on every odd column.
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	g := datastructure.NewDynamicGraph(pkg.CAR, pkg.BICYCLE, pkg.PEDESTRIAN, pkg.MOTORCYCLE)
	b := graphbuilder.New(g, interpreter.NewOsmEdgeInterpreter(), logger, graphbuilder.WithWeightProfile(pkg.CAR))

	node := func(r, c int) int64 {
		return int64(r*(*cols) + c)
	}
	for r := 0; r < *rows; r++ {
		for c := 0; c < *cols; c++ {
			b.AddNode(node(r, c), *originLat+float64(r)*(*spacing), *originLon+float64(c)*(*spacing))
		}
	}

	for r := 0; r < *rows; r++ {
		way := make([]int64, 0, *cols)
		for c := 0; c < *cols; c++ {
			way = append(way, node(r, c))
		}
		tags := map[string]string{"highway": "residential"}
		if r%10 == 0 {
			tags = map[string]string{"highway": "primary", "maxspeed": "60"}
		}
		if err := b.AddWay(way, tags); err != nil {
			logger.Fatal("add row", zap.Int("row", r), zap.Error(err))
		}
	}
	for c := 0; c < *cols; c++ {
		way := make([]int64, 0, *rows)
		for r := 0; r < *rows; r++ {
			way = append(way, node(r, c))
		}
		tags := map[string]string{"highway": "residential"}
		if c%2 == 1 {
			tags = map[string]string{"highway": "residential", "oneway": "yes"}
		}
		if err := b.AddWay(way, tags); err != nil {
			logger.Fatal("add column", zap.Int("col", c), zap.Error(err))
		}
	}

	if err := b.Graph().WriteGraph(*out); err != nil {
		logger.Fatal("write graph", zap.Error(err))
	}
	logger.Info("grid written", zap.String("file", *out))
}
