package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/roadrouter/pkg/engine"
	"github.com/lintang-b-s/roadrouter/pkg/http"
	"github.com/lintang-b-s/roadrouter/pkg/http/usecases"
	"github.com/lintang-b-s/roadrouter/pkg/logger"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile = flag.String("graph", "", "graph snapshot to serve, overrides GRAPH_FILE")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	path := viper.GetString("GRAPH_FILE")
	if *graphFile != "" {
		path = *graphFile
	}
	routingEngine, err := engine.NewEngine(path, viper.GetFloat64("LEAF_BOUNDING_BOX_RADIUS"), logger)
	if err != nil {
		logger.Fatal("load engine", zap.Error(err))
	}

	routingService, err := usecases.NewRoutingService(logger, routingEngine.GetRouter(),
		viper.GetFloat64("SEARCH_RADIUS_KM"), viper.GetInt("ROUTE_CACHE_SIZE"),
		viper.GetBool("CLOCKWISE_ROUNDABOUT"), viper.GetBool("LEFT_HAND_TRAFFIC"))
	if err != nil {
		logger.Fatal("create routing service", zap.Error(err))
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, viper.GetBool("USE_RATE_LIMIT"), routingService); err != nil {
		logger.Fatal("start api", zap.Error(err))
	}

	signal := http.GracefulShutdown()
	cleanup()
	if err := api.Wait(); err != nil && err != context.Canceled {
		logger.Error("api stopped with error", zap.Error(err))
	}

	logger.Info("Road Router Server Stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
