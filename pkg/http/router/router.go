package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/roadrouter/pkg/http/router/controllers"
	helper "github.com/lintang-b-s/roadrouter/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/roadrouter/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
)

type API struct {
	log            *zap.Logger
	routingService controllers.RoutingService
}

func NewAPI(log *zap.Logger, routingService controllers.RoutingService) *API {
	return &API{log: log, routingService: routingService}
}

//	@title			Road Router API
//	@version		1.0
//	@description	Shortest path, matrix and reachability queries over a road network.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	useRateLimit bool,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(config.Timeout, useRateLimit), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	}
}

// Handler builds the full middleware chain. The websocket endpoint sits outside the timeout and
// logging wrappers because it hijacks the connection.
func (api *API) Handler(timeout time.Duration, useRateLimit bool) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	group := helper.NewRouteGroup(router, "/api")
	controllers.New(api.routingService, api.log).Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log)}
	if useRateLimit {
		mwChain = append(mwChain, Limit)
	}
	chain := alice.New(mwChain...).Then(router)

	mux := http.NewServeMux()
	mux.Handle("/ws", alice.New(api.recoverPanic, RealIP).ThenFunc(api.serveWebsocket))
	mux.Handle("/", http.TimeoutHandler(chain, timeout, "request timed out"))
	return mux
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
