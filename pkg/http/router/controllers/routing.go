package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/roadrouter/pkg"
	helper "github.com/lintang-b-s/roadrouter/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/resolve", api.resolve)
	group.GET("/computeRoutes", api.shortestPath)
	group.POST("/matrix", api.matrix)
	group.GET("/range", api.reachableRange)
	group.GET("/connectivity", api.connectivity)
}

func (api *routingAPI) parsePointRequest(r *http.Request) (pointRequest, error) {
	var (
		request pointRequest
		err     error
	)
	if request.Lat, err = parseFloatParam(r, "lat"); err != nil {
		return request, err
	}
	if request.Lon, err = parseFloatParam(r, "lon"); err != nil {
		return request, err
	}
	request.Profile = r.URL.Query().Get("profile")
	return request, nil
}

func (api *routingAPI) parseWeightedPointRequest(r *http.Request) (weightedPointRequest, error) {
	var (
		request weightedPointRequest
		err     error
	)
	if request.pointRequest, err = api.parsePointRequest(r); err != nil {
		return request, err
	}
	if request.Weight, err = parseFloatParam(r, "weight"); err != nil {
		return request, err
	}
	return request, validateStruct(request)
}

// resolve godoc
//
//	@Summary	attach a coordinate to the closest traversable road
//	@Tags		routing
//	@Produce	json
//	@Param		lat		query	number	true	"latitude"
//	@Param		lon		query	number	true	"longitude"
//	@Param		profile	query	string	true	"car, bicycle, pedestrian or motorcycle"
//	@Router		/resolve [get]
func (api *routingAPI) resolve(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := api.parsePointRequest(r)
	if err == nil {
		err = validateStruct(request)
	}
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	point, err := api.routingService.Resolve(pkg.Profile(request.Profile), request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": point}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// shortestPath godoc
//
//	@Summary	shortest route between two coordinates
//	@Tags		routing
//	@Produce	json
//	@Param		origin_lat		query	number	true	"origin latitude"
//	@Param		origin_lon		query	number	true	"origin longitude"
//	@Param		destination_lat	query	number	true	"destination latitude"
//	@Param		destination_lon	query	number	true	"destination longitude"
//	@Param		profile			query	string	true	"car, bicycle, pedestrian or motorcycle"
//	@Router		/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	if request.OriginLat, err = parseFloatParam(r, "origin_lat"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.OriginLon, err = parseFloatParam(r, "origin_lon"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.DestinationLat, err = parseFloatParam(r, "destination_lat"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.DestinationLon, err = parseFloatParam(r, "destination_lon"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Profile = r.URL.Query().Get("profile")
	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, directions, err := api.routingService.ShortestPath(r.Context(), pkg.Profile(request.Profile),
		request.OriginLat, request.OriginLon, request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route, directions)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// matrix godoc
//
//	@Summary	weight of the shortest path between every source and target
//	@Tags		routing
//	@Accept		json
//	@Produce	json
//	@Router		/matrix [post]
func (api *routingAPI) matrix(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request matrixRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	weights, err := api.routingService.Matrix(r.Context(), pkg.Profile(request.Profile),
		toCoordinates(request.Sources), toCoordinates(request.Targets))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": matrixResponse{Weights: weights}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// reachableRange godoc
//
//	@Summary	vertices first reached beyond weight
//	@Tags		routing
//	@Produce	json
//	@Param		weight	query	number	true	"weight bound"
//	@Router		/range [get]
func (api *routingAPI) reachableRange(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := api.parseWeightedPointRequest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	boundary, err := api.routingService.Range(r.Context(), pkg.Profile(request.Profile), request.Lat,
		request.Lon, request.Weight)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": rangeResponse{Boundary: boundary}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// connectivity godoc
//
//	@Summary	whether a point reaches and is reached from beyond weight
//	@Tags		routing
//	@Produce	json
//	@Param		weight	query	number	true	"weight bound"
//	@Router		/connectivity [get]
func (api *routingAPI) connectivity(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := api.parseWeightedPointRequest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	connected, err := api.routingService.Connectivity(r.Context(), pkg.Profile(request.Profile), request.Lat,
		request.Lon, request.Weight)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": connectivityResponse{Connected: connected}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
