package router

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/http/router/controllers"
	"go.uber.org/zap"
)

const (
	wsRoute = "route"
	wsRange = "range"
)

type wsRequest struct {
	Type           string  `json:"type" validate:"required,oneof=route range"`
	Profile        string  `json:"profile" validate:"required,oneof=car bicycle pedestrian motorcycle"`
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	Weight         float64 `json:"weight" validate:"required_if=Type range,gte=0"`
}

type wsResponse struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

var wsValidate = validator.New()

// serveWebsocket upgrades the connection and answers one JSON request per text frame until the
// client closes. Each connection is served by its own goroutine.
func (api *API) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err))
		return
	}
	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	// the request context is cancelled once this handler returns
	ctx := context.WithoutCancel(r.Context())
	go func() {
		defer conn.Close()
		for {
			msg, op, err := wsutil.ReadClientData(conn)
			if err != nil {
				api.log.Debug("websocket closed", zap.String("connection name", nameConn(conn)), zap.Error(err))
				return
			}
			if op != ws.OpText {
				continue
			}

			resp := api.handleMessage(ctx, msg)
			out, err := json.Marshal(resp)
			if err != nil {
				api.log.Error("marshal websocket response", zap.Error(err))
				return
			}
			if err := wsutil.WriteServerMessage(conn, ws.OpText, out); err != nil {
				api.log.Error("write websocket response", zap.Error(err))
				return
			}
		}
	}()
}

func (api *API) handleMessage(ctx context.Context, msg []byte) wsResponse {
	var req wsRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return wsResponse{Error: err.Error()}
	}
	if err := wsValidate.Struct(req); err != nil {
		return wsResponse{Type: req.Type, Error: err.Error()}
	}

	profile := pkg.Profile(req.Profile)
	switch req.Type {
	case wsRoute:
		route, directions, err := api.routingService.ShortestPath(ctx, profile, req.OriginLat, req.OriginLon,
			req.DestinationLat, req.DestinationLon)
		if err != nil {
			return wsResponse{Type: req.Type, Error: err.Error()}
		}
		return wsResponse{Type: req.Type, Data: controllers.NewShortestPathResponse(route, directions)}
	default:
		boundary, err := api.routingService.Range(ctx, profile, req.OriginLat, req.OriginLon, req.Weight)
		if err != nil {
			return wsResponse{Type: req.Type, Error: err.Error()}
		}
		return wsResponse{Type: req.Type, Data: boundary}
	}
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
