package server

import (
	"context"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	wsjsonrpc2 "github.com/sourcegraph/jsonrpc2/websocket"
	"github.com/tliron/commonlog"

	"wordcomplete/internal/config"
	"wordcomplete/internal/plugin"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeWebSocket serves one host connected over a websocket.
func (s *Server) ServeWebSocket(ctx context.Context, socket *websocket.Conn) error {
	return s.ServeStream(ctx, wsjsonrpc2.NewObjectStream(socket))
}

// WebSocketHandler upgrades each request and serves it with a fresh Server
// and plugin, since view state belongs to a single host.
func WebSocketHandler(newPlugin func() plugin.Plugin, cfg config.Config) http.Handler {
	log := commonlog.GetLogger("wordcomplete.server")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Errorf("websocket upgrade error: %s", err.Error())
			return
		}
		log.Infof("host connected from %s", r.RemoteAddr)

		if err := NewServer(newPlugin(), cfg).ServeWebSocket(r.Context(), socket); err != nil {
			log.Infof("connection from %s ended: %s", r.RemoteAddr, err.Error())
		}
	})
}

// ListenWebSocket accepts hosts on addr at path /ws until the listener fails.
// ready, if not nil, receives the address actually bound.
func ListenWebSocket(addr string, newPlugin func() plugin.Plugin, cfg config.Config, ready func(net.Addr)) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if ready != nil {
		ready(l.Addr())
	}
	commonlog.GetLogger("wordcomplete.server").Infof("listening for hosts on ws://%s/ws", l.Addr())

	mux := http.NewServeMux()
	mux.Handle("/ws", WebSocketHandler(newPlugin, cfg))
	return http.Serve(l, mux)
}
