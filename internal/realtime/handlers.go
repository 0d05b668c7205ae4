package realtime

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the request and serves the connection until it
// closes.
func HandleWebSocket(dispatcher *Dispatcher, cfg ClientConfig, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("Websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		client := NewClient(conn, dispatcher, cfg, log)
		log.Debug("Websocket connected", "conn", client.ID(), "remote", r.RemoteAddr)
		client.Run(r.Context())
		log.Debug("Websocket closed", "conn", client.ID())
	}
}
