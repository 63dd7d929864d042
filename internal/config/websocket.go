package config

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

type wsEnv struct {
	AllowedOrigins []string `env:"WS_ALLOWED_ORIGINS" envSeparator:","`
}

func NewWebSocket() (*WebSocket, error) {
	return newWebSocket(nil)
}

// An empty WS_ALLOWED_ORIGINS accepts any origin.
func newWebSocket(environ map[string]string) (*WebSocket, error) {
	var e wsEnv
	if err := parse(&e, environ); err != nil {
		return nil, err
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(e.AllowedOrigins) == 0 {
				return true
			}
			return slices.Contains(e.AllowedOrigins, r.Header.Get("Origin"))
		},
	}

	return &WebSocket{Upgrader: upgrader}, nil
}
