// Package ws апгрейдит HTTP соединение до websocket и передает его hub'у
// realtime-событий.
package ws

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/barbearia-jao/agenda-service/internal/realtime"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   Logger
}

func NewHandler(hub *realtime.Hub, logger Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Админ-панель ходит с другого origin в dev-окружении
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle GET /api/v1/ws
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("GET /ws - Upgrade failed: %v", err)
		return
	}

	realtime.NewClient(h.hub, conn)
}
