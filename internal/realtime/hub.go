// Package realtime рассылает подключенным админ-панелям события об
// изменениях данных. Событие не несет сам диф: оно называет затронутые
// экраны, и клиент сам перезапрашивает их данные по HTTP.
package realtime

import (
	"encoding/json"
	"time"
)

// Event событие изменения данных
type Event struct {
	Type      string   `json:"type"` // всегда "refetch"
	Reason    string   `json:"reason"`
	Views     []string `json:"views"`
	Timestamp string   `json:"timestamp"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Hub держит активные websocket-подключения и рассылает события.
// Запускается одной горутиной Run; вся работа со множеством клиентов
// идет через каналы, без разделяемых блокировок.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	logger     Logger
}

// NewHub создает новый hub
func NewHub(logger Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run основной цикл hub'а, блокирует до Stop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("realtime: client connected, total=%d", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("realtime: client disconnected, total=%d", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Клиент не успевает читать - отключаем
					delete(h.clients, client)
					close(client.send)
				}
			}

		case <-h.done:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// Stop останавливает hub и закрывает все подключения
func (h *Hub) Stop() {
	close(h.done)
}

// PublishRefetch рассылает событие с именами затронутых экранов
func (h *Hub) PublishRefetch(reason string, views ...string) {
	event := Event{
		Type:      "refetch",
		Reason:    reason,
		Views:     views,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("realtime: failed to marshal event: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("realtime: broadcast buffer full, event dropped: %s", reason)
	}
}
