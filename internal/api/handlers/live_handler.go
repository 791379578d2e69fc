package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/storage/models"
	"github.com/carelingo/backend/pkg/logger"
)

const (
	liveEventBuffer  = 64
	liveWriteTimeout = 5 * time.Second
)

// LiveHandler pushes completed-exchange events to websocket subscribers (the
// UI's live stats panel). It sits off the reply path: events are handed to a
// broadcast goroutine through a buffered channel and dropped when the buffer
// is full, so a slow or dead subscriber never affects chat responses.
type LiveHandler struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]*sync.Mutex
	events chan map[string]interface{}
}

func NewLiveHandler() *LiveHandler {
	h := &LiveHandler{
		conns:  make(map[*websocket.Conn]*sync.Mutex),
		events: make(chan map[string]interface{}, liveEventBuffer),
	}
	go h.broadcastLoop()
	return h
}

// ExchangeCompleted implements chat.Observer. It never blocks: when the
// event buffer is full the event is dropped.
func (h *LiveHandler) ExchangeCompleted(record *models.QueryRecord) {
	event := map[string]interface{}{
		"type":       "exchange",
		"query_id":   record.ID,
		"language":   record.Language,
		"confidence": record.Confidence,
		"fallback":   record.Fallback,
		"latency_ms": record.LatencyMS,
		"timestamp":  record.CreatedAt.Format(time.RFC3339),
	}

	select {
	case h.events <- event:
	default:
		logger.Debug("Live feed buffer full, dropping event",
			zap.String("query_id", record.ID),
		)
	}
}

func (h *LiveHandler) broadcastLoop() {
	for event := range h.events {
		h.broadcast(event)
	}
}

func (h *LiveHandler) broadcast(event map[string]interface{}) {
	h.mu.Lock()
	subscribers := make(map[*websocket.Conn]*sync.Mutex, len(h.conns))
	for conn, wmu := range h.conns {
		subscribers[conn] = wmu
	}
	h.mu.Unlock()

	for conn, wmu := range subscribers {
		wmu.Lock()
		conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		err := conn.WriteJSON(event)
		wmu.Unlock()
		if err != nil {
			logger.Debug("Dropping stalled live subscriber", zap.Error(err))
			h.remove(conn)
			conn.Close()
		}
	}
}

func (h *LiveHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("Live feed subscriber connected")

	h.mu.Lock()
	h.conns[c] = &sync.Mutex{}
	h.mu.Unlock()

	defer func() {
		h.remove(c)
		c.Close()
		logger.Info("Live feed subscriber disconnected")
	}()

	// Reads are only used to detect disconnects.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *LiveHandler) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}
