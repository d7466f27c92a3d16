package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler for WebSocket connections
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to collection changes
// @Description Upgrades to a WebSocket that receives a collection_changed event after every collection write
// @Tags websocket
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		logger: h.logger.With().Str("remoteAddr", conn.RemoteAddr().String()).Logger(),
	}
	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()
}
