package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"portfolio_server/internal/chat"
	"portfolio_server/internal/config"
	"portfolio_server/pkg/logger"
)

type WebSocketHandler struct {
	hub      *chat.Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewWebSocketHandler(hub *chat.Hub, cfg config.ChatConfig, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     chat.OriginChecker(cfg.AllowedOrigins),
		},
		log: log,
	}
}

// HandleChat upgrades the connection and hands it to the hub. Each
// connection gets a fresh identity; reconnects are new visitors.
func (h *WebSocketHandler) HandleChat(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "error", err, "client_ip", c.ClientIP())
		return
	}

	client := chat.NewClient(uuid.NewString(), h.hub, conn, h.log)

	// Wait until the hub owns the connection before pumping, so the
	// history replay always precedes any live traffic.
	reg := chat.Registration{Client: client, Done: make(chan struct{})}
	h.hub.Register <- reg
	<-reg.Done

	go client.WritePump()
	client.ReadPump()
}
