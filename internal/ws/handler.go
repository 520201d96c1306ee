package ws

import (
	"net/http"

	"procasa_backend/internal/auth"
	"procasa_backend/internal/logger"
	"procasa_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.Serve)
}

// Serve upgrades the connection. Browsers cannot set headers on websocket
// dials, so the token arrives as a query parameter.
func (h *Handler) Serve(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Token query parameter required"))
		return
	}

	claims, err := auth.ParseToken(tokenStr)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid or expired token"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(claims.UserID, conn, h.manager)
	h.manager.register <- client

	go client.writePump()
	go client.readPump()
}
