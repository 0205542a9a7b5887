package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"message":           "Mention Mates API is running",
		"time":              time.Now().Unix(),
		"creators":          len(h.store.GetAllCreators()),
		"connected_clients": h.relay.ConnectedClients(),
		"ws":                "WebSocket available at /ws",
	})
}
