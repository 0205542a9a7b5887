package handlers

import (
	"errors"
	"net/http"

	"mentionmates/database"
	"mentionmates/models"

	"github.com/gin-gonic/gin"
)

// GetMessages returns the conversation between two creators, oldest first.
func (h *Handler) GetMessages(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetMessagesBetween(c.Param("creator1"), c.Param("creator2")))
}

// SendMessage stores a message and pushes it to the recipient over the
// WebSocket relay when they are connected.
func (h *Handler) SendMessage(c *gin.Context) {
	var req models.NewMessage
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.relay.Relay(c.Request.Context(), req)
	if err != nil && msg.ID == "" {
		respondInternal(c, "Failed to send message", err)
		return
	}
	// The message is stored; a delivery hiccup only means the recipient
	// reads it from history.
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) MarkMessageRead(c *gin.Context) {
	err := h.store.MarkMessageRead(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "Message")
		return
	}
	if err != nil {
		respondInternal(c, "Failed to mark message as read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}
