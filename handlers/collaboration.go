package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"mentionmates/database"
	"mentionmates/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCollaboration(c *gin.Context) {
	var req models.NewCollaboration
	if !bindJSON(c, &req) {
		return
	}

	collab := h.store.CreateCollaboration(req)
	slog.Info("🤝 Collaboration requested",
		"collaboration_id", collab.ID,
		"requester_id", collab.RequesterID,
		"recipient_id", collab.RecipientID,
		"type", collab.Type,
	)
	c.JSON(http.StatusOK, collab)
}

func (h *Handler) ListCollaborations(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetCollaborationsByCreator(c.Param("id")))
}

// UpdateCollaborationStatus accepts any status string; the lifecycle is not
// enforced.
func (h *Handler) UpdateCollaborationStatus(c *gin.Context) {
	var req models.StatusUpdate
	if !bindJSON(c, &req) {
		return
	}

	collab, err := h.store.UpdateCollaborationStatus(c.Param("id"), req.Status)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "Collaboration")
		return
	}
	if err != nil {
		respondInternal(c, "Failed to update collaboration", err)
		return
	}
	c.JSON(http.StatusOK, collab)
}
