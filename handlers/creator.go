package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"mentionmates/database"
	"mentionmates/models"

	"github.com/gin-gonic/gin"
)

// CreateCreator registers a creator and then generates their matches. A
// failed generation does not undo the registration; it is reported through
// the X-Match-Generation header instead.
func (h *Handler) CreateCreator(c *gin.Context) {
	var req models.NewCreator
	if !bindJSON(c, &req) {
		return
	}

	creator, err := h.store.CreateCreator(req)
	if errors.Is(err, database.ErrEmailTaken) {
		respondValidation(c, []fieldError{{Field: "email", Message: "is already registered"}})
		return
	}
	if err != nil {
		respondInternal(c, "Failed to create creator", err)
		return
	}
	slog.Info("✅ Creator registered", "creator_id", creator.ID, "niche", creator.Niche)

	if _, err := h.matcher.Generate(creator.ID); err != nil {
		slog.Error("❌ Match generation failed", "creator_id", creator.ID, "error", err)
		c.Header("X-Match-Generation", "failed")
	}

	c.JSON(http.StatusOK, creator)
}

func (h *Handler) ListCreators(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetAllCreators())
}

func (h *Handler) GetCreator(c *gin.Context) {
	creator, err := h.store.GetCreator(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "Creator")
		return
	}
	if err != nil {
		respondInternal(c, "Failed to fetch creator", err)
		return
	}
	c.JSON(http.StatusOK, creator)
}

func (h *Handler) UpdateCreator(c *gin.Context) {
	var req models.CreatorUpdate
	if !bindJSON(c, &req) {
		return
	}

	creator, err := h.store.UpdateCreator(c.Param("id"), req)
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, "Creator")
		return
	case errors.Is(err, database.ErrEmailTaken):
		respondValidation(c, []fieldError{{Field: "email", Message: "is already registered"}})
		return
	case err != nil:
		respondInternal(c, "Failed to update creator", err)
		return
	}
	c.JSON(http.StatusOK, creator)
}

// GetMatches returns the stored matches for a creator, best first. Unknown
// creators simply have no matches.
func (h *Handler) GetMatches(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetTopMatchesForCreator(c.Param("id"), queryLimit(c)))
}

func (h *Handler) GetSuggestions(c *gin.Context) {
	suggestions, err := h.matcher.Suggest(c.Param("id"), queryLimit(c))
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "Creator")
		return
	}
	if err != nil {
		respondInternal(c, "Failed to compute suggestions", err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}
