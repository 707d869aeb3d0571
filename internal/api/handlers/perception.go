package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/perception"
	"github.com/your-org/vibecheck/internal/storage"
	"github.com/your-org/vibecheck/pkg/dto"
)

type PerceptionHandler struct {
	db         *storage.PostgresStore
	aggregator *perception.Aggregator
}

func NewPerceptionHandler(db *storage.PostgresStore) *PerceptionHandler {
	return &PerceptionHandler{db: db, aggregator: perception.NewAggregator(db)}
}

// Profile assembles the full perception view of one media item.
func (h *PerceptionHandler) Profile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	profile, err := h.aggregator.BuildProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Vibe returns the stored vibe analysis for one media item.
func (h *PerceptionHandler) Vibe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	media, err := h.db.GetMedia(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if media == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}
	if media.Metadata.VibeAnalysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no vibe analysis yet"})
		return
	}

	c.JSON(http.StatusOK, media.Metadata.VibeAnalysis)
}

// Similar finds the closest media by embedding distance.
func (h *PerceptionHandler) Similar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	limit := 5
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 50 {
		limit = l
	}

	media, err := h.db.GetMedia(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if media == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}
	if media.Metadata.Embedding == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media has no embedding"})
		return
	}

	matches, err := h.db.SimilarMedia(c.Request.Context(), media.Metadata.Embedding, media.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.SimilarMediaResponse{Matches: make([]dto.MediaMatch, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, dto.MediaMatch{
			MediaID: m.MediaID,
			UserID:  m.UserID,
			Score:   m.Score,
		})
	}
	c.JSON(http.StatusOK, resp)
}
