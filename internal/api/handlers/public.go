package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/vibecheck/internal/config"
	"github.com/your-org/vibecheck/internal/storage"
)

// PublicHandler serves the surfaces visible across users: the recent feed and
// the percentile leaderboard. Both only ever include opted-in users.
type PublicHandler struct {
	db  *storage.PostgresStore
	cfg config.HistoryConfig
}

func NewPublicHandler(db *storage.PostgresStore, cfg config.HistoryConfig) *PublicHandler {
	return &PublicHandler{db: db, cfg: cfg}
}

func (h *PublicHandler) Feed(c *gin.Context) {
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	items, err := h.db.Feed(c.Request.Context(), limit, h.cfg.FeedWindowDays)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *PublicHandler) Leaderboard(c *gin.Context) {
	limit := 10
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	entries, err := h.db.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}
