package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/social"
)

type SocialHandler struct {
	graph *social.Graph
}

func NewSocialHandler(graph *social.Graph) *SocialHandler {
	return &SocialHandler{graph: graph}
}

// Graph runs (or re-runs) the social ranking for one user. 403 when the user
// has not opted into public analysis, 404 when there is nothing to rank.
func (h *SocialHandler) Graph(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	result, err := h.graph.Analyze(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
