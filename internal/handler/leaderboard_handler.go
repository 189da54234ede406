package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bitshala/admin/internal/models"
	"github.com/Bitshala/admin/pkg/response"
)

type leaderboardService interface {
	Get(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// LeaderboardHandler exposes the cumulative score ranking.
type LeaderboardHandler struct {
	service leaderboardService
}

// NewLeaderboardHandler constructs the handler.
func NewLeaderboardHandler(service leaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// TotalScores godoc
// @Summary Cumulative and exercise-only totals per student
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/total_scores [get]
func (h *LeaderboardHandler) TotalScores(c *gin.Context) {
	entries, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
