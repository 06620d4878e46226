package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"change-ops-api/internal/response"
	"change-ops-api/internal/service"
)

// StatsHandler handles dashboard and analytics endpoints
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetDashboardStats godoc
// @Summary      Dashboard aggregate
// @Description  Per-status counters plus recent activity lists. May serve a snapshot up to 30 seconds old.
// @Tags         analytics
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.DashboardStats}
// @Router       /dashboard/stats [get]
func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	result, err := h.statsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetMonthlyTrends godoc
// @Summary      Monthly change outcome trend
// @Description  Twelve calendar-month buckets, oldest first, zero-filled
// @Tags         analytics
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.MonthlyTrend}
// @Router       /analytics/monthly-trends [get]
func (h *StatsHandler) GetMonthlyTrends(c *gin.Context) {
	result, err := h.statsService.GetMonthlyTrends(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetSuccessRate returns execution outcome percentages
func (h *StatsHandler) GetSuccessRate(c *gin.Context) {
	result, err := h.statsService.GetSuccessRate(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetTopAffectedSystems returns the five most changed systems
func (h *StatsHandler) GetTopAffectedSystems(c *gin.Context) {
	result, err := h.statsService.GetTopAffectedSystems(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
