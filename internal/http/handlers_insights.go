package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetInsightSummary(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		badRequest(c, "user_id is required")
		return
	}
	days := windowDays(c)
	if days < 0 {
		badRequest(c, "days must be a non-negative integer")
		return
	}

	insight, err := h.services.Insights.Summary(c.Request.Context(), userID, days)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, InsightDTO{
		UserID:      insight.UserID,
		WindowDays:  insight.WindowDays,
		Summary:     insight.Summary,
		GeneratedAt: insight.GeneratedAt,
	})
}
