package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func windowDays(c *gin.Context) int {
	raw := c.Query("days")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

func (h *Handler) GetProductivity(c *gin.Context) {
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

	report, err := h.services.Analytics.Productivity(c.Request.Context(), userID, days)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	dto := ProductivityDTO{
		UserID:            report.UserID,
		Login:             report.Login,
		WindowStart:       report.WindowStart,
		WindowEnd:         report.WindowEnd,
		Days:              make([]DailyActivityDTO, 0, len(report.Days)),
		TotalCommits:      report.TotalCommits,
		TotalPRs:          report.TotalPRs,
		MergedPRs:         report.MergedPRs,
		ClosedIssues:      report.ClosedIssues,
		AvgDailyCommits:   report.AvgDailyCommits,
		LateNightFraction: report.LateNightFraction,
		WeekendFraction:   report.WeekendFraction,
	}
	for _, d := range report.Days {
		dto.Days = append(dto.Days, DailyActivityDTO{
			Date:         d.Date,
			Commits:      d.Commits,
			PRsOpened:    d.PRsOpened,
			PRsMerged:    d.PRsMerged,
			IssuesClosed: d.IssuesClosed,
		})
	}

	respondData(c, http.StatusOK, dto)
}

func (h *Handler) GetBurnout(c *gin.Context) {
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

	report, err := h.services.Analytics.Burnout(c.Request.Context(), userID, days)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, BurnoutDTO{
		UserID:            report.UserID,
		WindowStart:       report.WindowStart,
		WindowEnd:         report.WindowEnd,
		TotalCommits:      report.TotalCommits,
		LateNightFraction: report.LateNightFraction,
		WeekendFraction:   report.WeekendFraction,
		AvgDailyCommits:   report.AvgDailyCommits,
		ReviewLatencyH:    report.ReviewLatencyH,
		RiskScore:         report.RiskScore,
		RiskLevel:         string(report.RiskLevel),
	})
}

func (h *Handler) GetTeamOverview(c *gin.Context) {
	team := c.Query("team")
	if team == "" {
		badRequest(c, "team is required")
		return
	}
	days := windowDays(c)
	if days < 0 {
		badRequest(c, "days must be a non-negative integer")
		return
	}

	report, err := h.services.Teams.Overview(c.Request.Context(), team, days)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, TeamReportDTO{
		TeamName:           report.TeamName,
		WindowStart:        report.WindowStart,
		WindowEnd:          report.WindowEnd,
		MemberCount:        report.MemberCount,
		CommitCount:        report.CommitCount,
		PRCount:            report.PRCount,
		MergedPRCount:      report.MergedPRCount,
		IssueCount:         report.IssueCount,
		AvgReviewLatencyH:  report.AvgReviewLatencyH,
		CollaborationScore: report.CollaborationScore,
	})
}

func (h *Handler) ListRetrospectives(c *gin.Context) {
	team := c.Query("team")
	if team == "" {
		badRequest(c, "team is required")
		return
	}

	retros, err := h.services.Teams.ListRetrospectives(c.Request.Context(), team, 20)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	out := make([]RetrospectiveDTO, 0, len(retros))
	for _, r := range retros {
		out = append(out, RetrospectiveDTO{
			ID:              r.ID,
			TeamName:        r.TeamName,
			WindowStart:     r.WindowStart,
			WindowEnd:       r.WindowEnd,
			Positives:       r.Positives,
			Improvements:    r.Improvements,
			ActionItems:     r.ActionItems,
			TeamHealthScore: r.TeamHealthScore,
			GeneratedAt:     r.GeneratedAt,
		})
	}

	respondData(c, http.StatusOK, gin.H{"retrospectives": out})
}

type generateRetroRequest struct {
	Team string `json:"team"`
	Days int    `json:"days"`
}

func (h *Handler) GenerateRetrospective(c *gin.Context) {
	var req generateRetroRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Team == "" {
		badRequest(c, "team is required")
		return
	}

	retro, err := h.services.Teams.GenerateRetrospective(c.Request.Context(), req.Team, req.Days)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusCreated, RetrospectiveDTO{
		ID:              retro.ID,
		TeamName:        retro.TeamName,
		WindowStart:     retro.WindowStart,
		WindowEnd:       retro.WindowEnd,
		Positives:       retro.Positives,
		Improvements:    retro.Improvements,
		ActionItems:     retro.ActionItems,
		TeamHealthScore: retro.TeamHealthScore,
		GeneratedAt:     retro.GeneratedAt,
	})
}
