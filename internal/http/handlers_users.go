package httpapi

import (
	"net/http"

	"devpulse/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) forbidUnlessSelf(c *gin.Context, userID string) bool {
	if canAccessUser(c, userID) {
		return false
	}
	respondError(c, http.StatusForbidden, string(service.ErrorCodeForbidden), "access denied")
	return true
}

func (h *Handler) GetSettings(c *gin.Context) {
	userID := c.Param("id")
	if h.forbidUnlessSelf(c, userID) {
		return
	}

	settings, err := h.services.Users.GetSettings(c.Request.Context(), userID)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, SettingsDTO{
		WorkdayStartHour:  settings.WorkdayStartHour,
		WorkdayEndHour:    settings.WorkdayEndHour,
		LateNightStart:    settings.LateNightStart,
		NotificationsOn:   settings.NotificationsOn,
		Theme:             settings.Theme,
		WeeklyReportEmail: settings.WeeklyReportEmail,
	})
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	userID := c.Param("id")
	if h.forbidUnlessSelf(c, userID) {
		return
	}

	var req SettingsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	settings, err := h.services.Users.UpdateSettings(c.Request.Context(), userID, service.SettingsInput{
		WorkdayStartHour:  req.WorkdayStartHour,
		WorkdayEndHour:    req.WorkdayEndHour,
		LateNightStart:    req.LateNightStart,
		NotificationsOn:   req.NotificationsOn,
		Theme:             req.Theme,
		WeeklyReportEmail: req.WeeklyReportEmail,
	})
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, SettingsDTO{
		WorkdayStartHour:  settings.WorkdayStartHour,
		WorkdayEndHour:    settings.WorkdayEndHour,
		LateNightStart:    settings.LateNightStart,
		NotificationsOn:   settings.NotificationsOn,
		Theme:             settings.Theme,
		WeeklyReportEmail: settings.WeeklyReportEmail,
	})
}

type sensitiveValueRequest struct {
	Value string `json:"value"`
}

func (h *Handler) PutSensitive(c *gin.Context) {
	userID := c.Param("id")
	if h.forbidUnlessSelf(c, userID) {
		return
	}

	var req sensitiveValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	actor := currentUser(c)
	err := h.services.Privacy.Store(c.Request.Context(),
		actor.ID, userID, c.Param("type"), c.Param("key"), req.Value)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"stored": true})
}

func (h *Handler) GetSensitive(c *gin.Context) {
	userID := c.Param("id")
	if h.forbidUnlessSelf(c, userID) {
		return
	}

	actor := currentUser(c)
	value, err := h.services.Privacy.Get(c.Request.Context(),
		actor.ID, userID, c.Param("type"), c.Param("key"))
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"data_type": c.Param("type"),
		"data_key":  c.Param("key"),
		"value":     value,
	})
}

func (h *Handler) DeleteSensitive(c *gin.Context) {
	userID := c.Param("id")
	if h.forbidUnlessSelf(c, userID) {
		return
	}

	actor := currentUser(c)
	err := h.services.Privacy.Delete(c.Request.Context(),
		actor.ID, userID, c.Param("type"), c.Param("key"))
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) DeleteUserData(c *gin.Context) {
	userID := c.Param("id")
	if h.forbidUnlessSelf(c, userID) {
		return
	}

	if _, err := h.services.Users.GetUser(c.Request.Context(), userID); err != nil {
		h.writeSerErr(c, err)
		return
	}

	if err := h.services.Privacy.DeleteUserData(c.Request.Context(), userID); err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListAudit(c *gin.Context) {
	userID := c.Param("id")
	if h.forbidUnlessSelf(c, userID) {
		return
	}

	entries, err := h.services.Privacy.ListAudit(c.Request.Context(), userID, 100)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	out := make([]AuditEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryDTO{
			Action:      string(e.Action),
			Resource:    e.Resource,
			ResourceKey: e.ResourceKey,
			CreatedAt:   e.CreatedAt,
		})
	}

	respondData(c, http.StatusOK, gin.H{"audit": out})
}
