package httpapi

import (
	"net/http"

	"devpulse/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetMode(c *gin.Context) {
	mode, err := h.services.Mode.Get(c.Request.Context())
	if err != nil {
		h.writeSerErr(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"mode": string(mode)})
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) SetMode(c *gin.Context) {
	var req setModeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Mode == "" {
		badRequest(c, "mode is required")
		return
	}

	actor := currentUser(c)
	mode, err := h.services.Mode.Set(c.Request.Context(), models.Mode(req.Mode), actor.ID)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"mode": string(mode)})
}
