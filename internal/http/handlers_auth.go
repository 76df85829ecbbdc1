package httpapi

import (
	"net/http"

	"devpulse/internal/models"
	"devpulse/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	TeamName string `json:"team_name"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	u, err := h.services.Auth.Register(c.Request.Context(), service.RegisterInput{
		Login:    req.Login,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		TeamName: req.TeamName,
	})
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"user": toUserDTO(u)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		badRequest(c, "invalid request body")
		return
	}

	out, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusOK, SessionDTO{
		Token:     out.Token,
		ExpiresAt: out.ExpiresAt,
		User:      toUserDTO(out.User),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if err := h.services.Auth.Logout(c.Request.Context(), token); err != nil {
		h.writeSerErr(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"logged_out": true})
}

func toUserDTO(u *models.User) UserDTO {
	return UserDTO{
		UserID:   u.ID,
		Login:    u.Login,
		Name:     u.Name,
		Email:    u.Email,
		TeamName: u.TeamName,
		IsActive: u.IsActive,
		IsAdmin:  u.IsAdmin,
	}
}
