package httpapi

import (
	"net/http"

	"devpulse/internal/models"

	"github.com/gin-gonic/gin"
)

type syncRequest struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (h *Handler) SyncRepository(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	res, err := h.services.Ingest.SyncRepository(c.Request.Context(), req.Owner, req.Name)
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	respondData(c, http.StatusCreated, SyncResultDTO{
		Repository:   toRepositoryDTO(res.Repository),
		Commits:      res.Commits,
		PullRequests: res.PullRequests,
		Issues:       res.Issues,
	})
}

func (h *Handler) ListRepositories(c *gin.Context) {
	repos, err := h.services.Ingest.ListRepositories(c.Request.Context())
	if err != nil {
		h.writeSerErr(c, err)
		return
	}

	out := make([]RepositoryDTO, 0, len(repos))
	for i := range repos {
		out = append(out, toRepositoryDTO(&repos[i]))
	}

	respondData(c, http.StatusOK, gin.H{"repositories": out})
}

func toRepositoryDTO(r *models.Repository) RepositoryDTO {
	return RepositoryDTO{
		ID:           r.ID,
		Owner:        r.Owner,
		Name:         r.Name,
		FullName:     r.FullName,
		URL:          r.URL,
		Private:      r.Private,
		Stars:        r.Stars,
		Forks:        r.Forks,
		OpenIssues:   r.OpenIssues,
		LastSyncedAt: r.LastSyncedAt,
	}
}
