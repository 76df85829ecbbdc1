package router

import (
	"net/http"

	"devpulse/api"
	httpapi "devpulse/internal/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func Router(h *httpapi.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/openapi.yml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/x-yaml", api.OpenAPISpec)
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/openapi.yml"),
	))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.RequireAuth(), h.Logout)
	}

	analytics := r.Group("/api/analytics", h.RequireAuth())
	{
		analytics.GET("/productivity", h.GetProductivity)
		analytics.GET("/burnout", h.GetBurnout)
		analytics.GET("/team", h.GetTeamOverview)
		analytics.GET("/retrospectives", h.ListRetrospectives)
		analytics.POST("/retrospectives", h.GenerateRetrospective)
	}

	insights := r.Group("/api/insights", h.RequireAuth())
	{
		insights.GET("/summary", h.GetInsightSummary)
	}

	users := r.Group("/api/users/:id", h.RequireAuth())
	{
		users.GET("/settings", h.GetSettings)
		users.PUT("/settings", h.UpdateSettings)
		users.GET("/sensitive/:type/:key", h.GetSensitive)
		users.PUT("/sensitive/:type/:key", h.PutSensitive)
		users.DELETE("/sensitive/:type/:key", h.DeleteSensitive)
		users.GET("/audit", h.ListAudit)
		users.DELETE("/data", h.DeleteUserData)
	}

	github := r.Group("/api/github", h.RequireAuth())
	{
		github.POST("/sync", h.SyncRepository)
		github.GET("/repositories", h.ListRepositories)
	}

	admin := r.Group("/api/admin", h.RequireAuth(), h.RequireAdmin())
	{
		admin.GET("/mode", h.GetMode)
		admin.PUT("/mode", h.SetMode)
	}

	return r
}
