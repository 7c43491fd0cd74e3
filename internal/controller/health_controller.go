package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-gateway/internal/database"
	"catalog-gateway/internal/middleware"
	"catalog-gateway/internal/model"
	"catalog-gateway/internal/repository"
)

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	DataSources int       `json:"datasources"`
}

// HealthController reports liveness and per-datasource connectivity.
type HealthController struct {
	repo    repository.DataSourceRepository
	checker *database.HealthChecker
	version string
}

// NewHealthController creates a new HealthController.
func NewHealthController(repo repository.DataSourceRepository, checker *database.HealthChecker, version string) *HealthController {
	return &HealthController{
		repo:    repo,
		checker: checker,
		version: version,
	}
}

// HealthCheck reports process liveness without touching any data source.
func (hc *HealthController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now(),
		Service:     "catalog-gateway",
		Version:     hc.version,
		DataSources: hc.repo.Count(c.Request.Context()),
	})
}

// DatabaseHealth probes every configured data source and reports per-source
// results. Returns 503 when any source is unreachable.
func (hc *HealthController) DatabaseHealth(c *gin.Context) {
	ctx := c.Request.Context()

	sources, err := hc.repo.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := hc.checker.CheckAll(ctx, sources)
	for _, r := range summary.Results {
		middleware.UpdateDataSourceUp(r.Label, r.DatabaseType, r.Status == "healthy")
		status := model.DataSourceStatusActive
		if r.Status != "healthy" {
			status = model.DataSourceStatusError
		}
		hc.repo.SetStatus(ctx, r.Label, status)
	}

	statusCode := http.StatusOK
	if summary.Unhealthy > 0 {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, summary)
}
