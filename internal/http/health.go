package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HealthChecker reports storage connectivity and size.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (totalLibraries int64, totalBooks int64, err error)
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Counts  map[string]int64  `json:"counts,omitempty"`
}

type HealthController struct {
	db      HealthChecker
	version string
}

func NewHealthController(db HealthChecker, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status handles GET /health
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	var counts map[string]int64
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	// Check database connectivity
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			log.Error().Err(err).Str("request_id", RequestID(c)).Msg("Health check: database ping failed")
			checks["database"] = "error"
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
			if libraries, books, err := h.db.Stats(ctx); err == nil {
				counts = map[string]int64{"libraries": libraries, "books": books}
			}
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
		Counts:  counts,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// Ping handles GET /ping
func (h *HealthController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
