package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/antaeus/billing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	db        Pinger
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler. A nil db skips the readiness check.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now()}
}

// RegisterRoutes mounts /health and /ready
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health godoc
// @ID           health
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {string} string "ok"
// @Router       /rest/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, "ok")
}

// ReadyResponse reports dependency status
type ReadyResponse struct {
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// Ready godoc
// @ID           ready
// @Summary      Readiness probe
// @Description  Check that the database answers a ping
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=ReadyResponse}
// @Failure      503 {object} dto.Response
// @Router       /rest/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	resp := ReadyResponse{
		Database: "skipped",
		Uptime:   time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		errCh := make(chan error, 1)
		go func() { errCh <- h.db.Ping() }()
		select {
		case err := <-errCh:
			if err != nil {
				_ = c.Error(err)
				h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "database unreachable")
				return
			}
		case <-ctx.Done():
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "database ping timed out")
			return
		}
		resp.Database = "ok"
	}
	h.Success(c, resp)
}
