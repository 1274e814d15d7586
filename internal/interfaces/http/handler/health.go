package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/flamenca/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler handles health and liveness endpoints
type HealthHandler struct {
	BaseHandler
	db        *gorm.DB
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
	Database  string `json:"database" example:"up"`
}

// Health godoc
// @Summary  Health check
// @Tags     system
// @Router   /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Database:  "up",
	}

	status := http.StatusOK
	if err := h.pingDatabase(c); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, dto.NewSuccessResponse(resp))
}

func (h *HealthHandler) pingDatabase(c *gin.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}
