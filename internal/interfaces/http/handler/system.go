package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db        *gorm.DB
	appName   string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB, appName string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		appName:   appName,
		startedAt: time.Now(),
	}
}

// Health reports liveness
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.appName,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready reports readiness, including database connectivity
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  "database unreachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
