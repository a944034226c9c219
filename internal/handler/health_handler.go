package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a HealthHandler. db is nil under local
// coordination; readiness then reports the database check as skipped.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Only the shared coordination database is
// probed; image hosts and cutout providers are third parties and are not.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := gin.H{"coordination_db": "skipped"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			checks["coordination_db"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
			return
		}
		checks["coordination_db"] = "ok"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
