package handler

import (
	"context"
	"net/http"
	"time"

	"localwear-be/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	reg *metrics.Registry
}

func NewHealthHandler(db Pinger, reg *metrics.Registry) *HealthHandler {
	return &HealthHandler{db: db, reg: reg}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "OK", http.StatusOK
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			status, code = "DEGRADED", http.StatusServiceUnavailable
		}
	}

	snap := h.reg.Snapshot()
	c.JSON(code, gin.H{
		"status":       status,
		"ordersPlaced": snap.OrdersPlaced,
		"requests":     snap.Requests,
		"uptime":       snap.Uptime,
	})
}
