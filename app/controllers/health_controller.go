package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bilemo/api/pkg/ctx"
)

const healthTimeout = 2 * time.Second

// HealthController answers GET /health.
type HealthController struct {
	ping func(context.Context) error
}

// NewHealthController checks the database with ping.
func NewHealthController(ping func(context.Context) error) *HealthController {
	return &HealthController{ping: ping}
}

func (c *HealthController) Check(cx *ctx.Context) {
	pctx, cancel := context.WithTimeout(cx.Context(), healthTimeout)
	defer cancel()

	if err := c.ping(pctx); err != nil {
		cx.Logger().Warn("health check failed", zap.Error(err))
		cx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
		return
	}
	cx.JSON(http.StatusOK, map[string]string{"status": "ok", "database": "up"})
}
