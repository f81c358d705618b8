package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is anything readiness can probe.
// I keep it local to the handler package so Redis and Postgres plug in the same way.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Check is one named readiness dependency.
type Check struct {
	Name   string
	Pinger Pinger
}

// HealthHandler exposes liveness and readiness endpoints.
type HealthHandler struct {
	checks []Check
}

func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness pings every dependency and reports the first failure.
func (h *HealthHandler) Readiness(c *gin.Context) {
	for _, chk := range h.checks {
		if chk.Pinger == nil {
			continue
		}
		if err := chk.Pinger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "unavailable",
				"dependency": chk.Name,
				"error":      err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
