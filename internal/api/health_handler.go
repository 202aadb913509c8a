package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"stargazer/exercise-tracker/internal/repository"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers the greeting and health probes.
type HealthHandler struct {
	store repository.Store
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store repository.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Hello answers the fixed API greeting.
func (h *HealthHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"greeting": "hello API"})
}

// Health pings the record store.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Printf("WARN: health check failed: %v", err)
		c.String(http.StatusServiceUnavailable, "store unreachable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
