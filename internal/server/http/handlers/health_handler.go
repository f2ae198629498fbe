package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports readiness.
type HealthHandler struct {
	facade HealthFacade
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.Health(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
