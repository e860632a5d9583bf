package handler

import (
	"net/http"

	"github.com/Dibbotcf/Legacyscript/pkg/logger"
	"github.com/Dibbotcf/Legacyscript/service"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	svc *service.Service
}

func NewHealthHandler(svc *service.Service) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Health is a liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DBHealth scans the store and reports record counts
func (h *HealthHandler) DBHealth(c *gin.Context) {
	report, err := h.svc.CheckDB(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "database health check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":   "error",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, report)
}
