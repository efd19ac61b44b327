package controllers

import (
	"github.com/gin-gonic/gin"

	"employee-management-service/internal/error/code"
	"employee-management-service/internal/error/response"
	"employee-management-service/internal/infrastructure/database"
)

// HealthCheckController reports service liveness
type HealthCheckController struct {
	Pool *database.ConnectionPool
}

// NewHealthCheckController creates a health check controller instance
func NewHealthCheckController(pool *database.ConnectionPool) *HealthCheckController {
	return &HealthCheckController{Pool: pool}
}

// Ping responds without touching any dependency
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /ping [get]
func (h *HealthCheckController) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Status reports database health and pool statistics
// @Summary      Readiness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /health [get]
func (h *HealthCheckController) Status(c *gin.Context) {
	if h.Pool != nil {
		if err := h.Pool.HealthCheck(); err != nil {
			response.FailWithMessage(c, code.ErrDatabase, "Database unreachable: "+err.Error(), nil)
			return
		}
		stats, err := h.Pool.Stats()
		if err != nil {
			response.FailWithMessage(c, code.ErrDatabase, "Failed to read pool statistics: "+err.Error(), nil)
			return
		}
		response.Success(c, gin.H{
			"status":   "healthy",
			"database": stats,
		})
		return
	}

	response.Success(c, gin.H{"status": "healthy"})
}
