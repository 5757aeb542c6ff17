package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/nexuspdv/pdv-api/internal/application/service"
	"github.com/nexuspdv/pdv-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	metricsService *service.MetricsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(metricsService *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{metricsService: metricsService}
}

// GetKPIs handles retrieving the headline store indicators
func (h *DashboardHandler) GetKPIs(c *gin.Context) {
	kpis, err := h.metricsService.ComputeKPIs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "KPIs retrieved successfully", kpis)
}

// GetStats handles retrieving the full dashboard payload
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.metricsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
