package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/salesdesk/salesdesk-api/internal/application/service"
	"github.com/salesdesk/salesdesk-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	filter := ParseSaleFilter(c)
	sortBy := c.DefaultQuery("sort_by", service.RollupSortQuantity)
	sortOrder := c.DefaultQuery("sort_order", "desc")

	stats := h.dashboardService.GetStats(filter, sortBy, sortOrder)

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
