package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk-api/internal/application/service"
	"github.com/salesdesk/salesdesk-api/internal/domain/enum"
	"github.com/salesdesk/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/salesdesk/salesdesk-api/internal/presentation/http/dto/response"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService      *service.SaleService
	dashboardService *service.DashboardService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, dashboardService *service.DashboardService) *SaleHandler {
	return &SaleHandler{
		saleService:      saleService,
		dashboardService: dashboardService,
	}
}

// Quote handles a pricing preview for a sale draft. The returned
// discount is the clamped value: entering a discount above the total
// snaps it back to the total and floors the final price at zero.
func (h *SaleHandler) Quote(c *gin.Context) {
	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote := service.ComputeQuote(req.UnitPrice, req.Quantity, req.Discount)
	response.OK(c, "Quote computed successfully", quote)
}

// Create handles sale submission
// @Summary Record a sale
// @Description Validate and persist one sale, then trigger the invoice notification when a phone number was supplied
// @Tags sales
// @Accept json
// @Produce json
// @Param request body request.CreateSaleRequest true "Sale data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	serviceID, err := uuid.Parse(req.ServiceDetailID)
	if err != nil {
		response.BadRequest(c, "Invalid service id")
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		ServiceDetailID: serviceID,
		Quantity:        req.Quantity,
		Discount:        req.Discount,
		CustomerPhone:   req.CustomerPhone,
		PaymentMethod:   enum.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}

// List handles listing filtered transactions with their totals and
// the per-product rollup
func (h *SaleHandler) List(c *gin.Context) {
	filter := ParseSaleFilter(c)
	sortBy := c.DefaultQuery("sort_by", service.RollupSortQuantity)
	sortOrder := c.DefaultQuery("sort_order", "desc")

	sales, summary := h.dashboardService.ListSales(filter)

	response.OK(c, "Sales retrieved successfully", gin.H{
		"sales":    sales,
		"summary":  summary,
		"products": service.RollupByProduct(sales, sortBy, sortOrder),
	})
}
