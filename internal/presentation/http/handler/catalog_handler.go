package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk-api/internal/application/service"
	"github.com/salesdesk/salesdesk-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles catalog-related HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles loading the full catalog
func (h *CatalogHandler) List(c *gin.Context) {
	services, err := h.catalogService.Load(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog retrieved successfully", services)
}

// Search handles catalog name suggestions. A blank query returns an
// empty list so the suggestion panel stays hidden.
func (h *CatalogHandler) Search(c *gin.Context) {
	services, err := h.catalogService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Search results retrieved successfully", services)
}

// Get handles fetching one catalog entry, used to populate a sale
// draft when a suggestion is selected
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service id")
		return
	}

	detail, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", detail)
}
