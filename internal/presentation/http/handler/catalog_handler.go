package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tmaina/autoshop-api/internal/application/service"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/request"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles catalog item HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create handles creating a catalog item
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.CreateCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.catalogService.CreateCatalogItem(c.Request.Context(), &service.CreateCatalogItemInput{
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		ProfitPerUnit: req.ProfitPerUnit,
		FlatOverride:  req.FlatOverride,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Catalog item created successfully", item)
}

// List handles listing catalog items
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.catalogService.ListCatalogItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog retrieved successfully", items)
}
