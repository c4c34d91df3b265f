package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/application/service"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/request"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/response"
	"github.com/tmaina/autoshop-api/pkg/pagination"
)

// ManualSaleHandler handles manual employee sale HTTP requests
type ManualSaleHandler struct {
	manualSaleService *service.ManualSaleService
}

// NewManualSaleHandler creates a new manual sale handler
func NewManualSaleHandler(manualSaleService *service.ManualSaleService) *ManualSaleHandler {
	return &ManualSaleHandler{manualSaleService: manualSaleService}
}

// Create handles recording a manual employee sale
func (h *ManualSaleHandler) Create(c *gin.Context) {
	var req request.CreateManualSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employeeID := req.EmployeeID
	if employeeID == uuid.Nil {
		if tokenID := GetEmployeeID(c); tokenID != nil {
			employeeID = *tokenID
		}
	}

	sale, err := h.manualSaleService.CreateManualSale(c.Request.Context(), &service.CreateManualSaleInput{
		EmployeeID:  employeeID,
		InvoiceNo:   req.InvoiceNo,
		Amount:      req.Amount,
		Notes:       req.Notes,
		ProfitTotal: req.ProfitTotal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Manual sale recorded successfully", sale)
}

// List handles listing manual sales with pagination
func (h *ManualSaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}
	params.Pagination.Validate()

	sales, total, err := h.manualSaleService.ListManualSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Manual sales retrieved successfully", result)
}
