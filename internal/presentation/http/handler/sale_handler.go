package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/application/service"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/request"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/response"
	"github.com/tmaina/autoshop-api/pkg/pagination"
)

// SaleHandler handles register sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles completing a register sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CompleteSaleRequest
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

	input := &service.CompleteSaleInput{
		EmployeeID:    employeeID,
		InvoiceNo:     req.InvoiceNo,
		CustomerRef:   req.CustomerRef,
		DiscountID:    req.DiscountID,
		LoyaltyAction: enum.LoyaltyAction(req.LoyaltyAction),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.SaleItemInput{
			CatalogItemID: item.CatalogItemID,
			Name:          item.Name,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
		})
	}

	sale, err := h.saleService.CompleteSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", sale)
}

// Get handles retrieving a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing sales with filtering and pagination
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if employeeIDStr := c.Query("employee_id"); employeeIDStr != "" {
		if employeeID, err := uuid.Parse(employeeIDStr); err == nil {
			params.EmployeeID = &employeeID
		}
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	params.Pagination.Validate()
	sales, total, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}
