package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tmaina/autoshop-api/internal/application/service"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/request"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/response"
)

// DiscountHandler handles discount HTTP requests
type DiscountHandler struct {
	discountService *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// Create handles creating a discount
func (h *DiscountHandler) Create(c *gin.Context) {
	var req request.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	discount, err := h.discountService.CreateDiscount(c.Request.Context(), &service.CreateDiscountInput{
		Name:       req.Name,
		Percentage: req.Percentage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount created successfully", discount)
}

// List handles listing discounts
func (h *DiscountHandler) List(c *gin.Context) {
	discounts, err := h.discountService.ListDiscounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discounts retrieved successfully", discounts)
}
