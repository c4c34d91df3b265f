package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tmaina/autoshop-api/internal/application/service"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/request"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/response"
)

// RateHandler handles commission rate configuration HTTP requests
type RateHandler struct {
	commissionService *service.CommissionService
}

// NewRateHandler creates a new rate handler
func NewRateHandler(commissionService *service.CommissionService) *RateHandler {
	return &RateHandler{commissionService: commissionService}
}

// List handles listing the tenant's commission rates
func (h *RateHandler) List(c *gin.Context) {
	rates, err := h.commissionService.ListRates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission rates retrieved successfully", rates)
}

// Set handles configuring the commission rate for one role
func (h *RateHandler) Set(c *gin.Context) {
	var req request.SetCommissionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rate, err := h.commissionService.SetRate(c.Request.Context(), c.Param("role"), req.Rate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission rate updated successfully", rate)
}
