package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tmaina/autoshop-api/internal/application/service"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/response"
)

// LoyaltyHandler handles loyalty ledger HTTP requests
type LoyaltyHandler struct {
	loyaltyService *service.LoyaltyService
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(loyaltyService *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

// Status handles retrieving a customer's stamp progress
func (h *LoyaltyHandler) Status(c *gin.Context) {
	customerRef := c.Param("cid")
	if customerRef == "" {
		response.BadRequest(c, "Customer reference is required")
		return
	}

	status, err := h.loyaltyService.Status(c.Request.Context(), customerRef)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loyalty status retrieved successfully", status)
}
