package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tmaina/autoshop-api/internal/application/service"
	"github.com/tmaina/autoshop-api/internal/presentation/http/dto/response"
)

// ReportHandler handles settlement report HTTP requests
type ReportHandler struct {
	settlementService *service.SettlementService
}

// NewReportHandler creates a new report handler
func NewReportHandler(settlementService *service.SettlementService) *ReportHandler {
	return &ReportHandler{settlementService: settlementService}
}

// Settlement handles the all-time per-employee settlement report
func (h *ReportHandler) Settlement(c *gin.Context) {
	rows, err := h.settlementService.AllTime(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement report retrieved successfully", rows)
}

// Weekly handles the rolling weekly settlement report. The weeks query
// parameter overrides the tenant's configured range.
func (h *ReportHandler) Weekly(c *gin.Context) {
	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "0"))

	buckets, err := h.settlementService.Weekly(c.Request.Context(), weeks)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Weekly settlement report retrieved successfully", buckets)
}
