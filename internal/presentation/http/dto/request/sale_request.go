package request

import "github.com/google/uuid"

// SaleItemRequest represents one cart line. Lines referencing a catalog item
// may omit the name and unit price.
type SaleItemRequest struct {
	CatalogItemID *uuid.UUID `json:"catalog_item_id"`
	Name          string     `json:"name"`
	UnitPrice     float64    `json:"unit_price" binding:"gte=0"`
	Quantity      int        `json:"quantity" binding:"required,min=1"`
}

// CompleteSaleRequest represents the complete sale request body. EmployeeID
// may be omitted; it then defaults to the authenticated employee.
type CompleteSaleRequest struct {
	EmployeeID    uuid.UUID         `json:"employee_id"`
	InvoiceNo     string            `json:"invoice_no" binding:"required"`
	CustomerRef   *string           `json:"customer_ref"`
	DiscountID    *uuid.UUID        `json:"discount_id"`
	LoyaltyAction string            `json:"loyalty_action"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateManualSaleRequest represents the create manual sale request body.
// EmployeeID may be omitted; it then defaults to the authenticated employee.
type CreateManualSaleRequest struct {
	EmployeeID  uuid.UUID `json:"employee_id"`
	InvoiceNo   string    `json:"invoice_no" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Notes       string    `json:"notes"`
	ProfitTotal *float64  `json:"profit_total"`
}
