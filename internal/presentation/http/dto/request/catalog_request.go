package request

// CreateCatalogItemRequest represents the create catalog item request body
type CreateCatalogItemRequest struct {
	Name          string   `json:"name" binding:"required"`
	UnitPrice     float64  `json:"unit_price" binding:"gte=0"`
	ProfitPerUnit *float64 `json:"profit_per_unit"`
	FlatOverride  *float64 `json:"commission_flat_override"`
}

// CreateDiscountRequest represents the create discount request body
type CreateDiscountRequest struct {
	Name       string  `json:"name" binding:"required"`
	Percentage float64 `json:"percentage" binding:"gte=0,lte=1"`
}

// SetCommissionRateRequest represents the set commission rate request body
type SetCommissionRateRequest struct {
	Rate float64 `json:"rate" binding:"gte=0,lte=1"`
}
