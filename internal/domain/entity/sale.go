package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a settled register order. Its money fields are immutable
// once written; there is no edit or void flow.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_sales_tenant_invoice" json:"tenant_id"`
	EmployeeID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"employee_id"`
	CustomerRef   *string            `gorm:"size:100;index" json:"customer_ref,omitempty"`
	InvoiceNo     string             `gorm:"size:100;not null;uniqueIndex:idx_sales_tenant_invoice" json:"invoice_no"`
	SubTotal      int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Discount      int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total         int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ProfitTotal   int64              `gorm:"default:0" json:"-"` // Discount-adjusted profit in cents
	LoyaltyAction enum.LoyaltyAction `gorm:"size:20;default:'none'" json:"loyalty_action"`
	Status        enum.SaleStatus    `gorm:"default:0" json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Employee Employee   `gorm:"foreignKey:EmployeeID" json:"-"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal    float64 `json:"sub_total"`
		Discount    float64 `json:"discount"`
		Total       float64 `json:"total"`
		ProfitTotal float64 `json:"profit_total"`
	}{
		Alias:       Alias(s),
		SubTotal:    float64(s.SubTotal) / 100,
		Discount:    float64(s.Discount) / 100,
		Total:       float64(s.Total) / 100,
		ProfitTotal: float64(s.ProfitTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// DiscountMultiplier is the ratio of the post-discount total to the
// pre-discount subtotal, clamped into [0,1]. It prorates the cart-level
// discount across line items for commission purposes.
func (s *Sale) DiscountMultiplier() float64 {
	if s.SubTotal <= 0 {
		return 0
	}
	m := float64(s.Total) / float64(s.SubTotal)
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}

// SaleItem represents a line item belonging to exactly one sale. Created
// together with its sale, never mutated independently.
type SaleItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SaleID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"sale_id"`
	CatalogItemID *uuid.UUID `gorm:"type:uuid;index" json:"catalog_item_id,omitempty"`
	ItemName      string     `gorm:"size:255;not null" json:"item_name"`
	Quantity      int        `gorm:"not null" json:"quantity"`
	UnitPrice     int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	LineTotal     int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	ProfitPerUnit *int64     `json:"-"`                 // Stored in cents, excluded from JSON
	FlatOverride  *int64     `json:"-"`                 // Per-unit commission override in cents

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	out := &struct {
		Alias
		UnitPrice     float64  `json:"unit_price"`
		LineTotal     float64  `json:"line_total"`
		ProfitPerUnit *float64 `json:"profit_per_unit,omitempty"`
		FlatOverride  *float64 `json:"commission_flat_override,omitempty"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		LineTotal: float64(si.LineTotal) / 100,
	}
	if si.ProfitPerUnit != nil {
		v := float64(*si.ProfitPerUnit) / 100
		out.ProfitPerUnit = &v
	}
	if si.FlatOverride != nil {
		v := float64(*si.FlatOverride) / 100
		out.FlatOverride = &v
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
