package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogItem is a part or service a tenant sells. Per-item profit and the
// optional per-unit flat commission override feed the allocator when the item
// ends up on a sale.
type CatalogItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	UnitPrice     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	ProfitPerUnit *int64         `json:"-"`                 // Stored in cents, excluded from JSON
	FlatOverride  *int64         `json:"-"`                 // Per-unit commission override in cents
	Active        bool           `gorm:"default:true" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ci CatalogItem) MarshalJSON() ([]byte, error) {
	type Alias CatalogItem
	out := &struct {
		Alias
		UnitPrice     float64  `json:"unit_price"`
		ProfitPerUnit *float64 `json:"profit_per_unit,omitempty"`
		FlatOverride  *float64 `json:"commission_flat_override,omitempty"`
	}{
		Alias:     Alias(ci),
		UnitPrice: float64(ci.UnitPrice) / 100,
	}
	if ci.ProfitPerUnit != nil {
		v := float64(*ci.ProfitPerUnit) / 100
		out.ProfitPerUnit = &v
	}
	if ci.FlatOverride != nil {
		v := float64(*ci.FlatOverride) / 100
		out.FlatOverride = &v
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new catalog item
func (ci *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CatalogItem model
func (CatalogItem) TableName() string {
	return "catalog_items"
}
