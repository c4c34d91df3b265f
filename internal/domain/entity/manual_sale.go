package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ManualSale is a sale recorded directly against an employee, with no line
// items. The settlement figures that the old system smuggled into the notes
// text as key=value tokens live in dedicated columns here; pkg/notes decodes
// rows migrated from the old format.
type ManualSale struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_manual_sales_tenant_invoice" json:"tenant_id"`
	EmployeeID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	InvoiceNo       string         `gorm:"size:100;not null;uniqueIndex:idx_manual_sales_tenant_invoice" json:"invoice_no"`
	Amount          int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Notes           string         `gorm:"type:text" json:"notes"`
	ProfitTotal     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CommissionTotal int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CommissionBase  int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m ManualSale) MarshalJSON() ([]byte, error) {
	type Alias ManualSale
	return json.Marshal(&struct {
		Alias
		Amount          float64 `json:"amount"`
		ProfitTotal     float64 `json:"profit_total"`
		CommissionTotal float64 `json:"commission_total"`
		CommissionBase  float64 `json:"commission_base"`
	}{
		Alias:           Alias(m),
		Amount:          float64(m.Amount) / 100,
		ProfitTotal:     float64(m.ProfitTotal) / 100,
		CommissionTotal: float64(m.CommissionTotal) / 100,
		CommissionBase:  float64(m.CommissionBase) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new manual sale
func (m *ManualSale) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ManualSale model
func (ManualSale) TableName() string {
	return "manual_sales"
}
