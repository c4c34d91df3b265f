package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CommissionRate is the active fractional commission rate for one role within
// a tenant.
type CommissionRate struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_rates_tenant_role" json:"tenant_id"`
	Role      enum.EmployeeRole `gorm:"size:50;not null;uniqueIndex:idx_rates_tenant_role" json:"role"`
	Rate      float64           `gorm:"not null;check:rate >= 0 AND rate <= 1" json:"rate"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new commission rate
func (r *CommissionRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CommissionRate model
func (CommissionRate) TableName() string {
	return "commission_rates"
}

// RateTable maps roles to commission rates for one tenant. Built once per
// request and handed to the allocator as an immutable value.
type RateTable map[enum.EmployeeRole]float64

// NewRateTable builds a rate table from the tenant's commission rate rows.
func NewRateTable(rates []CommissionRate) RateTable {
	table := make(RateTable, len(rates))
	for _, r := range rates {
		table[r.Role] = r.Rate
	}
	return table
}

// Rate returns the rate for a role. A missing role earns rate 0; that is a
// configuration state, not an error.
func (t RateTable) Rate(role enum.EmployeeRole) float64 {
	return t[role]
}
