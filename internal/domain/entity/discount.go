package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Discount is a named percentage discount the register can apply to a cart.
// Read-only reference data for the settlement engine.
type Discount struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Percentage float64        `gorm:"not null;check:percentage >= 0 AND percentage <= 1" json:"percentage"`
	Active     bool           `gorm:"default:true" json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new discount
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}
