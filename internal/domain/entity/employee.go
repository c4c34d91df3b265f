package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Employee represents a staff member who rings up sales and earns commission
type Employee struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	FirstName string            `gorm:"size:255;not null" json:"first_name"`
	LastName  string            `gorm:"size:255" json:"last_name"`
	Email     string            `gorm:"size:255;unique;not null" json:"email"`
	PINHash   string            `gorm:"size:255" json:"-"`
	Role      enum.EmployeeRole `gorm:"size:50;not null" json:"role"`
	Active    bool              `gorm:"default:true" json:"active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// DisplayName returns the employee's full name for report rows
func (e *Employee) DisplayName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
