package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/pkg/pagination"
)

// SaleRepository defines the interface for register sale data operations
type SaleRepository interface {
	// Create persists a sale together with its line items.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// AllWithItems returns every sale (with line items and employee) created
	// at or after from; a nil from returns the full history.
	AllWithItems(ctx context.Context, from *time.Time) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	EmployeeID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ManualSaleRepository defines the interface for manual employee sale data
// operations
type ManualSaleRepository interface {
	Create(ctx context.Context, sale *entity.ManualSale) error
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.ManualSale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.ManualSale, int64, error)
	// All returns every manual sale (with employee) created at or after from;
	// a nil from returns the full history.
	All(ctx context.Context, from *time.Time) ([]entity.ManualSale, error)
}
