package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
)

// DiscountRepository defines the interface for discount reference data
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
	List(ctx context.Context) ([]entity.Discount, error)
}

// CommissionRateRepository defines the interface for per-role commission
// rate configuration
type CommissionRateRepository interface {
	ListByTenant(ctx context.Context) ([]entity.CommissionRate, error)
	Upsert(ctx context.Context, role enum.EmployeeRole, rate float64) (*entity.CommissionRate, error)
}

// EmployeeRepository defines the interface for employee data
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	List(ctx context.Context) ([]entity.Employee, error)
}

// CatalogRepository defines the interface for catalog items
type CatalogRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.CatalogItem, error)
	List(ctx context.Context) ([]entity.CatalogItem, error)
}

// TenantRepository defines the interface for tenant lookups
type TenantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
}

// IdempotencyRepository defines the interface for idempotency key storage
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, employeeID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, key *entity.IdempotencyKey) error
}
