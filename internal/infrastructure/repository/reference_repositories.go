package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	domainRepo "github.com/tmaina/autoshop-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	return dbFrom(ctx, r.db).Create(discount).Error
}

func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	var discount entity.Discount
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &discount, err
}

func (r *discountRepository) List(ctx context.Context) ([]entity.Discount, error) {
	var discounts []entity.Discount
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("active = ?", true).
		Order("name ASC").
		Find(&discounts).Error
	return discounts, err
}

type commissionRateRepository struct {
	db *gorm.DB
}

// NewCommissionRateRepository creates a new commission rate repository
func NewCommissionRateRepository(db *gorm.DB) domainRepo.CommissionRateRepository {
	return &commissionRateRepository{db: db}
}

func (r *commissionRateRepository) ListByTenant(ctx context.Context) ([]entity.CommissionRate, error) {
	var rates []entity.CommissionRate
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).
		Order("role ASC").
		Find(&rates).Error
	return rates, err
}

func (r *commissionRateRepository) Upsert(ctx context.Context, role enum.EmployeeRole, rate float64) (*entity.CommissionRate, error) {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return nil, errors.New("tenant context required")
	}

	row := &entity.CommissionRate{
		TenantID: tenantID,
		Role:     role,
		Rate:     rate,
	}
	err := dbFrom(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "role"}},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return row, nil
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	var employees []entity.Employee
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("active = ?", true).
		Order("first_name ASC").
		Find(&employees).Error
	return employees, err
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Create(ctx context.Context, item *entity.CatalogItem) error {
	return dbFrom(ctx, r.db).Create(item).Error
}

func (r *catalogRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.CatalogItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []entity.CatalogItem
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

func (r *catalogRepository) List(ctx context.Context) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("active = ?", true).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) domainRepo.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := dbFrom(ctx, r.db).First(&tenant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tenant, err
}

func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := dbFrom(ctx, r.db).First(&tenant, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tenant, err
}

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency key repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, employeeID uuid.UUID) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := dbFrom(ctx, r.db).First(&ikey, "key = ? AND employee_id = ?", key, employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

func (r *idempotencyRepository) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	return dbFrom(ctx, r.db).Create(key).Error
}
