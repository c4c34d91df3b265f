package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	domainRepo "github.com/tmaina/autoshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	// Items are created through the association in the same statement batch,
	// inside whatever transaction the context carries.
	return dbFrom(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := dbFrom(ctx, r.db).
		Scopes(TenantScope(ctx)).
		Preload("Items").
		Preload("Employee").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	var sale entity.Sale
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).First(&sale, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Sale{}).Scopes(TenantScope(ctx))

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.EmployeeID != nil {
		query = query.Where("employee_id = ?", *params.EmployeeID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Preload("Employee").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) AllWithItems(ctx context.Context, from *time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale

	query := dbFrom(ctx, r.db).Model(&entity.Sale{}).Scopes(TenantScope(ctx))
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}

	err := query.
		Preload("Items").
		Preload("Employee").
		Order("created_at ASC").
		Find(&sales).Error

	return sales, err
}

type manualSaleRepository struct {
	db *gorm.DB
}

// NewManualSaleRepository creates a new manual sale repository
func NewManualSaleRepository(db *gorm.DB) domainRepo.ManualSaleRepository {
	return &manualSaleRepository{db: db}
}

func (r *manualSaleRepository) Create(ctx context.Context, sale *entity.ManualSale) error {
	return dbFrom(ctx, r.db).Create(sale).Error
}

func (r *manualSaleRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.ManualSale, error) {
	var sale entity.ManualSale
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).First(&sale, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *manualSaleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.ManualSale, int64, error) {
	var sales []entity.ManualSale
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.ManualSale{}).Scopes(TenantScope(ctx))

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.EmployeeID != nil {
		query = query.Where("employee_id = ?", *params.EmployeeID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Employee").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *manualSaleRepository) All(ctx context.Context, from *time.Time) ([]entity.ManualSale, error) {
	var sales []entity.ManualSale

	query := dbFrom(ctx, r.db).Model(&entity.ManualSale{}).Scopes(TenantScope(ctx))
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}

	err := query.
		Preload("Employee").
		Order("created_at ASC").
		Find(&sales).Error

	return sales, err
}
