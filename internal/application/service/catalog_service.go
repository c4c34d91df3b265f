package service

import (
	"context"

	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	infraRepo "github.com/tmaina/autoshop-api/internal/infrastructure/repository"
	"github.com/tmaina/autoshop-api/pkg/apperror"
)

// CatalogService handles catalog item operations
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// CreateCatalogItemInput represents the create catalog item request.
// Amounts are decimal.
type CreateCatalogItemInput struct {
	Name          string
	UnitPrice     float64
	ProfitPerUnit *float64
	FlatOverride  *float64
}

// CreateCatalogItem creates a catalog item for the current tenant
func (s *CatalogService) CreateCatalogItem(ctx context.Context, input *CreateCatalogItemInput) (*entity.CatalogItem, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.UnitPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "Unit price must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	item := &entity.CatalogItem{
		TenantID:  tenantID,
		Name:      input.Name,
		UnitPrice: toCents(input.UnitPrice),
		Active:    true,
	}
	if input.ProfitPerUnit != nil {
		v := toCents(*input.ProfitPerUnit)
		item.ProfitPerUnit = &v
	}
	if input.FlatOverride != nil {
		v := toCents(*input.FlatOverride)
		item.FlatOverride = &v
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListCatalogItems returns the tenant's catalog
func (s *CatalogService) ListCatalogItems(ctx context.Context) ([]entity.CatalogItem, error) {
	return s.catalogRepo.List(ctx)
}
