package service

import (
	"context"

	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	infraRepo "github.com/tmaina/autoshop-api/internal/infrastructure/repository"
	"github.com/tmaina/autoshop-api/pkg/apperror"
)

// DiscountService handles discount reference data operations
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService creates a new discount service
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// CreateDiscountInput represents the create discount request. Percentage is
// a fraction in [0, 1].
type CreateDiscountInput struct {
	Name       string
	Percentage float64
}

// CreateDiscount creates a discount for the current tenant
func (s *DiscountService) CreateDiscount(ctx context.Context, input *CreateDiscountInput) (*entity.Discount, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.Percentage < 0 || input.Percentage > 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "percentage", Message: "Percentage must be between 0 and 1"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	discount := &entity.Discount{
		TenantID:   tenantID,
		Name:       input.Name,
		Percentage: input.Percentage,
		Active:     true,
	}
	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// ListDiscounts returns the tenant's discounts
func (s *DiscountService) ListDiscounts(ctx context.Context) ([]entity.Discount, error) {
	return s.discountRepo.List(ctx)
}
