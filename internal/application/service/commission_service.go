package service

import (
	"context"
	"fmt"

	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	"github.com/tmaina/autoshop-api/pkg/apperror"
)

// CommissionCalculator applies one tenant's commission policy to settled
// sales. It is an immutable value built per request from the tenant settings
// and the active rate table; nothing in it reads ambient state.
type CommissionCalculator struct {
	useProfitBasis bool
	rates          entity.RateTable
}

// NewCommissionCalculator creates a calculator for a tenant's settings and
// rate table.
func NewCommissionCalculator(settings entity.TenantSettings, rates entity.RateTable) CommissionCalculator {
	return CommissionCalculator{
		useProfitBasis: settings.UseProfitBasis,
		rates:          rates,
	}
}

// SaleAllocation computes the commission base and commission amount earned
// on a register sale by its owning employee. All line items belong to the
// employee who rang the sale up; there is no per-line split.
func (c CommissionCalculator) SaleAllocation(sale *entity.Sale, role enum.EmployeeRole) (base, commission int64) {
	multiplier := sale.DiscountMultiplier()
	rate := c.rates.Rate(role)

	if len(sale.Items) == 0 {
		// Rows migrated from the old system can lack line items; fall back to
		// the sale-level totals, which already carry the discount.
		if c.useProfitBasis {
			base = sale.ProfitTotal
		} else {
			base = sale.Total
		}
		return base, mulCents(base, rate)
	}

	for _, item := range sale.Items {
		lineBase, lineCommission := c.lineAllocation(item, multiplier, rate)
		base += lineBase
		commission += lineCommission
	}
	return base, commission
}

// lineAllocation prorates the cart-level discount onto one line item via the
// discount multiplier, then applies either the item's flat per-unit override
// or the role rate. Flat overrides are still scaled by the multiplier: a
// discounted cart discounts every line's commission, overridden or not.
func (c CommissionCalculator) lineAllocation(item entity.SaleItem, multiplier, rate float64) (base, commission int64) {
	unit := item.UnitPrice
	if c.useProfitBasis {
		if item.ProfitPerUnit != nil {
			unit = *item.ProfitPerUnit
		} else {
			unit = 0
		}
	}
	base = mulCents(unit*int64(item.Quantity), multiplier)

	if item.FlatOverride != nil {
		commission = mulCents(*item.FlatOverride*int64(item.Quantity), multiplier)
		return base, commission
	}
	return base, mulCents(base, rate)
}

// ManualAllocation computes the commission base and amount for a manual
// employee sale. Manual sales have no line items, so there is no flat
// override path at this granularity.
func (c CommissionCalculator) ManualAllocation(sale *entity.ManualSale, role enum.EmployeeRole) (base, commission int64) {
	if c.useProfitBasis {
		base = sale.ProfitTotal
	} else {
		base = sale.Amount
	}
	return base, mulCents(base, c.rates.Rate(role))
}

// CommissionService builds per-tenant commission calculators from the active
// rate configuration.
type CommissionService struct {
	rateRepo repository.CommissionRateRepository
}

// NewCommissionService creates a new commission service
func NewCommissionService(rateRepo repository.CommissionRateRepository) *CommissionService {
	return &CommissionService{rateRepo: rateRepo}
}

// CalculatorForTenant loads the tenant's rate table and returns an immutable
// calculator for it.
func (s *CommissionService) CalculatorForTenant(ctx context.Context, settings entity.TenantSettings) (CommissionCalculator, error) {
	rates, err := s.rateRepo.ListByTenant(ctx)
	if err != nil {
		return CommissionCalculator{}, err
	}
	return NewCommissionCalculator(settings, entity.NewRateTable(rates)), nil
}

// ListRates returns the tenant's configured commission rates.
func (s *CommissionService) ListRates(ctx context.Context) ([]entity.CommissionRate, error) {
	return s.rateRepo.ListByTenant(ctx)
}

// SetRate validates and stores the rate for one role.
func (s *CommissionService) SetRate(ctx context.Context, roleStr string, rate float64) (*entity.CommissionRate, error) {
	role, err := enum.ParseEmployeeRole(roleStr)
	if err != nil {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown employee role %q", roleStr))
	}
	if rate < 0 || rate > 1 {
		return nil, apperror.NewBadRequestError("Commission rate must be between 0 and 1")
	}
	return s.rateRepo.Upsert(ctx, role, rate)
}
