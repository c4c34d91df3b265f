package service

import (
	"testing"

	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
)

func rateTable(pairs map[enum.EmployeeRole]float64) entity.RateTable {
	rates := make([]entity.CommissionRate, 0, len(pairs))
	for role, rate := range pairs {
		rates = append(rates, entity.CommissionRate{Role: role, Rate: rate})
	}
	return entity.NewRateTable(rates)
}

func intPtr(v int64) *int64 { return &v }

func TestSaleAllocationRevenueVersusProfitBasis(t *testing.T) {
	// One unit sold at 9.00 with 3.60 profit, mechanic at 10%.
	sale := &entity.Sale{
		SubTotal: 900,
		Total:    900,
		Items: []entity.SaleItem{
			{ItemName: "Air filter", Quantity: 1, UnitPrice: 900, LineTotal: 900, ProfitPerUnit: intPtr(360)},
		},
	}
	rates := rateTable(map[enum.EmployeeRole]float64{enum.RoleMechanic: 0.10})

	revenue := NewCommissionCalculator(entity.TenantSettings{}, rates)
	base, commission := revenue.SaleAllocation(sale, enum.RoleMechanic)
	if base != 900 || commission != 90 {
		t.Errorf("revenue basis: expected base 900 commission 90, got %d and %d", base, commission)
	}

	profit := NewCommissionCalculator(entity.TenantSettings{UseProfitBasis: true}, rates)
	base, commission = profit.SaleAllocation(sale, enum.RoleMechanic)
	if base != 360 || commission != 36 {
		t.Errorf("profit basis: expected base 360 commission 36, got %d and %d", base, commission)
	}
}

func TestSaleAllocationFlatOverrideProrated(t *testing.T) {
	// Ten units with a 4.00 per-unit override under a 10% cart discount.
	// The override is still scaled by the discount multiplier.
	sale := &entity.Sale{
		SubTotal: 100000,
		Discount: 10000,
		Total:    90000,
		Items: []entity.SaleItem{
			{ItemName: "Ceramic coating", Quantity: 10, UnitPrice: 10000, LineTotal: 100000, FlatOverride: intPtr(400)},
		},
	}
	rates := rateTable(map[enum.EmployeeRole]float64{enum.RoleDetailer: 0.08})

	calculator := NewCommissionCalculator(entity.TenantSettings{}, rates)
	_, commission := calculator.SaleAllocation(sale, enum.RoleDetailer)
	if commission != 3600 {
		t.Errorf("expected override commission 3600, got %d", commission)
	}
}

func TestSaleAllocationMissingRoleRate(t *testing.T) {
	sale := &entity.Sale{
		SubTotal: 5000,
		Total:    5000,
		Items: []entity.SaleItem{
			{ItemName: "Valet", Quantity: 1, UnitPrice: 5000, LineTotal: 5000},
		},
	}
	calculator := NewCommissionCalculator(entity.TenantSettings{}, rateTable(nil))

	base, commission := calculator.SaleAllocation(sale, enum.RoleApprentice)
	if commission != 0 {
		t.Errorf("expected zero commission without a configured rate, got %d", commission)
	}
	if base != 5000 {
		t.Errorf("expected base still reported, got %d", base)
	}
}

func TestSaleAllocationProfitBasisMissingProfit(t *testing.T) {
	// Profit basis with no recorded per-unit profit contributes nothing.
	sale := &entity.Sale{
		SubTotal: 5000,
		Total:    5000,
		Items: []entity.SaleItem{
			{ItemName: "Shop supplies", Quantity: 2, UnitPrice: 2500, LineTotal: 5000},
		},
	}
	rates := rateTable(map[enum.EmployeeRole]float64{enum.RoleMechanic: 0.10})
	calculator := NewCommissionCalculator(entity.TenantSettings{UseProfitBasis: true}, rates)

	base, commission := calculator.SaleAllocation(sale, enum.RoleMechanic)
	if base != 0 || commission != 0 {
		t.Errorf("expected zero allocation, got base %d commission %d", base, commission)
	}
}

func TestSaleAllocationNoLineItemsFallback(t *testing.T) {
	sale := &entity.Sale{SubTotal: 8000, Total: 7200, ProfitTotal: 2700}
	rates := rateTable(map[enum.EmployeeRole]float64{enum.RoleMechanic: 0.10})

	revenue := NewCommissionCalculator(entity.TenantSettings{}, rates)
	base, commission := revenue.SaleAllocation(sale, enum.RoleMechanic)
	if base != 7200 || commission != 720 {
		t.Errorf("revenue fallback: expected 7200 and 720, got %d and %d", base, commission)
	}

	profit := NewCommissionCalculator(entity.TenantSettings{UseProfitBasis: true}, rates)
	base, commission = profit.SaleAllocation(sale, enum.RoleMechanic)
	if base != 2700 || commission != 270 {
		t.Errorf("profit fallback: expected 2700 and 270, got %d and %d", base, commission)
	}
}

func TestDiscountMultiplierClamp(t *testing.T) {
	cases := []struct {
		name     string
		sale     entity.Sale
		expected float64
	}{
		{"zero subtotal", entity.Sale{SubTotal: 0, Total: 500}, 0},
		{"negative total", entity.Sale{SubTotal: 1000, Total: -100}, 0},
		{"above subtotal", entity.Sale{SubTotal: 1000, Total: 1500}, 1},
		{"normal", entity.Sale{SubTotal: 1000, Total: 900}, 0.9},
	}
	for _, tc := range cases {
		if got := tc.sale.DiscountMultiplier(); got != tc.expected {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestSaleAllocationRoundsPerLine(t *testing.T) {
	// 3 units at 3.33 with a one-third-ish discount: each fractional step
	// rounds to whole cents.
	sale := &entity.Sale{
		SubTotal: 999,
		Discount: 333,
		Total:    666,
		Items: []entity.SaleItem{
			{ItemName: "Fuse", Quantity: 3, UnitPrice: 333, LineTotal: 999},
		},
	}
	rates := rateTable(map[enum.EmployeeRole]float64{enum.RoleMechanic: 0.10})
	calculator := NewCommissionCalculator(entity.TenantSettings{}, rates)

	base, commission := calculator.SaleAllocation(sale, enum.RoleMechanic)
	// multiplier = 666/999; base = round(999 * 666/999) = 666; commission = round(66.6) = 67
	if base != 666 {
		t.Errorf("expected base 666, got %d", base)
	}
	if commission != 67 {
		t.Errorf("expected commission 67, got %d", commission)
	}
}

func TestManualAllocation(t *testing.T) {
	sale := &entity.ManualSale{Amount: 12000, ProfitTotal: 4000}
	rates := rateTable(map[enum.EmployeeRole]float64{enum.RoleAdvisor: 0.05})

	revenue := NewCommissionCalculator(entity.TenantSettings{}, rates)
	base, commission := revenue.ManualAllocation(sale, enum.RoleAdvisor)
	if base != 12000 || commission != 600 {
		t.Errorf("revenue basis: expected 12000 and 600, got %d and %d", base, commission)
	}

	profit := NewCommissionCalculator(entity.TenantSettings{UseProfitBasis: true}, rates)
	base, commission = profit.ManualAllocation(sale, enum.RoleAdvisor)
	if base != 4000 || commission != 200 {
		t.Errorf("profit basis: expected 4000 and 200, got %d and %d", base, commission)
	}

	_, commission = revenue.ManualAllocation(sale, enum.RoleManager)
	if commission != 0 {
		t.Errorf("expected zero commission for unconfigured role, got %d", commission)
	}
}

func TestSetRateValidation(t *testing.T) {
	h := newHarness()

	if _, err := h.commissions.SetRate(h.ctx, "mechanic", 0.12); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}
	rates, _ := h.commissions.ListRates(h.ctx)
	var found bool
	for _, rate := range rates {
		if rate.Role == enum.RoleMechanic && rate.Rate == 0.12 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected mechanic rate updated to 0.12")
	}

	if _, err := h.commissions.SetRate(h.ctx, "wizard", 0.10); err == nil {
		t.Errorf("expected unknown role to be rejected")
	}
	if _, err := h.commissions.SetRate(h.ctx, "advisor", 1.5); err == nil {
		t.Errorf("expected out-of-range rate to be rejected")
	}
	if _, err := h.commissions.SetRate(h.ctx, "advisor", -0.1); err == nil {
		t.Errorf("expected negative rate to be rejected")
	}
}
