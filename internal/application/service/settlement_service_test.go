package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
)

func (h *harness) addSale(employeeID uuid.UUID, invoiceNo string, total int64, createdAt time.Time) {
	h.saleRepo.sales = append(h.saleRepo.sales, entity.Sale{
		ID:         uuid.New(),
		TenantID:   h.tenant.ID,
		EmployeeID: employeeID,
		InvoiceNo:  invoiceNo,
		SubTotal:   total,
		Total:      total,
		Status:     enum.SaleStatusSettled,
		CreatedAt:  createdAt,
	})
}

func (h *harness) addManualSale(employeeID uuid.UUID, invoiceNo string, amount int64, createdAt time.Time) {
	h.manualRepo.sales = append(h.manualRepo.sales, entity.ManualSale{
		ID:         uuid.New(),
		TenantID:   h.tenant.ID,
		EmployeeID: employeeID,
		InvoiceNo:  invoiceNo,
		Amount:     amount,
		CreatedAt:  createdAt,
	})
}

func TestAllTimeCombinesRegisterAndManualSales(t *testing.T) {
	h := newHarness()
	now := time.Now()

	// Mechanic at 10%: 90.00 register. Advisor at 5%: 40.00 register plus
	// 60.00 manual.
	h.addSale(h.mechanic.ID, "INV-1", 9000, now)
	h.addSale(h.advisor.ID, "INV-2", 4000, now)
	h.addManualSale(h.advisor.ID, "MAN-1", 6000, now)

	rows, err := h.settlements.AllTime(h.ctx)
	if err != nil {
		t.Fatalf("all-time report failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].EmployeeID != h.advisor.ID {
		t.Errorf("expected advisor first with 100.00 total, got %s", rows[0].DisplayName)
	}
	if rows[0].TotalSales != 10000 {
		t.Errorf("expected advisor total 10000, got %d", rows[0].TotalSales)
	}
	if rows[0].CommissionTotal != 500 {
		t.Errorf("expected advisor commission 500, got %d", rows[0].CommissionTotal)
	}
	if rows[1].EmployeeID != h.mechanic.ID || rows[1].CommissionTotal != 900 {
		t.Errorf("expected mechanic second with commission 900, got %+v", rows[1])
	}
}

func TestAllTimePrefersStoredManualCommission(t *testing.T) {
	h := newHarness()

	h.manualRepo.sales = append(h.manualRepo.sales, entity.ManualSale{
		ID:              uuid.New(),
		TenantID:        h.tenant.ID,
		EmployeeID:      h.advisor.ID,
		InvoiceNo:       "MAN-2",
		Amount:          6000,
		CommissionBase:  1875,
		CommissionTotal: 188,
		CreatedAt:       time.Now(),
	})

	rows, err := h.settlements.AllTime(h.ctx)
	if err != nil {
		t.Fatalf("all-time report failed: %v", err)
	}
	if rows[0].CommissionTotal != 188 {
		t.Errorf("expected stored commission 188, got %d", rows[0].CommissionTotal)
	}
}

func TestAllTimeStableTieOrdering(t *testing.T) {
	h := newHarness()
	now := time.Now()

	h.addSale(h.mechanic.ID, "INV-3", 5000, now)
	h.addSale(h.advisor.ID, "INV-4", 5000, now)
	h.addSale(h.apprentice.ID, "INV-5", 5000, now)

	rows, err := h.settlements.AllTime(h.ctx)
	if err != nil {
		t.Fatalf("all-time report failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Equal sales keep a deterministic name order.
	if rows[0].DisplayName != "Ade Sall" || rows[1].DisplayName != "Ben Cruz" || rows[2].DisplayName != "Maya Okafor" {
		t.Errorf("unexpected tie order: %s, %s, %s", rows[0].DisplayName, rows[1].DisplayName, rows[2].DisplayName)
	}
}

func TestAllTimeSkipsDepartedEmployees(t *testing.T) {
	h := newHarness()

	h.addSale(uuid.New(), "INV-6", 9000, time.Now())
	rows, err := h.settlements.AllTime(h.ctx)
	if err != nil {
		t.Fatalf("all-time report failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows for unknown employees, got %d", len(rows))
	}
}

func TestWeeklyBucketsByISOWeek(t *testing.T) {
	h := newHarness()
	h.tenant.Settings.Timezone = "UTC"

	// Wednesday 2026-01-21. Two-week report covers Mon 2026-01-12 through
	// the current week.
	h.settlements.now = func() time.Time {
		return time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)
	}

	h.addSale(h.mechanic.ID, "INV-7", 9000, time.Date(2026, 1, 13, 10, 0, 0, 0, time.UTC))
	h.addSale(h.mechanic.ID, "INV-8", 4000, time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC))
	h.addManualSale(h.advisor.ID, "MAN-3", 2000, time.Date(2026, 1, 20, 11, 0, 0, 0, time.UTC))
	// Outside the range, dropped.
	h.addSale(h.mechanic.ID, "INV-9", 7000, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC))

	buckets, err := h.settlements.Weekly(h.ctx, 2)
	if err != nil {
		t.Fatalf("weekly report failed: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	if !buckets[0].WeekStart.Equal(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected first bucket to start Mon Jan 12, got %v", buckets[0].WeekStart)
	}
	if buckets[0].Label != "2026-W03" {
		t.Errorf("expected label 2026-W03, got %q", buckets[0].Label)
	}

	if len(buckets[0].Rows) != 1 || buckets[0].Rows[0].TotalSales != 9000 {
		t.Errorf("expected first week to hold the 90.00 sale, got %+v", buckets[0].Rows)
	}
	if len(buckets[1].Rows) != 2 {
		t.Fatalf("expected second week to hold two rows, got %d", len(buckets[1].Rows))
	}
	if buckets[1].Rows[0].EmployeeID != h.mechanic.ID || buckets[1].Rows[0].TotalSales != 4000 {
		t.Errorf("expected mechanic first in second week, got %+v", buckets[1].Rows[0])
	}
	if buckets[1].Rows[1].EmployeeID != h.advisor.ID || buckets[1].Rows[1].TotalSales != 2000 {
		t.Errorf("expected advisor second in second week, got %+v", buckets[1].Rows[1])
	}
}

func TestWeeklyBucketsSpanDSTShift(t *testing.T) {
	h := newHarness()
	h.tenant.Settings.Timezone = "America/New_York"
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location failed: %v", err)
	}

	// Clocks fall back on Sun Nov 2 2025, stretching that calendar week to
	// 169 hours. A late-Sunday sale still belongs to it.
	h.settlements.now = func() time.Time {
		return time.Date(2025, 11, 5, 12, 0, 0, 0, loc)
	}
	h.addSale(h.mechanic.ID, "INV-10", 9000, time.Date(2025, 11, 2, 23, 30, 0, 0, loc))

	buckets, err := h.settlements.Weekly(h.ctx, 2)
	if err != nil {
		t.Fatalf("weekly report failed: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if !buckets[0].WeekStart.Equal(time.Date(2025, 10, 27, 0, 0, 0, 0, loc)) {
		t.Errorf("expected first bucket to start Mon Oct 27, got %v", buckets[0].WeekStart)
	}
	if len(buckets[0].Rows) != 1 || buckets[0].Rows[0].TotalSales != 9000 {
		t.Errorf("expected the stretched week to hold the sale, got %+v", buckets[0].Rows)
	}
	if len(buckets[1].Rows) != 0 {
		t.Errorf("expected the current week to be empty, got %+v", buckets[1].Rows)
	}
}

func TestWeeklyDefaultsToConfiguredRange(t *testing.T) {
	h := newHarness()
	h.tenant.Settings.Timezone = "UTC"
	h.tenant.Settings.ReportWeeks = 4
	h.settlements.now = func() time.Time {
		return time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)
	}

	buckets, err := h.settlements.Weekly(h.ctx, 0)
	if err != nil {
		t.Fatalf("weekly report failed: %v", err)
	}
	if len(buckets) != 4 {
		t.Errorf("expected 4 buckets from tenant settings, got %d", len(buckets))
	}
}

func TestWeeklyFallsBackToEngineDefault(t *testing.T) {
	h := newHarness()
	h.tenant.Settings.Timezone = "UTC"
	h.tenant.Settings.ReportWeeks = 0
	h.settlements.defaultWeeks = 3
	h.settlements.now = func() time.Time {
		return time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)
	}

	buckets, err := h.settlements.Weekly(h.ctx, 0)
	if err != nil {
		t.Fatalf("weekly report failed: %v", err)
	}
	if len(buckets) != 3 {
		t.Errorf("expected 3 buckets from the engine default, got %d", len(buckets))
	}
}
