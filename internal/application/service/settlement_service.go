package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	infraRepo "github.com/tmaina/autoshop-api/internal/infrastructure/repository"
	"github.com/tmaina/autoshop-api/pkg/apperror"
)

// SettlementService aggregates register and manual sales into per-employee
// settlement reports
type SettlementService struct {
	saleRepo          repository.SaleRepository
	manualSaleRepo    repository.ManualSaleRepository
	employeeRepo      repository.EmployeeRepository
	tenantRepo        repository.TenantRepository
	commissionService *CommissionService
	defaultWeeks      int

	now func() time.Time
}

// NewSettlementService creates a new settlement service. defaultWeeks is the
// engine-wide weekly report range used when a tenant has not configured one.
func NewSettlementService(
	saleRepo repository.SaleRepository,
	manualSaleRepo repository.ManualSaleRepository,
	employeeRepo repository.EmployeeRepository,
	tenantRepo repository.TenantRepository,
	commissionService *CommissionService,
	defaultWeeks int,
) *SettlementService {
	return &SettlementService{
		saleRepo:          saleRepo,
		manualSaleRepo:    manualSaleRepo,
		employeeRepo:      employeeRepo,
		tenantRepo:        tenantRepo,
		commissionService: commissionService,
		defaultWeeks:      defaultWeeks,
		now:               time.Now,
	}
}

// EmployeeSettlement is one report row. Sales and commission are kept in
// cents internally and rendered as decimals.
type EmployeeSettlement struct {
	EmployeeID      uuid.UUID         `json:"employee_id"`
	DisplayName     string            `json:"display_name"`
	Role            enum.EmployeeRole `json:"role"`
	TotalSales      int64             `json:"-"`
	CommissionTotal int64             `json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r EmployeeSettlement) MarshalJSON() ([]byte, error) {
	type Alias EmployeeSettlement
	return json.Marshal(&struct {
		Alias
		TotalSales      float64 `json:"total_sales"`
		CommissionTotal float64 `json:"commission_total"`
	}{
		Alias:           Alias(r),
		TotalSales:      float64(r.TotalSales) / 100,
		CommissionTotal: float64(r.CommissionTotal) / 100,
	})
}

// WeeklyBucket is one ISO week of settlement rows. Week starts on Monday.
type WeeklyBucket struct {
	WeekStart time.Time            `json:"week_start"`
	Label     string               `json:"label"`
	Rows      []EmployeeSettlement `json:"rows"`
}

// AllTime builds the all-time settlement report: one row per employee who
// has at least one sale, sorted by descending sales with stable ties.
func (s *SettlementService) AllTime(ctx context.Context) ([]EmployeeSettlement, error) {
	_, calculator, employees, err := s.reportContext(ctx)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.AllWithItems(ctx, nil)
	if err != nil {
		return nil, err
	}
	manualSales, err := s.manualSaleRepo.All(ctx, nil)
	if err != nil {
		return nil, err
	}

	rows := make(map[uuid.UUID]*EmployeeSettlement)
	for _, sale := range sales {
		row := s.rowFor(rows, employees, sale.EmployeeID)
		if row == nil {
			continue
		}
		_, commission := calculator.SaleAllocation(&sale, row.Role)
		row.TotalSales += sale.Total
		row.CommissionTotal += commission
	}
	for _, sale := range manualSales {
		row := s.rowFor(rows, employees, sale.EmployeeID)
		if row == nil {
			continue
		}
		row.TotalSales += sale.Amount
		if sale.CommissionTotal != 0 || sale.CommissionBase != 0 {
			row.CommissionTotal += sale.CommissionTotal
		} else {
			_, commission := calculator.ManualAllocation(&sale, row.Role)
			row.CommissionTotal += commission
		}
	}

	return sortRows(rows), nil
}

// Weekly builds rolling per-week settlement reports for the last weeks ISO
// weeks, the current week included. Zero or negative weeks falls back to the
// tenant's configured report range, then the engine default. Records older
// than the range are dropped.
func (s *SettlementService) Weekly(ctx context.Context, weeks int) ([]WeeklyBucket, error) {
	settings, calculator, employees, err := s.reportContext(ctx)
	if err != nil {
		return nil, err
	}

	if weeks <= 0 {
		weeks = settings.ReportWeeks
	}
	if weeks <= 0 {
		weeks = s.defaultWeeks
	}
	if weeks <= 0 {
		weeks = 6
	}

	loc := time.UTC
	if settings.Timezone != "" {
		if l, err := time.LoadLocation(settings.Timezone); err == nil {
			loc = l
		}
	}

	firstMonday := weekStart(s.now().In(loc)).AddDate(0, 0, -7*(weeks-1))

	sales, err := s.saleRepo.AllWithItems(ctx, &firstMonday)
	if err != nil {
		return nil, err
	}
	manualSales, err := s.manualSaleRepo.All(ctx, &firstMonday)
	if err != nil {
		return nil, err
	}

	buckets := make([]map[uuid.UUID]*EmployeeSettlement, weeks)
	for i := range buckets {
		buckets[i] = make(map[uuid.UUID]*EmployeeSettlement)
	}

	for _, sale := range sales {
		idx, ok := bucketIndex(sale.CreatedAt.In(loc), firstMonday, weeks)
		if !ok {
			continue
		}
		row := s.rowFor(buckets[idx], employees, sale.EmployeeID)
		if row == nil {
			continue
		}
		_, commission := calculator.SaleAllocation(&sale, row.Role)
		row.TotalSales += sale.Total
		row.CommissionTotal += commission
	}
	for _, sale := range manualSales {
		idx, ok := bucketIndex(sale.CreatedAt.In(loc), firstMonday, weeks)
		if !ok {
			continue
		}
		row := s.rowFor(buckets[idx], employees, sale.EmployeeID)
		if row == nil {
			continue
		}
		row.TotalSales += sale.Amount
		if sale.CommissionTotal != 0 || sale.CommissionBase != 0 {
			row.CommissionTotal += sale.CommissionTotal
		} else {
			_, commission := calculator.ManualAllocation(&sale, row.Role)
			row.CommissionTotal += commission
		}
	}

	report := make([]WeeklyBucket, weeks)
	for i := range buckets {
		start := firstMonday.AddDate(0, 0, 7*i)
		year, week := start.ISOWeek()
		report[i] = WeeklyBucket{
			WeekStart: start,
			Label:     isoWeekLabel(year, week),
			Rows:      sortRows(buckets[i]),
		}
	}
	return report, nil
}

// reportContext loads the tenant settings, commission calculator and
// employee directory shared by every report.
func (s *SettlementService) reportContext(ctx context.Context) (entity.TenantSettings, CommissionCalculator, map[uuid.UUID]*entity.Employee, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return entity.TenantSettings{}, CommissionCalculator{}, nil, apperror.NewBadRequestError("Tenant context required")
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return entity.TenantSettings{}, CommissionCalculator{}, nil, err
	}
	if tenant == nil {
		return entity.TenantSettings{}, CommissionCalculator{}, nil, apperror.NewNotFoundError("Tenant")
	}

	calculator, err := s.commissionService.CalculatorForTenant(ctx, tenant.Settings)
	if err != nil {
		return entity.TenantSettings{}, CommissionCalculator{}, nil, err
	}

	list, err := s.employeeRepo.List(ctx)
	if err != nil {
		return entity.TenantSettings{}, CommissionCalculator{}, nil, err
	}
	employees := make(map[uuid.UUID]*entity.Employee, len(list))
	for i := range list {
		employees[list[i].ID] = &list[i]
	}
	return tenant.Settings, calculator, employees, nil
}

// rowFor returns the settlement row for an employee, creating it on first
// use. Sales by employees no longer in the directory are skipped.
func (s *SettlementService) rowFor(rows map[uuid.UUID]*EmployeeSettlement, employees map[uuid.UUID]*entity.Employee, employeeID uuid.UUID) *EmployeeSettlement {
	if row, exists := rows[employeeID]; exists {
		return row
	}
	employee, exists := employees[employeeID]
	if !exists {
		return nil
	}
	row := &EmployeeSettlement{
		EmployeeID:  employee.ID,
		DisplayName: employee.DisplayName(),
		Role:        employee.Role,
	}
	rows[employeeID] = row
	return row
}

// sortRows orders rows by descending sales. The sort is stable so employees
// with equal sales keep their name order.
func sortRows(rows map[uuid.UUID]*EmployeeSettlement) []EmployeeSettlement {
	out := make([]EmployeeSettlement, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalSales != out[j].TotalSales {
			return out[i].TotalSales > out[j].TotalSales
		}
		return out[i].DisplayName < out[j].DisplayName
	})
	return out
}

// weekStart returns midnight on the Monday of t's ISO week, in t's location.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// bucketIndex maps a timestamp to its week bucket, walking calendar week
// boundaries from firstMonday. DST shifts stretch or shrink a week, so the
// boundaries cannot be derived from a fixed 168h stride.
func bucketIndex(t, firstMonday time.Time, weeks int) (int, bool) {
	if t.Before(firstMonday) {
		return 0, false
	}
	start := firstMonday
	for i := 0; i < weeks; i++ {
		next := start.AddDate(0, 0, 7)
		if t.Before(next) {
			return i, true
		}
		start = next
	}
	return 0, false
}

func isoWeekLabel(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}
