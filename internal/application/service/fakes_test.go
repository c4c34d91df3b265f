package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	infraRepo "github.com/tmaina/autoshop-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. They hold one tenant's data and mimic the
// storage behaviors the services depend on: duplicate-key errors from the
// composite invoice index, (nil, nil) misses, and the loyalty guard
// semantics.

type memSaleRepo struct {
	sales []entity.Sale
}

func (r *memSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	for _, existing := range r.sales {
		if existing.InvoiceNo == sale.InvoiceNo {
			return gorm.ErrDuplicatedKey
		}
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	for i := range sale.Items {
		if sale.Items[i].ID == uuid.Nil {
			sale.Items[i].ID = uuid.New()
		}
		sale.Items[i].SaleID = sale.ID
	}
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *memSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			sale := r.sales[i]
			return &sale, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	for i := range r.sales {
		if r.sales[i].InvoiceNo == invoiceNo {
			sale := r.sales[i]
			return &sale, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	out := make([]entity.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		if params != nil && params.Search != "" && !strings.Contains(sale.InvoiceNo, params.Search) {
			continue
		}
		out = append(out, sale)
	}
	return out, int64(len(out)), nil
}

func (r *memSaleRepo) AllWithItems(ctx context.Context, from *time.Time) ([]entity.Sale, error) {
	out := make([]entity.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		if from != nil && sale.CreatedAt.Before(*from) {
			continue
		}
		out = append(out, sale)
	}
	return out, nil
}

type memManualSaleRepo struct {
	sales []entity.ManualSale
}

func (r *memManualSaleRepo) Create(ctx context.Context, sale *entity.ManualSale) error {
	for _, existing := range r.sales {
		if existing.InvoiceNo == sale.InvoiceNo {
			return gorm.ErrDuplicatedKey
		}
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *memManualSaleRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.ManualSale, error) {
	for i := range r.sales {
		if r.sales[i].InvoiceNo == invoiceNo {
			sale := r.sales[i]
			return &sale, nil
		}
	}
	return nil, nil
}

func (r *memManualSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.ManualSale, int64, error) {
	return r.sales, int64(len(r.sales)), nil
}

func (r *memManualSaleRepo) All(ctx context.Context, from *time.Time) ([]entity.ManualSale, error) {
	out := make([]entity.ManualSale, 0, len(r.sales))
	for _, sale := range r.sales {
		if from != nil && sale.CreatedAt.Before(*from) {
			continue
		}
		out = append(out, sale)
	}
	return out, nil
}

type memLoyaltyRepo struct {
	accounts map[string]*entity.LoyaltyAccount
}

func newMemLoyaltyRepo() *memLoyaltyRepo {
	return &memLoyaltyRepo{accounts: make(map[string]*entity.LoyaltyAccount)}
}

func (r *memLoyaltyRepo) GetByRef(ctx context.Context, customerRef string) (*entity.LoyaltyAccount, error) {
	account, exists := r.accounts[customerRef]
	if !exists {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (r *memLoyaltyRepo) Stamp(ctx context.Context, customerRef string) (*entity.LoyaltyAccount, error) {
	account, exists := r.accounts[customerRef]
	if !exists {
		account = &entity.LoyaltyAccount{ID: uuid.New(), CustomerRef: customerRef}
		r.accounts[customerRef] = account
	}
	if account.StampCount < entity.StampTarget {
		account.StampCount++
	}
	account.TotalStamps++
	copied := *account
	return &copied, nil
}

func (r *memLoyaltyRepo) Redeem(ctx context.Context, customerRef string) (*entity.LoyaltyAccount, error) {
	account, exists := r.accounts[customerRef]
	if !exists || account.StampCount < entity.StampTarget {
		return nil, nil
	}
	account.StampCount = 0
	account.TotalRedemptions++
	copied := *account
	return &copied, nil
}

type memDiscountRepo struct {
	discounts []entity.Discount
}

func (r *memDiscountRepo) Create(ctx context.Context, discount *entity.Discount) error {
	if discount.ID == uuid.Nil {
		discount.ID = uuid.New()
	}
	r.discounts = append(r.discounts, *discount)
	return nil
}

func (r *memDiscountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	for i := range r.discounts {
		if r.discounts[i].ID == id {
			discount := r.discounts[i]
			return &discount, nil
		}
	}
	return nil, nil
}

func (r *memDiscountRepo) List(ctx context.Context) ([]entity.Discount, error) {
	return r.discounts, nil
}

type memRateRepo struct {
	rates []entity.CommissionRate
}

func (r *memRateRepo) ListByTenant(ctx context.Context) ([]entity.CommissionRate, error) {
	return r.rates, nil
}

func (r *memRateRepo) Upsert(ctx context.Context, role enum.EmployeeRole, rate float64) (*entity.CommissionRate, error) {
	for i := range r.rates {
		if r.rates[i].Role == role {
			r.rates[i].Rate = rate
			updated := r.rates[i]
			return &updated, nil
		}
	}
	created := entity.CommissionRate{ID: uuid.New(), Role: role, Rate: rate}
	r.rates = append(r.rates, created)
	return &created, nil
}

type memEmployeeRepo struct {
	employees []entity.Employee
}

func (r *memEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	for i := range r.employees {
		if r.employees[i].ID == id {
			employee := r.employees[i]
			return &employee, nil
		}
	}
	return nil, nil
}

func (r *memEmployeeRepo) List(ctx context.Context) ([]entity.Employee, error) {
	return r.employees, nil
}

type memCatalogRepo struct {
	items []entity.CatalogItem
}

func (r *memCatalogRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *memCatalogRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.CatalogItem, error) {
	out := make([]entity.CatalogItem, 0, len(ids))
	for _, id := range ids {
		for i := range r.items {
			if r.items[i].ID == id {
				out = append(out, r.items[i])
			}
		}
	}
	return out, nil
}

func (r *memCatalogRepo) List(ctx context.Context) ([]entity.CatalogItem, error) {
	return r.items, nil
}

type memTenantRepo struct {
	tenant *entity.Tenant
}

func (r *memTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	if r.tenant != nil && r.tenant.ID == id {
		copied := *r.tenant
		return &copied, nil
	}
	return nil, nil
}

func (r *memTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	if r.tenant != nil && r.tenant.Slug == slug {
		copied := *r.tenant
		return &copied, nil
	}
	return nil, nil
}

// memTxManager snapshots the sale and loyalty fakes before running fn and
// restores them when fn fails, mirroring a transaction rollback.
type memTxManager struct {
	saleRepo    *memSaleRepo
	loyaltyRepo *memLoyaltyRepo
}

func (m *memTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	savedSales := make([]entity.Sale, len(m.saleRepo.sales))
	copy(savedSales, m.saleRepo.sales)

	savedAccounts := make(map[string]*entity.LoyaltyAccount, len(m.loyaltyRepo.accounts))
	for ref, account := range m.loyaltyRepo.accounts {
		copied := *account
		savedAccounts[ref] = &copied
	}

	if err := fn(ctx); err != nil {
		m.saleRepo.sales = savedSales
		m.loyaltyRepo.accounts = savedAccounts
		return err
	}
	return nil
}

// harness wires the services against the in-memory fakes with a seeded
// tenant, employees and rates.
type harness struct {
	ctx         context.Context
	tenant      *entity.Tenant
	mechanic    entity.Employee
	advisor     entity.Employee
	apprentice  entity.Employee
	saleRepo    *memSaleRepo
	manualRepo  *memManualSaleRepo
	loyaltyRepo *memLoyaltyRepo
	catalogRepo *memCatalogRepo
	rateRepo    *memRateRepo

	sales       *SaleService
	manualSales *ManualSaleService
	loyalty     *LoyaltyService
	commissions *CommissionService
	settlements *SettlementService
	discounts   *memDiscountRepo
}

func newHarness() *harness {
	tenant := &entity.Tenant{
		ID:       uuid.New(),
		Name:     "Main Street Garage",
		Slug:     "main-street-garage",
		Settings: entity.DefaultTenantSettings(),
	}

	h := &harness{
		tenant:      tenant,
		saleRepo:    &memSaleRepo{},
		manualRepo:  &memManualSaleRepo{},
		loyaltyRepo: newMemLoyaltyRepo(),
		catalogRepo: &memCatalogRepo{},
		discounts:   &memDiscountRepo{},
		rateRepo: &memRateRepo{rates: []entity.CommissionRate{
			{ID: uuid.New(), TenantID: tenant.ID, Role: enum.RoleMechanic, Rate: 0.10},
			{ID: uuid.New(), TenantID: tenant.ID, Role: enum.RoleAdvisor, Rate: 0.05},
		}},
	}

	h.mechanic = entity.Employee{ID: uuid.New(), TenantID: tenant.ID, FirstName: "Maya", LastName: "Okafor", Role: enum.RoleMechanic, Active: true}
	h.advisor = entity.Employee{ID: uuid.New(), TenantID: tenant.ID, FirstName: "Ben", LastName: "Cruz", Role: enum.RoleAdvisor, Active: true}
	h.apprentice = entity.Employee{ID: uuid.New(), TenantID: tenant.ID, FirstName: "Ade", LastName: "Sall", Role: enum.RoleApprentice, Active: true}
	employeeRepo := &memEmployeeRepo{employees: []entity.Employee{h.mechanic, h.advisor, h.apprentice}}
	tenantRepo := &memTenantRepo{tenant: tenant}
	txManager := &memTxManager{saleRepo: h.saleRepo, loyaltyRepo: h.loyaltyRepo}

	h.loyalty = NewLoyaltyService(h.loyaltyRepo)
	h.commissions = NewCommissionService(h.rateRepo)
	h.sales = NewSaleService(h.saleRepo, h.manualRepo, h.catalogRepo, h.discounts, employeeRepo, tenantRepo, h.loyalty, txManager, nil)
	h.manualSales = NewManualSaleService(h.manualRepo, h.saleRepo, employeeRepo, tenantRepo, h.commissions)
	h.settlements = NewSettlementService(h.saleRepo, h.manualRepo, employeeRepo, tenantRepo, h.commissions, 6)

	h.ctx = infraRepo.WithTenant(context.Background(), tenant.ID)
	return h
}

func (h *harness) addDiscount(name string, percentage float64) uuid.UUID {
	discount := entity.Discount{ID: uuid.New(), TenantID: h.tenant.ID, Name: name, Percentage: percentage, Active: true}
	h.discounts.discounts = append(h.discounts.discounts, discount)
	return discount.ID
}

func (h *harness) stampTimes(ref string, n int) {
	for i := 0; i < n; i++ {
		if _, err := h.loyaltyRepo.Stamp(h.ctx, ref); err != nil {
			panic(err)
		}
	}
}
