package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	infraRepo "github.com/tmaina/autoshop-api/internal/infrastructure/repository"
	"github.com/tmaina/autoshop-api/pkg/apperror"
	"github.com/tmaina/autoshop-api/pkg/notify"
	"gorm.io/gorm"
)

// SaleService handles register sale operations
type SaleService struct {
	saleRepo       repository.SaleRepository
	manualSaleRepo repository.ManualSaleRepository
	catalogRepo    repository.CatalogRepository
	discountRepo   repository.DiscountRepository
	employeeRepo   repository.EmployeeRepository
	tenantRepo     repository.TenantRepository
	loyaltyService *LoyaltyService
	txManager      repository.TxManager
	notifier       notify.Notifier
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	manualSaleRepo repository.ManualSaleRepository,
	catalogRepo repository.CatalogRepository,
	discountRepo repository.DiscountRepository,
	employeeRepo repository.EmployeeRepository,
	tenantRepo repository.TenantRepository,
	loyaltyService *LoyaltyService,
	txManager repository.TxManager,
	notifier notify.Notifier,
) *SaleService {
	return &SaleService{
		saleRepo:       saleRepo,
		manualSaleRepo: manualSaleRepo,
		catalogRepo:    catalogRepo,
		discountRepo:   discountRepo,
		employeeRepo:   employeeRepo,
		tenantRepo:     tenantRepo,
		loyaltyService: loyaltyService,
		txManager:      txManager,
		notifier:       notifier,
	}
}

// SaleItemInput represents one cart line in a sale request. UnitPrice is a
// decimal amount; items referencing a catalog entry may omit name and price
// and inherit them from the catalog.
type SaleItemInput struct {
	CatalogItemID *uuid.UUID
	Name          string
	UnitPrice     float64
	Quantity      int
}

// CompleteSaleInput represents the complete sale request
type CompleteSaleInput struct {
	EmployeeID    uuid.UUID
	InvoiceNo     string
	CustomerRef   *string
	DiscountID    *uuid.UUID
	LoyaltyAction enum.LoyaltyAction
	Items         []SaleItemInput
}

// CompleteSale validates the cart, prices it, and settles it. The sale row,
// its line items and the loyalty update commit in one transaction; an error
// anywhere rolls the whole unit of work back and nothing is recorded.
func (s *SaleService) CompleteSale(ctx context.Context, input *CompleteSaleInput) (*entity.Sale, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	settings, err := s.settingsFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	if err := s.checkInvoiceFree(ctx, input.InvoiceNo, settings); err != nil {
		return nil, err
	}

	items, subTotal, profitTotal, err := s.buildLineItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	// A referenced discount must exist even when a redemption is going to
	// override its amount.
	var discountAmount int64
	if input.DiscountID != nil {
		discount, err := s.discountRepo.GetByID(ctx, *input.DiscountID)
		if err != nil {
			return nil, err
		}
		if discount == nil {
			return nil, apperror.NewNotFoundError("Discount")
		}
		discountAmount = mulCents(subTotal, discount.Percentage)
	}

	// A redemption pays for the whole cart and takes precedence over any
	// percentage discount sent with it.
	action := input.LoyaltyAction.Normalize()
	if action == enum.LoyaltyActionRedeem {
		discountAmount = subTotal
	}

	total := subTotal - discountAmount
	if total < 0 {
		total = 0
	}

	sale := &entity.Sale{
		TenantID:      tenantID,
		EmployeeID:    input.EmployeeID,
		CustomerRef:   input.CustomerRef,
		InvoiceNo:     input.InvoiceNo,
		SubTotal:      subTotal,
		Discount:      discountAmount,
		Total:         total,
		LoyaltyAction: action,
		Status:        enum.SaleStatusSettled,
		Items:         items,
	}

	// Profit carries the same proration as revenue so the profit-basis
	// allocator sees discount-adjusted figures.
	sale.ProfitTotal = mulCents(profitTotal, sale.DiscountMultiplier())

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.saleRepo.Create(txCtx, sale); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.ErrDuplicateInvoice
			}
			return apperror.NewPersistenceError(err)
		}

		if action != enum.LoyaltyActionNone {
			if input.CustomerRef == nil || *input.CustomerRef == "" {
				return apperror.NewBadRequestError("Customer reference required for loyalty actions")
			}
			if _, err := s.loyaltyService.Apply(txCtx, action, *input.CustomerRef); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySale(sale, employee, settings)
	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales retrieves sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, params)
}

func (s *SaleService) settingsFor(ctx context.Context, tenantID uuid.UUID) (entity.TenantSettings, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return entity.TenantSettings{}, err
	}
	if tenant == nil {
		return entity.TenantSettings{}, apperror.NewNotFoundError("Tenant")
	}
	if err := tenant.Settings.Validate(); err != nil {
		return entity.TenantSettings{}, apperror.NewBadRequestError(err.Error())
	}
	return tenant.Settings, nil
}

func (s *SaleService) validateInput(input *CompleteSaleInput) error {
	var fieldErrors []apperror.FieldError
	if input.InvoiceNo == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "invoice_no", Message: "Invoice number is required"})
	}
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "At least one line item is required"})
	}
	for i, item := range input.Items {
		if item.Quantity < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "Quantity must be at least 1",
			})
		}
		if item.UnitPrice < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].unit_price", i),
				Message: "Unit price must not be negative",
			})
		}
	}
	if !input.LoyaltyAction.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "loyalty_action", Message: "Unknown loyalty action"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// checkInvoiceFree is a friendly pre-check; the composite unique index on
// (tenant_id, invoice_no) is the guard that actually holds under races.
func (s *SaleService) checkInvoiceFree(ctx context.Context, invoiceNo string, settings entity.TenantSettings) error {
	existing, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.ErrDuplicateInvoice
	}
	if settings.SharedInvoiceScope() {
		manual, err := s.manualSaleRepo.GetByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return err
		}
		if manual != nil {
			return apperror.ErrDuplicateInvoice
		}
	}
	return nil
}

// buildLineItems prices the cart and enriches catalog-backed lines with
// per-item profit and flat commission overrides. Catalog items are batch
// fetched in one query.
func (s *SaleService) buildLineItems(ctx context.Context, inputs []SaleItemInput) (items []entity.SaleItem, subTotal, profitTotal int64, err error) {
	var catalogIDs []uuid.UUID
	for _, in := range inputs {
		if in.CatalogItemID != nil {
			catalogIDs = append(catalogIDs, *in.CatalogItemID)
		}
	}

	catalogMap := make(map[uuid.UUID]*entity.CatalogItem, len(catalogIDs))
	if len(catalogIDs) > 0 {
		catalogItems, err := s.catalogRepo.GetByIDs(ctx, catalogIDs)
		if err != nil {
			return nil, 0, 0, err
		}
		for i := range catalogItems {
			catalogMap[catalogItems[i].ID] = &catalogItems[i]
		}
	}

	items = make([]entity.SaleItem, 0, len(inputs))
	for _, in := range inputs {
		item := entity.SaleItem{
			CatalogItemID: in.CatalogItemID,
			ItemName:      in.Name,
			Quantity:      in.Quantity,
			UnitPrice:     toCents(in.UnitPrice),
		}

		if in.CatalogItemID != nil {
			catalog, exists := catalogMap[*in.CatalogItemID]
			if !exists {
				return nil, 0, 0, apperror.NewNotFoundError(fmt.Sprintf("Catalog item %s", *in.CatalogItemID))
			}
			if item.ItemName == "" {
				item.ItemName = catalog.Name
			}
			if in.UnitPrice == 0 {
				item.UnitPrice = catalog.UnitPrice
			}
			item.ProfitPerUnit = catalog.ProfitPerUnit
			item.FlatOverride = catalog.FlatOverride
		}

		item.LineTotal = item.UnitPrice * int64(item.Quantity)
		subTotal += item.LineTotal
		if item.ProfitPerUnit != nil {
			profitTotal += *item.ProfitPerUnit * int64(item.Quantity)
		}
		items = append(items, item)
	}
	return items, subTotal, profitTotal, nil
}

// notifySale posts the settled sale to the tenant's webhook without blocking
// the response. Delivery failures are logged and never surfaced.
func (s *SaleService) notifySale(sale *entity.Sale, employee *entity.Employee, settings entity.TenantSettings) {
	if settings.WebhookURL == "" {
		return
	}
	event := notify.SaleEvent{
		InvoiceNo: sale.InvoiceNo,
		SaleID:    sale.ID.String(),
		Amount:    float64(sale.Total) / 100,
		SoldBy:    employee.DisplayName(),
	}
	go func() {
		if err := s.notifier.NotifySale(context.Background(), settings.WebhookURL, event); err != nil {
			log.Printf("Sale notification error (invoice %s): %v", sale.InvoiceNo, err)
		}
	}()
}
