package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	infraRepo "github.com/tmaina/autoshop-api/internal/infrastructure/repository"
	"github.com/tmaina/autoshop-api/pkg/apperror"
	"github.com/tmaina/autoshop-api/pkg/notes"
	"gorm.io/gorm"
)

// ManualSaleService handles manual employee sale operations
type ManualSaleService struct {
	manualSaleRepo    repository.ManualSaleRepository
	saleRepo          repository.SaleRepository
	employeeRepo      repository.EmployeeRepository
	tenantRepo        repository.TenantRepository
	commissionService *CommissionService
}

// NewManualSaleService creates a new manual sale service
func NewManualSaleService(
	manualSaleRepo repository.ManualSaleRepository,
	saleRepo repository.SaleRepository,
	employeeRepo repository.EmployeeRepository,
	tenantRepo repository.TenantRepository,
	commissionService *CommissionService,
) *ManualSaleService {
	return &ManualSaleService{
		manualSaleRepo:    manualSaleRepo,
		saleRepo:          saleRepo,
		employeeRepo:      employeeRepo,
		tenantRepo:        tenantRepo,
		commissionService: commissionService,
	}
}

// CreateManualSaleInput represents the create manual sale request. Amounts
// are decimal; ProfitTotal is optional and falls back to any legacy
// key=value tokens found in the notes text.
type CreateManualSaleInput struct {
	EmployeeID  uuid.UUID
	InvoiceNo   string
	Amount      float64
	Notes       string
	ProfitTotal *float64
}

// CreateManualSale records a sale directly against an employee. The
// commission base and amount are settled at write time from the employee's
// role rate; clients never supply them.
func (s *ManualSaleService) CreateManualSale(ctx context.Context, input *CreateManualSaleInput) (*entity.ManualSale, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}

	if input.InvoiceNo == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "invoice_no", Message: "Invoice number is required"},
		})
	}
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "Amount must be greater than zero"},
		})
	}

	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	if err := s.checkInvoiceFree(ctx, input.InvoiceNo, tenant.Settings); err != nil {
		return nil, err
	}

	sale := &entity.ManualSale{
		TenantID:   tenantID,
		EmployeeID: input.EmployeeID,
		InvoiceNo:  input.InvoiceNo,
		Amount:     toCents(input.Amount),
		Notes:      input.Notes,
	}

	// Rows imported from the old system carry their figures as key=value
	// tokens in the notes text. Strip them into the structured columns and
	// keep only the human part of the note.
	if freeText, meta, ok := notes.Decode(input.Notes); ok {
		sale.Notes = freeText
		sale.ProfitTotal = meta.ProfitTotal
		sale.CommissionTotal = meta.CommissionTotal
		sale.CommissionBase = meta.CommissionBase
	}

	if input.ProfitTotal != nil {
		sale.ProfitTotal = toCents(*input.ProfitTotal)
	}

	if sale.CommissionTotal == 0 && sale.CommissionBase == 0 {
		calculator, err := s.commissionService.CalculatorForTenant(ctx, tenant.Settings)
		if err != nil {
			return nil, err
		}
		sale.CommissionBase, sale.CommissionTotal = calculator.ManualAllocation(sale, employee.Role)
	}

	if err := s.manualSaleRepo.Create(ctx, sale); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateInvoice
		}
		return nil, apperror.NewPersistenceError(err)
	}
	return sale, nil
}

// GetManualSale retrieves a manual sale by invoice number
func (s *ManualSaleService) GetManualSale(ctx context.Context, invoiceNo string) (*entity.ManualSale, error) {
	sale, err := s.manualSaleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Manual sale")
	}
	return sale, nil
}

// ListManualSales retrieves manual sales with filtering and pagination
func (s *ManualSaleService) ListManualSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.ManualSale, int64, error) {
	return s.manualSaleRepo.List(ctx, params)
}

// LegacyNotes renders a manual sale's notes in the old token-bearing format
// for exports consumed by downstream tooling.
func (s *ManualSaleService) LegacyNotes(sale *entity.ManualSale) string {
	return notes.Encode(sale.Notes, notes.Meta{
		ProfitTotal:     sale.ProfitTotal,
		CommissionTotal: sale.CommissionTotal,
		CommissionBase:  sale.CommissionBase,
	})
}

func (s *ManualSaleService) checkInvoiceFree(ctx context.Context, invoiceNo string, settings entity.TenantSettings) error {
	existing, err := s.manualSaleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.ErrDuplicateInvoice
	}
	if settings.SharedInvoiceScope() {
		sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return err
		}
		if sale != nil {
			return apperror.ErrDuplicateInvoice
		}
	}
	return nil
}
