package service

import (
	"context"

	"github.com/tmaina/autoshop-api/internal/domain/entity"
	"github.com/tmaina/autoshop-api/internal/domain/enum"
	"github.com/tmaina/autoshop-api/internal/domain/repository"
	"github.com/tmaina/autoshop-api/pkg/apperror"
)

// LoyaltyService runs the per-customer stamp ledger
type LoyaltyService struct {
	loyaltyRepo repository.LoyaltyRepository
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(loyaltyRepo repository.LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{loyaltyRepo: loyaltyRepo}
}

// LoyaltyStatus is the customer's progress as shown at the register
type LoyaltyStatus struct {
	CustomerRef      string `json:"customer_ref"`
	StampCount       int    `json:"stamp_count"`
	Ready            bool   `json:"ready"`
	TotalStamps      int64  `json:"total_stamps"`
	TotalRedemptions int64  `json:"total_redemptions"`
}

// Status returns the stamp progress for a customer reference. Customers the
// ledger has never seen report zero stamps; the account itself is only
// created by the first loyalty action.
func (s *LoyaltyService) Status(ctx context.Context, customerRef string) (*LoyaltyStatus, error) {
	account, err := s.loyaltyRepo.GetByRef(ctx, customerRef)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &LoyaltyStatus{CustomerRef: customerRef}, nil
	}
	return &LoyaltyStatus{
		CustomerRef:      customerRef,
		StampCount:       account.StampCount,
		Ready:            account.Ready(),
		TotalStamps:      account.TotalStamps,
		TotalRedemptions: account.TotalRedemptions,
	}, nil
}

// Apply runs one ledger transition for a sale. Redeeming below the stamp
// target fails with ErrInsufficientStamps; the storage layer enforces the
// threshold atomically, so concurrent redemptions cannot double-spend.
func (s *LoyaltyService) Apply(ctx context.Context, action enum.LoyaltyAction, customerRef string) (*entity.LoyaltyAccount, error) {
	switch action.Normalize() {
	case enum.LoyaltyActionNone:
		return nil, nil
	case enum.LoyaltyActionStamp:
		return s.loyaltyRepo.Stamp(ctx, customerRef)
	case enum.LoyaltyActionRedeem:
		account, err := s.loyaltyRepo.Redeem(ctx, customerRef)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperror.ErrInsufficientStamps
		}
		return account, nil
	default:
		return nil, apperror.NewBadRequestError("Unknown loyalty action")
	}
}
