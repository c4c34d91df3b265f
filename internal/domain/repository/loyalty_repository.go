package repository

import (
	"context"

	"github.com/tmaina/autoshop-api/internal/domain/entity"
)

// LoyaltyRepository defines the interface for loyalty account data
// operations. Stamp and Redeem are atomic at the storage layer: two
// concurrent requests for the same customer cannot lose a stamp or redeem
// the same reward twice.
type LoyaltyRepository interface {
	GetByRef(ctx context.Context, customerRef string) (*entity.LoyaltyAccount, error)
	// Stamp increments the stamp count (capped at entity.StampTarget) and the
	// lifetime stamp counter, creating the account on first use.
	Stamp(ctx context.Context, customerRef string) (*entity.LoyaltyAccount, error)
	// Redeem resets the stamp count to zero and increments the redemption
	// counter, guarded by stamp_count >= entity.StampTarget. It returns
	// (nil, nil) when the guard fails or the account does not exist.
	Redeem(ctx context.Context, customerRef string) (*entity.LoyaltyAccount, error)
}
