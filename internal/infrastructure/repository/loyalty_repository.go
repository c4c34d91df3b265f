package repository

import (
	"context"
	"errors"

	"github.com/tmaina/autoshop-api/internal/domain/entity"
	domainRepo "github.com/tmaina/autoshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type loyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository creates a new loyalty account repository
func NewLoyaltyRepository(db *gorm.DB) domainRepo.LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) GetByRef(ctx context.Context, customerRef string) (*entity.LoyaltyAccount, error) {
	var account entity.LoyaltyAccount
	err := dbFrom(ctx, r.db).Scopes(TenantScope(ctx)).First(&account, "customer_ref = ?", customerRef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

// Stamp applies a single guarded UPDATE so two concurrent sales for the same
// customer cannot both read count 8 and both write 9. The cap lives in the
// expression itself: LEAST keeps stamp_count at the target while the lifetime
// counter still advances.
func (r *loyaltyRepository) Stamp(ctx context.Context, customerRef string) (*entity.LoyaltyAccount, error) {
	db := dbFrom(ctx, r.db)

	result := db.Model(&entity.LoyaltyAccount{}).
		Scopes(TenantScope(ctx)).
		Where("customer_ref = ?", customerRef).
		Updates(map[string]interface{}{
			"stamp_count":  gorm.Expr("LEAST(stamp_count + 1, ?)", entity.StampTarget),
			"total_stamps": gorm.Expr("total_stamps + 1"),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// First loyalty action for this customer: create the account with the
		// stamp already applied. A concurrent insert loses on the unique
		// (tenant, customer_ref) index, in which case we retry the update.
		tenantID, ok := GetTenantID(ctx)
		if !ok {
			return nil, errors.New("tenant context required for loyalty stamp")
		}

		account := &entity.LoyaltyAccount{
			TenantID:    tenantID,
			CustomerRef: customerRef,
			StampCount:  1,
			TotalStamps: 1,
		}
		err := db.Create(account).Error
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		retry := db.Model(&entity.LoyaltyAccount{}).
			Scopes(TenantScope(ctx)).
			Where("customer_ref = ?", customerRef).
			Updates(map[string]interface{}{
				"stamp_count":  gorm.Expr("LEAST(stamp_count + 1, ?)", entity.StampTarget),
				"total_stamps": gorm.Expr("total_stamps + 1"),
			})
		if retry.Error != nil {
			return nil, retry.Error
		}
	}

	return r.GetByRef(ctx, customerRef)
}

// Redeem is a compare-and-swap: the stamp_count >= target guard and the reset
// happen in one statement, so two concurrent redemptions cannot both spend
// the same nine stamps. RowsAffected == 0 means the guard failed (too few
// stamps, or no account), reported as (nil, nil).
func (r *loyaltyRepository) Redeem(ctx context.Context, customerRef string) (*entity.LoyaltyAccount, error) {
	result := dbFrom(ctx, r.db).Model(&entity.LoyaltyAccount{}).
		Scopes(TenantScope(ctx)).
		Where("customer_ref = ? AND stamp_count >= ?", customerRef, entity.StampTarget).
		Updates(map[string]interface{}{
			"stamp_count":       0,
			"total_redemptions": gorm.Expr("total_redemptions + 1"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByRef(ctx, customerRef)
}
