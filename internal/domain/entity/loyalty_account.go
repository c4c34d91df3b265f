package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StampTarget is the number of stamps a customer needs before a redemption.
// The stamp count never exceeds this value.
const StampTarget = 9

// LoyaltyAccount tracks a customer's stamp progress for one tenant. Accounts
// are created lazily on the first loyalty action for a customer reference and
// are never deleted.
type LoyaltyAccount struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_loyalty_tenant_ref" json:"tenant_id"`
	CustomerRef      string    `gorm:"size:100;not null;uniqueIndex:idx_loyalty_tenant_ref" json:"customer_ref"`
	StampCount       int       `gorm:"default:0" json:"stamp_count"`
	TotalStamps      int64     `gorm:"default:0" json:"total_stamps"`
	TotalRedemptions int64     `gorm:"default:0" json:"total_redemptions"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new loyalty account
func (a *LoyaltyAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LoyaltyAccount model
func (LoyaltyAccount) TableName() string {
	return "loyalty_accounts"
}

// Ready reports whether the account has enough stamps for a redemption
func (a *LoyaltyAccount) Ready() bool {
	return a.StampCount >= StampTarget
}
