package repository

import (
	"context"

	domainRepo "github.com/tmaina/autoshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

const txKey ctxKey = "gorm_tx"

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by GORM. The open
// transaction is carried in the context so every repository call made with
// the derived context joins the same unit of work.
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// dbFrom returns the transaction from the context when one is open, the
// fallback handle otherwise. Every repository goes through this so its
// methods work the same inside and outside a transaction.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
