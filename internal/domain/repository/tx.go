package repository

import "context"

// TxManager runs a function inside a single storage transaction. The
// transaction travels through the context, so every repository call made with
// the derived context joins it and a returned error rolls the whole unit of
// work back. The sale settlement path depends on this: the old system wrote
// the order, its line items and the loyalty update as independent calls and
// could leave partial state behind.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
