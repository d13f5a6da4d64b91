package composables

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/homewardhq/homeward/pkg/constants"
)

// InTenantTx runs fn inside the transaction already present on the context, or
// begins a new one when there is none. Multi-step invariant operations use
// this so that a caller-provided transaction (request middleware, tests) and a
// service-owned one behave identically. A reused transaction gets a nested
// savepoint: an error from fn must undo fn's writes even when the outer
// transaction later commits.
func InTenantTx(ctx context.Context, fn func(context.Context) error) error {
	if existing, ok := ctx.Value(constants.TxKey).(pgx.Tx); ok && existing != nil {
		nested, err := existing.Begin(ctx)
		if err != nil {
			return err
		}
		if err := fn(WithTx(ctx, nested)); err != nil {
			if rErr := nested.Rollback(ctx); rErr != nil {
				return errors.Join(err, rErr)
			}
			return err
		}
		return nested.Commit(ctx)
	}

	pool, err := UsePool(ctx)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	txCtx := WithTx(ctx, tx)
	if err := fn(txCtx); err != nil {
		if rErr := tx.Rollback(ctx); rErr != nil {
			return errors.Join(err, rErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

func InTenantTxResult[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := InTenantTx(ctx, func(txCtx context.Context) error {
		var innerErr error
		out, innerErr = fn(txCtx)
		return innerErr
	})
	return out, err
}
