package dbaccess

import (
	"context"
	"fmt"
)

// Begin opens a transaction by disabling driver autocommit. Only one
// transaction may be open per handle; nesting is not supported.
func (h *Handle) Begin(ctx context.Context) error {
	if h.conn == nil {
		return ErrNotConnected
	}
	if h.inTransaction {
		return ErrTransactionAlreadyActive
	}

	if err := h.conn.SetAutocommit(ctx, false); err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionStart, err)
	}

	h.inTransaction = true
	return nil
}

// Commit commits the open transaction and re-enables autocommit. On a driver
// commit failure the transaction stays open; retry the commit or roll back.
// ErrAutocommitRestore means the commit itself succeeded.
func (h *Handle) Commit(ctx context.Context) error {
	if !h.inTransaction {
		return ErrNoActiveTransaction
	}

	if err := h.conn.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionCommit, err)
	}

	h.inTransaction = false
	if err := h.conn.SetAutocommit(ctx, true); err != nil {
		return fmt.Errorf("%w: %v", ErrAutocommitRestore, err)
	}
	return nil
}

// Rollback discards the open transaction and re-enables autocommit. On a
// driver rollback failure the transaction stays open. ErrAutocommitRestore
// means the rollback itself succeeded.
func (h *Handle) Rollback(ctx context.Context) error {
	if !h.inTransaction {
		return ErrNoActiveTransaction
	}

	if err := h.conn.Rollback(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionRollback, err)
	}

	h.inTransaction = false
	if err := h.conn.SetAutocommit(ctx, true); err != nil {
		return fmt.Errorf("%w: %v", ErrAutocommitRestore, err)
	}
	return nil
}

// Transaction runs fn inside a transaction: Begin, fn, then Commit, or
// Rollback when fn returns an error. The fn error is returned as-is; a
// rollback failure on that path is reported alongside it.
func (h *Handle) Transaction(ctx context.Context, fn func() error) error {
	if err := h.Begin(ctx); err != nil {
		return err
	}

	if err := fn(); err != nil {
		if rbErr := h.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	return h.Commit(ctx)
}
