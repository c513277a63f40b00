package dbaccess

import (
	"context"
	"fmt"

	"github.com/acamposserna/dbaccess/internal/driver"
)

// Query executes a SELECT-style statement and returns all result rows in
// order. With no args the statement is executed immediately; with args it is
// prepared and executed with the ordered values bound to the positional ?
// placeholders. A placeholder/argument count mismatch surfaces as a driver
// execution failure.
func (h *Handle) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	if h.conn == nil {
		return nil, ErrNotConnected
	}

	rows, err := h.queryRows(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecution, err)
	}
	defer rows.Close()

	var result []Row
	for {
		row, err := rows.FetchMap()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecution, err)
		}
		if row == nil {
			break
		}
		result = append(result, Row(row))
	}
	return result, nil
}

// QueryRow executes a statement expected to return a single row. It returns
// ErrNoRows when the result set is empty; extra rows are discarded.
func (h *Handle) QueryRow(ctx context.Context, sql string, args ...any) (Row, error) {
	rows, err := h.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows[0], nil
}

// Exec executes a mutating (INSERT/UPDATE/DELETE) statement and returns the
// affected-row count, with the same immediate-vs-prepared branching as Query.
// No statement-type check is made: the distinction between Query and Exec is
// caller intent plus the return contract, nothing else.
func (h *Handle) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	if h.conn == nil {
		return 0, ErrNotConnected
	}

	res, err := h.execResult(ctx, sql, args)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMutationExecution, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMutationExecution, err)
	}
	return affected, nil
}

func (h *Handle) queryRows(ctx context.Context, sql string, args []any) (driver.Rows, error) {
	if len(args) == 0 {
		return h.conn.Query(ctx, sql)
	}

	stmt, err := h.conn.Prepare(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	return stmt.Query(ctx, args...)
}

func (h *Handle) execResult(ctx context.Context, sql string, args []any) (driver.Result, error) {
	if len(args) == 0 {
		return h.conn.Exec(ctx, sql)
	}

	stmt, err := h.conn.Prepare(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	return stmt.Exec(ctx, args...)
}
