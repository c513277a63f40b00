package dbaccess

/*
In-memory driver used by the handle tests. It records every capability call
so tests can assert on the immediate-vs-prepared branching and on transaction
control, and each failure point can be scripted independently.
*/

import (
	"context"
	"fmt"

	"github.com/acamposserna/dbaccess/internal/driver"
)

type mockDriver struct {
	conn       *mockConn
	connectErr error

	connects   int
	descriptor string
	user       string
	password   string
}

func newMockDriver() *mockDriver {
	return &mockDriver{conn: &mockConn{}}
}

func (d *mockDriver) Connect(ctx context.Context, descriptor, user, password string) (driver.Conn, error) {
	d.connects++
	d.descriptor = descriptor
	d.user = user
	d.password = password
	if d.connectErr != nil {
		return nil, d.connectErr
	}
	return d.conn, nil
}

type mockConn struct {
	calls  []string
	closed bool

	// inSpan is true while autocommit is disabled.
	inSpan bool

	queryErr      error
	execErr       error
	prepareErr    error
	stmtErr       error
	fetchErr      error
	closeErr      error
	autocommitErr error
	commitErr     error
	rollbackErr   error

	rows        []map[string]any
	affected    int64
	affectedErr error
}

func (c *mockConn) record(call string) {
	c.calls = append(c.calls, call)
}

func (c *mockConn) Query(ctx context.Context, sql string) (driver.Rows, error) {
	c.record("query:" + sql)
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return &mockRows{conn: c, rows: c.rows}, nil
}

func (c *mockConn) Exec(ctx context.Context, sql string) (driver.Result, error) {
	c.record("exec:" + sql)
	if c.execErr != nil {
		return nil, c.execErr
	}
	return &mockResult{affected: c.affected, err: c.affectedErr}, nil
}

func (c *mockConn) Prepare(ctx context.Context, sql string) (driver.Stmt, error) {
	c.record("prepare:" + sql)
	if c.prepareErr != nil {
		return nil, c.prepareErr
	}
	return &mockStmt{conn: c}, nil
}

func (c *mockConn) SetAutocommit(ctx context.Context, on bool) error {
	if on {
		c.record("autocommit:on")
	} else {
		c.record("autocommit:off")
	}
	if c.autocommitErr != nil {
		return c.autocommitErr
	}
	c.inSpan = !on
	return nil
}

func (c *mockConn) Commit(ctx context.Context) error {
	c.record("commit")
	if c.commitErr != nil {
		return c.commitErr
	}
	c.inSpan = false
	return nil
}

func (c *mockConn) Rollback(ctx context.Context) error {
	c.record("rollback")
	if c.rollbackErr != nil {
		return c.rollbackErr
	}
	c.inSpan = false
	return nil
}

func (c *mockConn) Close() error {
	c.record("close")
	if c.closeErr != nil {
		return c.closeErr
	}
	c.closed = true
	return nil
}

type mockStmt struct {
	conn   *mockConn
	args   []any
	closed bool
}

func (s *mockStmt) Query(ctx context.Context, args ...any) (driver.Rows, error) {
	s.conn.record(fmt.Sprintf("stmt-query:%d", len(args)))
	s.args = args
	if s.conn.stmtErr != nil {
		return nil, s.conn.stmtErr
	}
	return &mockRows{conn: s.conn, rows: s.conn.rows}, nil
}

func (s *mockStmt) Exec(ctx context.Context, args ...any) (driver.Result, error) {
	s.conn.record(fmt.Sprintf("stmt-exec:%d", len(args)))
	s.args = args
	if s.conn.stmtErr != nil {
		return nil, s.conn.stmtErr
	}
	return &mockResult{affected: s.conn.affected, err: s.conn.affectedErr}, nil
}

func (s *mockStmt) Close() error {
	s.conn.record("stmt-close")
	s.closed = true
	return nil
}

type mockRows struct {
	conn   *mockConn
	rows   []map[string]any
	next   int
	closed bool
}

func (r *mockRows) FetchMap() (map[string]any, error) {
	if r.conn.fetchErr != nil {
		return nil, r.conn.fetchErr
	}
	if r.next >= len(r.rows) {
		return nil, nil
	}
	row := r.rows[r.next]
	r.next++
	return row, nil
}

func (r *mockRows) Close() error {
	r.conn.record("rows-close")
	r.closed = true
	return nil
}

type mockResult struct {
	affected int64
	err      error
}

func (r *mockResult) RowsAffected() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.affected, nil
}

// newTestHandle builds a handle wired to a fresh mock driver.
func newTestHandle(opts ...Option) (*Handle, *mockDriver, error) {
	base := []Option{
		WithServer("h"),
		WithPort(1433),
		WithDatabase("d"),
		WithUser("u"),
		WithPassword("p"),
	}
	h, err := New(append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	md := newMockDriver()
	h.drv = md
	return h, md, nil
}
