package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/alexbrainman/odbc" // ODBC driver
)

// ODBC returns the production Driver backed by the platform ODBC manager.
func ODBC() Driver {
	return odbcDriver{}
}

// ConnString assembles an ODBC connection descriptor from its parts.
// Format: Driver={...};Server=host,port;Database=db
func ConnString(driverName, server string, port int, database string) string {
	name := driverName
	if !strings.HasPrefix(name, "{") {
		name = "{" + name + "}"
	}
	return fmt.Sprintf("Driver=%s;Server=%s,%d;Database=%s", name, server, port, database)
}

type odbcDriver struct{}

func (odbcDriver) Connect(ctx context.Context, descriptor, user, password string) (Conn, error) {
	cs := descriptor
	if user != "" {
		cs += ";UID=" + user
	}
	if password != "" {
		cs += ";PWD=" + password
	}

	db, err := sql.Open("odbc", cs)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	// The wrapper owns exactly one connection; transaction control below
	// relies on every statement hitting the same session.
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &odbcConn{db: db, conn: conn}, nil
}

// odbcConn routes statements through the open transaction when autocommit is
// disabled, and directly through the dedicated connection otherwise.
type odbcConn struct {
	db   *sql.DB
	conn *sql.Conn
	tx   *sql.Tx
}

func (c *odbcConn) Query(ctx context.Context, query string) (Rows, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if c.tx != nil {
		rows, err = c.tx.QueryContext(ctx, query)
	} else {
		rows, err = c.conn.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return &odbcRows{rows: rows}, nil
}

func (c *odbcConn) Exec(ctx context.Context, query string) (Result, error) {
	var (
		res sql.Result
		err error
	)
	if c.tx != nil {
		res, err = c.tx.ExecContext(ctx, query)
	} else {
		res, err = c.conn.ExecContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *odbcConn) Prepare(ctx context.Context, query string) (Stmt, error) {
	var (
		stmt *sql.Stmt
		err  error
	)
	if c.tx != nil {
		stmt, err = c.tx.PrepareContext(ctx, query)
	} else {
		stmt, err = c.conn.PrepareContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return &odbcStmt{stmt: stmt}, nil
}

// SetAutocommit maps the autocommit attribute onto a sql.Tx span: disabling
// it begins a transaction on the dedicated connection, enabling it clears the
// finished span. database/sql marks a Tx done even when the driver commit or
// rollback fails, so Commit and Rollback below translate sql.ErrTxDone into
// "span already finished" rather than leaving an unretryable transaction open.
func (c *odbcConn) SetAutocommit(ctx context.Context, on bool) error {
	if on {
		// An open span must be committed or rolled back first; the handle
		// only restores autocommit after one of those succeeded.
		c.tx = nil
		return nil
	}
	if c.tx != nil {
		return fmt.Errorf("autocommit already disabled")
	}
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	c.tx = tx
	return nil
}

func (c *odbcConn) Commit(ctx context.Context) error {
	if c.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	if err := c.tx.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			// The span already finished (a previous commit or rollback
			// failed and database/sql closed the Tx); nothing is left to
			// retry, so report it finished.
			c.tx = nil
			return nil
		}
		return err
	}
	c.tx = nil
	return nil
}

func (c *odbcConn) Rollback(ctx context.Context) error {
	if c.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	if err := c.tx.Rollback(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			c.tx = nil
			return nil
		}
		return err
	}
	c.tx = nil
	return nil
}

func (c *odbcConn) Close() error {
	err := c.conn.Close()
	if dbErr := c.db.Close(); err == nil {
		err = dbErr
	}
	return err
}

type odbcStmt struct {
	stmt *sql.Stmt
}

func (s *odbcStmt) Query(ctx context.Context, args ...any) (Rows, error) {
	rows, err := s.stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	return &odbcRows{rows: rows}, nil
}

func (s *odbcStmt) Exec(ctx context.Context, args ...any) (Result, error) {
	res, err := s.stmt.ExecContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *odbcStmt) Close() error {
	return s.stmt.Close()
}

type odbcRows struct {
	rows    *sql.Rows
	columns []string
}

func (r *odbcRows) FetchMap() (map[string]any, error) {
	if r.columns == nil {
		cols, err := r.rows.Columns()
		if err != nil {
			return nil, err
		}
		r.columns = cols
	}

	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	values := make([]any, len(r.columns))
	ptrs := make([]any, len(r.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(map[string]any, len(r.columns))
	for i, col := range r.columns {
		v := values[i]
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		row[col] = v
	}
	return row, nil
}

func (r *odbcRows) Close() error {
	return r.rows.Close()
}
