// Package driver defines the capability set dbaccess expects from an ODBC
// driver and provides the production implementation on top of database/sql.
//
// The interfaces abstract away the native ODBC handle types (connection,
// statement, result): the handle layer never inspects their internals, it
// only passes them back to the same collaborator. Tests substitute an
// in-memory implementation.
package driver

import "context"

// Driver opens connections. The descriptor is an opaque driver-specific
// connection string; credentials travel separately so implementations can
// decide how to attach them.
type Driver interface {
	Connect(ctx context.Context, descriptor, user, password string) (Conn, error)
}

// Conn is a single live database connection.
//
// Query and Exec run SQL immediately, without a prepare step. Prepare returns
// a statement for parameterized execution. SetAutocommit, Commit and Rollback
// control the transaction mode of this one connection.
type Conn interface {
	// Query executes sql immediately and returns its result rows.
	Query(ctx context.Context, sql string) (Rows, error)

	// Exec executes sql immediately and returns its execution result.
	Exec(ctx context.Context, sql string) (Result, error)

	// Prepare parses sql with positional ? placeholders.
	Prepare(ctx context.Context, sql string) (Stmt, error)

	// SetAutocommit switches implicit per-statement commit on or off.
	// Disabling it opens an explicit transaction span on the connection.
	SetAutocommit(ctx context.Context, on bool) error

	// Commit commits the open transaction span.
	Commit(ctx context.Context) error

	// Rollback discards the open transaction span.
	Rollback(ctx context.Context) error

	// Close releases the connection.
	Close() error
}

// Stmt is a prepared statement bound to its connection.
type Stmt interface {
	// Query executes the statement with the given ordered arguments and
	// returns its result rows.
	Query(ctx context.Context, args ...any) (Rows, error)

	// Exec executes the statement with the given ordered arguments and
	// returns its execution result.
	Exec(ctx context.Context, args ...any) (Result, error)

	// Close releases the statement.
	Close() error
}

// Rows is a forward-only result cursor.
type Rows interface {
	// FetchMap returns the next row as a column-name-to-value mapping.
	// It returns (nil, nil) once the result set is exhausted.
	FetchMap() (map[string]any, error)

	// Close releases the result resource.
	Close() error
}

// Result reports the outcome of a mutating execution.
type Result interface {
	// RowsAffected returns the number of rows changed by the statement.
	RowsAffected() (int64, error)
}
