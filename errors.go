package dbaccess

import "errors"

// Sentinel errors returned by the package. Driver failures are wrapped around
// the matching sentinel with the driver's own diagnostic text, so callers can
// branch with errors.Is and still read the native message.
var (
	// ErrInvalidConfig indicates invalid construction arguments.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAlreadyConnected indicates Connect was called on a connected handle.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrNotConnected indicates an operation that requires a live connection.
	ErrNotConnected = errors.New("not connected")

	// ErrConnect indicates the driver failed to establish a connection.
	ErrConnect = errors.New("connection failed")

	// ErrDisconnect indicates the driver failed to close the connection.
	ErrDisconnect = errors.New("disconnection failed")

	// ErrTransactionActive indicates Close was called while a transaction is
	// open; commit or roll back first.
	ErrTransactionActive = errors.New("transaction still active")

	// ErrTransactionAlreadyActive indicates Begin inside an open transaction.
	ErrTransactionAlreadyActive = errors.New("transaction already active")

	// ErrNoActiveTransaction indicates Commit or Rollback without Begin.
	ErrNoActiveTransaction = errors.New("no active transaction")

	// ErrTransactionStart indicates the driver failed to open a transaction.
	ErrTransactionStart = errors.New("failed to begin transaction")

	// ErrTransactionCommit indicates the driver failed to commit. The
	// transaction remains open; retry the commit or roll back.
	ErrTransactionCommit = errors.New("failed to commit transaction")

	// ErrTransactionRollback indicates the driver failed to roll back. The
	// transaction remains open.
	ErrTransactionRollback = errors.New("failed to rollback transaction")

	// ErrAutocommitRestore indicates the transaction finished but autocommit
	// could not be re-enabled afterwards.
	ErrAutocommitRestore = errors.New("failed to restore autocommit")

	// ErrQueryExecution indicates a prepare or execute failure in Query.
	ErrQueryExecution = errors.New("query execution failed")

	// ErrMutationExecution indicates a prepare or execute failure in Exec.
	ErrMutationExecution = errors.New("mutation execution failed")

	// ErrNoRows indicates QueryRow matched no rows.
	ErrNoRows = errors.New("no rows in result set")
)
