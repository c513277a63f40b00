// Package dbaccess is a thin wrapper around an ODBC data source. A Handle
// owns at most one live driver connection and at most one open transaction,
// and every operation is a synchronous pass-through to the driver with the
// lifecycle invariants enforced up front.
//
// A Handle is not safe for concurrent use: share nothing, or serialize
// externally. The intended discipline is one handle per logical unit of work,
// paired Connect/Close, and explicit Commit or Rollback before Close.
package dbaccess

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/uuid"

	"github.com/acamposserna/dbaccess/internal/driver"
)

// Handle is a single database connection with transaction state.
type Handle struct {
	id         string
	config     *Config
	descriptor string
	logger     *slog.Logger

	drv  driver.Driver
	conn driver.Conn

	inTransaction bool
}

// New creates a Handle from the given options. No connection is made here;
// call Connect to reach the database.
func New(opts ...Option) (*Handle, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handle{
		id:         uuid.NewString(),
		config:     config,
		descriptor: driver.ConnString(config.Driver, config.Server, config.Port, config.Database),
		logger:     logger,
		drv:        driver.ODBC(),
	}

	// Safety net only: a handle collected while connected is released,
	// unless a transaction is still open. In that case the connection is
	// left live so uncommitted work is not silently discarded, and the
	// leak is reported instead.
	runtime.SetFinalizer(h, finalizeHandle)

	return h, nil
}

// Connect establishes the driver connection.
func (h *Handle) Connect(ctx context.Context) error {
	if h.conn != nil {
		return ErrAlreadyConnected
	}

	if h.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.ConnectTimeout)
		defer cancel()
	}

	conn, err := h.drv.Connect(ctx, h.descriptor, h.config.User, h.config.Password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}

	h.conn = conn
	return nil
}

// Close releases the driver connection. A handle with an open transaction
// cannot be closed; commit or roll back first. After a successful Close the
// handle may Connect again.
func (h *Handle) Close() error {
	if h.conn == nil {
		return ErrNotConnected
	}
	if h.inTransaction {
		return ErrTransactionActive
	}

	if err := h.conn.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnect, err)
	}

	h.conn = nil
	return nil
}

// IsConnected reports whether the handle holds a live connection.
func (h *Handle) IsConnected() bool {
	return h.conn != nil
}

// InTransaction reports whether a transaction is open.
func (h *Handle) InTransaction() bool {
	return h.inTransaction
}

func finalizeHandle(h *Handle) {
	if h.conn == nil {
		return
	}
	if h.inTransaction {
		h.logger.Warn("database handle abandoned with open transaction, connection left live",
			"handle", h.id,
			"database", h.config.Database)
		return
	}
	_ = h.conn.Close()
	h.conn = nil
}
