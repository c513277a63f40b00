package dbaccess

import (
	"fmt"
	"log/slog"
	"time"
)

// Option is a functional option for configuring a Handle.
type Option func(*Config)

// Config holds the connection settings for a Handle.
type Config struct {
	Server   string
	Port     int
	Database string
	User     string
	Password string

	// Driver is the ODBC driver name, with or without surrounding braces.
	Driver string

	// Common options
	ConnectTimeout time.Duration
	Logger         *slog.Logger
}

// DefaultDriver is the ODBC driver used when none is configured.
const DefaultDriver = "{SQL Server}"

// DefaultConfig returns a default handle configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           1433,
		Driver:         DefaultDriver,
		ConnectTimeout: 10 * time.Second,
	}
}

// Validate checks that the mandatory connection fields are present.
func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("%w: server must not be empty", ErrInvalidConfig)
	}
	if c.Database == "" {
		return fmt.Errorf("%w: database must not be empty", ErrInvalidConfig)
	}
	if c.User == "" {
		return fmt.Errorf("%w: user must not be empty", ErrInvalidConfig)
	}
	return nil
}

// WithServer sets the database server host.
func WithServer(server string) Option {
	return func(c *Config) {
		c.Server = server
	}
}

// WithPort sets the database server port.
func WithPort(port int) Option {
	return func(c *Config) {
		c.Port = port
	}
}

// WithDatabase sets the database name.
func WithDatabase(database string) Option {
	return func(c *Config) {
		c.Database = database
	}
}

// WithUser sets the username for authentication.
func WithUser(user string) Option {
	return func(c *Config) {
		c.User = user
	}
}

// WithPassword sets the password for authentication.
func WithPassword(password string) Option {
	return func(c *Config) {
		c.Password = password
	}
}

// WithDriver sets the ODBC driver name.
func WithDriver(driver string) Option {
	return func(c *Config) {
		c.Driver = driver
	}
}

// WithConnectTimeout sets the connection timeout.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ConnectTimeout = timeout
	}
}

// WithLogger sets the logger used to report abandoned connections.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
