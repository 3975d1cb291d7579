// SPDX-License-Identifier: MPL-2.0

package docserve

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultHost is the loopback-only default bind address.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the default listening port.
	DefaultPort = 2222
	// DefaultStartupTimeout bounds how long Start() waits for readiness.
	DefaultStartupTimeout = 10 * time.Second
	// DefaultShutdownTimeout bounds how long Stop() waits for open sessions.
	DefaultShutdownTimeout = 5 * time.Second
)

var (
	// ErrInvalidHost is the sentinel wrapped by InvalidHostError.
	ErrInvalidHost = errors.New("invalid host address")
	// ErrInvalidPort is the sentinel wrapped by InvalidPortError.
	ErrInvalidPort = errors.New("invalid listen port")
)

type (
	// Config holds the documentation server settings.
	Config struct {
		Host            string
		Port            int
		StartupTimeout  time.Duration
		ShutdownTimeout time.Duration
	}

	// InvalidHostError is returned when the host is empty or whitespace-only.
	InvalidHostError struct {
		Value string
	}

	// InvalidPortError is returned when the port is outside 0-65535.
	// Port 0 is allowed and means "pick a free port".
	InvalidPortError struct {
		Value int
	}
)

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		StartupTimeout:  DefaultStartupTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Validate checks the config and fills zero-valued timeouts with defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return &InvalidHostError{Value: c.Host}
	}
	if c.Port < 0 || c.Port > 65535 {
		return &InvalidPortError{Value: c.Port}
	}
	if c.StartupTimeout <= 0 {
		c.StartupTimeout = DefaultStartupTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return nil
}

func (e *InvalidHostError) Error() string {
	return fmt.Sprintf("invalid host address %q: must be non-empty", e.Value)
}

func (e *InvalidHostError) Unwrap() error { return ErrInvalidHost }

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid listen port %d: must be in 0-65535", e.Value)
}

func (e *InvalidPortError) Unwrap() error { return ErrInvalidPort }
