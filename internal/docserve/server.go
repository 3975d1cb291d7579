// SPDX-License-Identifier: MPL-2.0

package docserve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"stacked-cli/internal/registry"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

const (
	// StateCreated indicates the server has been created but not started.
	StateCreated ServerState = iota
	// StateStarting indicates the server is in the process of starting.
	StateStarting
	// StateRunning indicates the server is accepting connections.
	StateRunning
	// StateStopping indicates the server is shutting down.
	StateStopping
	// StateStopped indicates the server has stopped (terminal state).
	StateStopped
	// StateFailed indicates the server failed to start (terminal state).
	StateFailed
)

type (
	// ServerState represents the lifecycle state of the server.
	ServerState int32

	// TableFunc produces the command table to serve. It runs once per
	// session so clients always see the current command list.
	TableFunc func() (registry.CommandTable, error)

	// Server serves the command list over SSH. A Server instance is
	// single-use: once stopped or failed, create a new instance.
	Server struct {
		cfg   Config
		table TableFunc

		state atomic.Int32

		srvMu    sync.Mutex
		srv      *ssh.Server
		listener net.Listener
		addr     string

		startedCh chan struct{}
		errCh     chan error
		lastErr   error
		logger    *log.Logger
	}
)

// New creates a documentation server. The config is validated eagerly so
// misconfiguration surfaces before any socket is opened.
func New(cfg Config, table TableFunc, logger *log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, errors.New("docserve: nil table func")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:       cfg,
		table:     table,
		startedCh: make(chan struct{}),
		errCh:     make(chan error, 1),
		logger:    logger,
	}, nil
}

// Start binds the listener and begins serving. It blocks until the server
// is ready, fails, or the startup timeout elapses.
func (s *Server) Start(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateCreated), int32(StateStarting)) {
		return fmt.Errorf("docserve: server already started (state %d)", s.state.Load())
	}

	startupCtx, cancel := context.WithTimeout(ctx, s.cfg.StartupTimeout)
	defer cancel()

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var lc net.ListenConfig
	listener, err := lc.Listen(startupCtx, "tcp", addr)
	if err != nil {
		return s.fail(fmt.Errorf("listen on %s: %w", addr, err))
	}

	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		// The command list is public documentation, so any key or
		// password is accepted.
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithPasswordAuth(func(ssh.Context, string) bool { return true }),
		wish.WithMiddleware(s.listingMiddleware()),
	)
	if err != nil {
		_ = listener.Close()
		return s.fail(fmt.Errorf("create SSH server: %w", err))
	}

	s.srvMu.Lock()
	s.srv = srv
	s.listener = listener
	s.addr = listener.Addr().String()
	s.srvMu.Unlock()

	go s.serve()

	select {
	case <-s.startedCh:
		s.logger.Info("doc server started", "address", s.addr)
		return nil
	case err := <-s.errCh:
		return s.fail(err)
	case <-startupCtx.Done():
		_ = listener.Close()
		return s.fail(fmt.Errorf("startup timeout: %w", startupCtx.Err()))
	}
}

// Stop gracefully shuts the server down, waiting up to the shutdown
// timeout for open sessions. Safe to call on a server that never started.
func (s *Server) Stop() error {
	if !s.state.CompareAndSwap(int32(StateRunning), int32(StateStopping)) {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.srvMu.Lock()
	srv := s.srv
	listener := s.listener
	s.srvMu.Unlock()

	var shutdownErr error
	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			shutdownErr = err
		}
	}
	if listener != nil {
		_ = listener.Close()
	}

	s.state.Store(int32(StateStopped))
	s.logger.Info("doc server stopped")
	return shutdownErr
}

// State returns the current lifecycle state.
func (s *Server) State() ServerState {
	return ServerState(s.state.Load())
}

// Address returns the bound address, or "" before the server has started.
func (s *Server) Address() string {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()
	return s.addr
}

// Err exposes fatal serve errors for callers that block on the server.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// LastError returns the error that moved the server to StateFailed, or nil.
func (s *Server) LastError() error {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()
	return s.lastErr
}

func (s *Server) fail(err error) error {
	s.srvMu.Lock()
	s.lastErr = err
	s.srvMu.Unlock()
	s.state.Store(int32(StateFailed))
	return err
}

func (s *Server) serve() {
	s.state.Store(int32(StateRunning))
	close(s.startedCh)

	s.srvMu.Lock()
	srv := s.srv
	listener := s.listener
	s.srvMu.Unlock()

	err := srv.Serve(listener)
	if err != nil && !errors.Is(err, ssh.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
		select {
		case s.errCh <- fmt.Errorf("serve error: %w", err):
		default:
		}
	}
}

// listingMiddleware writes the rendered command list to each session.
// "stg-serve markup" on the SSH command line selects the markup renderer;
// anything else gets the aligned plain listing.
func (s *Server) listingMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			table, err := s.table()
			if err != nil {
				s.logger.Error("build command table", "error", err)
				fmt.Fprintf(sess.Stderr(), "error: %v\n", err)
				_ = sess.Exit(1)
				return
			}

			write := registry.WritePlain
			if wantsMarkup(sess.Command()) {
				write = registry.WriteMarkup
			}
			if err := write(sess, table); err != nil {
				s.logger.Error("render command list", "error", err)
				fmt.Fprintf(sess.Stderr(), "error: %v\n", err)
				_ = sess.Exit(1)
				return
			}
			next(sess)
		}
	}
}

func wantsMarkup(command []string) bool {
	for _, arg := range command {
		if strings.EqualFold(arg, "markup") {
			return true
		}
	}
	return false
}
