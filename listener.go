// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
)

// listenerState enumerates a Listener's lifecycle states (see §4.6).
type listenerState int32

const (
	listenerCreated listenerState = iota
	listenerRunning
	listenerStopped
	listenerDisposed
)

// Listener binds a local TCP port and runs an [*http.Server] over it,
// dispatching every accepted request to a handler supplied by the owning
// [*Instance].
//
// The distilled design leaves "all interfaces or loopback only" unspecified
// (see §9); this implementation binds to loopback (127.0.0.1) only, since a
// mocking/recording proxy has no business accepting connections from other
// hosts on the network by default.
type Listener struct {
	port    int
	handler http.Handler
	config  *Config

	mu    sync.Mutex
	state atomic.Int32
	ln    net.Listener
	srv   *http.Server
	once  sync.Once
}

// NewListener returns a [*Listener] bound to port once Start is called. If
// cfg is nil, [NewConfig] defaults are used.
func NewListener(port int, handler http.Handler, cfg *Config) *Listener {
	if cfg == nil {
		cfg = NewConfig()
	}
	l := &Listener{port: port, handler: handler, config: cfg}
	l.state.Store(int32(listenerCreated))
	return l
}

// Port returns the configured listening port.
func (l *Listener) Port() int {
	return l.port
}

// currentState returns the listener's current lifecycle state.
func (l *Listener) currentState() listenerState {
	return listenerState(l.state.Load())
}

// Start binds the listening port and begins accepting connections. Calling
// Start while already Running is a no-op (§4.7: "tolerate being called when
// already in the target state"). Calling Start on a Disposed listener fails
// with [ErrInvalidState].
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.currentState() {
	case listenerDisposed:
		return fmt.Errorf("%w: listener is disposed", ErrInvalidState)
	case listenerRunning:
		return nil
	}

	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(l.port)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	l.ln = ln
	l.srv = &http.Server{Handler: l.handler}

	go func() {
		if err := l.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			l.config.Logger.Error("listener accept loop stopped unexpectedly", "port", l.port, "error", err)
		}
	}()

	l.state.Store(int32(listenerRunning))
	l.config.Logger.Info("listener started", "port", l.port)
	return nil
}

// Shutdown stops accepting new connections and waits up to the configured
// [Config.ShutdownGrace] for in-flight handlers to finish before forcing
// closed. Calling Shutdown while already Stopped or Created is a no-op.
// Calling Shutdown on a Disposed listener fails with [ErrInvalidState].
func (l *Listener) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.currentState() {
	case listenerDisposed:
		return fmt.Errorf("%w: listener is disposed", ErrInvalidState)
	case listenerRunning:
		// fall through to shut down below
	default:
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.config.ShutdownGrace)
	defer cancel()
	if err := l.srv.Shutdown(ctx); err != nil {
		l.srv.Close()
	}
	l.state.Store(int32(listenerStopped))
	l.config.Logger.Info("listener stopped", "port", l.port)
	return nil
}

// Dispose transitions the listener to the terminal Disposed state, shutting
// it down first if running. Dispose is idempotent: a second call is a
// no-op (see §4.6, §8 invariant 9).
func (l *Listener) Dispose() error {
	var shutdownErr error
	l.once.Do(func() {
		shutdownErr = l.Shutdown()
		l.mu.Lock()
		l.state.Store(int32(listenerDisposed))
		l.mu.Unlock()
	})
	return shutdownErr
}
