/*
 * MIT License
 *
 * Copyright (c) 2025 gosocketpp contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package tcp is the TCP stream server (spec component C3's server half):
// accept loop, per-connection handler dispatch, and the
// listen/stop-listen/stop-gone/shutdown lifecycle.
package tcp

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	libsck "github.com/MangaD/gosocketpp/socket"
	libcfg "github.com/MangaD/gosocketpp/socket/config"
	liblst "github.com/MangaD/gosocketpp/socket/listener"
	libptc "github.com/MangaD/gosocketpp/socket/protocol"
	libstream "github.com/MangaD/gosocketpp/socket/stream"
)

// ErrInvalidAddress is returned by Listen when RegisterServer was never
// called (or was called with an empty address).
var ErrInvalidAddress = errors.New("socket/server/tcp: no address registered")

// ErrInvalidHandler is returned by Listen when no connection handler was
// supplied.
var ErrInvalidHandler = errors.New("socket/server/tcp: no handler registered")

// ErrShutdownTimeout is returned by Shutdown/StopGone when ctx expires
// before every in-flight connection finished.
var ErrShutdownTimeout = errors.New("socket/server/tcp: shutdown timeout")

// ServerTcp is the TCP-specific server contract: the shared socket.Server
// lifecycle plus address registration and the two-phase stop sequence.
type ServerTcp interface {
	libsck.Server

	// RegisterServer sets the listen address. Must be called before Listen.
	RegisterServer(address string) error

	// StopListen closes the listener so no new connections are accepted,
	// but leaves already-accepted connections running.
	StopListen(ctx context.Context) error

	// StopGone marks the server as gone and waits (bounded by ctx) for
	// every open connection to finish.
	StopGone(ctx context.Context) error
}

type server struct {
	mu      sync.Mutex
	address string
	tuning  libcfg.Tuning
	handler libsck.HandlerFunc
	upd     libsck.UpdateConn

	funcErr  libsck.FuncError
	funcInfo libsck.FuncInfo
	funcSrv  libsck.FuncInfoServer

	lst *liblst.Listener

	running atomic.Bool
	gone    atomic.Bool
	conns   atomic.Int64

	doneOnce sync.Once
	done     chan struct{}

	stopListenOnce sync.Once
}

// New builds a TCP server. handler is invoked once per accepted
// connection; upd, if non-nil, tunes the raw connection right after
// accept.
func New(upd libsck.UpdateConn, handler libsck.HandlerFunc) ServerTcp {
	return &server{
		handler: handler,
		upd:     upd,
		tuning:  libcfg.DefaultTuning(),
		done:    make(chan struct{}),
	}
}

func (s *server) RegisterServer(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = address
	return nil
}

func (s *server) RegisterFuncError(f libsck.FuncError)           { s.mu.Lock(); s.funcErr = f; s.mu.Unlock() }
func (s *server) RegisterFuncInfo(f libsck.FuncInfo)             { s.mu.Lock(); s.funcInfo = f; s.mu.Unlock() }
func (s *server) RegisterFuncInfoServer(f libsck.FuncInfoServer) { s.mu.Lock(); s.funcSrv = f; s.mu.Unlock() }

func (s *server) reportErr(errs ...error) {
	s.mu.Lock()
	f := s.funcErr
	s.mu.Unlock()
	if f != nil {
		f(errs...)
	}
}

func (s *server) reportInfo(r libsck.Reader, w libsck.Writer, state libsck.ConnState) {
	s.mu.Lock()
	f := s.funcInfo
	s.mu.Unlock()
	if f == nil {
		return
	}
	f(r.LocalAddr(), r.RemoteAddr(), state)
}

func (s *server) reportServer(msg string) {
	s.mu.Lock()
	f := s.funcSrv
	s.mu.Unlock()
	if f != nil {
		f(msg)
	}
}

// IsRunning reports whether the accept loop is currently active.
func (s *server) IsRunning() bool { return s.running.Load() }

// IsGone reports whether shutdown has been initiated.
func (s *server) IsGone() bool { return s.gone.Load() }

// Done returns a channel closed once shutdown has been initiated.
func (s *server) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// OpenConnections reports the number of connections currently being served.
func (s *server) OpenConnections() int64 { return s.conns.Load() }

// Listen binds the registered address and runs the accept loop until ctx
// is cancelled or Shutdown/Close is called.
func (s *server) Listen(ctx context.Context) error {
	s.mu.Lock()
	address := s.address
	handler := s.handler
	tuning := s.tuning
	s.mu.Unlock()

	if address == "" {
		return ErrInvalidAddress
	}
	if handler == nil {
		return ErrInvalidHandler
	}

	cfg := libcfg.Server{
		Network:      libptc.NetworkTCP,
		Address:      address,
		ReuseAddress: true,
	}
	lst, err := liblst.Listen(cfg, tuning)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lst = lst
	s.done = make(chan struct{})
	s.doneOnce = sync.Once{}
	s.stopListenOnce = sync.Once{}
	s.mu.Unlock()

	s.gone.Store(false)
	s.running.Store(true)
	defer s.running.Store(false)

	s.reportServer("listening on " + lst.Addr().String())

	stopWatch := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = s.StopListen(context.Background())
		case <-stopWatch:
		}
	}()
	defer close(stopWatch)

	var wg sync.WaitGroup
	for {
		conn, err := lst.Accept()
		if err != nil {
			wg.Wait()
			if libsck.ErrorFilter(err) == nil {
				return nil
			}
			s.reportErr(err)
			return err
		}

		wg.Add(1)
		s.conns.Add(1)
		go func() {
			defer wg.Done()
			defer s.conns.Add(-1)
			s.serve(conn)
		}()
	}
}

func (s *server) serve(conn *libstream.Conn) {
	s.reportInfo(conn, conn, libsck.ConnectionNew)

	defer func() {
		_ = conn.Close()
		s.reportInfo(conn, conn, libsck.ConnectionClose)
	}()

	s.mu.Lock()
	handler := s.handler
	upd := s.upd
	s.mu.Unlock()

	if upd != nil {
		if err := upd(conn.Raw()); err != nil {
			s.reportErr(err)
			return
		}
	}

	s.reportInfo(conn, conn, libsck.ConnectionHandler)
	handler(conn, conn)
}

// StopListen closes the listener so no new connections are accepted.
func (s *server) StopListen(_ context.Context) error {
	s.mu.Lock()
	lst := s.lst
	s.mu.Unlock()

	var err error
	s.stopListenOnce.Do(func() {
		if lst != nil {
			err = lst.Close()
		}
	})
	return err
}

// StopGone marks the server gone and waits for open connections to drain.
func (s *server) StopGone(ctx context.Context) error {
	s.gone.Store(true)
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	s.doneOnce.Do(func() { close(done) })

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for s.conns.Load() > 0 {
		select {
		case <-ctx.Done():
			return ErrShutdownTimeout
		case <-ticker.C:
		}
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight ones
// to finish, bounded by ctx.
func (s *server) Shutdown(ctx context.Context) error {
	if err := s.StopListen(ctx); err != nil {
		return err
	}
	return s.StopGone(ctx)
}

// Close is Shutdown with a background context.
func (s *server) Close() error {
	return s.Shutdown(context.Background())
}

var _ io.Closer = (*server)(nil)
