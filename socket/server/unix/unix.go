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

// Package unix is the Unix-domain stream server: bind at a filesystem
// path (removing a stale socket file left over from an unclean previous
// shutdown), apply the requested file mode (group ownership is left
// unchanged), and run the
// same accept-loop lifecycle as socket/server/tcp.
package unix

import (
	"context"
	"errors"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	libsck "github.com/MangaD/gosocketpp/socket"
	libcfg "github.com/MangaD/gosocketpp/socket/config"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
	libstream "github.com/MangaD/gosocketpp/socket/stream"
)

// ErrInvalidAddress is returned by Listen when no path was registered.
var ErrInvalidAddress = errors.New("socket/server/unix: no path registered")

// ErrInvalidHandler is returned by Listen when no handler was supplied.
var ErrInvalidHandler = errors.New("socket/server/unix: no handler registered")

// ServerUnix is the Unix-domain server lifecycle contract.
type ServerUnix interface {
	libsck.Server
	RegisterServer(path string) error
}

// IsPathInUse reports whether path already names a live Unix-domain
// listener (as opposed to a stale socket file from an unclean shutdown).
func IsPathInUse(path string) bool {
	conn, err := net.DialTimeout("unix", path, 200*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

type server struct {
	mu      sync.Mutex
	path    string
	perm    os.FileMode
	handler libsck.HandlerFunc
	tuning  libcfg.Tuning

	funcErr  libsck.FuncError
	funcInfo libsck.FuncInfo
	funcSrv  libsck.FuncInfoServer

	nl net.Listener

	running atomic.Bool
	gone    atomic.Bool
	conns   atomic.Int64

	mu2  sync.Mutex
	done chan struct{}
}

// New builds a Unix-domain stream server. perm sets the socket file's
// mode once bound; zero keeps the OS default (usually umask-restricted).
func New(handler libsck.HandlerFunc, perm os.FileMode) ServerUnix {
	return &server{handler: handler, perm: perm, tuning: libcfg.DefaultTuning(), done: make(chan struct{})}
}

func (s *server) RegisterServer(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	return nil
}

func (s *server) RegisterFuncError(f libsck.FuncError)           { s.mu.Lock(); s.funcErr = f; s.mu.Unlock() }
func (s *server) RegisterFuncInfo(f libsck.FuncInfo)             { s.mu.Lock(); s.funcInfo = f; s.mu.Unlock() }
func (s *server) RegisterFuncInfoServer(f libsck.FuncInfoServer) { s.mu.Lock(); s.funcSrv = f; s.mu.Unlock() }

func (s *server) reportServer(msg string) {
	s.mu.Lock()
	f := s.funcSrv
	s.mu.Unlock()
	if f != nil {
		f(msg)
	}
}

func (s *server) reportErr(errs ...error) {
	s.mu.Lock()
	f := s.funcErr
	s.mu.Unlock()
	if f != nil {
		f(errs...)
	}
}

func (s *server) reportInfo(conn *libstream.Conn, state libsck.ConnState) {
	s.mu.Lock()
	f := s.funcInfo
	s.mu.Unlock()
	if f != nil {
		f(conn.LocalAddr(), conn.RemoteAddr(), state)
	}
}

func (s *server) IsRunning() bool        { return s.running.Load() }
func (s *server) IsGone() bool           { return s.gone.Load() }
func (s *server) OpenConnections() int64 { return s.conns.Load() }

func (s *server) Done() <-chan struct{} {
	s.mu2.Lock()
	defer s.mu2.Unlock()
	return s.done
}

func (s *server) Listen(ctx context.Context) error {
	s.mu.Lock()
	path := s.path
	handler := s.handler
	perm := s.perm
	s.mu.Unlock()

	if path == "" {
		return ErrInvalidAddress
	}
	if handler == nil {
		return ErrInvalidHandler
	}

	if !IsPathInUse(path) {
		_ = os.Remove(path)
	}

	nl, err := net.Listen("unix", path)
	if err != nil {
		return liberr.IoFailed(err)
	}
	if perm != 0 {
		if err := os.Chmod(path, perm); err != nil {
			nl.Close()
			return liberr.IoFailed(err)
		}
	}

	s.mu.Lock()
	s.nl = nl
	s.mu2.Lock()
	s.done = make(chan struct{})
	s.mu2.Unlock()
	s.mu.Unlock()

	s.gone.Store(false)
	s.running.Store(true)
	defer s.running.Store(false)
	defer os.Remove(path)

	s.reportServer("listening on " + nl.Addr().String())

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = nl.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	var wg sync.WaitGroup
	for {
		raw, err := nl.Accept()
		if err != nil {
			wg.Wait()
			if libsck.ErrorFilter(err) == nil {
				return nil
			}
			s.reportErr(err)
			return err
		}

		conn := libstream.New(raw, s.tuning.InternalBufferSize)
		wg.Add(1)
		s.conns.Add(1)
		go func() {
			defer wg.Done()
			defer s.conns.Add(-1)
			s.reportInfo(conn, libsck.ConnectionNew)
			defer func() {
				_ = conn.Close()
				s.reportInfo(conn, libsck.ConnectionClose)
			}()
			s.reportInfo(conn, libsck.ConnectionHandler)
			handler(conn, conn)
		}()
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	s.gone.Store(true)
	s.mu2.Lock()
	done := s.done
	s.mu2.Unlock()
	select {
	case <-done:
	default:
		close(done)
	}

	s.mu.Lock()
	nl := s.nl
	s.mu.Unlock()
	if nl != nil {
		_ = nl.Close()
	}

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for s.conns.Load() > 0 {
		select {
		case <-ctx.Done():
			return errors.New("socket/server/unix: shutdown timeout")
		case <-ticker.C:
		}
	}
	return nil
}

func (s *server) Close() error { return s.Shutdown(context.Background()) }
