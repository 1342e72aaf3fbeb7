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

// Package udp is the UDP datagram server (spec component C5's server
// half): a single bound socket, one receive loop, and one Context per
// datagram handed to a HandlerFunc - since UDP has no real per-peer
// connection, Context.Read yields exactly the one datagram's payload and
// Context.Write replies to its sender.
package udp

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	libsck "github.com/MangaD/gosocketpp/socket"
	libcfg "github.com/MangaD/gosocketpp/socket/config"
	libdgr "github.com/MangaD/gosocketpp/socket/datagram"
)

// ErrInvalidAddress is returned by Listen when the server was built
// without an address.
var ErrInvalidAddress = errors.New("socket/server/udp: no address registered")

// ErrInvalidHandler is returned by Listen when no handler was supplied.
var ErrInvalidHandler = errors.New("socket/server/udp: no handler registered")

// Context is the per-datagram pseudo-connection handed to a HandlerFunc.
type Context interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}

// HandlerFunc processes one received datagram.
type HandlerFunc func(ctx Context)

type datagramContext struct {
	sock   *libdgr.Socket
	local  net.Addr
	remote net.Addr
	data   []byte
	read   bool
}

func (c *datagramContext) Read(p []byte) (int, error) {
	if c.read {
		return 0, io.EOF
	}
	c.read = true
	n := copy(p, c.data)
	return n, nil
}

func (c *datagramContext) Write(p []byte) (int, error) {
	return c.sock.Send(libdgr.Packet{Data: p, Addr: c.remote})
}

func (c *datagramContext) Close() error         { return nil }
func (c *datagramContext) LocalAddr() net.Addr  { return c.local }
func (c *datagramContext) RemoteAddr() net.Addr { return c.remote }

// ServerUdp is the UDP server lifecycle contract.
type ServerUdp interface {
	libsck.Server
	Listen(ctx context.Context) error
}

type server struct {
	mu      sync.Mutex
	cfg     libcfg.Server
	handler HandlerFunc
	upd     libsck.UpdateConn

	funcErr  libsck.FuncError
	funcInfo libsck.FuncInfo
	funcSrv  libsck.FuncInfoServer

	sock *libdgr.Socket

	running atomic.Bool
	gone    atomic.Bool
	conns   atomic.Int64

	mu2  sync.Mutex
	done chan struct{}
}

// New builds a UDP server bound to cfg.Address once Listen is called.
func New(upd libsck.UpdateConn, handler HandlerFunc, cfg libcfg.Server) (ServerUdp, error) {
	return &server{
		cfg:     cfg,
		handler: handler,
		upd:     upd,
		done:    make(chan struct{}),
	}, nil
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

func (s *server) reportInfo(local, remote net.Addr, state libsck.ConnState) {
	s.mu.Lock()
	f := s.funcInfo
	s.mu.Unlock()
	if f != nil {
		f(local, remote, state)
	}
}

func (s *server) IsRunning() bool       { return s.running.Load() }
func (s *server) IsGone() bool          { return s.gone.Load() }
func (s *server) OpenConnections() int64 { return s.conns.Load() }

func (s *server) Done() <-chan struct{} {
	s.mu2.Lock()
	defer s.mu2.Unlock()
	return s.done
}

func (s *server) Listen(ctx context.Context) error {
	s.mu.Lock()
	address := s.cfg.Address
	handler := s.handler
	s.mu.Unlock()

	if address == "" {
		return ErrInvalidAddress
	}
	if handler == nil {
		return ErrInvalidHandler
	}

	network := s.cfg.Network.Network()
	if network == "" {
		network = "udp"
	}
	sock, err := libdgr.Bind(network, address)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sock = sock
	s.mu2.Lock()
	s.done = make(chan struct{})
	s.mu2.Unlock()
	s.mu.Unlock()

	s.gone.Store(false)
	s.running.Store(true)
	defer s.running.Store(false)

	s.reportServer("listening on " + sock.LocalAddr().String())

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = sock.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	var wg sync.WaitGroup
	for {
		pkt, err := sock.Receive(libsck.DefaultDatagramBufferSize)
		if err != nil {
			wg.Wait()
			if libsck.ErrorFilter(err) == nil {
				return nil
			}
			s.reportErr(err)
			return err
		}

		dctx := &datagramContext{sock: sock, local: sock.LocalAddr(), remote: pkt.Addr, data: pkt.Data}
		s.reportInfo(dctx.local, dctx.remote, libsck.ConnectionNew)

		wg.Add(1)
		s.conns.Add(1)
		go func() {
			defer wg.Done()
			defer s.conns.Add(-1)
			s.reportInfo(dctx.local, dctx.remote, libsck.ConnectionHandler)
			handler(dctx)
			s.reportInfo(dctx.local, dctx.remote, libsck.ConnectionClose)
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
	sock := s.sock
	s.mu.Unlock()
	if sock != nil {
		_ = sock.Close()
	}

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for s.conns.Load() > 0 {
		select {
		case <-ctx.Done():
			return errors.New("socket/server/udp: shutdown timeout")
		case <-ticker.C:
		}
	}
	return nil
}

func (s *server) Close() error {
	return s.Shutdown(context.Background())
}
