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

// Package listener is the passive-socket half of the stream server
// component (spec component C3): binding, the reuse-address option, and
// the accept vocabulary (blocking, timed, non-blocking
// try-accept, and an async callback form). Readiness waiting is expressed
// with net.Listener deadlines rather than a raw poll()/select() loop - the
// Go runtime's netpoller already does this multiplexing safely, and
// reimplementing it at the syscall level would fight the runtime rather
// than use it.
package listener

import (
	"context"
	"net"
	"syscall"
	"time"

	"github.com/google/uuid"

	libcfg "github.com/MangaD/gosocketpp/socket/config"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
	libopt "github.com/MangaD/gosocketpp/socket/sockopt"
	libstream "github.com/MangaD/gosocketpp/socket/stream"
)

// Listener wraps a bound, listening net.Listener.
type Listener struct {
	nl     net.Listener
	tuning libcfg.Tuning
}

// Listen binds and starts listening per cfg, applying ReuseAddress before
// bind via net.ListenConfig.Control. cfg.Backlog and cfg.DualStack are not
// applied: the listen() backlog is the one Go's net package picks, and the
// IPv6-only option is left at the platform default.
func Listen(cfg libcfg.Server, tuning libcfg.Tuning) (*Listener, error) {
	if err := cfg.Validate(); err != nil {
		return nil, liberr.InvalidArgument(err.Error())
	}

	network := cfg.Network.Network()
	lc := net.ListenConfig{}
	if cfg.ReuseAddress {
		lc.Control = func(_, _ string, rc syscall.RawConn) error {
			var setErr error
			ctrlErr := rc.Control(func(fd uintptr) {
				setErr = setReuseAddressFD(fd)
			})
			if ctrlErr != nil {
				return ctrlErr
			}
			return setErr
		}
	}

	nl, err := lc.Listen(context.Background(), network, cfg.Address)
	if err != nil {
		return nil, liberr.IoFailed(err)
	}

	return &Listener{nl: nl, tuning: tuning}, nil
}

// Addr returns the listener's bound local address.
func (l *Listener) Addr() net.Addr { return l.nl.Addr() }

// Close stops accepting and releases the underlying descriptor.
func (l *Listener) Close() error { return l.nl.Close() }

// Accept blocks until a connection arrives, applying the listener's
// configured connection tuning to it before returning.
func (l *Listener) Accept() (*libstream.Conn, error) {
	raw, err := l.nl.Accept()
	if err != nil {
		return nil, classifyAcceptErr(err)
	}
	return l.wrap(raw)
}

// AcceptTimeout blocks for at most timeout for a connection to arrive.
func (l *Listener) AcceptTimeout(timeout time.Duration) (*libstream.Conn, error) {
	type deadliner interface {
		SetDeadline(time.Time) error
	}
	if dl, ok := l.nl.(deadliner); ok {
		if err := dl.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, liberr.IoFailed(err)
		}
		defer dl.SetDeadline(time.Time{})
	}
	return l.Accept()
}

// TryAccept is a non-blocking accept attempt: it returns immediately, with
// ok false and a nil *libstream.Conn if nothing was pending rather than
// raising sockerr.Timeout as an error. Any other accept failure is still
// returned as an error.
func (l *Listener) TryAccept() (conn *libstream.Conn, ok bool, err error) {
	conn, err = l.AcceptTimeout(time.Microsecond)
	if err != nil {
		if liberr.Is(err, liberr.KindTimeout) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return conn, true, nil
}

// AcceptAsyncFunc spawns a goroutine that calls Accept once and invokes fn
// with exactly one of (conn, err) populated. Each invocation is tagged
// with a fresh correlation ID so a caller juggling several concurrent
// async accepts can match a callback to the request that spawned it. It
// returns a cancel function that, when called, closes the listener to
// unblock a pending Accept.
func (l *Listener) AcceptAsyncFunc(fn func(id uuid.UUID, conn *libstream.Conn, err error)) (cancel func()) {
	id := uuid.New()
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := l.Accept()
		fn(id, conn, err)
	}()
	return func() {
		l.Close()
		<-done
	}
}

func (l *Listener) wrap(raw net.Conn) (*libstream.Conn, error) {
	if tc, ok := raw.(*net.TCPConn); ok {
		if err := tc.SetNoDelay(l.tuning.NoDelay); err != nil {
			tc.Close()
			return nil, liberr.IoFailed(err)
		}
		if l.tuning.KeepAlive {
			if err := tc.SetKeepAlive(true); err != nil {
				tc.Close()
				return nil, liberr.IoFailed(err)
			}
		}
		if l.tuning.RecvBufferSize > 0 {
			if err := libopt.SetRecvBuffer(tc, l.tuning.RecvBufferSize); err != nil {
				tc.Close()
				return nil, err
			}
		}
		if l.tuning.SendBufferSize > 0 {
			if err := libopt.SetSendBuffer(tc, l.tuning.SendBufferSize); err != nil {
				tc.Close()
				return nil, err
			}
		}
	}
	return libstream.New(raw, l.tuning.InternalBufferSize), nil
}

func classifyAcceptErr(err error) error {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return liberr.Timeout(err.Error())
	}
	return liberr.IoFailed(err)
}
