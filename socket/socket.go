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

// Package socket holds the vocabulary shared by every protocol-specific
// client and server in this module: connection state, the reader/writer
// handler contract, buffer-size defaults and the UDP payload limits.
package socket

import (
	"context"
	"io"
	"net"
	"strings"
)

// DefaultBufferSize is the default size of the per-connection reusable
// receive buffer used by delimited and string-returning reads.
const DefaultBufferSize = 32 * 1024

// EOL is the delimiter used by ReadLine.
const EOL byte = '\n'

// UDP payload limits, exposed so callers can size buffers without
// guessing. SafeMax and IPv4Max coincide because IPv4 UDP datagrams share
// the same practical ceiling once IP and UDP headers are accounted for.
const (
	SafeMax = 65507
	IPv4Max = 65507
	IPv6Max = 65527
)

// DefaultDatagramBufferSize is the fallback allocation used when a
// datagram's exact pending size cannot be determined up front.
const DefaultDatagramBufferSize = 8192

// Reader is the read half handed to a connection handler: a closable
// byte source that also knows its peer.
type Reader interface {
	io.ReadCloser
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}

// Writer is the write half handed to a connection handler.
type Writer interface {
	io.WriteCloser
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}

// ConnState enumerates the lifecycle steps a server walks a connection
// through, surfaced to the RegisterFuncInfo callback.
type ConnState uint8

const (
	ConnectionDial ConnState = iota
	ConnectionNew
	ConnectionRead
	ConnectionCloseRead
	ConnectionHandler
	ConnectionWrite
	ConnectionCloseWrite
	ConnectionClose
)

func (s ConnState) String() string {
	switch s {
	case ConnectionDial:
		return "Dial Connection"
	case ConnectionNew:
		return "New Connection"
	case ConnectionRead:
		return "Read Incoming Stream"
	case ConnectionCloseRead:
		return "Close Incoming Stream"
	case ConnectionHandler:
		return "Run HandlerFunc"
	case ConnectionWrite:
		return "Write Outgoing Steam"
	case ConnectionCloseWrite:
		return "Close Outgoing Stream"
	case ConnectionClose:
		return "Close Connection"
	default:
		return "unknown connection state"
	}
}

// FuncError is the error-reporting hook registered on listeners, servers
// and datagram sockets. It may be called with more than one error at once
// (e.g. a handler error alongside a close error).
type FuncError func(errs ...error)

// FuncInfo is the per-connection lifecycle hook.
type FuncInfo func(local, remote net.Addr, state ConnState)

// FuncInfoServer is the server-level informational hook (start, stop,
// listener bound, etc.).
type FuncInfoServer func(msg string)

// HandlerFunc is the connection handler signature used by stream servers:
// it receives the read half and the write half of an accepted connection
// and is responsible for closing both.
type HandlerFunc func(r Reader, w Writer)

// UpdateConn lets a caller tune a raw net.Conn (buffer sizes, TCP_NODELAY,
// deadlines...) right after accept/dial and before the connection is
// wrapped and handed to a HandlerFunc. A nil UpdateConn leaves the
// connection untouched.
type UpdateConn func(conn net.Conn) error

// Server is the lifecycle contract shared by every protocol-specific
// server (tcp, udp, unix, unixgram): registration, the accept loop, and
// graceful shutdown.
type Server interface {
	// RegisterFuncError sets the error-reporting hook; nil disables it.
	RegisterFuncError(f FuncError)
	// RegisterFuncInfo sets the per-connection lifecycle hook; nil disables it.
	RegisterFuncInfo(f FuncInfo)
	// RegisterFuncInfoServer sets the server-level informational hook; nil disables it.
	RegisterFuncInfoServer(f FuncInfoServer)

	// Listen binds (if not already bound) and runs the accept loop until
	// ctx is done or Shutdown/Close is called.
	Listen(ctx context.Context) error

	// IsRunning reports whether the accept loop is currently active.
	IsRunning() bool
	// IsGone reports whether the server has begun or completed shutdown.
	IsGone() bool
	// Done returns a channel closed once shutdown has been initiated.
	Done() <-chan struct{}
	// OpenConnections reports the number of connections currently being served.
	OpenConnections() int64

	// Shutdown stops the accept loop and waits for in-flight connections
	// to finish, bounded by ctx.
	Shutdown(ctx context.Context) error
	// Close is Shutdown with a background context.
	Close() error
}

// ErrorFilter swallows the error strings the standard library produces
// for a socket that was closed out from under an in-flight operation,
// since that is the expected shutdown path rather than a reportable
// failure. Any other error passes through unchanged.
func ErrorFilter(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if strings.Contains(msg, "use of closed network connection") {
		return nil
	}

	return err
}
