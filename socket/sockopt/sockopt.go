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

// Package sockopt is the typed getsockopt/setsockopt facade (spec
// component C2): address reuse with the passive/active distinction,
// buffer-size tuning, TCP_NODELAY/SO_KEEPALIVE, and the FIONREAD probe
// used by the datagram and stream exact-size reads. Every call drops to
// the raw descriptor via socket/internal/rawconn and golang.org/x/sys, the
// platform-specific half lives in sockopt_unix.go / sockopt_windows.go.
package sockopt

import "syscall"

// Conn is the minimal capability this package needs from a socket: access
// to its syscall.RawConn.
type Conn interface {
	syscall.Conn
}

// SetReuseAddress applies the address-reuse option appropriate for the
// socket's role. On a passive (listening) socket, Windows uses
// SO_EXCLUSIVEADDRUSE while every other platform (and every active
// socket, everywhere) uses SO_REUSEADDR - see spec.md §4.2.
func SetReuseAddress(conn Conn, passive bool) error {
	return setReuseAddress(conn, passive)
}

// GetReuseAddress reads the address-reuse option back. On Windows, the
// exclusive-use value is inverted so the caller always observes a
// consistent "reuse enabled" semantic regardless of platform.
func GetReuseAddress(conn Conn, passive bool) (bool, error) {
	return getReuseAddress(conn, passive)
}

// SetRecvBuffer requests a new SO_RCVBUF size. The OS may round, cap, or
// double the request; callers should re-read with GetRecvBuffer rather
// than assume the requested value stuck.
func SetRecvBuffer(conn Conn, size int) error { return setRecvBuffer(conn, size) }

// GetRecvBuffer reads the current SO_RCVBUF size.
func GetRecvBuffer(conn Conn) (int, error) { return getRecvBuffer(conn) }

// SetSendBuffer requests a new SO_SNDBUF size.
func SetSendBuffer(conn Conn, size int) error { return setSendBuffer(conn, size) }

// GetSendBuffer reads the current SO_SNDBUF size.
func GetSendBuffer(conn Conn) (int, error) { return getSendBuffer(conn) }

// SetNoDelay toggles TCP_NODELAY (disabling Nagle's algorithm when true).
func SetNoDelay(conn Conn, enabled bool) error { return setNoDelay(conn, enabled) }

// SetKeepAlive toggles SO_KEEPALIVE. Interval/probe-count tuning is left
// to the OS defaults, per spec.md §4.2.
func SetKeepAlive(conn Conn, enabled bool) error { return setKeepAlive(conn, enabled) }

// PendingBytes reads the number of bytes currently queued for reading via
// the FIONREAD ioctl, used by ReadAvailable and the datagram exact-size
// pre-sizing helper.
func PendingBytes(conn Conn) (int, error) { return pendingBytes(conn) }
