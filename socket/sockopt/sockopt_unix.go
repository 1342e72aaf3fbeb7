//go:build !windows

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

package sockopt

import (
	"golang.org/x/sys/unix"

	"github.com/MangaD/gosocketpp/socket/internal/rawconn"
)

// POSIX has a single, well-known reuse option: SO_REUSEADDR, used the
// same way whether the socket is passive or active.
func setReuseAddress(conn Conn, _ bool) error {
	return rawconn.Control(conn, func(fd uintptr) error {
		return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
}

func getReuseAddress(conn Conn, _ bool) (bool, error) {
	var v int
	err := rawconn.Control(conn, func(fd uintptr) error {
		x, e := unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR)
		v = x
		return e
	})
	return v != 0, err
}

func setRecvBuffer(conn Conn, size int) error {
	return rawconn.Control(conn, func(fd uintptr) error {
		return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, size)
	})
}

func getRecvBuffer(conn Conn) (int, error) {
	var v int
	err := rawconn.Control(conn, func(fd uintptr) error {
		x, e := unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF)
		v = x
		return e
	})
	return v, err
}

func setSendBuffer(conn Conn, size int) error {
	return rawconn.Control(conn, func(fd uintptr) error {
		return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, size)
	})
}

func getSendBuffer(conn Conn) (int, error) {
	var v int
	err := rawconn.Control(conn, func(fd uintptr) error {
		x, e := unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF)
		v = x
		return e
	})
	return v, err
}

func setNoDelay(conn Conn, enabled bool) error {
	return rawconn.Control(conn, func(fd uintptr) error {
		return unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, boolToInt(enabled))
	})
}

func setKeepAlive(conn Conn, enabled bool) error {
	return rawconn.Control(conn, func(fd uintptr) error {
		return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_KEEPALIVE, boolToInt(enabled))
	})
}

func pendingBytes(conn Conn) (int, error) {
	var v int
	err := rawconn.Control(conn, func(fd uintptr) error {
		x, e := unix.IoctlGetInt(int(fd), unix.FIONREAD)
		v = x
		return e
	})
	return v, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
