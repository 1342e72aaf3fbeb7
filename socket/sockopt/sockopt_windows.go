//go:build windows

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
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/MangaD/gosocketpp/socket/internal/rawconn"
)

// Windows has no single "reuse" option: a passive (listening) socket
// must use SO_EXCLUSIVEADDRUSE to keep another process from silently
// hijacking the port, while an active socket uses the familiar
// SO_REUSEADDR. spec.md §4.2 calls this out explicitly.
func setReuseAddress(conn Conn, passive bool) error {
	opt := int32(windows.SO_REUSEADDR)
	if passive {
		opt = windows.SO_EXCLUSIVEADDRUSE
	}
	return rawconn.Control(conn, func(fd uintptr) error {
		return setsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, opt, 1)
	})
}

// getReuseAddress inverts the exclusive-use bit on read so callers always
// see a consistent "reuse enabled" boolean irrespective of which option
// the platform actually uses under the hood.
func getReuseAddress(conn Conn, passive bool) (bool, error) {
	opt := int32(windows.SO_REUSEADDR)
	if passive {
		opt = windows.SO_EXCLUSIVEADDRUSE
	}

	var v int32
	err := rawconn.Control(conn, func(fd uintptr) error {
		x, e := getsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, opt)
		v = x
		return e
	})
	if err != nil {
		return false, err
	}
	if passive {
		return v == 0, nil
	}
	return v != 0, nil
}

func setRecvBuffer(conn Conn, size int) error {
	return rawconn.Control(conn, func(fd uintptr) error {
		return setsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_RCVBUF, int32(size))
	})
}

func getRecvBuffer(conn Conn) (int, error) {
	var v int32
	err := rawconn.Control(conn, func(fd uintptr) error {
		x, e := getsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_RCVBUF)
		v = x
		return e
	})
	return int(v), err
}

func setSendBuffer(conn Conn, size int) error {
	return rawconn.Control(conn, func(fd uintptr) error {
		return setsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_SNDBUF, int32(size))
	})
}

func getSendBuffer(conn Conn) (int, error) {
	var v int32
	err := rawconn.Control(conn, func(fd uintptr) error {
		x, e := getsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_SNDBUF)
		v = x
		return e
	})
	return int(v), err
}

func setNoDelay(conn Conn, enabled bool) error {
	return rawconn.Control(conn, func(fd uintptr) error {
		return setsockoptInt(windows.Handle(fd), windows.IPPROTO_TCP, windows.TCP_NODELAY, boolToInt32(enabled))
	})
}

func setKeepAlive(conn Conn, enabled bool) error {
	return rawconn.Control(conn, func(fd uintptr) error {
		return setsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_KEEPALIVE, boolToInt32(enabled))
	})
}

func pendingBytes(conn Conn) (int, error) {
	var v uint32
	err := rawconn.Control(conn, func(fd uintptr) error {
		return windows.IoctlSocket(windows.Handle(fd), windows.FIONREAD, &v)
	})
	return int(v), err
}

func setsockoptInt(fd windows.Handle, level, opt int32, value int32) error {
	return windows.Setsockopt(fd, level, opt, (*byte)(unsafe.Pointer(&value)), int32(unsafe.Sizeof(value)))
}

func getsockoptInt(fd windows.Handle, level, opt int32) (int32, error) {
	var value int32
	size := int32(unsafe.Sizeof(value))
	err := windows.Getsockopt(fd, level, opt, (*byte)(unsafe.Pointer(&value)), &size)
	return value, err
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
