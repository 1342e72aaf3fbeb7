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

// Package rawconn bridges a net.Conn/net.Listener's syscall.RawConn to the
// raw descriptor that socket/sockopt and the FIONREAD probe in
// socket/stream need. The Go runtime owns the descriptor's readiness
// polling; this package never changes blocking mode, only reads/writes
// socket options on it.
package rawconn

import (
	"syscall"
)

// Control runs fn with the raw file descriptor of conn, propagating both
// the Control-call error and fn's own reported error.
func Control(conn syscall.Conn, fn func(fd uintptr) error) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var fnErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		fnErr = fn(fd)
	})
	if ctrlErr != nil {
		return ctrlErr
	}
	return fnErr
}
