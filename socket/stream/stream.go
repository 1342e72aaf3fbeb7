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

// Package stream is the stream-connection component (spec component C4):
// a buffered wrapper around a connected net.Conn offering the module's full
// read/write vocabulary - exact-size reads, best-effort reads, delimiter
// scans, peeking, vectored I/O, per-call and total-duration timeouts, and
// fixed-size/length-prefixed value transfer with host-native byte order.
package stream

import (
	"bufio"
	"context"
	"io"
	"net"
	"syscall"
	"time"

	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
	libopt "github.com/MangaD/gosocketpp/socket/sockopt"
)

// Shutdown selects which half of a full-duplex connection to close.
type Shutdown int

const (
	ShutdownRead Shutdown = iota
	ShutdownWrite
	ShutdownBoth
)

// halfCloser is implemented by *net.TCPConn and *net.UnixConn; UDP never
// reaches this package.
type halfCloser interface {
	CloseRead() error
	CloseWrite() error
}

// Conn wraps a connected net.Conn with a read-side buffer and the module's
// read/write primitives. It is not safe for concurrent use by multiple
// goroutines on the same half, matching spec.md's single-socket
// thread-safety Non-goal.
type Conn struct {
	nc    net.Conn
	br    *bufio.Reader
	state int32 // 0 open, 1 closed
}

// New wraps an already-connected net.Conn. bufSize is the read-side buffer
// capacity; zero selects the module default.
func New(nc net.Conn, bufSize int) *Conn {
	if bufSize <= 0 {
		bufSize = 32 * 1024
	}
	return &Conn{nc: nc, br: bufio.NewReaderSize(nc, bufSize)}
}

// Raw exposes the underlying net.Conn, e.g. for socket/sockopt tuning.
func (c *Conn) Raw() net.Conn { return c.nc }

func (c *Conn) LocalAddr() net.Addr  { return c.nc.LocalAddr() }
func (c *Conn) RemoteAddr() net.Addr { return c.nc.RemoteAddr() }

// IsConnected reports whether Close has not yet been called. It does not
// probe the peer: a half-open TCP connection still reports true.
func (c *Conn) IsConnected() bool { return c.state == 0 }

// Close closes both halves of the connection.
func (c *Conn) Close() error {
	c.state = 1
	return c.nc.Close()
}

// ShutdownHalf closes one or both directions without releasing the
// descriptor, mirroring spec.md's shutdown(2)-style half-close.
func (c *Conn) ShutdownHalf(dir Shutdown) error {
	hc, ok := c.nc.(halfCloser)
	if !ok {
		if dir == ShutdownBoth {
			return c.Close()
		}
		return liberr.Unsupported("half-close is not supported on this connection type")
	}
	switch dir {
	case ShutdownRead:
		return hc.CloseRead()
	case ShutdownWrite:
		return hc.CloseWrite()
	default:
		if err := hc.CloseRead(); err != nil {
			return err
		}
		return hc.CloseWrite()
	}
}

// ---- Plain reads ----

// Read implements io.Reader: a single best-effort read through the
// internal buffer.
func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.br.Read(p)
	return n, wrapIOErr(err)
}

// ReadExact fills p entirely, blocking across multiple underlying reads
// until it does, the peer closes, or an error occurs.
func (c *Conn) ReadExact(p []byte) error {
	_, err := io.ReadFull(c.br, p)
	return wrapIOErr(err)
}

// ReadAtMost reads between 1 and len(p) bytes with a single underlying
// read, returning as soon as any data is available.
func (c *Conn) ReadAtMost(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := c.br.Read(p)
	return n, wrapIOErr(err)
}

// ReadAtMostTimeout is ReadAtMost bounded by a deadline.
func (c *Conn) ReadAtMostTimeout(p []byte, timeout time.Duration) (int, error) {
	if err := c.nc.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, wrapIOErr(err)
	}
	defer c.nc.SetReadDeadline(time.Time{})
	return c.ReadAtMost(p)
}

// ReadAvailable returns exactly the bytes already queued on the socket
// without blocking, using the FIONREAD probe. It returns a nil, non-error
// result when nothing is queued.
func (c *Conn) ReadAvailable() ([]byte, error) {
	if buffered := c.br.Buffered(); buffered > 0 {
		p := make([]byte, buffered)
		if _, err := io.ReadFull(c.br, p); err != nil {
			return nil, wrapIOErr(err)
		}
		return p, nil
	}

	sc, ok := c.nc.(syscall.Conn)
	if !ok {
		return nil, nil
	}
	n, err := libopt.PendingBytes(sc)
	if err != nil || n == 0 {
		return nil, wrapIOErr(err)
	}
	p := make([]byte, n)
	got, err := c.br.Read(p)
	if err != nil {
		return nil, wrapIOErr(err)
	}
	return p[:got], nil
}

// ReadIntoContext reads until p is full or ctx is done.
func (c *Conn) ReadIntoContext(ctx context.Context, p []byte) (int, error) {
	done := make(chan struct{})
	var n int
	var err error
	go func() {
		n, err = io.ReadFull(c.br, p)
		close(done)
	}()
	select {
	case <-done:
		return n, wrapIOErr(err)
	case <-ctx.Done():
		c.nc.SetReadDeadline(time.Now())
		<-done
		c.nc.SetReadDeadline(time.Time{})
		return n, wrapIOErr(ctx.Err())
	}
}

// ReadUntil reads byte by byte until delim is seen or maxLen bytes have
// been scanned, whichever comes first. includeDelim controls whether the
// returned slice retains the trailing delim byte. maxLen <= 0 means
// unbounded. Reaching maxLen without observing delim reports
// sockerr.MaxExceeded with the partial data read so far.
func (c *Conn) ReadUntil(delim byte, maxLen int, includeDelim bool) ([]byte, error) {
	var buf []byte
	for {
		b, err := c.br.ReadByte()
		if err != nil {
			return buf, wrapIOErr(err)
		}
		buf = append(buf, b)
		if b == delim {
			if !includeDelim {
				buf = buf[:len(buf)-1]
			}
			return buf, nil
		}
		if maxLen > 0 && len(buf) >= maxLen {
			return buf, liberr.MaxExceeded("read_until: max_len reached without observing the delimiter")
		}
	}
}

// ReadLine reads a single line bounded by maxLen bytes (0 means
// unbounded), stripping the trailing '\n' and, if present, a preceding
// '\r' when includeDelim is false. Reaching maxLen without observing '\n'
// reports sockerr.MaxExceeded with the partial line read so far.
func (c *Conn) ReadLine(maxLen int, includeDelim bool) (string, error) {
	b, err := c.ReadUntil('\n', maxLen, true)
	if err != nil {
		return trimLine(b, includeDelim), err
	}
	return trimLine(b, includeDelim), nil
}

func trimLine(b []byte, includeDelim bool) string {
	s := string(b)
	if !includeDelim {
		s = trimEOL(s)
	}
	return s
}

// ReadString reads until the peer's orderly close (EOF) and returns
// everything read as a string, matching spec.md's read::<string>()
// drain-to-EOF primitive.
func (c *Conn) ReadString() (string, error) {
	b, err := io.ReadAll(c.br)
	if err != nil {
		return string(b), wrapIOErr(err)
	}
	return string(b), nil
}

func trimEOL(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

// Peek returns the next n bytes without consuming them. n must not exceed
// the connection's internal buffer size.
func (c *Conn) Peek(n int) ([]byte, error) {
	b, err := c.br.Peek(n)
	return b, wrapIOErr(err)
}

// Discard skips n bytes of input.
func (c *Conn) Discard(n int) (int, error) {
	d, err := c.br.Discard(n)
	return d, wrapIOErr(err)
}

// ReadV performs a single round of reads across bufs in order: the first
// non-empty buffer gets one read (which may block), and each later buffer
// gets one read only while data is already buffered, so the scan stops at
// the first buffer that comes back short or when no more data is
// immediately available. The result may therefore be less than the
// combined buffer length - the vectored analogue of ReadAtMost.
func (c *Conn) ReadV(bufs [][]byte) (int64, error) {
	var total int64
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		if total > 0 && c.br.Buffered() == 0 {
			break
		}
		n, err := c.br.Read(b)
		total += int64(n)
		if err != nil {
			return total, wrapIOErr(err)
		}
		if n < len(b) {
			break
		}
	}
	return total, nil
}

// ReadVAll fills every buffer in bufs in order, stopping at the first
// error (including a short final buffer at EOF).
func (c *Conn) ReadVAll(bufs [][]byte) (int64, error) {
	var total int64
	for _, b := range bufs {
		n, err := io.ReadFull(c.br, b)
		total += int64(n)
		if err != nil {
			return total, wrapIOErr(err)
		}
	}
	return total, nil
}

// ReadVAllTimeout is ReadVAll bounded by a single overall deadline.
func (c *Conn) ReadVAllTimeout(bufs [][]byte, timeout time.Duration) (int64, error) {
	if err := c.nc.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, wrapIOErr(err)
	}
	defer c.nc.SetReadDeadline(time.Time{})
	return c.ReadVAll(bufs)
}

// ReadVAtMostTimeout is ReadV bounded by a deadline.
func (c *Conn) ReadVAtMostTimeout(bufs [][]byte, timeout time.Duration) (int64, error) {
	if err := c.nc.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, wrapIOErr(err)
	}
	defer c.nc.SetReadDeadline(time.Time{})
	return c.ReadV(bufs)
}

// ---- Plain writes ----

// Write implements io.Writer: a single underlying write, which may be
// short.
func (c *Conn) Write(p []byte) (int, error) {
	n, err := c.nc.Write(p)
	return n, wrapIOErr(err)
}

// WriteAll writes every byte of p, looping across short writes.
func (c *Conn) WriteAll(p []byte) error {
	_, err := c.write(p)
	return err
}

func (c *Conn) write(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := c.nc.Write(p[total:])
		total += n
		if err != nil {
			return total, wrapIOErr(err)
		}
	}
	return total, nil
}

// WriteV performs a single round of underlying writes across bufs in
// order: each buffer gets one write, and the scan stops at the first
// short write, since that is the vectored write's signal that the
// connection accepted no more for now. The result may therefore be less
// than the combined buffer length - the vectored analogue of Write.
func (c *Conn) WriteV(bufs [][]byte) (int64, error) {
	var total int64
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		n, err := c.nc.Write(b)
		total += int64(n)
		if err != nil {
			return total, wrapIOErr(err)
		}
		if n < len(b) {
			break
		}
	}
	return total, nil
}

// WriteVAll writes each buffer in bufs in order with WriteAll semantics.
func (c *Conn) WriteVAll(bufs [][]byte) (int64, error) {
	var total int64
	for _, b := range bufs {
		n, err := c.write(b)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAtMostTimeout performs a single underlying write bounded by a
// deadline, possibly short.
func (c *Conn) WriteAtMostTimeout(p []byte, timeout time.Duration) (int, error) {
	if err := c.nc.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return 0, wrapIOErr(err)
	}
	defer c.nc.SetWriteDeadline(time.Time{})
	return c.Write(p)
}

// WriteWithTotalTimeout writes all of p, bounding the entire operation
// (across every retried short write) by a single deadline.
func (c *Conn) WriteWithTotalTimeout(p []byte, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	if err := c.nc.SetWriteDeadline(deadline); err != nil {
		return wrapIOErr(err)
	}
	defer c.nc.SetWriteDeadline(time.Time{})
	_, err := c.write(p)
	return err
}

// WriteVWithTotalTimeout is WriteVAll bounded by a single overall
// deadline.
func (c *Conn) WriteVWithTotalTimeout(bufs [][]byte, timeout time.Duration) (int64, error) {
	deadline := time.Now().Add(timeout)
	if err := c.nc.SetWriteDeadline(deadline); err != nil {
		return 0, wrapIOErr(err)
	}
	defer c.nc.SetWriteDeadline(time.Time{})
	return c.WriteVAll(bufs)
}

func wrapIOErr(err error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return liberr.Closed(err.Error())
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return liberr.Timeout(err.Error())
	}
	return liberr.IoFailed(err)
}
