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

// Package udp is the UDP datagram client (spec component C5's client
// half): Connect performs a real kernel-level connect() via net.DialUDP so
// Send/Receive only ever see the one peer, and IsConnected/Close track
// that lifecycle.
package udp

import (
	"context"
	"net"
	"sync"
	"time"

	libdur "github.com/MangaD/gosocketpp/socket/duration"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
)

// ClientUDP is a connected UDP datagram client.
type ClientUDP interface {
	// Connect dials the server, replacing any prior connection.
	Connect(ctx context.Context) error
	IsConnected() bool

	Send(p []byte) (int, error)
	Receive(p []byte) (int, error)
	ReceiveTimeout(p []byte, timeout time.Duration) (int, error)

	LocalAddr() net.Addr
	RemoteAddr() net.Addr

	Close() error
}

type client struct {
	mu      sync.Mutex
	address string
	conn    *net.UDPConn
}

// New builds a client targeting address; Connect must be called before
// any I/O.
func New(address string) (ClientUDP, error) {
	if address == "" {
		return nil, liberr.InvalidArgument("client/udp: empty address")
	}
	return &client{address: address}, nil
}

func (c *client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}

	raddr, err := net.ResolveUDPAddr("udp", c.address)
	if err != nil {
		return liberr.ResolutionFailed(liberr.PhaseHost, 0, err.Error())
	}

	d := net.Dialer{}
	raw, err := d.DialContext(ctx, "udp", raddr.String())
	if err != nil {
		return liberr.IoFailed(err)
	}
	uc, ok := raw.(*net.UDPConn)
	if !ok {
		raw.Close()
		return liberr.InvalidState("client/udp: dialed connection is not a UDP connection")
	}
	c.conn = uc
	return nil
}

func (c *client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *client) Send(p []byte) (int, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return 0, liberr.NotConnected("client/udp: not connected")
	}
	n, err := conn.Write(p)
	return n, wrapErr(err)
}

func (c *client) Receive(p []byte) (int, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return 0, liberr.NotConnected("client/udp: not connected")
	}
	n, err := conn.Read(p)
	return n, wrapErr(err)
}

func (c *client) ReceiveTimeout(p []byte, timeout time.Duration) (int, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return 0, liberr.NotConnected("client/udp: not connected")
	}
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, wrapErr(err)
	}
	defer conn.SetReadDeadline(time.Time{})
	n, err := conn.Read(p)
	return n, wrapErr(err)
}

func (c *client) LocalAddr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.LocalAddr()
}

func (c *client) RemoteAddr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.RemoteAddr()
}

func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return wrapErr(err)
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return liberr.Timeout(err.Error())
	}
	return liberr.IoFailed(err)
}

// defaultConnectTimeout is used by callers that want a bounded Connect
// without building their own context.
var defaultConnectTimeout = libdur.Seconds(10)

// ConnectTimeout is a convenience wrapper around Connect using
// defaultConnectTimeout.
func ConnectTimeout(c ClientUDP) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout.Time())
	defer cancel()
	return c.Connect(ctx)
}
