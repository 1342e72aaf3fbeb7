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

// Package tcp is the TCP stream client (spec component C4's client half):
// Dial and DialContext build a socket/stream.Conn over a timed, cancellable
// connect, applying the requested socket/sockopt tuning before the first
// byte moves.
package tcp

import (
	"context"
	"net"
	"time"

	libcfg "github.com/MangaD/gosocketpp/socket/config"
	libdur "github.com/MangaD/gosocketpp/socket/duration"
	libptc "github.com/MangaD/gosocketpp/socket/protocol"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
	libopt "github.com/MangaD/gosocketpp/socket/sockopt"
	libstream "github.com/MangaD/gosocketpp/socket/stream"
)

// Dial connects to cfg.Address (host:port) using cfg.ConnectTimeout as the
// connect deadline (zero means the platform default), then applies tuning
// before returning the wrapped connection.
func Dial(cfg libcfg.Client, tuning libcfg.Tuning) (*libstream.Conn, error) {
	ctx := context.Background()
	var cancel context.CancelFunc
	if d := cfg.ConnectTimeout.Time(); d > 0 {
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return DialContext(ctx, cfg, tuning)
}

// DialContext is Dial with an explicit, cancellable context. This is the
// module's idiomatic substitute for the raw connect()+poll()/fcntl
// non-blocking dance: Go's runtime netpoller already multiplexes the
// connect attempt, so no descriptor-level readiness wait is needed.
func DialContext(ctx context.Context, cfg libcfg.Client, tuning libcfg.Tuning) (*libstream.Conn, error) {
	network := cfg.Network.Network()
	if network == "" {
		return nil, liberr.InvalidArgument("tcp: unspecified or invalid network protocol")
	}

	d := net.Dialer{}
	raw, err := d.DialContext(ctx, network, cfg.Address)
	if err != nil {
		return nil, classifyDialErr(err)
	}

	tc, ok := raw.(*net.TCPConn)
	if !ok {
		raw.Close()
		return nil, liberr.InvalidState("tcp: dialed connection is not a TCP connection")
	}

	if err := applyTuning(tc, tuning); err != nil {
		tc.Close()
		return nil, err
	}

	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = tuning.InternalBufferSize
	}
	return libstream.New(tc, bufSize), nil
}

func applyTuning(tc *net.TCPConn, tuning libcfg.Tuning) error {
	if err := tc.SetNoDelay(tuning.NoDelay); err != nil {
		return liberr.IoFailed(err)
	}
	if tuning.KeepAlive {
		if err := tc.SetKeepAlive(true); err != nil {
			return liberr.IoFailed(err)
		}
	}
	if tuning.RecvBufferSize > 0 {
		if err := libopt.SetRecvBuffer(tc, tuning.RecvBufferSize); err != nil {
			return err
		}
	}
	if tuning.SendBufferSize > 0 {
		if err := libopt.SetSendBuffer(tc, tuning.SendBufferSize); err != nil {
			return err
		}
	}
	return nil
}

func classifyDialErr(err error) error {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return liberr.Timeout(err.Error())
	}
	return liberr.IoFailed(err)
}

// DialTimeout is a convenience wrapper over Dial for callers that only
// want to override the connect timeout.
func DialTimeout(network, address string, timeout time.Duration, tuning libcfg.Tuning) (*libstream.Conn, error) {
	cfg := libcfg.Client{
		Network: libptc.Parse(network),
		Address: address,
	}
	if timeout > 0 {
		cfg.ConnectTimeout = libdur.ParseDuration(timeout)
	}
	return Dial(cfg, tuning)
}
