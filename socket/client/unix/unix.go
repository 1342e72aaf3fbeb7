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

// Package unix is the Unix-domain stream client: Dial connects to a
// SOCK_STREAM listener bound at a filesystem path, reusing socket/stream
// for the full read/write vocabulary once connected. This supplements the
// distilled TCP/UDP-only scope with the Unix-domain client family the
// teacher's package layout reserves a slot for.
package unix

import (
	"context"
	"net"

	libcfg "github.com/MangaD/gosocketpp/socket/config"
	libptc "github.com/MangaD/gosocketpp/socket/protocol"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
	libstream "github.com/MangaD/gosocketpp/socket/stream"
)

// Dial connects to the Unix-domain stream socket at cfg.Address.
func Dial(cfg libcfg.Client, tuning libcfg.Tuning) (*libstream.Conn, error) {
	ctx := context.Background()
	if d := cfg.ConnectTimeout.Time(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return DialContext(ctx, cfg, tuning)
}

// DialContext is Dial with an explicit, cancellable context.
func DialContext(ctx context.Context, cfg libcfg.Client, tuning libcfg.Tuning) (*libstream.Conn, error) {
	if cfg.Network != libptc.NetworkUnix {
		return nil, liberr.InvalidArgument("client/unix: network must be unix")
	}
	if cfg.Address == "" {
		return nil, liberr.InvalidArgument("client/unix: empty path")
	}

	d := net.Dialer{}
	raw, err := d.DialContext(ctx, "unix", cfg.Address)
	if err != nil {
		return nil, liberr.IoFailed(err)
	}

	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = tuning.InternalBufferSize
	}
	return libstream.New(raw, bufSize), nil
}
