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

// Package config holds the validated construction parameters for every
// client and server in this module: the network/address pair, Unix-domain
// filesystem permissions, and the per-connection SocketTuning bundle
// applied to every accepted connection (spec.md §4.3).
package config

import (
	"fmt"
	"net"
	"runtime"
	"strings"

	libdur "github.com/MangaD/gosocketpp/socket/duration"
	libprm "github.com/MangaD/gosocketpp/socket/permfile"
	libptc "github.com/MangaD/gosocketpp/socket/protocol"
)

// Client is the validated configuration for a TCP, UDP or Unix-domain
// client.
type Client struct {
	Network        libptc.NetworkProtocol
	Address        string
	ConnectTimeout libdur.Duration
	BufferSize     int
}

// Validate reports whether the configuration is usable. It mirrors the
// teacher's config.Client.Validate: protocol must be a known value and,
// for IP-based protocols, the address must parse as host:port.
func (c Client) Validate() error {
	if c.Network == libptc.NetworkEmpty {
		return fmt.Errorf("socket/config: invalid or unspecified network protocol")
	}

	if c.Network.IsUnix() {
		if strings.TrimSpace(c.Address) == "" {
			return fmt.Errorf("socket/config: unix-domain client requires a non-empty path")
		}
		if runtime.GOOS == "windows" && c.Network == libptc.NetworkUnixGram {
			return fmt.Errorf("socket/config: unixgram is not available on windows")
		}
		return nil
	}

	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return fmt.Errorf("socket/config: invalid address %q: %w", c.Address, err)
	}

	return nil
}

// Server is the validated configuration for a TCP, UDP or Unix-domain
// server/listener. socket/listener.Listen does not apply Backlog or
// DualStack.
type Server struct {
	Network        libptc.NetworkProtocol
	Address        string
	Backlog        int
	ReuseAddress   bool
	DualStack      bool
	AcceptTimeout  libdur.Duration // zero means block indefinitely
	ConIdleTimeout libdur.Duration // zero disables idle disconnection

	// Unix-domain only.
	PermFile  libprm.Perm
	GroupPerm int // -1 means "use the current process group"
}

// Validate reports whether the configuration is usable.
func (s Server) Validate() error {
	if s.Network == libptc.NetworkEmpty {
		return fmt.Errorf("socket/config: invalid or unspecified network protocol")
	}

	if s.Network.IsUnix() {
		if strings.TrimSpace(s.Address) == "" {
			return fmt.Errorf("socket/config: unix-domain server requires a non-empty path")
		}
		if runtime.GOOS == "windows" {
			return fmt.Errorf("socket/config: unix-domain sockets are not available on this build of windows")
		}
		if s.GroupPerm > libprm.MaxGID {
			return fmt.Errorf("socket/config: group id %d exceeds MaxGID (%d)", s.GroupPerm, libprm.MaxGID)
		}
		return nil
	}

	if _, _, err := net.SplitHostPort(s.Address); err != nil {
		return fmt.Errorf("socket/config: invalid address %q: %w", s.Address, err)
	}

	return nil
}

// DefaultBacklog is the conventional listen backlog of 128. Nothing in
// this module passes it, or Server.Backlog, to the OS.
const DefaultBacklog = 128

// Tuning bundles the per-connection knobs applied to every accepted
// connection, spec.md §4.3's SocketTuning. socket/listener and
// socket/client/tcp apply the buffer sizes, NoDelay and KeepAlive;
// RecvTimeout, SendTimeout and NonBlocking are carried but not applied.
type Tuning struct {
	RecvBufferSize     int
	SendBufferSize     int
	InternalBufferSize int // userland ReceiveBuffer size, distinct from the two above
	RecvTimeout        libdur.Duration
	SendTimeout        libdur.Duration
	NoDelay            bool
	KeepAlive          bool
	NonBlocking        bool
}

// DefaultTuning matches spec.md §4.3's stated defaults: NoDelay enabled,
// KeepAlive and NonBlocking disabled, and the module's default internal
// buffer size.
func DefaultTuning() Tuning {
	return Tuning{
		InternalBufferSize: 32 * 1024,
		NoDelay:            true,
	}
}
