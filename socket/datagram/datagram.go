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

// Package datagram is the connectionless-socket component (spec component
// C5): a thin wrapper around net.PacketConn/*net.UDPConn adding the
// module's Packet abstraction (payload plus optional destination),
// exact-size pre-sizing via the FIONREAD probe, and the
// connect/disconnect semantics of a "default peer" on an otherwise
// connectionless socket.
package datagram

import (
	"net"
	"strings"
	"syscall"
	"time"
	"unsafe"

	libsck "github.com/MangaD/gosocketpp/socket"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
	libopt "github.com/MangaD/gosocketpp/socket/sockopt"
	libstream "github.com/MangaD/gosocketpp/socket/stream"
)

// Packet is a single datagram: its payload and, for a socket not
// connect()-ed to a fixed peer, the address to send it to or the address
// it was received from.
type Packet struct {
	Data []byte
	Addr net.Addr
}

// HasDestination reports whether the packet carries a usable peer
// address. A whitespace-only address string is treated as absent, so Send
// falls back to the connected peer, or reports sockerr.InvalidArgument
// when there is none.
func (p Packet) HasDestination() bool {
	if p.Addr == nil {
		return false
	}
	return strings.TrimSpace(p.Addr.String()) != ""
}

// Socket wraps a bound, possibly connected, packet-oriented socket.
type Socket struct {
	pc        net.PacketConn
	connected net.Addr
}

// Bind opens a packet socket listening on network/address ("udp",
// "udp4", "udp6", or "unixgram").
func Bind(network, address string) (*Socket, error) {
	pc, err := net.ListenPacket(network, address)
	if err != nil {
		return nil, liberr.IoFailed(err)
	}
	return &Socket{pc: pc}, nil
}

// Raw exposes the underlying net.PacketConn, e.g. for socket/sockopt
// tuning or socket/multicast group management.
func (s *Socket) Raw() net.PacketConn { return s.pc }

// LocalAddr returns the socket's bound local address.
func (s *Socket) LocalAddr() net.Addr { return s.pc.LocalAddr() }

// Connect fixes a default peer: subsequent Send calls may omit a
// destination. Unlike a stream socket's connect(), this is tracked at the
// application layer rather than via the OS-level connect() syscall - Go's
// net.PacketConn, once bound through ListenPacket, does not expose a way
// to later connect() the same descriptor. Receive still accepts datagrams
// from any sender; callers that need kernel-level peer filtering should
// build their client through net.DialUDP instead of Bind.
func (s *Socket) Connect(raddr net.Addr) error {
	if raddr == nil {
		return liberr.InvalidArgument("datagram: Connect requires a non-nil address")
	}
	s.connected = raddr
	return nil
}

// Disconnect removes a previously fixed peer, returning the socket to
// unconnected (accept-from-anyone) mode.
func (s *Socket) Disconnect() error {
	s.connected = nil
	return nil
}

// IsConnected reports whether a default peer is currently fixed.
func (s *Socket) IsConnected() bool { return s.connected != nil }

// maxPayload returns the largest datagram this socket may send, or 0 if no
// protocol-defined ceiling applies (e.g. a Unix-domain datagram socket).
func (s *Socket) maxPayload() int {
	udpAddr, ok := s.pc.LocalAddr().(*net.UDPAddr)
	if !ok {
		return 0
	}
	if udpAddr.IP.To4() != nil {
		return libsck.IPv4Max
	}
	return libsck.IPv6Max
}

// Send writes a packet. If the socket has a fixed peer, pkt.Addr may be
// nil; otherwise it is required. A payload above the protocol's datagram
// ceiling is rejected with sockerr.PayloadTooLarge before attempting the
// write, and a short WriteTo - possible on some platforms even without an
// error - is reported as sockerr.PartialDatagram rather than silently
// treated as success, since a partial send of a datagram is a protocol
// violation: the receiver has no way to ask for the missing bytes.
func (s *Socket) Send(pkt Packet) (int, error) {
	if limit := s.maxPayload(); limit > 0 && len(pkt.Data) > limit {
		return 0, liberr.PayloadTooLarge("datagram: payload exceeds the UDP payload ceiling for this address family")
	}
	dest := pkt.Addr
	if !pkt.HasDestination() {
		if s.connected == nil {
			return 0, liberr.InvalidArgument("datagram: no destination address and no connected peer")
		}
		dest = s.connected
	}
	n, err := s.pc.WriteTo(pkt.Data, dest)
	if err != nil {
		return n, wrapErr(err)
	}
	if n < len(pkt.Data) {
		return n, liberr.PartialDatagram("datagram: WriteTo wrote fewer bytes than the datagram required")
	}
	return n, nil
}

// Receive reads one datagram into a freshly sized buffer, using the
// FIONREAD probe when available to avoid truncating or over-allocating.
func (s *Socket) Receive(maxSize int) (Packet, error) {
	size := maxSize
	if sc, ok := s.pc.(syscall.Conn); ok {
		if pending, err := libopt.PendingBytes(sc); err == nil && pending > 0 && pending < size {
			size = pending
		}
	}
	buf := make([]byte, size)
	n, addr, err := s.pc.ReadFrom(buf)
	if err != nil {
		return Packet{}, wrapErr(err)
	}
	return Packet{Data: buf[:n], Addr: addr}, nil
}

// ReceiveTimeout is Receive bounded by a deadline.
func (s *Socket) ReceiveTimeout(maxSize int, timeout time.Duration) (Packet, error) {
	if err := s.pc.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return Packet{}, wrapErr(err)
	}
	defer s.pc.SetReadDeadline(time.Time{})
	return s.Receive(maxSize)
}

// Close releases the socket.
func (s *Socket) Close() error { return wrapErr(s.pc.Close()) }

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return liberr.Timeout(err.Error())
	}
	return liberr.IoFailed(err)
}

// ReadString receives one datagram from any sender and returns its
// payload decoded as a string, using the module's default datagram buffer
// size as the receive ceiling.
func (s *Socket) ReadString() (string, error) {
	pkt, err := s.Receive(libsck.DefaultDatagramBufferSize)
	if err != nil {
		return "", err
	}
	return string(pkt.Data), nil
}

// RecvFromString is ReadString plus the sender's address, for a socket not
// restricted to a single fixed peer.
func (s *Socket) RecvFromString() (string, net.Addr, error) {
	pkt, err := s.Receive(libsck.DefaultDatagramBufferSize)
	if err != nil {
		return "", nil, err
	}
	return string(pkt.Data), pkt.Addr, nil
}

// Go has no generic methods, so the fixed-size value transfer spec.md
// describes for datagrams (mirroring socket/stream's ReadValue/WriteValue)
// is expressed as package-level generic functions taking *Socket.

// ReadValue receives one datagram and reinterprets its payload as
// sizeof(T) bytes of host-native-byte-order data. Each UDP recv surfaces
// exactly one send, so a datagram whose length does not match sizeof(T)
// means the peer sent something other than a single T; that mismatch is
// reported as sockerr.PayloadTooLarge rather than silently truncated or
// zero-padded.
func ReadValue[T libstream.FixedValue](s *Socket) (T, error) {
	var v T
	size := int(unsafe.Sizeof(v))
	// Receive is sized to the UDP safe ceiling, not sizeof(T): sizing the
	// buffer to sizeof(T) would make an oversized datagram silently
	// truncate to fit (standard recvfrom behaviour) instead of surfacing
	// the length mismatch below.
	pkt, err := s.Receive(libsck.SafeMax)
	if err != nil {
		return v, err
	}
	if len(pkt.Data) != size {
		return v, liberr.PayloadTooLarge("datagram: received value-typed datagram of unexpected size")
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), size), pkt.Data)
	return v, nil
}

// RecvFrom is ReadValue plus the sender's address, for a socket not
// restricted to a single fixed peer.
func RecvFrom[T libstream.FixedValue](s *Socket) (T, net.Addr, error) {
	var v T
	size := int(unsafe.Sizeof(v))
	pkt, err := s.Receive(libsck.SafeMax)
	if err != nil {
		return v, nil, err
	}
	if len(pkt.Data) != size {
		return v, pkt.Addr, liberr.PayloadTooLarge("datagram: received value-typed datagram of unexpected size")
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), size), pkt.Data)
	return v, pkt.Addr, nil
}
