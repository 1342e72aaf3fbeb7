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

// Package multicast is the multicast-socket component (spec component
// C6): group join/leave, outgoing TTL/hop-limit, and loopback control
// layered on top of socket/datagram. IPv4 groups are managed through
// golang.org/x/net/ipv4 and IPv6 groups through golang.org/x/net/ipv6,
// rather than hand-rolled IP_ADD_MEMBERSHIP/IPV6_JOIN_GROUP setsockopt
// calls.
package multicast

import (
	"net"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	libdgr "github.com/MangaD/gosocketpp/socket/datagram"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
)

// Socket is a UDP datagram socket joined to zero or more multicast
// groups.
type Socket struct {
	sock *libdgr.Socket
	pc4  *ipv4.PacketConn
	pc6  *ipv6.PacketConn
	v6   bool

	lastGroup net.IP
	lastIface *net.Interface
}

// Bind opens a UDP socket on address ("host:port", host typically the
// wildcard address or a specific local interface address) ready to join
// multicast groups.
func Bind(address string) (*Socket, error) {
	sock, err := libdgr.Bind("udp", address)
	if err != nil {
		return nil, err
	}

	s := &Socket{sock: sock}
	if udpAddr, ok := sock.LocalAddr().(*net.UDPAddr); ok && udpAddr.IP.To4() == nil {
		s.v6 = true
		s.pc6 = ipv6.NewPacketConn(sock.Raw())
	} else {
		s.pc4 = ipv4.NewPacketConn(sock.Raw())
	}
	return s, nil
}

// Raw exposes the underlying datagram socket for Send/Receive.
func (s *Socket) Raw() *libdgr.Socket { return s.sock }

// Join joins the multicast group at groupAddr, optionally pinned to a
// specific network interface (nil selects the default multicast
// interface). On success, groupAddr/iface become retrievable via
// LastGroup/LastInterface for diagnostics.
func (s *Socket) Join(groupAddr net.IP, iface *net.Interface) error {
	var err error
	if s.v6 {
		err = s.pc6.JoinGroup(iface, &net.UDPAddr{IP: groupAddr})
	} else {
		err = s.pc4.JoinGroup(iface, &net.UDPAddr{IP: groupAddr})
	}
	if err != nil {
		return wrapErr(err)
	}
	s.lastGroup = groupAddr
	s.lastIface = iface
	return nil
}

// Leave leaves a previously joined multicast group.
func (s *Socket) Leave(groupAddr net.IP, iface *net.Interface) error {
	if s.v6 {
		return wrapErr(s.pc6.LeaveGroup(iface, &net.UDPAddr{IP: groupAddr}))
	}
	return wrapErr(s.pc4.LeaveGroup(iface, &net.UDPAddr{IP: groupAddr}))
}

// SetTTL sets the outgoing multicast TTL (IPv4) or hop limit (IPv6). ttl
// must be in 0..=255, the range a TTL/hop-limit octet can hold; anything
// else is rejected as sockerr.InvalidArgument before it ever reaches the
// socket option call.
func (s *Socket) SetTTL(ttl int) error {
	if ttl < 0 || ttl > 255 {
		return liberr.InvalidArgument("multicast: TTL must be in 0..=255")
	}
	if s.v6 {
		return wrapErr(s.pc6.SetMulticastHopLimit(ttl))
	}
	return wrapErr(s.pc4.SetMulticastTTL(ttl))
}

// GetTTL retrieves the currently configured outgoing multicast TTL (IPv4)
// or hop limit (IPv6).
func (s *Socket) GetTTL() (int, error) {
	if s.v6 {
		ttl, err := s.pc6.MulticastHopLimit()
		return ttl, wrapErr(err)
	}
	ttl, err := s.pc4.MulticastTTL()
	return ttl, wrapErr(err)
}

// SetLoopback controls whether outgoing multicast datagrams are looped
// back to the sending host.
func (s *Socket) SetLoopback(enabled bool) error {
	if s.v6 {
		return wrapErr(s.pc6.SetMulticastLoopback(enabled))
	}
	return wrapErr(s.pc4.SetMulticastLoopback(enabled))
}

// GetLoopback reports whether outgoing multicast datagrams are currently
// looped back to the sending host.
func (s *Socket) GetLoopback() (bool, error) {
	if s.v6 {
		v, err := s.pc6.MulticastLoopback()
		return v, wrapErr(err)
	}
	v, err := s.pc4.MulticastLoopback()
	return v, wrapErr(err)
}

// SetOutgoingInterface pins the interface used for outgoing multicast
// traffic.
func (s *Socket) SetOutgoingInterface(iface *net.Interface) error {
	if s.v6 {
		return wrapErr(s.pc6.SetMulticastInterface(iface))
	}
	return wrapErr(s.pc4.SetMulticastInterface(iface))
}

// LastGroup returns the multicast group address passed to the most recent
// successful Join, or nil if none has succeeded yet.
func (s *Socket) LastGroup() net.IP { return s.lastGroup }

// LastInterface returns the network interface passed to the most recent
// successful Join (nil both if none was given and if Join hasn't
// succeeded yet - callers that need to tell the two apart should track
// LastGroup alongside it).
func (s *Socket) LastInterface() *net.Interface { return s.lastIface }

// Close releases the underlying socket.
func (s *Socket) Close() error { return s.sock.Close() }

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return liberr.IoFailed(err)
}

// DefaultTTL matches the historical default multicast TTL of 1 (confined
// to the local subnet) used absent an explicit SetTTL call.
const DefaultTTL = 1

// ErrNotMulticast is returned by ValidateGroup when an address is not a
// valid multicast address. Join and Leave do not perform this check; they
// pass the address straight to the group-membership call.
var ErrNotMulticast = liberr.InvalidArgument("multicast: address is not a multicast address")

// ValidateGroup reports whether ip is usable as a multicast group
// address.
func ValidateGroup(ip net.IP) error {
	if ip == nil || !ip.IsMulticast() {
		return ErrNotMulticast
	}
	return nil
}
