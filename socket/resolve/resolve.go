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

// Package resolve is the platform abstraction layer (spec component C1):
// a single name-resolution entry point that returns an owning list of
// candidate endpoints, and the two close policies ("try, never throw" and
// "close or report") every socket type in this module builds on.
package resolve

import (
	"context"
	"io"
	"net"
	"strings"

	libptc "github.com/MangaD/gosocketpp/socket/protocol"
	"github.com/MangaD/gosocketpp/socket/sockerr"
)

// Flags configure a Resolve call.
type Flags uint8

const (
	// Passive marks the resolution as being for a bind/listen address:
	// an empty host yields a wildcard address instead of an error.
	Passive Flags = 1 << iota
	// NumericOnly requires the host to already be a numeric IP literal;
	// no DNS query is issued, and a non-numeric host fails immediately.
	NumericOnly
)

func (f Flags) has(flag Flags) bool { return f&flag != 0 }

// Endpoint is a single resolved candidate.
type Endpoint struct {
	Network  libptc.NetworkProtocol
	Addr     net.Addr
	RawIP    net.IP // nil for Unix-domain endpoints
	Port     uint16
	FlowInfo uint32 // IPv6 only
	ScopeID  string // IPv6 zone, e.g. "eth0"
}

// EndpointList is an ordered, owning sequence of resolution candidates.
// IPv6 candidates are ordered before IPv4 ones so a dual-stack listener
// naturally prefers binding the IPv6 wildcard first.
type EndpointList struct {
	items []Endpoint
}

// Len reports the number of candidates.
func (l *EndpointList) Len() int { return len(l.items) }

// At returns the candidate at index i.
func (l *EndpointList) At(i int) Endpoint { return l.items[i] }

// All returns the candidates in resolution order (IPv6 first).
func (l *EndpointList) All() []Endpoint { return l.items }

// Close releases the list. Resolution against the standard library's
// resolver holds no OS resources beyond the addresses themselves, so this
// is a no-op kept for symmetry with spec.md's "owns its storage; released
// deterministically on drop" requirement - the owning type exists so a
// caller that holds onto it can Close it without knowing the concrete
// resolver backend.
func (l *EndpointList) Close() error { return nil }

// Resolve implements the resolution contract of spec.md §4.1: an empty
// host combined with Passive yields wildcard addresses; NumericOnly
// forces a literal-only parse so no DNS traffic is ever issued.
func Resolve(ctx context.Context, host string, port uint16, network libptc.NetworkProtocol, flags Flags) (*EndpointList, error) {
	if network.IsUnix() {
		if host == "" {
			return nil, sockerr.InvalidArgument("unix-domain endpoint requires a non-empty path")
		}
		return &EndpointList{items: []Endpoint{{
			Network: network,
			Addr:    &net.UnixAddr{Name: host, Net: network.Network()},
		}}}, nil
	}

	host = strings.TrimSpace(host)

	if host == "" {
		if !flags.has(Passive) {
			return nil, sockerr.ResolutionFailed(sockerr.PhaseHost, 0, "empty host requires the Passive flag")
		}
		return wildcardEndpoints(network, port), nil
	}

	if ip := net.ParseIP(stripZone(host)); ip != nil {
		return &EndpointList{items: numericEndpoints(network, host, ip, port)}, nil
	}

	if flags.has(NumericOnly) {
		return nil, sockerr.ResolutionFailed(sockerr.PhaseHost, 0, "host is not a numeric address and NumericOnly was requested")
	}

	ips, err := net.DefaultResolver.LookupIP(ctx, resolverNetwork(network), host)
	if err != nil {
		return nil, resolutionError(err)
	}
	if len(ips) == 0 {
		return nil, sockerr.ResolutionFailed(sockerr.PhaseHost, 0, "no addresses found for "+host)
	}

	items := make([]Endpoint, 0, len(ips))
	for _, ip := range orderIPv6First(ips) {
		items = append(items, endpointFor(network, ip, port))
	}
	return &EndpointList{items: items}, nil
}

func resolverNetwork(network libptc.NetworkProtocol) string {
	switch network {
	case libptc.NetworkTCP4, libptc.NetworkUDP4, libptc.NetworkIP4:
		return "ip4"
	case libptc.NetworkTCP6, libptc.NetworkUDP6, libptc.NetworkIP6:
		return "ip6"
	default:
		return "ip"
	}
}

func orderIPv6First(ips []net.IP) []net.IP {
	out := make([]net.IP, 0, len(ips))
	for _, ip := range ips {
		if ip.To4() == nil {
			out = append(out, ip)
		}
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			out = append(out, ip)
		}
	}
	return out
}

func endpointFor(network libptc.NetworkProtocol, ip net.IP, port uint16) Endpoint {
	return Endpoint{Network: network, RawIP: ip, Port: port, Addr: addrFor(network, ip, port)}
}

func addrFor(network libptc.NetworkProtocol, ip net.IP, port uint16) net.Addr {
	if network.IsDatagram() {
		return &net.UDPAddr{IP: ip, Port: int(port)}
	}
	return &net.TCPAddr{IP: ip, Port: int(port)}
}

func wildcardEndpoints(network libptc.NetworkProtocol, port uint16) *EndpointList {
	v6 := endpointFor(network, net.IPv6zero, port)
	v4 := endpointFor(network, net.IPv4zero, port)

	switch network {
	case libptc.NetworkTCP4, libptc.NetworkUDP4, libptc.NetworkIP4:
		return &EndpointList{items: []Endpoint{v4}}
	case libptc.NetworkTCP6, libptc.NetworkUDP6, libptc.NetworkIP6:
		return &EndpointList{items: []Endpoint{v6}}
	default:
		return &EndpointList{items: []Endpoint{v6, v4}}
	}
}

func numericEndpoints(network libptc.NetworkProtocol, host string, ip net.IP, port uint16) []Endpoint {
	zone := ""
	if idx := strings.IndexByte(host, '%'); idx >= 0 {
		zone = host[idx+1:]
	}
	ep := endpointFor(network, ip, port)
	ep.ScopeID = zone
	return []Endpoint{ep}
}

func stripZone(host string) string {
	if idx := strings.IndexByte(host, '%'); idx >= 0 {
		return host[:idx]
	}
	return host
}

func resolutionError(err error) *sockerr.Error {
	if dnsErr, ok := err.(*net.DNSError); ok {
		code := 0
		if dnsErr.IsNotFound {
			code = 1
		}
		return sockerr.ResolutionFailed(sockerr.PhaseHost, code, dnsErr.Error())
	}
	return sockerr.ResolutionFailed(sockerr.PhaseHost, 0, err.Error())
}

// CloseQuiet is the "try_close_noexcept" policy: it always succeeds from
// the caller's point of view and is meant to be called from destructors
// and deferred cleanups where there is no one left to report an error to.
func CloseQuiet(c io.Closer) {
	if c == nil {
		return
	}
	_ = c.Close()
}

// CloseStrict is the "close_or_throw" policy: it propagates a close
// failure as an IoFailed error, for explicit Close() calls.
func CloseStrict(c io.Closer) error {
	if c == nil {
		return nil
	}
	if err := c.Close(); err != nil {
		return sockerr.IoFailed(err)
	}
	return nil
}
