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

package protocol_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libptc "github.com/MangaD/gosocketpp/socket/protocol"
)

func TestProtocol(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Protocol Suite")
}

var _ = Describe("String / Network", func() {
	It("renders the lowercase net package token for every named value", func() {
		Expect(libptc.NetworkTCP.String()).To(Equal("tcp"))
		Expect(libptc.NetworkTCP4.String()).To(Equal("tcp4"))
		Expect(libptc.NetworkTCP6.String()).To(Equal("tcp6"))
		Expect(libptc.NetworkUDP.String()).To(Equal("udp"))
		Expect(libptc.NetworkUDP4.String()).To(Equal("udp4"))
		Expect(libptc.NetworkUDP6.String()).To(Equal("udp6"))
		Expect(libptc.NetworkUnix.String()).To(Equal("unix"))
		Expect(libptc.NetworkUnixGram.String()).To(Equal("unixgram"))
		Expect(libptc.NetworkIP.String()).To(Equal("ip"))
		Expect(libptc.NetworkIP4.String()).To(Equal("ip4"))
		Expect(libptc.NetworkIP6.String()).To(Equal("ip6"))
	})

	It("renders the empty string for an unknown value", func() {
		Expect(libptc.NetworkEmpty.String()).To(Equal(""))
		Expect(libptc.NetworkProtocol(255).String()).To(Equal(""))
	})

	It("Network is an alias of String", func() {
		Expect(libptc.NetworkTCP.Network()).To(Equal(libptc.NetworkTCP.String()))
	})
})

var _ = Describe("IsStream / IsDatagram", func() {
	It("classifies stream protocols", func() {
		Expect(libptc.NetworkTCP.IsStream()).To(BeTrue())
		Expect(libptc.NetworkUnix.IsStream()).To(BeTrue())
		Expect(libptc.NetworkUDP.IsStream()).To(BeFalse())
	})

	It("classifies datagram protocols", func() {
		Expect(libptc.NetworkUDP.IsDatagram()).To(BeTrue())
		Expect(libptc.NetworkUnixGram.IsDatagram()).To(BeTrue())
		Expect(libptc.NetworkTCP.IsDatagram()).To(BeFalse())
	})
})

var _ = Describe("IsUnix", func() {
	It("is true only for the two Unix-domain protocols", func() {
		Expect(libptc.NetworkUnix.IsUnix()).To(BeTrue())
		Expect(libptc.NetworkUnixGram.IsUnix()).To(BeTrue())
		Expect(libptc.NetworkTCP.IsUnix()).To(BeFalse())
	})
})

var _ = Describe("IsIPv6Only", func() {
	It("is true only for the three v6-pinned protocols", func() {
		Expect(libptc.NetworkTCP6.IsIPv6Only()).To(BeTrue())
		Expect(libptc.NetworkUDP6.IsIPv6Only()).To(BeTrue())
		Expect(libptc.NetworkIP6.IsIPv6Only()).To(BeTrue())
		Expect(libptc.NetworkTCP.IsIPv6Only()).To(BeFalse())
	})
})

var _ = Describe("Parse", func() {
	It("round-trips every named protocol, case-insensitively and trimmed", func() {
		Expect(libptc.Parse(" TCP ")).To(Equal(libptc.NetworkTCP))
		Expect(libptc.Parse("Udp6")).To(Equal(libptc.NetworkUDP6))
		Expect(libptc.Parse("UNIXGRAM")).To(Equal(libptc.NetworkUnixGram))
	})

	It("returns NetworkEmpty for unrecognized input", func() {
		Expect(libptc.Parse("sctp")).To(Equal(libptc.NetworkEmpty))
		Expect(libptc.Parse("")).To(Equal(libptc.NetworkEmpty))
	})
})

var _ = Describe("MarshalText / UnmarshalText", func() {
	It("round-trips through text", func() {
		text, err := libptc.NetworkUDP6.MarshalText()
		Expect(err).ToNot(HaveOccurred())
		Expect(string(text)).To(Equal("udp6"))

		var p libptc.NetworkProtocol
		Expect(p.UnmarshalText(text)).ToNot(HaveOccurred())
		Expect(p).To(Equal(libptc.NetworkUDP6))
	})
})
