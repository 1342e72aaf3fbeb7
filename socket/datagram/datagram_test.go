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

package datagram_test

import (
	"net"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libdgr "github.com/MangaD/gosocketpp/socket/datagram"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
)

func TestDatagram(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Datagram Suite")
}

var _ = Describe("Packet.HasDestination", func() {
	It("is false for a nil address", func() {
		Expect(libdgr.Packet{}.HasDestination()).To(BeFalse())
	})

	It("is false for a whitespace-only address", func() {
		p := libdgr.Packet{Addr: &net.UnixAddr{Name: "   ", Net: "unixgram"}}
		Expect(p.HasDestination()).To(BeFalse())
	})

	It("is true for a concrete address", func() {
		a, err := net.ResolveUDPAddr("udp", "127.0.0.1:9")
		Expect(err).ToNot(HaveOccurred())
		Expect(libdgr.Packet{Addr: a}.HasDestination()).To(BeTrue())
	})
})

var _ = Describe("Socket", func() {
	var a, b *libdgr.Socket

	BeforeEach(func() {
		var err error
		a, err = libdgr.Bind("udp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		b, err = libdgr.Bind("udp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = a.Close()
		_ = b.Close()
	})

	It("sends a datagram to an explicit destination and receives the sender", func() {
		n, err := a.Send(libdgr.Packet{Data: []byte("hi"), Addr: b.LocalAddr()})
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(2))

		pkt, err := b.ReceiveTimeout(64, 2*time.Second)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(pkt.Data)).To(Equal("hi"))
		Expect(pkt.Addr.String()).To(Equal(a.LocalAddr().String()))
	})

	It("omits the destination once Connect fixed a default peer", func() {
		Expect(a.IsConnected()).To(BeFalse())
		Expect(a.Connect(b.LocalAddr())).ToNot(HaveOccurred())
		Expect(a.IsConnected()).To(BeTrue())

		_, err := a.Send(libdgr.Packet{Data: []byte("yo")})
		Expect(err).ToNot(HaveOccurred())

		pkt, err := b.ReceiveTimeout(64, 2*time.Second)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(pkt.Data)).To(Equal("yo"))

		Expect(a.Disconnect()).ToNot(HaveOccurred())
		Expect(a.IsConnected()).To(BeFalse())
	})

	It("rejects Send with neither a destination nor a connected peer", func() {
		_, err := a.Send(libdgr.Packet{Data: []byte("nope")})
		Expect(err).To(HaveOccurred())
		Expect(liberr.Is(err, liberr.KindInvalidArgument)).To(BeTrue())
	})

	It("ReceiveTimeout reports sockerr.Timeout when nothing arrives", func() {
		_, err := a.ReceiveTimeout(64, 30*time.Millisecond)
		Expect(err).To(HaveOccurred())
		Expect(liberr.Is(err, liberr.KindTimeout)).To(BeTrue())
	})

	It("rejects a Send payload above the IPv4 UDP ceiling", func() {
		_, err := a.Send(libdgr.Packet{Data: make([]byte, 65508), Addr: b.LocalAddr()})
		Expect(err).To(HaveOccurred())
		Expect(liberr.Is(err, liberr.KindPayloadTooLarge)).To(BeTrue())
	})

	It("round-trips a value-typed datagram with ReadValue", func() {
		Expect(a.Connect(b.LocalAddr())).ToNot(HaveOccurred())
		Expect(b.Connect(a.LocalAddr())).ToNot(HaveOccurred())

		_, err := a.Send(libdgr.Packet{Data: []byte{42}})
		Expect(err).ToNot(HaveOccurred())

		v, err := libdgr.ReadValue[uint8](b)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(uint8(42)))
	})

	It("captures the sender's address with RecvFrom", func() {
		_, err := a.Send(libdgr.Packet{Data: []byte{7}, Addr: b.LocalAddr()})
		Expect(err).ToNot(HaveOccurred())

		v, addr, err := libdgr.RecvFrom[uint8](b)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(uint8(7)))
		Expect(addr.String()).To(Equal(a.LocalAddr().String()))
	})

	It("reports PayloadTooLarge when a datagram doesn't match the requested value size", func() {
		_, err := a.Send(libdgr.Packet{Data: []byte("too long"), Addr: b.LocalAddr()})
		Expect(err).ToNot(HaveOccurred())

		_, err = libdgr.ReadValue[uint8](b)
		Expect(err).To(HaveOccurred())
		Expect(liberr.Is(err, liberr.KindPayloadTooLarge)).To(BeTrue())
	})

	It("reads a datagram payload as a string with RecvFromString", func() {
		_, err := a.Send(libdgr.Packet{Data: []byte("hello udp"), Addr: b.LocalAddr()})
		Expect(err).ToNot(HaveOccurred())

		s, addr, err := b.RecvFromString()
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal("hello udp"))
		Expect(addr.String()).To(Equal(a.LocalAddr().String()))
	})
})
