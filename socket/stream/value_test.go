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

package stream_test

import (
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
	libstream "github.com/MangaD/gosocketpp/socket/stream"
)

var _ = Describe("ReadValue/WriteValue", func() {
	var client, server *libstream.Conn

	BeforeEach(func() {
		a, b := net.Pipe()
		client = libstream.New(a, 0)
		server = libstream.New(b, 0)
	})

	AfterEach(func() {
		_ = client.Close()
		_ = server.Close()
	})

	It("round-trips a uint32", func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			v, err := libstream.ReadValue[uint32](server)
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(uint32(0xDEADBEEF)))
		}()
		Expect(libstream.WriteValue[uint32](client, 0xDEADBEEF)).ToNot(HaveOccurred())
		<-done
	})

	It("round-trips a float64", func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			v, err := libstream.ReadValue[float64](server)
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(3.5))
		}()
		Expect(libstream.WriteValue[float64](client, 3.5)).ToNot(HaveOccurred())
		<-done
	})

	It("round-trips a bool", func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			v, err := libstream.ReadValue[bool](server)
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(BeTrue())
		}()
		Expect(libstream.WriteValue[bool](client, true)).ToNot(HaveOccurred())
		<-done
	})
})

var _ = Describe("ReadPrefixed/WritePrefixed", func() {
	var client, server *libstream.Conn

	BeforeEach(func() {
		a, b := net.Pipe()
		client = libstream.New(a, 0)
		server = libstream.New(b, 0)
	})

	AfterEach(func() {
		_ = client.Close()
		_ = server.Close()
	})

	It("round-trips a payload with a uint16 prefix", func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			payload, err := libstream.ReadPrefixed[uint16](server, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(payload)).To(Equal("hello, world"))
		}()
		Expect(libstream.WritePrefixed[uint16](client, []byte("hello, world"))).ToNot(HaveOccurred())
		<-done
	})

	It("rejects a payload exceeding the prefix width on write", func() {
		big := make([]byte, 300)
		err := libstream.WritePrefixed[uint8](client, big)
		Expect(err).To(HaveOccurred())
		Expect(liberr.Is(err, liberr.KindPayloadTooLarge)).To(BeTrue())
	})

	It("rejects a decoded length above an explicit maxLen before allocating", func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := libstream.ReadPrefixed[uint32](server, 10)
			Expect(err).To(HaveOccurred())
			Expect(liberr.Is(err, liberr.KindPayloadTooLarge)).To(BeTrue())
		}()
		Expect(libstream.WriteValue[uint32](client, 1000)).ToNot(HaveOccurred())
		<-done
	})
})
