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

package socket_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libsck "github.com/MangaD/gosocketpp/socket"
)

func TestSocket(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Socket Suite")
}

var _ = Describe("ConnState.String", func() {
	It("renders every named state distinctly", func() {
		Expect(libsck.ConnectionDial.String()).To(Equal("Dial Connection"))
		Expect(libsck.ConnectionNew.String()).To(Equal("New Connection"))
		Expect(libsck.ConnectionRead.String()).To(Equal("Read Incoming Stream"))
		Expect(libsck.ConnectionCloseRead.String()).To(Equal("Close Incoming Stream"))
		Expect(libsck.ConnectionHandler.String()).To(Equal("Run HandlerFunc"))
		Expect(libsck.ConnectionWrite.String()).To(Equal("Write Outgoing Steam"))
		Expect(libsck.ConnectionCloseWrite.String()).To(Equal("Close Outgoing Stream"))
		Expect(libsck.ConnectionClose.String()).To(Equal("Close Connection"))
	})

	It("falls back for an out-of-range value", func() {
		Expect(libsck.ConnState(255).String()).To(Equal("unknown connection state"))
	})
})

var _ = Describe("ErrorFilter", func() {
	It("passes nil through unchanged", func() {
		Expect(libsck.ErrorFilter(nil)).To(BeNil())
	})

	It("swallows the closed-network-connection message", func() {
		err := errors.New("read tcp 127.0.0.1:1->127.0.0.1:2: use of closed network connection")
		Expect(libsck.ErrorFilter(err)).To(BeNil())
	})

	It("passes any other error through unchanged", func() {
		err := errors.New("connection reset by peer")
		Expect(libsck.ErrorFilter(err)).To(Equal(err))
	})
})

var _ = Describe("Size constants", func() {
	It("matches the documented UDP payload ceilings", func() {
		Expect(libsck.SafeMax).To(Equal(65507))
		Expect(libsck.IPv4Max).To(Equal(65507))
		Expect(libsck.IPv6Max).To(Equal(65527))
	})

	It("has sane defaults for buffer sizing", func() {
		Expect(libsck.DefaultBufferSize).To(BeNumerically(">", 0))
		Expect(libsck.DefaultDatagramBufferSize).To(BeNumerically(">", 0))
	})

	It("uses newline as the ReadLine delimiter", func() {
		Expect(libsck.EOL).To(Equal(byte('\n')))
	})
})
