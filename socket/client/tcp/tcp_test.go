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

// tcp_test.go covers the client's error paths in isolation; the happy
// echo path is exercised end to end alongside the server in
// socket/server/tcp.
package tcp_test

import (
	"net"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	clitcp "github.com/MangaD/gosocketpp/socket/client/tcp"
	libcfg "github.com/MangaD/gosocketpp/socket/config"
	libptc "github.com/MangaD/gosocketpp/socket/protocol"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
)

func TestClientTCP(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Client TCP Suite")
}

var _ = Describe("Dial", func() {
	It("rejects an unspecified network protocol", func() {
		cfg := libcfg.Client{Address: "127.0.0.1:1"}
		_, err := clitcp.Dial(cfg, libcfg.DefaultTuning())
		Expect(err).To(HaveOccurred())
		Expect(liberr.Is(err, liberr.KindInvalidArgument)).To(BeTrue())
	})

	It("reports IoFailed when the peer refuses the connection", func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		addr := ln.Addr().String()
		Expect(ln.Close()).ToNot(HaveOccurred())

		cfg := libcfg.Client{Network: libptc.NetworkTCP, Address: addr}
		_, err = clitcp.Dial(cfg, libcfg.DefaultTuning())
		Expect(err).To(HaveOccurred())
		Expect(liberr.Is(err, liberr.KindIoFailed)).To(BeTrue())
	})

	It("applies requested tuning to a successfully dialed connection", func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer ln.Close()
		go func() {
			c, _ := ln.Accept()
			if c != nil {
				defer c.Close()
			}
		}()

		tuning := libcfg.DefaultTuning()
		tuning.NoDelay = true
		cfg := libcfg.Client{Network: libptc.NetworkTCP, Address: ln.Addr().String()}
		conn, err := clitcp.Dial(cfg, tuning)
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()
	})
})

var _ = Describe("DialTimeout", func() {
	It("times out connecting to a non-routable address", func() {
		_, err := clitcp.DialTimeout("tcp", "10.255.255.1:81", 50*time.Millisecond, libcfg.DefaultTuning())
		Expect(err).To(HaveOccurred())
	})
})
