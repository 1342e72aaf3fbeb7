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

// udp_test.go drives the UDP server end to end against the UDP client,
// covering sender-capture (one socket, many senders) and graceful
// shutdown.
package udp_test

import (
	"context"
	"net"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libcfg "github.com/MangaD/gosocketpp/socket/config"
	libptc "github.com/MangaD/gosocketpp/socket/protocol"
	cliudp "github.com/MangaD/gosocketpp/socket/client/udp"
	sckudp "github.com/MangaD/gosocketpp/socket/server/udp"
)

func TestServerUDP(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Server UDP Suite")
}

func freeUDPAddress() string {
	c, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	Expect(err).ToNot(HaveOccurred())
	addr := c.LocalAddr().String()
	Expect(c.Close()).ToNot(HaveOccurred())
	return addr
}

func echoHandler(ctx sckudp.Context) {
	buf := make([]byte, 2048)
	n, err := ctx.Read(buf)
	if err != nil {
		return
	}
	_, _ = ctx.Write(buf[:n])
}

var _ = Describe("UDP server and client", func() {
	var (
		bgCtx  context.Context
		cancel context.CancelFunc
		srv    sckudp.ServerUdp
		addr   string
	)

	BeforeEach(func() {
		bgCtx, cancel = context.WithCancel(context.Background())
		addr = freeUDPAddress()

		var err error
		srv, err = sckudp.New(nil, echoHandler, libcfg.Server{Network: libptc.NetworkUDP, Address: addr})
		Expect(err).ToNot(HaveOccurred())

		go func() { _ = srv.Listen(bgCtx) }()
		Eventually(srv.IsRunning, time.Second, 5*time.Millisecond).Should(BeTrue())
	})

	AfterEach(func() {
		_ = srv.Close()
		cancel()
	})

	It("echoes a datagram through the connected client", func() {
		cli, err := cliudp.New(addr)
		Expect(err).ToNot(HaveOccurred())
		Expect(cli.Connect(context.Background())).ToNot(HaveOccurred())
		defer cli.Close()

		_, err = cli.Send([]byte("ping"))
		Expect(err).ToNot(HaveOccurred())

		buf := make([]byte, 16)
		n, err := cli.ReceiveTimeout(buf, 2*time.Second)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("ping"))
	})

	It("captures independent senders on the same socket", func() {
		for i := 0; i < 3; i++ {
			conn, err := net.Dial("udp", addr)
			Expect(err).ToNot(HaveOccurred())
			_, err = conn.Write([]byte("hello"))
			Expect(err).ToNot(HaveOccurred())

			buf := make([]byte, 16)
			Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).ToNot(HaveOccurred())
			n, err := conn.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(buf[:n])).To(Equal("hello"))
			Expect(conn.Close()).ToNot(HaveOccurred())
		}
	})
})
