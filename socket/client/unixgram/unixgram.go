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

// Package unixgram is the Unix-domain datagram client (SOCK_DGRAM over
// AF_UNIX): a thin specialization of socket/datagram binding a named,
// caller-supplied local path and targeting a server path. Not
// available on Windows, matching socket/config's validation.
package unixgram

import (
	"net"
	"os"

	libdgr "github.com/MangaD/gosocketpp/socket/datagram"
	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
)

// Client is a connected Unix-domain datagram client.
type Client struct {
	sock       *libdgr.Socket
	localPath  string
	serverPath string
}

// Dial binds an ephemeral local socket file at localPath (removed on
// Close) and fixes serverPath as the default peer.
func Dial(localPath, serverPath string) (*Client, error) {
	if serverPath == "" {
		return nil, liberr.InvalidArgument("client/unixgram: empty server path")
	}
	if localPath == "" {
		return nil, liberr.InvalidArgument("client/unixgram: empty local path")
	}

	_ = os.Remove(localPath)
	sock, err := libdgr.Bind("unixgram", localPath)
	if err != nil {
		return nil, err
	}
	peer := &net.UnixAddr{Name: serverPath, Net: "unixgram"}
	if err := sock.Connect(peer); err != nil {
		sock.Close()
		return nil, err
	}

	return &Client{sock: sock, localPath: localPath, serverPath: serverPath}, nil
}

// Send writes a datagram to the connected server path.
func (c *Client) Send(p []byte) (int, error) {
	return c.sock.Send(libdgr.Packet{Data: p, Addr: &net.UnixAddr{Name: c.serverPath, Net: "unixgram"}})
}

// Receive reads one datagram.
func (c *Client) Receive(maxSize int) (libdgr.Packet, error) {
	return c.sock.Receive(maxSize)
}

// Close closes the socket and removes the local socket file.
func (c *Client) Close() error {
	err := c.sock.Close()
	_ = os.Remove(c.localPath)
	return err
}
