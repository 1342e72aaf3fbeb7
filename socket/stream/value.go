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

package stream

import (
	"encoding/binary"
	"unsafe"

	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
)

// Go has no generic methods, so the template-style fixed-size and
// length-prefixed transfer spec.md describes is expressed as package-level
// generic functions taking *Conn, rather than methods on it.

// FixedValue is any type ReadValue/WriteValue can move as a flat,
// host-native-byte-order block: the fixed-width integers and floats, plus
// bool and byte. No endianness conversion is applied, matching spec.md's
// "native representation" requirement for fixed-size transfers.
type FixedValue interface {
	~bool | ~int8 | ~uint8 | ~int16 | ~uint16 |
		~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// ReadValue reads sizeof(T) bytes and reinterprets them in the host's
// native byte order.
func ReadValue[T FixedValue](c *Conn) (T, error) {
	var v T
	buf := asBytes(&v)
	if err := c.ReadExact(buf); err != nil {
		return v, err
	}
	return v, nil
}

// WriteValue writes sizeof(T) bytes of v in the host's native byte order.
func WriteValue[T FixedValue](c *Conn, v T) error {
	return c.WriteAll(asBytes(&v))
}

func asBytes[T FixedValue](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// Prefix is a fixed-width unsigned integer usable as a length prefix for
// ReadPrefixed/WritePrefixed.
type Prefix interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// DefaultMaxPrefixed caps ReadPrefixed payloads absent an explicit limit,
// guarding against a hostile or corrupt prefix requesting an enormous
// allocation.
const DefaultMaxPrefixed = 16 * 1024 * 1024

// ReadPrefixed reads a P-width length prefix in host-native byte order
// followed by that many bytes of payload. maxLen, if non-zero, rejects a
// decoded length above it with sockerr.PayloadTooLarge before allocating.
func ReadPrefixed[P Prefix](c *Conn, maxLen uint64) ([]byte, error) {
	n, err := ReadValue[P](c)
	if err != nil {
		return nil, err
	}
	length := prefixToUint64(n)
	limit := maxLen
	if limit == 0 {
		limit = DefaultMaxPrefixed
	}
	if length > limit {
		return nil, liberr.PayloadTooLarge("prefixed payload exceeds configured maximum")
	}
	buf := make([]byte, length)
	if err := c.ReadExact(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WritePrefixed writes a P-width host-native length prefix followed by
// payload. It reports sockerr.PayloadTooLarge if len(payload) does not fit
// in P without truncation.
func WritePrefixed[P Prefix](c *Conn, payload []byte) error {
	var p P
	if uint64(len(payload)) > maxOfPrefix(p) {
		return liberr.PayloadTooLarge("payload length does not fit in the requested prefix width")
	}
	p = uint64ToPrefix[P](uint64(len(payload)))
	if err := WriteValue(c, p); err != nil {
		return err
	}
	return c.WriteAll(payload)
}

func prefixToUint64[P Prefix](p P) uint64 { return uint64(p) }

func uint64ToPrefix[P Prefix](v uint64) P { return P(v) }

func maxOfPrefix[P Prefix](_ P) uint64 {
	var p P
	bits := unsafe.Sizeof(p) * 8
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

// nativeEndian exposes the module's "no endianness conversion" byte order
// for components that need to inspect it explicitly (e.g. diagnostics).
var nativeEndian = binary.NativeEndian
