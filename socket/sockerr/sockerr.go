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

// Package sockerr defines the error taxonomy every socket operation in
// this module reports through: a small closed set of Kind values, each
// carrying an optional platform error code and a human-readable message
// rendered from the errno/WSA table or the resolver table, never both.
package sockerr

import "fmt"

// Kind identifies the class of failure. Kind values are deliberately
// coarse - callers are expected to switch on Kind, not on message text.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindResolutionFailed
	KindIoFailed
	KindTimeout
	KindClosed
	KindInvalidState
	KindAlreadyBound
	KindAlreadyConnected
	KindNotConnected
	KindMaxExceeded
	KindPayloadTooLarge
	KindPartialDatagram
	KindDescriptorTooLarge
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindResolutionFailed:
		return "ResolutionFailed"
	case KindIoFailed:
		return "IoFailed"
	case KindTimeout:
		return "Timeout"
	case KindClosed:
		return "Closed"
	case KindInvalidState:
		return "InvalidState"
	case KindAlreadyBound:
		return "AlreadyBound"
	case KindAlreadyConnected:
		return "AlreadyConnected"
	case KindNotConnected:
		return "NotConnected"
	case KindMaxExceeded:
		return "MaxExceeded"
	case KindPayloadTooLarge:
		return "PayloadTooLarge"
	case KindPartialDatagram:
		return "PartialDatagram"
	case KindDescriptorTooLarge:
		return "DescriptorTooLarge"
	case KindUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Phase distinguishes a host lookup failure from a service (port) lookup
// failure inside a ResolutionFailed error.
type Phase uint8

const (
	PhaseHost Phase = iota
	PhaseService
)

func (p Phase) String() string {
	if p == PhaseService {
		return "service"
	}
	return "host"
}

// Error is the concrete error type every exported operation in this
// module returns. It deliberately does not carry parent/child trees: the
// taxonomy spec.md asks for is flat, and nothing in this module's
// testable properties needs multi-cause composition.
type Error struct {
	Kind    Kind
	Code    int    // platform errno/WSA code, or resolver EAI_* code; 0 if not applicable
	Phase   Phase  // meaningful only when Kind == KindResolutionFailed
	Message string // human readable, rendered from the domain-appropriate table
	Cause   error  // optional wrapped cause, e.g. the underlying *net.OpError
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind == KindResolutionFailed {
		return fmt.Sprintf("%s: %s lookup failed (code %d): %s", e.Kind, e.Phase, e.Code, e.Message)
	}
	if e.Code != 0 {
		return fmt.Sprintf("%s (code %d): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is a *Error with the same Kind, which is the
// granularity callers are expected to match on (errors.Is(err,
// sockerr.Timeout(...))-style checks should instead use errors.As and
// inspect Kind, but Is is provided for convenience with sentinel-style
// comparisons of Kind-only errors).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(k Kind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}

// InvalidArgument builds a KindInvalidArgument error.
func InvalidArgument(msg string) *Error { return newErr(KindInvalidArgument, msg) }

// ResolutionFailed builds a KindResolutionFailed error for the given
// phase (host or service lookup), with a resolver-domain code.
func ResolutionFailed(phase Phase, code int, msg string) *Error {
	return &Error{Kind: KindResolutionFailed, Phase: phase, Code: code, Message: msg}
}

// IoFailed builds a KindIoFailed error wrapping an errno/WSA-domain
// failure from the underlying system call.
func IoFailed(cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindIoFailed, Message: msg, Cause: cause}
}

// IoFailedCode builds a KindIoFailed error with an explicit numeric
// errno/WSA code, for call sites that extracted it from a syscall.Errno.
func IoFailedCode(code int, msg string) *Error {
	return &Error{Kind: KindIoFailed, Code: code, Message: msg}
}

// Timeout builds a KindTimeout error.
func Timeout(msg string) *Error { return newErr(KindTimeout, msg) }

// Closed builds a KindClosed error, reported when a peer's orderly close
// is observed via a zero-length recv.
func Closed(msg string) *Error { return newErr(KindClosed, msg) }

// InvalidState builds a KindInvalidState error.
func InvalidState(msg string) *Error { return newErr(KindInvalidState, msg) }

// AlreadyBound builds a KindAlreadyBound error.
func AlreadyBound(msg string) *Error { return newErr(KindAlreadyBound, msg) }

// AlreadyConnected builds a KindAlreadyConnected error.
func AlreadyConnected(msg string) *Error { return newErr(KindAlreadyConnected, msg) }

// NotConnected builds a KindNotConnected error.
func NotConnected(msg string) *Error { return newErr(KindNotConnected, msg) }

// MaxExceeded builds a KindMaxExceeded error, reported by ReadUntil/
// ReadLine when max_len is reached without observing the delimiter.
func MaxExceeded(msg string) *Error { return newErr(KindMaxExceeded, msg) }

// PayloadTooLarge builds a KindPayloadTooLarge error.
func PayloadTooLarge(msg string) *Error { return newErr(KindPayloadTooLarge, msg) }

// PartialDatagram builds a KindPartialDatagram error, reported when a UDP
// send transmits fewer bytes than the datagram required.
func PartialDatagram(msg string) *Error { return newErr(KindPartialDatagram, msg) }

// DescriptorTooLarge builds a KindDescriptorTooLarge error, reported on
// Windows when a descriptor exceeds what select() can multiplex.
func DescriptorTooLarge(msg string) *Error { return newErr(KindDescriptorTooLarge, msg) }

// Unsupported builds a KindUnsupported error.
func Unsupported(msg string) *Error { return newErr(KindUnsupported, msg) }

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok || e == nil {
		return false
	}
	return e.Kind == kind
}
