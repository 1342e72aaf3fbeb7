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

package sockerr_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/MangaD/gosocketpp/socket/sockerr"
)

func TestSockerr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sockerr Suite")
}

var _ = Describe("Error", func() {
	It("renders kind and message", func() {
		e := liberr.InvalidArgument("empty address")
		Expect(e.Error()).To(Equal("InvalidArgument: empty address"))
	})

	It("renders a code when present", func() {
		e := liberr.IoFailedCode(104, "connection reset")
		Expect(e.Error()).To(ContainSubstring("code 104"))
	})

	It("renders host/service phase for resolution failures", func() {
		e := liberr.ResolutionFailed(liberr.PhaseService, 8, "unknown service")
		Expect(e.Error()).To(ContainSubstring("service lookup failed"))
	})

	It("unwraps to the wrapped cause", func() {
		cause := errors.New("boom")
		e := liberr.IoFailed(cause)
		Expect(errors.Unwrap(e)).To(Equal(cause))
	})

	It("Is compares by Kind only", func() {
		a := liberr.Timeout("slow")
		b := liberr.Timeout("different message")
		c := liberr.Closed("gone")
		Expect(errors.Is(a, b)).To(BeTrue())
		Expect(errors.Is(a, c)).To(BeFalse())
	})

	It("package-level Is matches a Kind against any error value", func() {
		e := liberr.PayloadTooLarge("too big")
		Expect(liberr.Is(e, liberr.KindPayloadTooLarge)).To(BeTrue())
		Expect(liberr.Is(e, liberr.KindTimeout)).To(BeFalse())
		Expect(liberr.Is(errors.New("plain"), liberr.KindTimeout)).To(BeFalse())
	})

	It("a nil *Error renders an empty string and unwraps to nil", func() {
		var e *liberr.Error
		Expect(e.Error()).To(Equal(""))
		Expect(e.Unwrap()).To(BeNil())
	})
})

var _ = Describe("Kind.String", func() {
	It("names every taxonomy member", func() {
		Expect(liberr.KindInvalidArgument.String()).To(Equal("InvalidArgument"))
		Expect(liberr.KindUnsupported.String()).To(Equal("Unsupported"))
		Expect(liberr.Kind(255).String()).To(Equal("Unknown"))
	})
})
