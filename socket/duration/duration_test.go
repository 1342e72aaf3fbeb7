/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2025 gosocketpp contributors
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package duration_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libdur "github.com/MangaD/gosocketpp/socket/duration"
)

func TestDuration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Duration Suite")
}

var _ = Describe("Parse", func() {
	It("parses plain stdlib durations", func() {
		d, err := libdur.Parse("90s")
		Expect(err).ToNot(HaveOccurred())
		Expect(d.Time()).To(Equal(90 * time.Second))
	})

	It("parses a leading days component", func() {
		d, err := libdur.Parse("2d3h")
		Expect(err).ToNot(HaveOccurred())
		Expect(d.Time()).To(Equal(48*time.Hour + 3*time.Hour))
		Expect(d.Days()).To(Equal(int64(2)))
	})

	It("parses a bare days component", func() {
		d, err := libdur.Parse("1d")
		Expect(err).ToNot(HaveOccurred())
		Expect(d.Time()).To(Equal(24 * time.Hour))
	})

	It("treats an empty string as zero", func() {
		d, err := libdur.Parse("")
		Expect(err).ToNot(HaveOccurred())
		Expect(d.IsZero()).To(BeTrue())
	})

	It("strips surrounding quotes", func() {
		d, err := libdur.Parse(`"5s"`)
		Expect(err).ToNot(HaveOccurred())
		Expect(d.Time()).To(Equal(5 * time.Second))
	})

	It("rejects a malformed remainder", func() {
		_, err := libdur.Parse("2dxyz")
		Expect(err).To(HaveOccurred())
	})

	It("round-trips ParseByte with Parse", func() {
		a, err := libdur.Parse("2d3h")
		Expect(err).ToNot(HaveOccurred())
		b, err := libdur.ParseByte([]byte("2d3h"))
		Expect(err).ToNot(HaveOccurred())
		Expect(a).To(Equal(b))
	})
})

var _ = Describe("String", func() {
	It("omits the day component when zero", func() {
		Expect(libdur.Seconds(30).String()).To(Equal((30 * time.Second).String()))
	})

	It("renders days and a nonzero remainder", func() {
		d := libdur.Days(2) + libdur.Hours(3)
		Expect(d.String()).To(Equal("2d" + (3 * time.Hour).String()))
	})

	It("omits the remainder when it is zero", func() {
		Expect(libdur.Days(2).String()).To(Equal("2d"))
	})
})

var _ = Describe("Constructors", func() {
	It("builds Minutes/Hours/Days from integer counts", func() {
		Expect(libdur.Minutes(2).Time()).To(Equal(2 * time.Minute))
		Expect(libdur.Hours(2).Time()).To(Equal(2 * time.Hour))
		Expect(libdur.Days(2).Time()).To(Equal(48 * time.Hour))
	})

	It("MustParse panics on an invalid string", func() {
		Expect(func() { libdur.MustParse("not-a-duration") }).To(Panic())
	})
})
