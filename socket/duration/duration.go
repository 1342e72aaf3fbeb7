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

// Package duration provides a days-aware time.Duration wrapper used for
// the timeouts exposed on socket configuration structs (accept timeout,
// idle timeout, connect timeout), so a server config can read
// "5d" instead of "120h".
package duration

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Duration wraps time.Duration and adds a String/Parse pair that
// understands a leading "Nd" days component.
type Duration time.Duration

// Parse parses a duration string. Everything time.ParseDuration accepts is
// accepted, plus a leading days component such as "2d3h".
func Parse(s string) (Duration, error) {
	return parseString(s)
}

// ParseByte is Parse over a byte slice, for unmarshalling call sites that
// already hold raw bytes.
func ParseByte(p []byte) (Duration, error) {
	return parseString(string(p))
}

// MustParse parses s and panics on error. Intended for package-level
// default values, not for parsing user input.
func MustParse(s string) Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func parseString(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\"", "")
	s = strings.ReplaceAll(s, "'", "")

	if s == "" {
		return 0, nil
	}

	var days int64
	if idx := strings.IndexByte(s, 'd'); idx > 0 {
		n, rest := s[:idx], s[idx+1:]
		if v, err := parseDaysPrefix(n); err == nil {
			days = v
			s = rest
		}
	}

	var rem time.Duration
	if s != "" {
		v, err := time.ParseDuration(s)
		if err != nil {
			return 0, err
		}
		rem = v
	}

	return Duration(time.Duration(days)*24*time.Hour + rem), nil
}

func parseDaysPrefix(s string) (int64, error) {
	var v int64
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, err
	}
	return v, nil
}

// Seconds returns a Duration of i seconds.
func Seconds(i int64) Duration { return Duration(time.Duration(i) * time.Second) }

// Minutes returns a Duration of i minutes.
func Minutes(i int64) Duration { return Duration(time.Duration(i) * time.Minute) }

// Hours returns a Duration of i hours.
func Hours(i int64) Duration { return Duration(time.Duration(i) * time.Hour) }

// Days returns a Duration of i days.
func Days(i int64) Duration { return Duration(time.Duration(i) * time.Hour * 24) }

// ParseDuration wraps a time.Duration without modifying it.
func ParseDuration(d time.Duration) Duration { return Duration(d) }

// Time returns the time.Duration representation.
func (d Duration) Time() time.Duration { return time.Duration(d) }

// Days returns the number of whole days in the duration.
func (d Duration) Days() int64 {
	t := math.Floor(d.Time().Hours() / 24)
	if t > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(t)
}

// String renders the duration as "NdH...", omitting the day component when
// zero and omitting the remainder when it is zero and there is a day
// component.
func (d Duration) String() string {
	var (
		s string
		n = d.Days()
		i = d.Time()
	)

	if n > 0 {
		i -= time.Duration(n) * 24 * time.Hour
		s = fmt.Sprintf("%dd", n)
	}

	if n < 1 || i > 0 {
		s += i.String()
	}

	return s
}

// IsZero reports whether the duration is exactly zero.
func (d Duration) IsZero() bool { return d == 0 }
