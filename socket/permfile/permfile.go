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

// Package permfile provides a small os.FileMode-compatible permission
// type used for the filesystem mode Unix-domain socket servers apply to
// the socket path they bind.
package permfile

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Perm is a filesystem permission, compatible with os.FileMode for the
// plain rwx bits.
type Perm uint32

// MaxGID is the largest group id this module accepts for GroupPerm. It
// mirrors the conventional 16-bit gid_t range used by most Unix systems.
const MaxGID = 1<<16 - 1

// FileMode converts Perm to an os.FileMode.
func (p Perm) FileMode() os.FileMode {
	return os.FileMode(p)
}

// Parse parses an octal permission string such as "0660".
func Parse(s string) (Perm, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\"", "")
	s = strings.ReplaceAll(s, "'", "")

	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid permission %q: %w", s, err)
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("invalid permission %q: out of range", s)
	}

	return Perm(v), nil
}

// String renders the permission in octal, e.g. "0660".
func (p Perm) String() string {
	return fmt.Sprintf("0%o", uint32(p))
}
