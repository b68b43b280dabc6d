// This file is part of Chimeraboy.
//
// Chimeraboy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chimeraboy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chimeraboy.  If not, see <https://www.gnu.org/licenses/>.

// Package assert contains helpers for consistency checks that are too
// expensive for a normal build. They are only ever referenced from files
// behind the "assert" build tag.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GoroutineID identifies the calling goroutine. The result is stable for
// the lifetime of the goroutine and differs between goroutines. Parsing
// the stack header is slow so this must never appear outside of debugging
// builds.
func GoroutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}
