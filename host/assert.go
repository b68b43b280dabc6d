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

//go:build assert

package host

import (
	"fmt"

	"github.com/jetsetilly/chimeraboy/assert"
)

// the port is not safe for concurrent use. the frame loop must stay on a
// single goroutine and an assert build makes sure of it
func (hst *Host) assertFrameGoroutine() {
	id := assert.GoroutineID()
	if hst.frameGoroutine == 0 {
		hst.frameGoroutine = id
		return
	}
	if hst.frameGoroutine != id {
		panic(fmt.Sprintf("AdvanceFrame() called from goroutine %d after goroutine %d", id, hst.frameGoroutine))
	}
}
