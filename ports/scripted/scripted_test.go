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

package scripted_test

import (
	"testing"

	"github.com/jetsetilly/chimeraboy/ports/scripted"
	"github.com/jetsetilly/chimeraboy/test"
)

func TestRunUntil(t *testing.T) {
	prt := scripted.NewPort()

	// no halts scheduled so the target is always reached
	test.Equate(t, prt.RunUntil(100), uint64(100))
	test.Equate(t, prt.RunUntil(250), uint64(250))
}

func TestScheduledHalt(t *testing.T) {
	prt := scripted.NewPort()
	prt.ScheduleHalt(120, 0x1665)

	// run stops short at the scheduled tick with the scheduled pc
	test.Equate(t, prt.RunUntil(200), uint64(120))
	test.Equate(t, prt.PC(), 0x1665)

	// the halt has been consumed. the next run reaches the target
	test.Equate(t, prt.RunUntil(200), uint64(200))
}

func TestHaltOrdering(t *testing.T) {
	prt := scripted.NewPort()
	prt.ScheduleHalt(300, 0x2000)
	prt.ScheduleHalt(100, 0x1000)

	// halts consumed in tick order regardless of scheduling order
	test.Equate(t, prt.RunUntil(500), uint64(100))
	test.Equate(t, prt.PC(), 0x1000)
	test.Equate(t, prt.RunUntil(500), uint64(300))
	test.Equate(t, prt.PC(), 0x2000)
	test.Equate(t, prt.RunUntil(500), uint64(500))
}

func TestMemory(t *testing.T) {
	prt := scripted.NewPort()

	test.Equate(t, prt.Peek(0xd057), 0)
	prt.Poke(0xd057, 2)
	test.Equate(t, prt.Peek(0xd057), 2)
}

func TestBreakAddresses(t *testing.T) {
	prt := scripted.NewPort()

	prt.SetBreakAddress(0x1665)
	prt.SetBreakAddress(0x2000)
	test.Equate(t, prt.NumBreakAddresses(), 2)
	test.Equate(t, prt.IsBreakAddress(0x1665), true)

	prt.ClearAllBreakAddresses()
	test.Equate(t, prt.NumBreakAddresses(), 0)
	test.Equate(t, prt.IsBreakAddress(0x1665), false)
}
