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

package engine_test

import (
	"testing"

	"github.com/jetsetilly/chimeraboy/engine"
	"github.com/jetsetilly/chimeraboy/guest"
	"github.com/jetsetilly/chimeraboy/ports/scripted"
	"github.com/jetsetilly/chimeraboy/test"
)

func TestOneShot(t *testing.T) {
	prt := scripted.NewPort()
	bp, err := engine.NewBreakpoints(prt)
	test.DemandSuccess(t, err)
	eng, err := engine.NewEngine(prt, bp)
	test.DemandSuccess(t, err)

	fired := 0
	bp.Register(0x1665, func() bool {
		fired++
		prt.SetPC(0x30fd)
		return true
	})

	// two halts at the same address. only the first may fire the callback
	prt.ScheduleHalt(100, 0x1665)
	prt.ScheduleHalt(200, 0x1665)

	// the entry is removed after the first hit so the second halt passes
	// without a callback
	eng.AdvanceOneFrame()
	test.Equate(t, fired, 1)
	test.Equate(t, bp.IsArmed(0x1665), false)
}

func TestSpuriousHitStaysArmed(t *testing.T) {
	prt := scripted.NewPort()
	bp, err := engine.NewBreakpoints(prt)
	test.DemandSuccess(t, err)
	eng, err := engine.NewEngine(prt, bp)
	test.DemandSuccess(t, err)

	fired := 0
	bp.Register(0x1665, func() bool {
		fired++
		return false
	})

	prt.ScheduleHalt(100, 0x1665)
	eng.AdvanceOneFrame()
	test.Equate(t, fired, 1)
	test.Equate(t, bp.IsArmed(0x1665), true)

	// the callback declined the hit so a later halt fires it again
	prt.ScheduleHalt(guest.TicksPerFrame+50, 0x1665)
	eng.AdvanceOneFrame()
	test.Equate(t, fired, 2)
	test.Equate(t, bp.IsArmed(0x1665), true)
}

func TestRegisterFlagsCore(t *testing.T) {
	prt := scripted.NewPort()
	bp, err := engine.NewBreakpoints(prt)
	test.DemandSuccess(t, err)

	bp.Register(0x1665, func() bool { return true })
	bp.Register(0x2000, func() bool { return true })
	test.Equate(t, prt.IsBreakAddress(0x1665), true)
	test.Equate(t, prt.IsBreakAddress(0x2000), true)

	// the core only supports clear-all. unregistering one address must
	// rebuild the set with the other still present
	bp.Unregister(0x1665)
	test.Equate(t, prt.IsBreakAddress(0x1665), false)
	test.Equate(t, prt.IsBreakAddress(0x2000), true)
	test.Equate(t, prt.NumBreakAddresses(), 1)
}

func TestRegisterReplaces(t *testing.T) {
	prt := scripted.NewPort()
	bp, err := engine.NewBreakpoints(prt)
	test.DemandSuccess(t, err)
	eng, err := engine.NewEngine(prt, bp)
	test.DemandSuccess(t, err)

	first := 0
	second := 0
	bp.Register(0x1665, func() bool { first++; return true })
	bp.Register(0x1665, func() bool { second++; prt.SetPC(0x30fd); return true })

	prt.ScheduleHalt(100, 0x1665)
	eng.AdvanceOneFrame()

	// only the replacement callback fires
	test.Equate(t, first, 0)
	test.Equate(t, second, 1)
}

func TestNilPort(t *testing.T) {
	_, err := engine.NewBreakpoints(nil)
	test.ExpectedFailure(t, err)
}
