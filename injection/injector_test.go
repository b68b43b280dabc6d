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

package injection_test

import (
	"testing"

	"github.com/jetsetilly/chimeraboy/creature"
	"github.com/jetsetilly/chimeraboy/engine"
	"github.com/jetsetilly/chimeraboy/guest"
	"github.com/jetsetilly/chimeraboy/injection"
	"github.com/jetsetilly/chimeraboy/ports/scripted"
	"github.com/jetsetilly/chimeraboy/test"
)

func testCreature() *creature.Creature {
	cr := &creature.Creature{
		Name:    "Glimmering",
		Species: "moth",
		Level:   30,
		Base: creature.Stats{
			HP:      90,
			Attack:  60,
			Defence: 70,
			Speed:   130,
			Special: 100,
		},
		Moves: [4]uint8{0x10, 0x20, 0x30, 0x40},
		Types: [2]uint8{0x07, 0x16},
	}
	for i := range cr.Sprite {
		cr.Sprite[i] = uint8(i)
	}
	return cr
}

func newInjector(t *testing.T) (*scripted.Port, *engine.Breakpoints, *engine.Engine, *injection.Injector) {
	t.Helper()
	prt := scripted.NewPort()
	bp, err := engine.NewBreakpoints(prt)
	test.DemandSuccess(t, err)
	eng, err := engine.NewEngine(prt, bp)
	test.DemandSuccess(t, err)
	inj, err := injection.NewInjector(prt, guest.Standard(), bp, nil)
	test.DemandSuccess(t, err)
	return prt, bp, eng, inj
}

func TestInjection(t *testing.T) {
	prt, bp, eng, inj := newInjector(t)
	off := guest.Standard()

	// battle in progress; a return instruction a few bytes into the routine
	prt.Poke(off.BattleActive, 1)
	prt.Poke(off.SpriteRoutineEntry+10, guest.ReturnOpcode)
	prt.Poke(off.DisplayControl, 0x91)

	cr := testCreature()
	inj.Arm(cr)
	test.Equate(t, int(inj.State()), int(injection.CreatureReady))
	test.Equate(t, prt.IsBreakAddress(off.SpriteRoutineEntry), true)

	prt.ScheduleHalt(100, off.SpriteRoutineEntry)
	eng.AdvanceOneFrame()

	// creature data written at the opponent block
	var b [creature.PartyMemberSize]uint8
	for i := range b {
		b[i] = prt.Peek(off.OpponentData + uint16(i))
	}
	p := creature.DecodePartyMember(b)
	test.Equate(t, p.Level, 30)
	test.Equate(t, p.MaxHP, 90)
	test.Equate(t, p.Species, guest.PlaceholderSpecies)

	// nickname and species placeholder written. 0x86 is 'G' in the guest
	// character set
	test.Equate(t, prt.Peek(off.OpponentSpecies), guest.PlaceholderSpecies)
	test.Equate(t, prt.Peek(off.OpponentNick), 0x86)

	// sprite copied and the display-enable bit restored
	test.Equate(t, prt.Peek(off.FrontSpriteTiles), 0)
	test.Equate(t, prt.Peek(off.FrontSpriteTiles+1), 1)
	test.Equate(t, prt.Peek(off.FrontSpriteTiles+255), 255)
	test.Equate(t, prt.Peek(off.DisplayControl), 0x91)

	// instruction pointer redirected to the found return and the frame
	// completed
	test.Equate(t, int(inj.State()), int(injection.Injected))
	test.Equate(t, bp.IsArmed(off.SpriteRoutineEntry), false)
	test.Equate(t, eng.Tick(), uint64(guest.TicksPerFrame))
}

func TestTitleScreenFalsePositive(t *testing.T) {
	prt, bp, eng, inj := newInjector(t)
	off := guest.Standard()

	// no battle in progress
	prt.Poke(off.BattleActive, 0)

	inj.Arm(testCreature())
	prt.ScheduleHalt(100, off.SpriteRoutineEntry)
	eng.AdvanceOneFrame()

	// nothing written, nothing redirected, breakpoint still armed
	test.Equate(t, prt.Peek(off.OpponentData), 0)
	test.Equate(t, prt.Peek(off.OpponentNick), 0)
	test.Equate(t, bp.IsArmed(off.SpriteRoutineEntry), true)
	test.Equate(t, int(inj.State()), int(injection.CreatureReady))

	// the genuine hit still works
	prt.Poke(off.BattleActive, 2)
	prt.Poke(off.SpriteRoutineEntry+5, guest.ReturnOpcode)
	prt.ScheduleHalt(guest.TicksPerFrame+50, off.SpriteRoutineEntry)
	eng.AdvanceOneFrame()
	test.Equate(t, int(inj.State()), int(injection.Injected))
}

func TestFallbackReturn(t *testing.T) {
	prt, _, eng, inj := newInjector(t)
	off := guest.Standard()

	// battle active but no return instruction anywhere within the scan
	// window of the routine entry
	prt.Poke(off.BattleActive, 1)

	inj.Arm(testCreature())
	prt.ScheduleHalt(100, off.SpriteRoutineEntry)
	eng.AdvanceOneFrame()

	// injection completed via the documented fallback address
	test.Equate(t, int(inj.State()), int(injection.Injected))
	test.Equate(t, prt.Peek(off.OpponentSpecies), guest.PlaceholderSpecies)
}

func TestNoPendingSkipsWrite(t *testing.T) {
	prt, bp, eng, inj := newInjector(t)
	off := guest.Standard()

	prt.Poke(off.BattleActive, 1)
	prt.Poke(off.SpriteRoutineEntry+3, guest.ReturnOpcode)

	// arm then empty the pending slot through Disarm, then re-register the
	// breakpoint path by arming with no creature available. simulate the
	// double-injection guard by arming and manually clearing
	inj.Arm(testCreature())
	inj.Disarm()
	test.Equate(t, int(inj.State()), int(injection.NoCreature))
	test.Equate(t, bp.IsArmed(off.SpriteRoutineEntry), false)

	// a halt with nothing armed passes through the engine without touching
	// guest memory
	prt.ScheduleHalt(100, off.SpriteRoutineEntry)
	eng.AdvanceOneFrame()
	test.Equate(t, prt.Peek(off.OpponentData), 0)
}

func TestNilDependencies(t *testing.T) {
	prt := scripted.NewPort()
	bp, err := engine.NewBreakpoints(prt)
	test.DemandSuccess(t, err)

	_, err = injection.NewInjector(nil, guest.Standard(), bp, nil)
	test.ExpectedFailure(t, err)

	_, err = injection.NewInjector(prt, guest.Standard(), nil, nil)
	test.ExpectedFailure(t, err)
}
