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

package host_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jetsetilly/chimeraboy/config"
	"github.com/jetsetilly/chimeraboy/creature"
	"github.com/jetsetilly/chimeraboy/generation"
	"github.com/jetsetilly/chimeraboy/guest"
	"github.com/jetsetilly/chimeraboy/host"
	"github.com/jetsetilly/chimeraboy/injection"
	"github.com/jetsetilly/chimeraboy/notifications"
	"github.com/jetsetilly/chimeraboy/ports/scripted"
	"github.com/jetsetilly/chimeraboy/test"
)

// recorder collects notifications. the pre-fetch queue notifies from its
// background goroutine so access is serialised
type recorder struct {
	crit     sync.Mutex
	notices  []notifications.Notice
	outcomes []string
}

func (rec *recorder) Notify(notice notifications.Notice, args ...interface{}) error {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	rec.notices = append(rec.notices, notice)
	if notice == notifications.NotifyBattleEnded && len(args) > 0 {
		rec.outcomes = append(rec.outcomes, fmt.Sprint(args[0]))
	}
	return nil
}

func (rec *recorder) seen(notice notifications.Notice) bool {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	for _, n := range rec.notices {
		if n == notice {
			return true
		}
	}
	return false
}

// indexOf returns the position of the first occurrence of the notice, or -1.
func (rec *recorder) indexOf(notice notifications.Notice) int {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	for i, n := range rec.notices {
		if n == notice {
			return i
		}
	}
	return -1
}

func advanceFrames(hst *host.Host, n int) {
	for i := 0; i < n; i++ {
		hst.AdvanceFrame()
	}
}

// advanceUntil steps frames until the condition holds or the deadline
// passes. used where the condition depends on the pre-fetch goroutine
func advanceUntil(hst *host.Host, cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		hst.AdvanceFrame()
		time.Sleep(time.Millisecond)
	}
	return cond()
}

func TestFullBattleCycle(t *testing.T) {
	prt := scripted.NewPort()
	cfg := config.Default()
	rec := &recorder{}
	off := guest.Standard()

	hst, err := host.NewHost(prt, cfg, rec)
	test.DemandSuccess(t, err)
	test.Equate(t, hst.State().String(), "NoCreature")

	// a battle begins. the monitor notices at the next poll
	prt.Poke(off.BattleActive, 2)
	advanceFrames(hst, cfg.PollCadence)
	test.DemandSuccess(t, rec.seen(notifications.NotifyBattleStarted))

	// the battle-start hook began a pre-fetch. the result is picked up at
	// a frame boundary and armed
	test.DemandSuccess(t, advanceUntil(hst, func() bool {
		return hst.State() == injection.CreatureReady
	}))
	test.DemandSuccess(t, rec.seen(notifications.NotifyCreatureReady))

	// the guest reaches the sprite-loading routine mid-battle
	returnAt := off.SpriteRoutineEntry + 3
	prt.Poke(returnAt, guest.ReturnOpcode)
	prt.ScheduleHalt(prt.Tick()+100, off.SpriteRoutineEntry)
	hst.AdvanceFrame()

	test.Equate(t, hst.State().String(), "Injected")
	test.Equate(t, prt.Peek(off.OpponentSpecies), guest.PlaceholderSpecies)

	// the offline generator is deterministic so the injected bytes can be
	// predicted from the seed and the first type hint
	want, err := generation.NewOffline(cfg.Generation.Seed).Generate(context.Background(), cfg.Generation.TypeHints[0])
	test.DemandSuccess(t, err)

	var raw [creature.PartyMemberSize]uint8
	for i := range raw {
		raw[i] = prt.Peek(off.OpponentData + uint16(i))
	}
	got := creature.DecodePartyMember(raw)
	test.Equate(t, got.Level, want.Level)
	test.Equate(t, got.MaxHP, uint16(want.Base.HP))

	cr := hst.Session().Current
	test.DemandSuccess(t, cr != nil)
	test.Equate(t, cr.Name, want.Name)

	// the battle ends in defeat
	prt.Poke(off.BattleActive, 0)
	prt.Poke(off.BattleResult, 1)
	advanceFrames(hst, cfg.PollCadence)

	test.DemandSuccess(t, rec.seen(notifications.NotifyBattleEnded))
	test.Equate(t, rec.outcomes[0], "lose")
	test.Equate(t, hst.Session().BattleCount, 1)

	// events arrive in battle order
	started := rec.indexOf(notifications.NotifyBattleStarted)
	ready := rec.indexOf(notifications.NotifyCreatureReady)
	ended := rec.indexOf(notifications.NotifyBattleEnded)
	test.ExpectedSuccess(t, started < ready)
	test.ExpectedSuccess(t, ready < ended)
}

// a pre-fetch that completes mid-battle must stay queued until the battle
// ends. arming it earlier would let a second run of the sprite routine
// inside the same battle consume the creature generated for the next one
func TestNoRearmDuringBattle(t *testing.T) {
	prt := scripted.NewPort()
	cfg := config.Default()
	rec := &recorder{}
	off := guest.Standard()

	hst, err := host.NewHost(prt, cfg, rec)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, hst.Prime(context.Background()))
	first := hst.Session().Current.Name

	// the battle begins and the primed creature is injected
	prt.Poke(off.BattleActive, 2)
	advanceFrames(hst, cfg.PollCadence)
	prt.Poke(off.SpriteRoutineEntry+3, guest.ReturnOpcode)
	prt.ScheduleHalt(prt.Tick()+100, off.SpriteRoutineEntry)
	hst.AdvanceFrame()
	test.Equate(t, hst.State().String(), "Injected")

	// give the battle-start pre-fetch ample time to land, then keep
	// stepping frames. the queued creature must not be armed while the
	// battle is still running
	time.Sleep(250 * time.Millisecond)
	advanceFrames(hst, cfg.PollCadence)
	test.Equate(t, hst.State().String(), "Injected")

	// the sprite routine runs again in the same battle. nothing is armed
	// so the hit passes through untouched
	speciesBefore := prt.Peek(off.OpponentSpecies)
	prt.ScheduleHalt(prt.Tick()+100, off.SpriteRoutineEntry)
	hst.AdvanceFrame()
	test.Equate(t, hst.State().String(), "Injected")
	test.Equate(t, prt.Peek(off.OpponentSpecies), speciesBefore)

	// only once the battle ends is the queued creature armed
	prt.Poke(off.BattleActive, 0)
	prt.Poke(off.BattleResult, 0)
	advanceFrames(hst, cfg.PollCadence)
	test.Equate(t, hst.State().String(), "CreatureReady")

	// the armed creatures are the first and second draws from the
	// deterministic generator, in order
	gen := generation.NewOffline(cfg.Generation.Seed)
	want1, err := gen.Generate(context.Background(), cfg.Generation.TypeHints[0])
	test.DemandSuccess(t, err)
	want2, err := gen.Generate(context.Background(), cfg.Generation.TypeHints[1])
	test.DemandSuccess(t, err)
	test.Equate(t, first, want1.Name)
	test.Equate(t, hst.Session().Current.Name, want2.Name)
}

func TestPrime(t *testing.T) {
	prt := scripted.NewPort()
	hst, err := host.NewHost(prt, config.Default(), nil)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, hst.Prime(context.Background()))
	test.Equate(t, hst.State().String(), "CreatureReady")
	test.DemandSuccess(t, hst.Session().Current != nil)
}

func TestBattleEndWithNothingReady(t *testing.T) {
	prt := scripted.NewPort()
	cfg := config.Default()
	rec := &recorder{}
	off := guest.Standard()

	hst, err := host.NewHost(prt, cfg, rec)
	test.DemandSuccess(t, err)

	// a battle starts and ends before any creature is ready and before any
	// pre-fetch can land
	prt.Poke(off.BattleActive, 1)
	advanceFrames(hst, cfg.PollCadence)
	prt.Poke(off.BattleActive, 0)
	prt.Poke(off.BattleResult, 0)

	// consume anything the battle-start pre-fetch produced so the battle-end
	// hook finds the queue empty
	test.DemandSuccess(t, advanceUntil(hst, func() bool {
		return hst.State() == injection.CreatureReady
	}))

	// the ready creature was armed between battles. ending the battle spends
	// it and, with the queue now empty, the session reports that it is
	// waiting on generation
	advanceFrames(hst, cfg.PollCadence)
	test.DemandSuccess(t, rec.seen(notifications.NotifyBattleEnded))
	test.ExpectedSuccess(t, rec.seen(notifications.NotifyGenerationWaiting))
}

func TestInputPassThrough(t *testing.T) {
	prt := scripted.NewPort()
	off := guest.Standard()

	hst, err := host.NewHost(prt, config.Default(), nil)
	test.DemandSuccess(t, err)

	hst.SetInput(0x41)
	test.Equate(t, prt.Peek(off.Input), 0)

	hst.AdvanceFrame()
	test.Equate(t, prt.Peek(off.Input), 0x41)
}

func TestOffsetOverrides(t *testing.T) {
	prt := scripted.NewPort()
	cfg := config.Default()
	cfg.Guest.BattleActive = 0x1770
	rec := &recorder{}

	hst, err := host.NewHost(prt, cfg, rec)
	test.DemandSuccess(t, err)

	// the standard battle-active cell is ignored
	prt.Poke(guest.Standard().BattleActive, 1)
	advanceFrames(hst, cfg.PollCadence)
	test.ExpectedFailure(t, rec.seen(notifications.NotifyBattleStarted))

	// the overridden cell is honoured
	prt.Poke(0x1770, 1)
	advanceFrames(hst, cfg.PollCadence)
	test.ExpectedSuccess(t, rec.seen(notifications.NotifyBattleStarted))
}

func TestNilPort(t *testing.T) {
	_, err := host.NewHost(nil, config.Default(), nil)
	test.ExpectedFailure(t, err)
}
