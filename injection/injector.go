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

package injection

import (
	"github.com/jetsetilly/chimeraboy/creature"
	"github.com/jetsetilly/chimeraboy/curated"
	"github.com/jetsetilly/chimeraboy/engine"
	"github.com/jetsetilly/chimeraboy/guest"
	"github.com/jetsetilly/chimeraboy/logger"
	"github.com/jetsetilly/chimeraboy/notifications"
	"github.com/jetsetilly/chimeraboy/ports"
)

// Injector substitutes a generated creature for the guest's own opposing
// combatant. It arms a one-shot breakpoint at the entry of the guest's
// sprite-loading routine; when the breakpoint fires the injector writes the
// creature's bytes over the routine's inputs and redirects the instruction
// pointer past the routine, whose work has already been done for it.
type Injector struct {
	port        ports.Port
	offsets     guest.Offsets
	breakpoints *engine.Breakpoints
	notify      notifications.Notify

	state   State
	pending *creature.Creature
}

// NewInjector is the preferred method of initialisation for the Injector
// type.
func NewInjector(port ports.Port, offsets guest.Offsets, breakpoints *engine.Breakpoints, notify notifications.Notify) (*Injector, error) {
	if port == nil {
		return nil, curated.Errorf("injection: port is nil")
	}
	if breakpoints == nil {
		return nil, curated.Errorf("injection: breakpoints is nil")
	}
	return &Injector{
		port:        port,
		offsets:     offsets,
		breakpoints: breakpoints,
		notify:      notify,
	}, nil
}

// State returns the injector's readiness.
func (inj *Injector) State() State {
	return inj.state
}

// Pending returns the creature waiting to be injected, or nil.
func (inj *Injector) Pending() *creature.Creature {
	return inj.pending
}

// Arm queues the creature for injection and arms the breakpoint at the
// sprite routine's entry. Arming while a previous creature is still pending
// replaces it.
func (inj *Injector) Arm(cr *creature.Creature) {
	inj.pending = cr
	inj.breakpoints.Register(inj.offsets.SpriteRoutineEntry, inj.hit)
	inj.setState(CreatureReady)
	logger.Logf(logger.Allow, "injection", "%s armed at %#04x", cr.Name, inj.offsets.SpriteRoutineEntry)
}

// Disarm drops any pending creature and returns to the NoCreature state.
func (inj *Injector) Disarm() {
	inj.pending = nil
	inj.breakpoints.Unregister(inj.offsets.SpriteRoutineEntry)
	inj.setState(NoCreature)
}

// hit is the breakpoint callback. Returning false leaves the breakpoint
// armed (the routine is reused outside of battle and those hits must pass
// through untouched).
func (inj *Injector) hit() bool {
	// the same routine runs on the title screen and in other non-battle
	// contexts. a hit outside of battle is a false positive: let the guest
	// continue unmodified
	if inj.port.Peek(inj.offsets.BattleActive) == 0 {
		logger.Log(logger.Allow, "injection", "sprite routine hit outside of battle. ignoring")
		return false
	}

	if inj.pending != nil {
		inj.write(*inj.pending)
	}

	// skip the guest's own loading routine. its inputs now describe the
	// injected creature (or the write was skipped entirely, in which case
	// a re-run would only repeat work already done)
	inj.redirect()

	inj.pending = nil
	inj.setState(Injected)
	return true
}

// write the creature's derived byte layout into guest memory.
func (inj *Injector) write(cr creature.Creature) {
	b := creature.NewPartyMember(cr, guest.PlaceholderSpecies).Encode()
	for i, v := range b {
		inj.port.Poke(inj.offsets.OpponentData+uint16(i), v)
	}

	nick := creature.EncodeName(cr.Name)
	for i, v := range nick {
		inj.port.Poke(inj.offsets.OpponentNick+uint16(i), v)
	}

	inj.port.Poke(inj.offsets.OpponentSpecies, guest.PlaceholderSpecies)

	inj.writeSprite(cr.Sprite)

	// read-back check on the first byte of the data block. a mismatch
	// means the guest's memory map is not what we think it is
	if got := inj.port.Peek(inj.offsets.OpponentData); got != b[0] {
		logger.Logf(logger.Allow, "injection", "read-back mismatch at %#04x (%#02x instead of %#02x)",
			inj.offsets.OpponentData, got, b[0])
	}

	logger.Logf(logger.Allow, "injection", "%s (lvl %d) written to guest", cr.Name, cr.Level)
}

// writeSprite copies the sprite bitmap to the front-sprite tile region.
// Guest video memory is only safely writable while display output is
// disabled, so the display-enable bit is cleared for the duration of the
// copy and restored afterwards.
func (inj *Injector) writeSprite(sprite [creature.SpriteBytes]uint8) {
	lcd := inj.port.Peek(inj.offsets.DisplayControl)
	inj.port.Poke(inj.offsets.DisplayControl, lcd&^uint8(guest.DisplayEnable))

	for i, v := range sprite {
		inj.port.Poke(inj.offsets.FrontSpriteTiles+uint16(i), v)
	}

	inj.port.Poke(inj.offsets.DisplayControl, lcd)
}

// redirect the instruction pointer to a return instruction so the guest's
// own loading routine is skipped. The routine is scanned forward for its
// return; if none appears within the scan window a known-safe return
// elsewhere in the guest program is used instead.
func (inj *Injector) redirect() {
	entry := inj.offsets.SpriteRoutineEntry
	for i := uint16(0); i < inj.offsets.ReturnScanWindow; i++ {
		if inj.port.Peek(entry+i) == guest.ReturnOpcode {
			inj.port.SetPC(entry + i)
			return
		}
	}

	logger.Logf(logger.Allow, "injection", "no return within %d bytes of %#04x. using fallback %#04x",
		inj.offsets.ReturnScanWindow, entry, inj.offsets.FallbackReturn)
	inj.port.SetPC(inj.offsets.FallbackReturn)
}

func (inj *Injector) setState(state State) {
	if inj.state == state {
		return
	}
	inj.state = state
	if inj.notify != nil {
		inj.notify.Notify(notifications.NotifyStateChanged, state)
	}
}
