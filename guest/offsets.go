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

package guest

// Number of emulated cycles that make up one rendered frame. All frame
// stepping is done in quanta of this value.
const TicksPerFrame = 70224

// Opcode the guest's processor interprets as a return-from-subroutine.
const ReturnOpcode = 0xc9

// How far beyond a routine's entry address we are prepared to scan for a
// return instruction before giving up and using the fallback address. The
// default for Offsets.ReturnScanWindow.
const ReturnScanWindow = 200

// Species id written in place of a real species. The guest's own type and
// stat lookups treat this species as plain/normal so it never interferes
// with the stats and types we write alongside it.
const PlaceholderSpecies = 0x4c

// Bit in the display-control register that enables display output. Guest
// video memory is only safely writable while this bit is clear.
const DisplayEnable = 0x80

// Offsets collects every guest address this project reads or writes. The
// zero value is not useful; use Standard() or build one from configuration.
//
// Addresses differ between guest program revisions so nothing outside this
// package hard-codes them.
type Offsets struct {
	// non-zero while a battle is in progress. the same cell distinguishes
	// wild and trainer encounters but we only care about zero/non-zero
	BattleActive uint16

	// outcome code of the most recent battle. meaningful only after
	// BattleActive returns to zero
	BattleResult uint16

	// the opposing combatant's data block (party member layout)
	OpponentData uint16

	// the opposing combatant's nickname cells
	OpponentNick uint16

	// the species id cell consulted by the guest's sprite and stat lookups
	OpponentSpecies uint16

	// entry address of the guest routine that loads the opposing
	// combatant's data and sprite. the injection breakpoint is armed here
	SpriteRoutineEntry uint16

	// address of a bare return instruction elsewhere in the guest program,
	// known to have no side effects. used when no return instruction can be
	// found within ReturnScanWindow of SpriteRoutineEntry
	FallbackReturn uint16

	// tile region in guest video memory holding the opposing combatant's
	// front sprite
	FrontSpriteTiles uint16

	// the display-control register. see DisplayEnable
	DisplayControl uint16

	// cell polled by the guest for held-button state
	Input uint16

	// how far beyond SpriteRoutineEntry to scan for a return instruction
	ReturnScanWindow uint16
}

// Standard returns the offsets for the guest program revision this project
// was developed against.
func Standard() Offsets {
	return Offsets{
		BattleActive:       0xd057,
		BattleResult:       0xcf0b,
		OpponentData:       0xcfe5,
		OpponentNick:       0xcfda,
		OpponentSpecies:    0xcfd8,
		SpriteRoutineEntry: 0x1665,
		FallbackReturn:     0x30fd,
		FrontSpriteTiles:   0x9000,
		DisplayControl:     0xff40,
		Input:              0xffb4,
		ReturnScanWindow:   ReturnScanWindow,
	}
}
