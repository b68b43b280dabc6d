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

// Package injection overwrites the guest's opposing combatant at the exact
// moment the guest is about to read it. The timing is everything: the write
// happens inside a one-shot breakpoint callback at the entry of the guest's
// own loading routine, after which the routine is skipped because its work
// has already been done.
//
// The injector is an explicit three-state machine. NoCreature means nothing
// is armed. CreatureReady means a creature is pending and the breakpoint is
// armed. Injected means the write has happened and the breakpoint is
// disarmed until the next cycle. The guest reusing the same routine outside
// of battle is the complication: those hits are detected by reading the
// battle-active cell and are passed through with the breakpoint left armed.
package injection
