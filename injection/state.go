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

// State indicates the injector's readiness.
type State int

// List of injector states. The cycle is NoCreature -> CreatureReady ->
// Injected and back to CreatureReady once the next creature arrives.
const (
	// nothing to inject and nothing armed
	NoCreature State = iota

	// a creature is pending and the breakpoint is armed
	CreatureReady

	// the pending creature has been written into the guest. the
	// breakpoint is disarmed until the next Arm()
	Injected
)

func (s State) String() string {
	switch s {
	case NoCreature:
		return "NoCreature"
	case CreatureReady:
		return "CreatureReady"
	case Injected:
		return "Injected"
	}
	return ""
}
