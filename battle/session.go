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

package battle

import (
	"github.com/jetsetilly/chimeraboy/creature"
)

// Session is the running record of a play session. It is mutated only by
// the Monitor and by the orchestrator that owns both; its lifetime spans
// the whole run.
type Session struct {
	// the creature most recently armed or injected, if any
	Current *creature.Creature

	// number of completed battles
	BattleCount int

	// outcome of the most recently completed battle
	LastOutcome Outcome

	// last observed value of the battle-active cell, reduced to a flag
	lastActive bool
}

// Active indicates whether a battle was in progress at the last poll.
func (sess *Session) Active() bool {
	return sess.lastActive
}
