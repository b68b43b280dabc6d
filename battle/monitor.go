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
	"github.com/jetsetilly/chimeraboy/curated"
	"github.com/jetsetilly/chimeraboy/guest"
	"github.com/jetsetilly/chimeraboy/logger"
	"github.com/jetsetilly/chimeraboy/notifications"
	"github.com/jetsetilly/chimeraboy/ports"
)

// Hooks are the orchestrator's reactions to battle transitions. Either
// field may be nil.
type Hooks struct {
	// a battle has just started. a good moment to begin pre-fetching the
	// next creature, overlapping generation latency with battle time
	OnStarted func()

	// a battle has just ended with the given outcome. a good moment to
	// prepare the next creature for injection
	OnEnded func(Outcome)
}

// Monitor edge-detects battle start and end by polling the battle-active
// cell. Poll() is expected to be called at a cadence slower than per-frame;
// the cadence is the caller's affair.
type Monitor struct {
	port    ports.Port
	offsets guest.Offsets
	session *Session
	notify  notifications.Notify
	hooks   Hooks
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type.
func NewMonitor(port ports.Port, offsets guest.Offsets, session *Session, notify notifications.Notify, hooks Hooks) (*Monitor, error) {
	if port == nil {
		return nil, curated.Errorf("battle: port is nil")
	}
	if session == nil {
		return nil, curated.Errorf("battle: session is nil")
	}
	return &Monitor{
		port:    port,
		offsets: offsets,
		session: session,
		notify:  notify,
		hooks:   hooks,
	}, nil
}

// Poll reads the battle-active cell and emits events on transitions.
// Repeated polls with no change in the cell produce no events.
func (mon *Monitor) Poll() {
	active := mon.port.Peek(mon.offsets.BattleActive) != 0

	if active == mon.session.lastActive {
		return
	}
	mon.session.lastActive = active

	if active {
		logger.Log(logger.Allow, "battle", "battle started")
		if mon.notify != nil {
			mon.notify.Notify(notifications.NotifyBattleStarted)
		}
		if mon.hooks.OnStarted != nil {
			mon.hooks.OnStarted()
		}
		return
	}

	outcome := DecodeOutcome(mon.port.Peek(mon.offsets.BattleResult))
	mon.session.BattleCount++
	mon.session.LastOutcome = outcome

	logger.Logf(logger.Allow, "battle", "battle ended (%s). %d battles this session", outcome, mon.session.BattleCount)
	if mon.notify != nil {
		mon.notify.Notify(notifications.NotifyBattleEnded, outcome)
	}
	if mon.hooks.OnEnded != nil {
		mon.hooks.OnEnded(outcome)
	}
}
