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

package engine

import (
	"github.com/jetsetilly/chimeraboy/curated"
	"github.com/jetsetilly/chimeraboy/guest"
	"github.com/jetsetilly/chimeraboy/logger"
	"github.com/jetsetilly/chimeraboy/ports"
)

// Engine advances the emulator core in whole-frame quanta and dispatches
// breakpoint hits encountered along the way. It is the sole owner of the
// tick counter: ticks only ever advance through AdvanceOneFrame().
type Engine struct {
	port        ports.Port
	breakpoints *Breakpoints

	// emulated cycles since session start. monotone
	tick uint64
}

// NewEngine is the preferred method of initialisation for the Engine type.
func NewEngine(port ports.Port, breakpoints *Breakpoints) (*Engine, error) {
	if port == nil {
		return nil, curated.Errorf("engine: port is nil")
	}
	if breakpoints == nil {
		return nil, curated.Errorf("engine: breakpoints is nil")
	}
	return &Engine{
		port:        port,
		breakpoints: breakpoints,
	}, nil
}

// Tick returns the number of emulated cycles since session start.
func (eng *Engine) Tick() uint64 {
	return eng.tick
}

// AdvanceOneFrame steps the core toward the current tick plus one frame's
// worth of ticks. If the core stops short of the target the instruction
// pointer is checked against the armed breakpoints:
//
//   - a matching entry fires synchronously. if the callback moved the
//     instruction pointer the loop resumes toward the same frame target;
//     if it did not, the halt is taken to be intentional and the frame
//     ends there
//
//   - no matching entry and no tick progress since the previous iteration
//     means the guest has stalled. the frame ends early with a logged
//     warning and is retried on the next call
//
// AdvanceOneFrame never fails and never leaves the tick counter beyond the
// frame target. every iteration of the loop either makes tick progress or
// returns, so the call terminates within a bounded number of iterations.
func (eng *Engine) AdvanceOneFrame() {
	target := eng.tick + guest.TicksPerFrame
	prev := eng.tick

	for {
		actual := eng.port.RunUntil(target)
		if actual > target {
			// a misbehaving core. clamp rather than propagate
			actual = target
		}
		eng.tick = actual

		if actual == target {
			return
		}

		pc := eng.port.PC()
		if eng.breakpoints.IsArmed(pc) {
			eng.breakpoints.fireOnce(pc)
			if eng.port.PC() == pc {
				// the callback left the instruction pointer alone. an
				// intentional halt for this frame
				return
			}
			prev = actual
			continue
		}

		if actual == prev {
			logger.Logf(logger.Allow, "engine", "guest stalled at %#04x (tick %d). ending frame early", pc, actual)
			return
		}
		prev = actual
	}
}
