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

// Package host assembles the session. It owns the emulator port, the frame
// engine, the battle monitor, the pre-fetch queue and the injector, and
// runs the per-frame orchestration that ties them together.
//
// Everything in this package runs on the caller's goroutine. The only
// concurrency in a session is inside the pre-fetch queue, whose background
// task never touches the port.
package host

import (
	"context"

	"github.com/jetsetilly/chimeraboy/battle"
	"github.com/jetsetilly/chimeraboy/config"
	"github.com/jetsetilly/chimeraboy/creature"
	"github.com/jetsetilly/chimeraboy/curated"
	"github.com/jetsetilly/chimeraboy/engine"
	"github.com/jetsetilly/chimeraboy/generation"
	"github.com/jetsetilly/chimeraboy/guest"
	"github.com/jetsetilly/chimeraboy/injection"
	"github.com/jetsetilly/chimeraboy/logger"
	"github.com/jetsetilly/chimeraboy/notifications"
	"github.com/jetsetilly/chimeraboy/ports"
)

// Host is a running session.
type Host struct {
	port    ports.Port
	cfg     config.Config
	offsets guest.Offsets

	breakpoints *engine.Breakpoints
	engine      *engine.Engine
	session     *battle.Session
	monitor     *battle.Monitor
	queue       *generation.Queue
	injector    *injection.Injector
	notify      notifications.Notify

	// frames advanced since session start
	frame uint64

	// held-button state to present to the guest at the next frame boundary
	input        uint8
	inputPending bool

	// index into the configured type hints, advanced by each generation
	// request
	hintIdx int

	// see assertFrameGoroutine()
	frameGoroutine uint64
}

// NewHost is the preferred method of initialisation for the Host type. The
// notify argument may be nil.
func NewHost(port ports.Port, cfg config.Config, notify notifications.Notify) (*Host, error) {
	if port == nil {
		return nil, curated.Errorf("host: port is nil")
	}
	if cfg.PollCadence < 1 {
		cfg.PollCadence = config.Default().PollCadence
	}

	hst := &Host{
		port:    port,
		cfg:     cfg,
		offsets: resolveOffsets(cfg.Guest),
		session: &battle.Session{},
		notify:  notify,
	}

	var err error

	hst.breakpoints, err = engine.NewBreakpoints(port)
	if err != nil {
		return nil, curated.Errorf("host: %v", err)
	}

	hst.engine, err = engine.NewEngine(port, hst.breakpoints)
	if err != nil {
		return nil, curated.Errorf("host: %v", err)
	}

	var primary generation.Provider
	if cfg.Generation.ProviderURL != "" {
		primary, err = generation.NewHTTPProvider(cfg.Generation)
		if err != nil {
			return nil, curated.Errorf("host: %v", err)
		}
	} else {
		logger.Log(logger.Allow, "host", "no generation provider configured. using offline generator only")
	}

	hst.queue, err = generation.NewQueue(primary, generation.NewOffline(cfg.Generation.Seed), notify)
	if err != nil {
		return nil, curated.Errorf("host: %v", err)
	}

	hst.injector, err = injection.NewInjector(port, hst.offsets, hst.breakpoints, notify)
	if err != nil {
		return nil, curated.Errorf("host: %v", err)
	}

	hst.monitor, err = battle.NewMonitor(port, hst.offsets, hst.session, notify, battle.Hooks{
		OnStarted: hst.battleStarted,
		OnEnded:   hst.battleEnded,
	})
	if err != nil {
		return nil, curated.Errorf("host: %v", err)
	}

	return hst, nil
}

// resolveOffsets layers any configured overrides over the standard guest
// address table.
func resolveOffsets(ov config.GuestOverrides) guest.Offsets {
	off := guest.Standard()
	if ov.BattleActive != 0 {
		off.BattleActive = ov.BattleActive
	}
	if ov.BattleResult != 0 {
		off.BattleResult = ov.BattleResult
	}
	if ov.SpriteRoutineEntry != 0 {
		off.SpriteRoutineEntry = ov.SpriteRoutineEntry
	}
	if ov.FallbackReturn != 0 {
		off.FallbackReturn = ov.FallbackReturn
	}
	if ov.ReturnScanWindow != 0 {
		off.ReturnScanWindow = ov.ReturnScanWindow
	}
	return off
}

// Prime generates the first creature and arms it, blocking until generation
// completes or the context expires. Call once before the frame loop so the
// first battle has a creature waiting.
func (hst *Host) Prime(ctx context.Context) error {
	cr, err := hst.queue.Next(ctx, hst.nextHint())
	if err != nil {
		return curated.Errorf("host: %v", err)
	}
	hst.arm(cr)
	return nil
}

// AdvanceFrame advances the guest by one frame and runs the session logic
// that hangs off the frame boundary.
func (hst *Host) AdvanceFrame() {
	hst.assertFrameGoroutine()

	if hst.inputPending {
		hst.port.Poke(hst.offsets.Input, hst.input)
		hst.inputPending = false
	}

	hst.engine.AdvanceOneFrame()
	hst.frame++

	if hst.frame%uint64(hst.cfg.PollCadence) == 0 {
		hst.monitor.Poll()
	}

	// a finished pre-fetch is picked up at the frame boundary, never
	// mid-frame. pickup waits for NoCreature: while a creature is Injected
	// the battle it was injected into is still running and the sprite
	// routine can fire again within it, so arming the next creature now
	// would spend it on the wrong battle
	if hst.injector.State() == injection.NoCreature {
		if cr, ok := hst.queue.NextIfReady(); ok {
			hst.arm(cr)
		}
	}
}

// SetInput records held-button state to be presented to the guest at the
// next frame boundary. The guest's own input handling is otherwise
// untouched: the session drives battles, the player (or a script) drives
// everything else.
func (hst *Host) SetInput(buttons uint8) {
	hst.input = buttons
	hst.inputPending = true
}

// Frame returns the number of frames advanced since session start.
func (hst *Host) Frame() uint64 {
	return hst.frame
}

// Session returns the running tally of battles.
func (hst *Host) Session() *battle.Session {
	return hst.session
}

// State returns the injector's readiness.
func (hst *Host) State() injection.State {
	return hst.injector.State()
}

func (hst *Host) arm(cr creature.Creature) {
	hst.session.Current = &cr
	hst.injector.Arm(&cr)
	if hst.notify != nil {
		hst.notify.Notify(notifications.NotifyCreatureReady, &cr)
	}
}

// battleStarted is the monitor hook for a battle beginning. The pending
// creature is already in place; the useful work is to start generating the
// one after it while the battle plays out.
func (hst *Host) battleStarted() {
	hst.queue.Prefetch(hst.nextHint())
}

// battleEnded is the monitor hook for a battle ending.
func (hst *Host) battleEnded(outcome battle.Outcome) {
	// the injected creature is spent. if the breakpoint never fired the
	// pending creature is spent too: it was generated for this battle
	hst.injector.Disarm()

	if _, armed := hst.tryArm(); !armed {
		// the pre-fetch has not landed yet. the next battle may start
		// before a creature is ready, in which case the guest's own
		// opponent appears unmodified
		if hst.notify != nil {
			hst.notify.Notify(notifications.NotifyGenerationWaiting)
		}
		hst.queue.Prefetch(hst.nextHint())
	}
}

func (hst *Host) tryArm() (creature.Creature, bool) {
	cr, ok := hst.queue.NextIfReady()
	if !ok {
		return creature.Creature{}, false
	}
	hst.arm(cr)
	return cr, true
}

func (hst *Host) nextHint() string {
	hints := hst.cfg.Generation.TypeHints
	if len(hints) == 0 {
		return ""
	}
	h := hints[hst.hintIdx%len(hints)]
	hst.hintIdx++
	return h
}
