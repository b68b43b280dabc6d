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

package battle_test

import (
	"testing"

	"github.com/jetsetilly/chimeraboy/battle"
	"github.com/jetsetilly/chimeraboy/guest"
	"github.com/jetsetilly/chimeraboy/notifications"
	"github.com/jetsetilly/chimeraboy/ports/scripted"
	"github.com/jetsetilly/chimeraboy/test"
)

type recorder struct {
	notices []notifications.Notice
	args    [][]interface{}
}

func (rec *recorder) Notify(notice notifications.Notice, args ...interface{}) error {
	rec.notices = append(rec.notices, notice)
	rec.args = append(rec.args, args)
	return nil
}

func TestEdgeDetection(t *testing.T) {
	prt := scripted.NewPort()
	off := guest.Standard()
	sess := &battle.Session{}
	rec := &recorder{}

	started := 0
	ended := 0
	mon, err := battle.NewMonitor(prt, off, sess, rec, battle.Hooks{
		OnStarted: func() { started++ },
		OnEnded:   func(battle.Outcome) { ended++ },
	})
	test.DemandSuccess(t, err)

	// idle polls produce nothing
	mon.Poll()
	mon.Poll()
	test.Equate(t, len(rec.notices), 0)

	// battle starts
	prt.Poke(off.BattleActive, 2)
	mon.Poll()
	test.Equate(t, started, 1)
	test.Equate(t, sess.Active(), true)

	// repeated polls while active are idempotent
	mon.Poll()
	mon.Poll()
	test.Equate(t, started, 1)

	// battle ends with outcome code 1
	prt.Poke(off.BattleActive, 0)
	prt.Poke(off.BattleResult, 1)
	mon.Poll()
	test.Equate(t, ended, 1)
	test.Equate(t, sess.BattleCount, 1)
	test.Equate(t, string(sess.LastOutcome), "lose")

	// event order: started then ended
	test.Equate(t, len(rec.notices), 2)
	test.Equate(t, string(rec.notices[0]), string(notifications.NotifyBattleStarted))
	test.Equate(t, string(rec.notices[1]), string(notifications.NotifyBattleEnded))

	// the ended notification carries the outcome
	test.Equate(t, len(rec.args[1]), 1)
	test.Equate(t, string(rec.args[1][0].(battle.Outcome)), "lose")
}

func TestDecodeOutcome(t *testing.T) {
	test.Equate(t, string(battle.DecodeOutcome(0)), "win")
	test.Equate(t, string(battle.DecodeOutcome(1)), "lose")
	test.Equate(t, string(battle.DecodeOutcome(2)), "draw")
	test.Equate(t, string(battle.DecodeOutcome(0x80)), "fled")
	test.Equate(t, string(battle.DecodeOutcome(0x81)), "fled")
}

func TestNilPort(t *testing.T) {
	_, err := battle.NewMonitor(nil, guest.Standard(), &battle.Session{}, nil, battle.Hooks{})
	test.ExpectedFailure(t, err)
}
