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

package notifications

// Notice describes events that are of interest to an observer of the
// session. A UI or a test harness can use these to present additional
// information to the user
type Notice string

// List of defined notifications.
const (
	// the battle-active cell has transitioned from zero to non-zero
	NotifyBattleStarted Notice = "NotifyBattleStarted"

	// the battle-active cell has transitioned to zero. the single argument
	// is the battle outcome
	NotifyBattleEnded Notice = "NotifyBattleEnded"

	// the injection readiness state has changed. the single argument is the
	// new state
	NotifyStateChanged Notice = "NotifyStateChanged"

	// a creature has been taken from the pre-fetch queue and armed for
	// injection. the single argument is the creature record
	NotifyCreatureReady Notice = "NotifyCreatureReady"

	// the network generation provider failed and the offline generator was
	// substituted. the single argument is the provider error. never fatal
	NotifyGenerationFailed Notice = "NotifyGenerationFailed"

	// a battle has ended but the pre-fetch queue has nothing ready yet. the
	// session remains in this condition until generation completes
	NotifyGenerationWaiting Notice = "NotifyGenerationWaiting"
)

// Notify is used for communication from the session to whatever is
// observing it. Implementations must not block: notification happens
// synchronously from the frame-stepping path.
type Notify interface {
	Notify(notice Notice, args ...interface{}) error
}

// Group is a collection of Notify implementations that are notified in
// order. A notification error from one member does not prevent the others
// from being notified. The last error encountered is returned.
type Group []Notify

// Notify implements the Notify interface.
func (grp Group) Notify(notice Notice, args ...interface{}) error {
	var err error
	for _, n := range grp {
		if e := n.Notify(notice, args...); e != nil {
			err = e
		}
	}
	return err
}
