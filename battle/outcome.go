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

// Outcome of a completed battle, as decoded from the guest's battle-result
// cell.
type Outcome string

// List of battle outcomes.
const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeDraw Outcome = "draw"
	OutcomeFled Outcome = "fled"
)

// DecodeOutcome maps the guest's battle-result code to an Outcome. The high
// bit marks an escape from battle; the low bits are the win/lose/draw code.
func DecodeOutcome(code uint8) Outcome {
	if code&0x80 == 0x80 {
		return OutcomeFled
	}
	switch code {
	case 0:
		return OutcomeWin
	case 1:
		return OutcomeLose
	case 2:
		return OutcomeDraw
	}
	return OutcomeFled
}
