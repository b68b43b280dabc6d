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

package creature

import (
	"github.com/jetsetilly/chimeraboy/curated"
)

// MaxNameLength is the longest name the guest's nickname cells can hold.
const MaxNameLength = 10

// SpriteBytes is the size of a front sprite bitmap: a 7x7 grid of 8x8 pixel
// tiles at 2 bits per pixel.
const SpriteBytes = 784

// Stats is the set of base stats carried by a creature. Each value is in
// the range 1 to 255.
type Stats struct {
	HP      uint8
	Attack  uint8
	Defence uint8
	Speed   uint8
	Special uint8
}

// Creature is a generated combatant, produced once by a generation provider
// and immutable thereafter. Ownership passes from the pre-fetch queue to
// whichever component holds it; nothing mutates it after creation.
type Creature struct {
	// display name, at most MaxNameLength characters
	Name string

	// free-form tag describing what was asked of the generation provider
	Species string

	// 1 to 100
	Level uint8

	Base  Stats
	Moves [4]uint8

	// primary and secondary type ids. a mono-typed creature repeats the
	// primary type in the second slot, as the guest expects
	Types [2]uint8

	Sprite [SpriteBytes]uint8
}

// Validate checks the creature against the ranges the guest can represent.
func (cr Creature) Validate() error {
	if len(cr.Name) == 0 || len(cr.Name) > MaxNameLength {
		return curated.Errorf("creature: name %q is not between 1 and %d characters", cr.Name, MaxNameLength)
	}
	if cr.Level < 1 || cr.Level > 100 {
		return curated.Errorf("creature: level %d is not between 1 and 100", cr.Level)
	}
	for _, v := range []uint8{cr.Base.HP, cr.Base.Attack, cr.Base.Defence, cr.Base.Speed, cr.Base.Special} {
		if v == 0 {
			return curated.Errorf("creature: base stats must be between 1 and 255")
		}
	}
	return nil
}
