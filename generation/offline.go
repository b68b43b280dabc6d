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

package generation

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/jetsetilly/chimeraboy/creature"
)

var syllables = []string{
	"ba", "cro", "dra", "em", "fen", "gla", "hex", "iv", "jol", "kru",
	"lum", "mor", "nix", "ox", "pyr", "qua", "rav", "sly", "tor", "umb",
	"vex", "wyr", "xen", "yel", "zep",
}

// guest type ids by hint. hints with no entry fall back to plain/normal
var typeIds = map[string]uint8{
	"normal":   0x00,
	"fighting": 0x01,
	"flying":   0x02,
	"poison":   0x03,
	"ground":   0x04,
	"rock":     0x05,
	"bug":      0x07,
	"ghost":    0x08,
	"fire":     0x14,
	"water":    0x15,
	"grass":    0x16,
	"electric": 0x17,
	"psychic":  0x18,
	"ice":      0x19,
	"dragon":   0x1a,
}

// Offline synthesises creatures locally and deterministically. It is the
// recovery path when the network provider fails, and a provider in its own
// right when no network provider is configured. The same seed always
// produces the same sequence of creatures.
type Offline struct {
	crit sync.Mutex
	rnd  *rand.Rand
}

// NewOffline is the preferred method of initialisation for the Offline
// type.
func NewOffline(seed int64) *Offline {
	return &Offline{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Generate implements the Provider interface. It never fails.
func (gen *Offline) Generate(_ context.Context, hint string) (creature.Creature, error) {
	gen.crit.Lock()
	defer gen.crit.Unlock()

	cr := creature.Creature{
		Name:    gen.name(),
		Species: hint,
		Level:   uint8(15 + gen.rnd.Intn(56)),
		Base: creature.Stats{
			HP:      gen.stat(),
			Attack:  gen.stat(),
			Defence: gen.stat(),
			Speed:   gen.stat(),
			Special: gen.stat(),
		},
	}

	for i := range cr.Moves {
		cr.Moves[i] = uint8(1 + gen.rnd.Intn(165))
	}

	typ, ok := typeIds[hint]
	if !ok {
		typ = typeIds["normal"]
	}
	cr.Types[0] = typ
	cr.Types[1] = typ

	// noise with left/right symmetry. a stand-in for a real
	// bitmap and recognisably deliberate on screen
	for tile := 0; tile < 49; tile++ {
		tx := tile % 7
		ty := tile / 7
		if tx > 3 {
			src := (6 - tx) + ty*7
			copy(cr.Sprite[tile*16:tile*16+16], cr.Sprite[src*16:src*16+16])
			continue
		}
		for i := 0; i < 16; i++ {
			cr.Sprite[tile*16+i] = uint8(gen.rnd.Intn(256))
		}
	}

	return cr, nil
}

func (gen *Offline) name() string {
	n := 2 + gen.rnd.Intn(2)
	s := strings.Builder{}
	for i := 0; i < n; i++ {
		s.WriteString(syllables[gen.rnd.Intn(len(syllables))])
	}
	name := s.String()
	if len(name) > creature.MaxNameLength {
		name = name[:creature.MaxNameLength]
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (gen *Offline) stat() uint8 {
	return uint8(40 + gen.rnd.Intn(141))
}
