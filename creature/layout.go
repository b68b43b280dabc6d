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

// PartyMemberSize is the exact size of the byte structure describing one
// combatant as the guest program expects it.
const PartyMemberSize = 44

// fixed offsets within the party member structure. every multi-byte field
// is big-endian
const (
	offSpecies    = 0
	offHP         = 1
	offLevelBox   = 3
	offStatus     = 4
	offTypes      = 5
	offCatchRate  = 7
	offMoves      = 8
	offTrainerID  = 12
	offExperience = 14
	offStatExp    = 17
	offIVs        = 27
	offPP         = 29
	offLevel      = 33
	offMaxHP      = 34
	offAttack     = 36
	offDefence    = 38
	offSpeed      = 40
	offSpecial    = 42
)

// PartyMember is the decoded form of the guest's party member structure.
type PartyMember struct {
	Species        uint8
	HP             uint16
	Status         uint8
	Types          [2]uint8
	CatchRate      uint8
	Moves          [4]uint8
	TrainerID      uint16
	Experience     uint32
	StatExperience [5]uint16
	IVs            uint16
	PP             [4]uint8
	Level          uint8
	MaxHP          uint16
	Attack         uint16
	Defence        uint16
	Speed          uint16
	Special        uint16
}

// NewPartyMember builds the party member structure for a creature. The
// species argument is the placeholder id the guest's own lookups will see,
// not anything derived from the creature itself.
//
// The creature's base stats are carried into the structure's stat block
// verbatim. Stat scaling is the generation provider's concern; this codec
// does not invent values that cannot be read back.
func NewPartyMember(cr Creature, species uint8) PartyMember {
	lvl := uint32(cr.Level)

	p := PartyMember{
		Species:    species,
		HP:         uint16(cr.Base.HP),
		Status:     0,
		Types:      cr.Types,
		CatchRate:  45,
		Moves:      cr.Moves,
		TrainerID:  0,
		Experience: lvl * lvl * lvl,
		Level:      cr.Level,
		MaxHP:      uint16(cr.Base.HP),
		Attack:     uint16(cr.Base.Attack),
		Defence:    uint16(cr.Base.Defence),
		Speed:      uint16(cr.Base.Speed),
		Special:    uint16(cr.Base.Special),
	}

	for i := range p.PP {
		if cr.Moves[i] != 0 {
			p.PP[i] = 35
		}
	}

	return p
}

// Encode the party member into its 44 byte guest representation.
func (p PartyMember) Encode() [PartyMemberSize]uint8 {
	var b [PartyMemberSize]uint8

	b[offSpecies] = p.Species
	putUint16(b[:], offHP, p.HP)
	b[offLevelBox] = p.Level
	b[offStatus] = p.Status
	b[offTypes] = p.Types[0]
	b[offTypes+1] = p.Types[1]
	b[offCatchRate] = p.CatchRate
	copy(b[offMoves:offMoves+4], p.Moves[:])
	putUint16(b[:], offTrainerID, p.TrainerID)
	b[offExperience] = uint8(p.Experience >> 16)
	b[offExperience+1] = uint8(p.Experience >> 8)
	b[offExperience+2] = uint8(p.Experience)
	for i, v := range p.StatExperience {
		putUint16(b[:], offStatExp+i*2, v)
	}
	putUint16(b[:], offIVs, p.IVs)
	copy(b[offPP:offPP+4], p.PP[:])
	b[offLevel] = p.Level
	putUint16(b[:], offMaxHP, p.MaxHP)
	putUint16(b[:], offAttack, p.Attack)
	putUint16(b[:], offDefence, p.Defence)
	putUint16(b[:], offSpeed, p.Speed)
	putUint16(b[:], offSpecial, p.Special)

	return b
}

// DecodePartyMember reads the 44 byte guest representation back into a
// PartyMember.
func DecodePartyMember(b [PartyMemberSize]uint8) PartyMember {
	p := PartyMember{
		Species:   b[offSpecies],
		HP:        getUint16(b[:], offHP),
		Status:    b[offStatus],
		Types:     [2]uint8{b[offTypes], b[offTypes+1]},
		CatchRate: b[offCatchRate],
		TrainerID: getUint16(b[:], offTrainerID),
		Experience: uint32(b[offExperience])<<16 |
			uint32(b[offExperience+1])<<8 |
			uint32(b[offExperience+2]),
		IVs:     getUint16(b[:], offIVs),
		Level:   b[offLevel],
		MaxHP:   getUint16(b[:], offMaxHP),
		Attack:  getUint16(b[:], offAttack),
		Defence: getUint16(b[:], offDefence),
		Speed:   getUint16(b[:], offSpeed),
		Special: getUint16(b[:], offSpecial),
	}

	copy(p.Moves[:], b[offMoves:offMoves+4])
	copy(p.PP[:], b[offPP:offPP+4])
	for i := range p.StatExperience {
		p.StatExperience[i] = getUint16(b[:], offStatExp+i*2)
	}

	return p
}

func putUint16(b []uint8, off int, v uint16) {
	b[off] = uint8(v >> 8)
	b[off+1] = uint8(v)
}

func getUint16(b []uint8, off int) uint16 {
	return uint16(b[off])<<8 | uint16(b[off+1])
}
