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

// the guest does not use ASCII. the character set is sparse: letters and
// digits live in contiguous runs and everything else we might want has its
// own code point
const (
	textTerminator = 0x50
	textSpace      = 0x7f
	textUpperA     = 0x80
	textLowerA     = 0xa0
	textZero       = 0xf6
	textHyphen     = 0xe3
	textPeriod     = 0xe8
)

// NameCells is the number of guest memory cells occupied by an encoded
// name: MaxNameLength characters plus the terminator.
const NameCells = MaxNameLength + 1

// EncodeName converts a name to the guest's character set. Characters
// without a guest representation encode as a space. Names longer than
// MaxNameLength are truncated. Unused cells beyond the terminator are
// filled with further terminators, which is what the guest's own name
// handling does.
func EncodeName(name string) [NameCells]uint8 {
	var b [NameCells]uint8
	for i := range b {
		b[i] = textTerminator
	}

	n := 0
	for _, r := range name {
		if n >= MaxNameLength {
			break
		}
		b[n] = encodeRune(r)
		n++
	}

	return b
}

// DecodeName converts an encoded name back to a string. Decoding stops at
// the first terminator.
func DecodeName(b [NameCells]uint8) string {
	s := make([]rune, 0, MaxNameLength)
	for _, c := range b {
		if c == textTerminator {
			break
		}
		s = append(s, decodeByte(c))
	}
	return string(s)
}

func encodeRune(r rune) uint8 {
	switch {
	case r >= 'A' && r <= 'Z':
		return textUpperA + uint8(r-'A')
	case r >= 'a' && r <= 'z':
		return textLowerA + uint8(r-'a')
	case r >= '0' && r <= '9':
		return textZero + uint8(r-'0')
	case r == '-':
		return textHyphen
	case r == '.':
		return textPeriod
	}
	return textSpace
}

func decodeByte(c uint8) rune {
	switch {
	case c >= textUpperA && c < textUpperA+26:
		return rune('A' + c - textUpperA)
	case c >= textLowerA && c < textLowerA+26:
		return rune('a' + c - textLowerA)
	case c >= textZero && c <= textZero+9:
		return rune('0' + c - textZero)
	case c == textHyphen:
		return '-'
	case c == textPeriod:
		return '.'
	}
	return ' '
}
