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

// Package battle watches the guest for battle activity. The guest is not
// modified in any way by this package: the Monitor only reads a small set
// of memory cells and turns level changes into events and hook calls.
package battle
