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

// Package engine owns the tick-accurate execution loop. The Engine advances
// the emulator core one frame at a time; the Breakpoints type maps guest
// addresses to the one-shot callbacks that run when the core stops short at
// one of them. The two cooperate closely and deliberately live in the same
// package: the engine is the only caller of a breakpoint's fire path.
package engine
