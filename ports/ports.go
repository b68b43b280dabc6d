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

package ports

// Port is the connection to the emulator core. The core itself is a black
// box: the only assumptions made of it are the ones expressed by this
// interface - bounded execution, byte-level memory access, an instruction
// pointer that can be read and written, and a coarse break-address facility.
//
// The break-address facility is deliberately coarse. Many cores only support
// adding one more address to the break set and clearing the set wholesale.
// There is no per-address removal. Higher layers must rebuild the full set
// when an individual address is to be forgotten.
//
// All functions are called synchronously from the frame-stepping goroutine.
// Implementations do not need to be safe for concurrent use.
type Port interface {
	// RunUntil executes the guest until the core's cycle counter reaches the
	// target tick, or until a break address is hit, whichever comes first.
	// It returns the tick actually reached, which is never greater than the
	// target.
	RunUntil(target uint64) uint64

	// Peek returns the byte at the address in the guest address space.
	Peek(addr uint16) uint8

	// Poke sets the byte at the address in the guest address space.
	Poke(addr uint16, data uint8)

	// PC returns the guest's current instruction pointer.
	PC() uint16

	// SetPC forces the guest's instruction pointer.
	SetPC(addr uint16)

	// SetBreakAddress adds one address to the core's break set.
	SetBreakAddress(addr uint16)

	// ClearAllBreakAddresses empties the core's break set.
	ClearAllBreakAddresses()
}
