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

// Package scripted provides a programmable implementation of the ports.Port
// interface. The guest it pretends to run does nothing at all except halt at
// the ticks it has been told to halt at, reporting the instruction pointer
// it has been told to report. Tests and the regression harness use it to
// simulate breakpoint hits and stalled guests without a real emulator core.
package scripted

import (
	"sort"
)

// Halt describes a single scripted early stop. When a RunUntil() call spans
// Tick, the run stops short at Tick and the instruction pointer reads as PC.
type Halt struct {
	Tick uint64
	PC   uint16
}

// Port is a programmable implementation of ports.Port.
type Port struct {
	mem  [0x10000]uint8
	pc   uint16
	tick uint64

	halts  []Halt
	breaks map[uint16]bool
}

// NewPort is the preferred method of initialisation for the scripted Port.
func NewPort() *Port {
	return &Port{
		breaks: make(map[uint16]bool),
	}
}

// ScheduleHalt adds a scripted early stop. Halts may be scheduled in any
// order; they are consumed in tick order.
func (prt *Port) ScheduleHalt(tick uint64, pc uint16) {
	prt.halts = append(prt.halts, Halt{Tick: tick, PC: pc})
	sort.Slice(prt.halts, func(i, j int) bool {
		return prt.halts[i].Tick < prt.halts[j].Tick
	})
}

// RunUntil implements the ports.Port interface.
func (prt *Port) RunUntil(target uint64) uint64 {
	if len(prt.halts) > 0 {
		h := prt.halts[0]
		if h.Tick >= prt.tick && h.Tick < target {
			prt.halts = prt.halts[1:]
			prt.tick = h.Tick
			prt.pc = h.PC
			return prt.tick
		}
	}

	prt.tick = target
	return prt.tick
}

// Peek implements the ports.Port interface.
func (prt *Port) Peek(addr uint16) uint8 {
	return prt.mem[addr]
}

// Poke implements the ports.Port interface.
func (prt *Port) Poke(addr uint16, data uint8) {
	prt.mem[addr] = data
}

// PC implements the ports.Port interface.
func (prt *Port) PC() uint16 {
	return prt.pc
}

// SetPC implements the ports.Port interface.
func (prt *Port) SetPC(addr uint16) {
	prt.pc = addr
}

// SetBreakAddress implements the ports.Port interface.
func (prt *Port) SetBreakAddress(addr uint16) {
	prt.breaks[addr] = true
}

// ClearAllBreakAddresses implements the ports.Port interface.
func (prt *Port) ClearAllBreakAddresses() {
	prt.breaks = make(map[uint16]bool)
}

// Tick returns the current scripted cycle counter. Not part of the
// ports.Port interface.
func (prt *Port) Tick() uint64 {
	return prt.tick
}

// IsBreakAddress indicates whether the address is currently in the break
// set. Not part of the ports.Port interface.
func (prt *Port) IsBreakAddress(addr uint16) bool {
	return prt.breaks[addr]
}

// NumBreakAddresses returns the size of the break set. Not part of the
// ports.Port interface.
func (prt *Port) NumBreakAddresses() int {
	return len(prt.breaks)
}
