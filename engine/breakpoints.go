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

package engine

import (
	"github.com/jetsetilly/chimeraboy/curated"
	"github.com/jetsetilly/chimeraboy/ports"
)

// Callback is invoked when an armed breakpoint is hit. Returning true
// accepts the hit, disarming the breakpoint per the one-shot contract.
// Returning false indicates the hit was spurious and the breakpoint should
// remain armed for the next genuine hit.
//
// Callbacks run synchronously from the frame-stepping path and are free to
// read and write guest memory and to move the instruction pointer.
type Callback func() bool

// breakpoints are one-shot. an entry fires at most once before requiring
// re-registration
type entry struct {
	addr     uint16
	callback Callback
	armed    bool
}

// Breakpoints maps guest addresses to one-shot callbacks and keeps the
// core's break set consistent with the registered entries.
type Breakpoints struct {
	port    ports.Port
	entries map[uint16]*entry
}

// NewBreakpoints is the preferred method of initialisation for the
// Breakpoints type.
func NewBreakpoints(port ports.Port) (*Breakpoints, error) {
	if port == nil {
		return nil, curated.Errorf("breakpoints: port is nil")
	}
	return &Breakpoints{
		port:    port,
		entries: make(map[uint16]*entry),
	}, nil
}

// Register installs an armed one-shot entry at the address, replacing any
// entry already there, and flags the address with the core so that
// execution stops early when the instruction pointer reaches it.
func (bp *Breakpoints) Register(addr uint16, callback Callback) {
	bp.entries[addr] = &entry{
		addr:     addr,
		callback: callback,
		armed:    true,
	}
	bp.port.SetBreakAddress(addr)
}

// Unregister removes the entry at the address. The core only supports
// growing the break set or clearing it wholesale, so the full set is
// rebuilt from the remaining entries.
func (bp *Breakpoints) Unregister(addr uint16) {
	delete(bp.entries, addr)
	bp.rebuild()
}

// Clear removes every entry and empties the core's break set.
func (bp *Breakpoints) Clear() {
	bp.entries = make(map[uint16]*entry)
	bp.port.ClearAllBreakAddresses()
}

// IsArmed indicates whether an armed entry exists at the address.
func (bp *Breakpoints) IsArmed(addr uint16) bool {
	e, ok := bp.entries[addr]
	return ok && e.armed
}

// fireOnce invokes the callback for the address and, if the callback
// accepts the hit, removes the entry. The one-shot contract holds even if
// the core would otherwise halt on the same address again in the same
// frame. Returns true if a callback was invoked.
func (bp *Breakpoints) fireOnce(addr uint16) bool {
	e, ok := bp.entries[addr]
	if !ok || !e.armed {
		return false
	}

	if e.callback() {
		e.armed = false
		delete(bp.entries, addr)
		bp.rebuild()
	}

	return true
}

func (bp *Breakpoints) rebuild() {
	bp.port.ClearAllBreakAddresses()
	for addr := range bp.entries {
		bp.port.SetBreakAddress(addr)
	}
}
