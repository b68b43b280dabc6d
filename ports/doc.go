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

// Package ports defines the boundary between this project and the emulator
// core that actually runs the guest program. Everything above this package
// treats the core as opaque: it can be asked to run for a bounded number of
// ticks, to read and write bytes in the guest address space, and to report
// or force the instruction pointer.
//
// Components that need the core take a Port at construction time and return
// an error if given nil. There is no "not yet initialised" state to guard
// against anywhere else in the project.
//
// The scripted sub-package provides a programmable Port implementation for
// tests and for the regression harness.
package ports
