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

// Package generation produces the creatures that get injected into the
// guest. Generation is slow (the interesting provider is on the other side
// of a network round-trip) so the package is built around overlap: the
// Queue starts generating the next creature while the current battle plays
// out, and the rest of the project only ever takes ready creatures from
// the queue head.
//
// Two providers are included. HTTPProvider talks to a network synthesis
// service and validates everything it returns against a JSON schema before
// trusting it. Offline is a deterministic local generator used when the
// network provider fails or is not configured.
//
// The generation task never touches guest memory. It produces data objects
// only; writing them into the guest is the injection package's business,
// and happens synchronously on the frame-stepping path.
package generation
