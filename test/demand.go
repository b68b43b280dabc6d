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

package test

import "testing"

// DemandSuccess is the same as ExpectedSuccess except that a failure of the
// expectation will cause the test to fail immediately.
func DemandSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if !ExpectedSuccess(t, v) {
		t.FailNow()
	}
}

// DemandFailure is the same as ExpectedFailure except that a failure of the
// expectation will cause the test to fail immediately.
func DemandFailure(t *testing.T, v interface{}) {
	t.Helper()
	if !ExpectedFailure(t, v) {
		t.FailNow()
	}
}
