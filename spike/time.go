// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

// spike.Time contains the timing state and parameters of the integration
type Time struct {
	Time  float32 `desc:"accumulated simulation time in ms, as of the end of the last completed step"`
	Cycle int     `desc:"number of integration steps completed since the last Reset"`
	Dt    float32 `def:"0.1,0.01" min:"0" desc:"integration step size in ms"`
}

// NewTime returns a new Time struct with the given step size
func NewTime(dt float32) *Time {
	tm := &Time{Dt: dt}
	return tm
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Cycle = 0
}

// CycleInc increments at the cycle level.  Time is computed from the
// cycle count rather than accumulated, so it does not drift.
func (tm *Time) CycleInc() {
	tm.Cycle++
	tm.Time = tm.TimeAt(tm.Cycle)
}

// TimeAt returns the time in ms at the end of given cycle
func (tm *Time) TimeAt(cyc int) float32 {
	return float32(cyc) * tm.Dt
}
