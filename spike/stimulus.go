// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"github.com/chewxy/math32"
)

// Stimulus is an external time-indexed current source.
// CurrentAt must be deterministic: the same t always gives the same value.
type Stimulus interface {
	// CurrentAt returns the current in uA/cm^2 at time t in ms
	CurrentAt(t float32) (float32, error)
}

// TimedArray is a piecewise constant stimulus: Values[i] holds on
// [i*Dt, (i+1)*Dt).  Lookups past the end are an error unless Hold is set,
// in which case the last value is held.  Negative times are always an error.
type TimedArray struct {
	Values []float32 `desc:"current values in uA/cm^2, one per window"`
	Dt     float32   `desc:"duration of each window in ms"`
	Hold   bool      `desc:"hold the last value past the end of Values instead of failing"`
}

// NewTimedArray returns a new TimedArray
func NewTimedArray(dt float32, vals ...float32) *TimedArray {
	return &TimedArray{Values: vals, Dt: dt}
}

// End returns the end of the domain in ms
func (ta *TimedArray) End() float32 {
	return float32(len(ta.Values)) * ta.Dt
}

func (ta *TimedArray) CurrentAt(t float32) (float32, error) {
	n := len(ta.Values)
	if n == 0 || ta.Dt <= 0 {
		return 0, &StimulusLookupError{Neuron: -1, Time: t, End: 0}
	}
	if t < 0 || math32.IsNaN(t) {
		return 0, &StimulusLookupError{Neuron: -1, Time: t, End: ta.End()}
	}
	// a time within rounding of a window start is in that window
	idx := int(math32.Floor(t/ta.Dt + 1.0e-5))
	if idx >= n {
		if !ta.Hold {
			return 0, &StimulusLookupError{Neuron: -1, Time: t, End: ta.End()}
		}
		idx = n - 1
	}
	return ta.Values[idx], nil
}

// Const is a constant stimulus defined for all t >= 0
type Const float32

func (c Const) CurrentAt(t float32) (float32, error) {
	if t < 0 {
		return 0, &StimulusLookupError{Neuron: -1, Time: t, End: math32.Inf(1)}
	}
	return float32(c), nil
}
