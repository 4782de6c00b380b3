// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"errors"
	"fmt"
)

var (
	// ErrRunFailed is returned by Run after a run has failed: the network
	// state is no longer valid and must be rebuilt.
	ErrRunFailed = errors.New("spike: integrator is in the Failed state")

	// ErrRunning is returned by Run while another Run is in progress
	ErrRunning = errors.New("spike: integrator is already running")
)

// InvalidTopologyError reports a connectivity request that is not allowed:
// a self-synapse, an out of range neuron index, a connectivity matrix of the
// wrong shape, with a nonzero diagonal, or with an invalid weight.
// Pre and Post are -1 when the error is not about a specific pair.
type InvalidTopologyError struct {
	Pre, Post int
	Msg       string
}

func (e *InvalidTopologyError) Error() string {
	if e.Pre < 0 && e.Post < 0 {
		return "spike: invalid topology: " + e.Msg
	}
	return fmt.Sprintf("spike: invalid topology at (%d, %d): %s", e.Pre, e.Post, e.Msg)
}

// InvalidConfigError reports an invalid parameter value
type InvalidConfigError struct {
	Field string
	Msg   string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("spike: invalid config %s: %s", e.Field, e.Msg)
}

// NumericalDivergenceError reports non-finite state produced by a step.
// Step and Time identify the last good step, and Neuron or Synapse the
// offending element (-1 if not applicable), with Var its variable name.
type NumericalDivergenceError struct {
	Step    int
	Time    float32
	Neuron  int
	Synapse int
	Var     string
}

func (e *NumericalDivergenceError) Error() string {
	if e.Synapse >= 0 {
		return fmt.Sprintf("spike: numerical divergence after step %d (t = %g ms): synapse %d %s is not finite", e.Step, e.Time, e.Synapse, e.Var)
	}
	return fmt.Sprintf("spike: numerical divergence after step %d (t = %g ms): neuron %d %s is not finite", e.Step, e.Time, e.Neuron, e.Var)
}

// StimulusLookupError reports a stimulus lookup outside of its domain
// [0, End).  Neuron is -1 if the lookup was not made for a specific neuron.
type StimulusLookupError struct {
	Neuron int
	Time   float32
	End    float32
}

func (e *StimulusLookupError) Error() string {
	return fmt.Sprintf("spike: stimulus lookup for neuron %d at t = %g ms is outside of its domain [0, %g)", e.Neuron, e.Time, e.End)
}
