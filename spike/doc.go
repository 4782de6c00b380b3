// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spike simulates small fully connected networks of Hodgkin-Huxley
spiking neurons joined by plastic STDP synapses, using a fixed-step
integrator.

The Network owns the neurons and one Synapse for every ordered pair of
distinct neurons, stored in a single arena.  Two neuron model variants are
provided behind the common Model interface:

  - Classic (HHModel): the four variable v, m, h, n model, integrated by
    exponential Euler, with a hard spike threshold that resets v, and
    synapses that bump the post-synaptic v by the weight.
  - Recurrent (SynHHModel): the reduced v, n, a, s model with its own
    synaptic activation, integrated by RK4, with spikes timed at the peak
    of each suprathreshold excursion and synapses that add conductance.

The Integrator advances time in fixed steps of Dt.  On each step it sets
the external current of every neuron (IApp plus Stimulus), integrates all
neurons (optionally across goroutines, as they only read the coupling of
the previous step), detects spikes, and then applies the spikes to the
synapses: all pre-synaptic events in neuron order, then all post-synaptic
events.  Transmission is accumulated per receiving neuron and committed once,
so results do not depend on event order.  Non-finite state aborts the run
with a NumericalDivergenceError.

Learning is in package stdp, and the gating rate constants in package gates.
*/
package spike

//go:generate stringer -type=Models,Methods,SpikeModes,Couplings,RunStates,NeurFlags,SynFlags -output enumgen.go
