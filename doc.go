// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hhstdp is the overall repository for simulating small networks of
Hodgkin-Huxley spiking neurons connected by synapses that learn with
spike-timing-dependent plasticity (STDP).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* chans: the sodium, potassium and leak channel parameter triples.

* gates: the alpha / beta rate constants of the gating variables, their
steady states and time constants, and the exponential Euler gate update.

* stdp: the trace based STDP learning rule.

* spike: the neurons, the two model variants (classic and recurrent), the
network with its synapse arena, the fixed-step Integrator, stimuli and
configuration.

* record: an etable based Recorder of the states, spikes and weights of a
run, with CSV export.

* cmd/hhstdp: the command line program.
*/
package hhstdp
