// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the standard Hodgkin-Huxley ion channel parameter
triples (sodium, potassium, leak) used in computing the membrane current of a
conductance-based neuron, i.e., the basic Ohms law equations of the equivalent
RC circuit: I = sum_c g_c * (E_c - V).
*/
package chans

// Chans are ion channels used in computing the Hodgkin-Huxley membrane current
type Chans struct {
	Na float32 `desc:"voltage-gated sodium (Na+) channel -- fast activation m, slower inactivation h"`
	K  float32 `desc:"delayed-rectifier potassium (K+) channel -- activation n"`
	L  float32 `desc:"constant leak channel -- determines resting potential together with the K channel"`
}

// SetAll sets all the values
func (ch *Chans) SetAll(na, k, l float32) {
	ch.Na, ch.K, ch.L = na, k, l
}

// Sum returns the sum of all the values
func (ch *Chans) Sum() float32 {
	return ch.Na + ch.K + ch.L
}

// Current returns the total membrane current sum_c g_c * (E_c - v), where
// the receiver holds the effective (gated) conductances and erev the
// reversal potentials.
func (ch *Chans) Current(erev *Chans, v float32) float32 {
	return ch.Na*(erev.Na-v) + ch.K*(erev.K-v) + ch.L*(erev.L-v)
}

// Drive returns sum_c g_c * E_c, with the receiver holding conductances.
// Together with Sum this gives the linear form of the current in v:
// I = Drive - Sum * v.
func (ch *Chans) Drive(erev *Chans) float32 {
	return ch.Na*erev.Na + ch.K*erev.K + ch.L*erev.L
}
