// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stdp provides pair-based spike-timing-dependent plasticity with
exponentially decaying eligibility traces.

Each synapse carries a pre-synaptic trace Apre and a post-synaptic trace
Apost that decay as dA/dt = -A/tau between spikes.  Because spikes are sparse
relative to the integration step, the decay is event-driven: it is applied in
closed form exp(-elapsed/tau) at the time of the next event touching the
synapse, rather than being stepped with the neurons.

Two trace modes and two rule polarities are supported, and can be combined
freely:

  - TraceSet: a spike sets its own trace to 1, and the weight change is the
    amplitude (APlus or AMinus) times the other trace.
  - TraceAdd: a pre spike adds APlus to Apre and a post spike adds AMinus to
    Apost; the weight change is the other trace itself.

  - PrePot: a pre spike potentiates using the post trace, and a post spike
    depresses using the pre trace.
  - PostPot: a post spike potentiates using the pre trace, and a pre spike
    depresses using the post trace (classic Hebbian timing: pre-then-post
    strengthens).

The weight is clipped into [0, WtMax] after every single increment or
decrement.
*/
package stdp

//go:generate stringer -type=TraceModes,Rules -output enumgen.go

import (
	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
	"github.com/goki/ki/kit"
)

// Params are the STDP learning parameters
type Params struct {
	On      bool       `desc:"whether the synapses are plastic at all -- if off, the synapse only transmits and traces are not updated"`
	TauPre  float32    `viewif:"On" def:"20" min:"0" desc:"time constant in msec of the pre-synaptic trace decay"`
	TauPost float32    `viewif:"On" def:"20" min:"0" desc:"time constant in msec of the post-synaptic trace decay"`
	APlus   float32    `viewif:"On" def:"0.02,0.1" min:"0" desc:"potentiation amplitude -- for TraceAdd it is the increment of the pre-synaptic trace"`
	AMinus  float32    `viewif:"On" def:"0.025,0.105" min:"0" desc:"depression amplitude -- for TraceAdd it is the increment of the post-synaptic trace"`
	Trace   TraceModes `viewif:"On" desc:"how spikes update the traces and how traces scale weight changes"`
	Rule    Rules      `viewif:"On" desc:"which spike potentiates and which depresses"`
	WtRange minmax.F32 `desc:"range the weight is clipped into after every update -- Min is always 0, Max is the maximum weight"`

	PreDt  float32 `view:"-" json:"-" xml:"-" desc:"rate = 1 / TauPre"`
	PostDt float32 `view:"-" json:"-" xml:"-" desc:"rate = 1 / TauPost"`
}

func (sp *Params) Defaults() {
	sp.On = true
	sp.TauPre = 20
	sp.TauPost = 20
	sp.APlus = 0.02
	sp.AMinus = 0.025
	sp.Trace = TraceSet
	sp.Rule = PrePot
	sp.WtRange.Set(0, 1)
	sp.Update()
}

// Update must be called after any changes to parameters
func (sp *Params) Update() {
	sp.WtRange.Min = 0
	sp.PreDt = 1 / sp.TauPre
	sp.PostDt = 1 / sp.TauPost
}

// Clip returns the weight clipped into WtRange
func (sp *Params) Clip(wt float32) float32 {
	return sp.WtRange.ClipVal(wt)
}

// Decay applies the exact exponential decay of both traces over elapsed msec
func (sp *Params) Decay(apre, apost *float32, elapsed float32) {
	if elapsed <= 0 {
		return
	}
	if *apre != 0 {
		*apre *= math32.Exp(-elapsed * sp.PreDt)
	}
	if *apost != 0 {
		*apost *= math32.Exp(-elapsed * sp.PostDt)
	}
}

// OnPre updates traces and weight for a pre-synaptic spike.
// Traces must already be decayed to the spike time.
func (sp *Params) OnPre(wt, apre, apost *float32) {
	if !sp.On {
		return
	}
	var dw float32
	switch sp.Trace {
	case TraceSet:
		*apre = 1
		if sp.Rule == PrePot {
			dw = sp.APlus * *apost
		} else {
			dw = sp.AMinus * *apost
		}
	case TraceAdd:
		*apre += sp.APlus
		dw = *apost
	}
	if sp.Rule == PrePot {
		*wt = sp.Clip(*wt + dw)
	} else {
		*wt = sp.Clip(*wt - dw)
	}
}

// OnPost updates traces and weight for a post-synaptic spike.
// Traces must already be decayed to the spike time.
func (sp *Params) OnPost(wt, apre, apost *float32) {
	if !sp.On {
		return
	}
	var dw float32
	switch sp.Trace {
	case TraceSet:
		*apost = 1
		if sp.Rule == PrePot {
			dw = sp.AMinus * *apre
		} else {
			dw = sp.APlus * *apre
		}
	case TraceAdd:
		*apost += sp.AMinus
		dw = *apre
	}
	if sp.Rule == PrePot {
		*wt = sp.Clip(*wt - dw)
	} else {
		*wt = sp.Clip(*wt + dw)
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Enums

// TraceModes determine how spikes update traces
type TraceModes int32

var KiT_TraceModes = kit.Enums.AddEnum(TraceModesN, kit.NotBitFlag, nil)

const (
	// TraceSet sets the trace of the spiking side to 1, and scales the weight
	// change by APlus / AMinus
	TraceSet TraceModes = iota

	// TraceAdd increments the pre trace by APlus and the post trace by AMinus,
	// and uses the trace value directly as the weight change
	TraceAdd

	TraceModesN
)

// Rules determine the polarity of the weight change
type Rules int32

var KiT_Rules = kit.Enums.AddEnum(RulesN, kit.NotBitFlag, nil)

const (
	// PrePot potentiates on pre-synaptic spikes (using the post trace) and
	// depresses on post-synaptic spikes (using the pre trace)
	PrePot Rules = iota

	// PostPot potentiates on post-synaptic spikes (using the pre trace) and
	// depresses on pre-synaptic spikes (using the post trace)
	PostPot

	RulesN
)
