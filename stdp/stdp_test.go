// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

// syn is a minimal synapse for driving the rule with literal spike times
type syn struct {
	wt, apre, apost, lastT float32
}

func (sy *syn) pre(sp *Params, t float32) {
	sp.Decay(&sy.apre, &sy.apost, t-sy.lastT)
	sy.lastT = t
	sp.OnPre(&sy.wt, &sy.apre, &sy.apost)
}

func (sy *syn) post(sp *Params, t float32) {
	sp.Decay(&sy.apre, &sy.apost, t-sy.lastT)
	sy.lastT = t
	sp.OnPost(&sy.wt, &sy.apre, &sy.apost)
}

func TestHebbianDirection(t *testing.T) {
	sp := Params{}
	sp.Defaults()
	sp.Rule = PostPot
	sp.Update()

	// pre at 10, post at 12: potentiation by APlus * exp(-2 / TauPre)
	sy := &syn{wt: 0.5}
	sy.pre(&sp, 10)
	if sy.wt != 0.5 {
		t.Errorf("first pre spike with no post trace should not change weight: %v", sy.wt)
	}
	sy.post(&sp, 12)
	cor := 0.5 + sp.APlus*math32.Exp(-2.0/20.0)
	if sy.wt <= 0.5 {
		t.Errorf("pre-then-post should potentiate: %v", sy.wt)
	}
	if dif := math32.Abs(sy.wt - cor); dif > difTol {
		t.Errorf("potentiation err: wt: %v, cor: %v, dif: %v", sy.wt, cor, dif)
	}

	// post at 10, pre at 12: depression by AMinus * exp(-2 / TauPost)
	sy = &syn{wt: 0.5}
	sy.post(&sp, 10)
	sy.pre(&sp, 12)
	cor = 0.5 - sp.AMinus*math32.Exp(-2.0/20.0)
	if sy.wt >= 0.5 {
		t.Errorf("post-then-pre should depress: %v", sy.wt)
	}
	if dif := math32.Abs(sy.wt - cor); dif > difTol {
		t.Errorf("depression err: wt: %v, cor: %v, dif: %v", sy.wt, cor, dif)
	}
}

func TestPrePotDirection(t *testing.T) {
	sp := Params{}
	sp.Defaults() // PrePot, TraceSet
	sy := &syn{wt: 0.5}
	sy.post(&sp, 10)
	sy.pre(&sp, 15)
	cor := 0.5 + sp.APlus*math32.Exp(-5.0/20.0)
	if dif := math32.Abs(sy.wt - cor); dif > difTol {
		t.Errorf("post-then-pre potentiation err: wt: %v, cor: %v", sy.wt, cor)
	}
	sy = &syn{wt: 0.5}
	sy.pre(&sp, 10)
	sy.post(&sp, 15)
	cor = 0.5 - sp.AMinus*math32.Exp(-5.0/20.0)
	if dif := math32.Abs(sy.wt - cor); dif > difTol {
		t.Errorf("pre-then-post depression err: wt: %v, cor: %v", sy.wt, cor)
	}
}

func TestTraceAdd(t *testing.T) {
	sp := Params{}
	sp.Defaults()
	sp.Trace = TraceAdd
	sp.APlus = 0.1
	sp.AMinus = 0.105
	sp.WtRange.Max = 2
	sp.Update()

	sy := &syn{wt: 1}
	sy.pre(&sp, 0)
	sy.pre(&sp, 20)
	// two pre spikes accumulate: 0.1 * exp(-1) + 0.1
	cor := 0.1*math32.Exp(-1) + 0.1
	if dif := math32.Abs(sy.apre - cor); dif > difTol {
		t.Errorf("accumulated pre trace: %v, cor: %v", sy.apre, cor)
	}
	if sy.wt != 1 {
		t.Errorf("pre spikes without post trace changed weight: %v", sy.wt)
	}
	sy.post(&sp, 20)
	cor = 1 - (0.1*math32.Exp(-1) + 0.1)
	if dif := math32.Abs(sy.wt - cor); dif > difTol {
		t.Errorf("TraceAdd post depression: %v, cor: %v", sy.wt, cor)
	}
	if dif := math32.Abs(sy.apost - 0.105); dif > difTol {
		t.Errorf("post trace: %v", sy.apost)
	}
}

func TestClip(t *testing.T) {
	sp := Params{}
	sp.Defaults()
	sp.APlus = 5
	sp.AMinus = 5
	sp.Update()
	sy := &syn{wt: 0.9}
	sy.post(&sp, 0)
	sy.pre(&sp, 0)
	if sy.wt != 1 {
		t.Errorf("weight should clip to max 1: %v", sy.wt)
	}
	sy.post(&sp, 0)
	if sy.wt != 0 {
		t.Errorf("weight should clip to 0: %v", sy.wt)
	}
}

func TestDisabled(t *testing.T) {
	for _, on := range []bool{true, false} {
		sp := Params{}
		sp.Defaults()
		sp.On = on
		if on {
			sp.APlus = 0
			sp.AMinus = 0
		}
		sp.Update()
		for _, tr := range []TraceModes{TraceSet, TraceAdd} {
			sp.Trace = tr
			sy := &syn{wt: 0.37}
			for i := 0; i < 50; i++ {
				tm := float32(i) * 1.7
				if i%3 == 0 {
					sy.post(&sp, tm)
				} else {
					sy.pre(&sp, tm)
				}
			}
			if sy.wt != 0.37 {
				t.Errorf("On: %v Trace: %v weight changed with plasticity disabled: %v", on, tr, sy.wt)
			}
		}
	}
}

// FuzzClip drives arbitrary spike sequences through all rule variants and
// checks that the weight never leaves [0, WtMax].
func FuzzClip(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 4, 5}, float32(0.5), float32(0.3))
	f.Add([]byte{255, 0, 255, 0, 1, 1, 1}, float32(1.5), float32(2))
	f.Add([]byte{7, 7, 7, 7, 7, 7, 7, 7}, float32(0), float32(0.01))
	f.Fuzz(func(t *testing.T, evs []byte, wt0, amp float32) {
		if math32.IsNaN(amp) || math32.IsInf(amp, 0) || amp < 0 || amp > 1e6 {
			t.Skip()
		}
		for _, tr := range []TraceModes{TraceSet, TraceAdd} {
			for _, rl := range []Rules{PrePot, PostPot} {
				sp := Params{}
				sp.Defaults()
				sp.Trace = tr
				sp.Rule = rl
				sp.APlus = amp
				sp.AMinus = amp * 1.25
				sp.WtRange.Max = 2
				sp.Update()
				sy := &syn{wt: sp.Clip(wt0)}
				if math32.IsNaN(wt0) {
					sy.wt = 1
				}
				tm := float32(0)
				for _, ev := range evs {
					tm += float32(ev>>1) * 0.25
					if ev&1 == 0 {
						sy.pre(&sp, tm)
					} else {
						sy.post(&sp, tm)
					}
					if sy.wt < 0 || sy.wt > 2 || math32.IsNaN(sy.wt) {
						t.Fatalf("%v %v weight out of range: %v", tr, rl, sy.wt)
					}
				}
			}
		}
	})
}
