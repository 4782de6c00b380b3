// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/hhstdp/gates"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestInitSteadyState(t *testing.T) {
	hh := &HHModel{}
	hh.Defaults()
	nrn := &Neuron{}
	hh.Init(nrn)
	cg := gates.Classic{}
	cors := []float32{cg.MInf(-65), cg.HInf(-65), cg.NInf(-65)}
	vals := []float32{nrn.M, nrn.H, nrn.N}
	for i, cor := range cors {
		if dif := math32.Abs(vals[i] - cor); dif > difTol {
			t.Errorf("classic gate %d: %v != x_inf(-65): %v", i, vals[i], cor)
		}
	}
	if nrn.V != -65 {
		t.Errorf("classic V: %v", nrn.V)
	}
	// gates do not move at rest
	a, b := hh.Linear(nrn, hh.State(nrn))
	for i, d := range []float32{a.Y + b.Y*nrn.M, a.Z + b.Z*nrn.H, a.W + b.W*nrn.N} {
		if math32.Abs(d) > difTol {
			t.Errorf("classic gate %d derivative at rest: %v", i, d)
		}
	}

	sh := &SynHHModel{}
	sh.Defaults()
	nrn = &Neuron{}
	sh.Init(nrn)
	sg := gates.Shifted{}
	if dif := math32.Abs(nrn.N - sg.NInf(0)); dif > difTol {
		t.Errorf("recurrent N: %v != n_inf(0): %v", nrn.N, sg.NInf(0))
	}
	if dif := math32.Abs(nrn.N - cg.NInf(-65)); dif > difTol {
		t.Errorf("recurrent N: %v != classic n_inf(-65): %v", nrn.N, cg.NInf(-65))
	}
	if nrn.V != 0 || nrn.A != 0.01 || nrn.S != 0.25 {
		t.Errorf("recurrent initial state: V: %v A: %v S: %v", nrn.V, nrn.A, nrn.S)
	}
}

func TestLinearMatchesCurrent(t *testing.T) {
	hh := &HHModel{}
	hh.Defaults()
	nrn := &Neuron{IExt: 2.5}
	hh.Init(nrn)
	for _, v := range []float32{-80, -65, -40, 0, 30} {
		x := hh.State(nrn)
		x.X = v
		a, b := hh.Linear(nrn, x)
		g := hh.Conductances(x)
		cor := (g.Current(&hh.Erev, v) + nrn.IExt) / hh.C
		dv := a.X + b.X*v
		if dif := math32.Abs(dv - cor); dif > 1.0e-3 {
			t.Errorf("classic dv/dt at v: %v: %v, cor: %v", v, dv, cor)
		}
	}

	sh := &SynHHModel{}
	sh.Defaults()
	nrn = &Neuron{IExt: -1, GSyn: 0.3}
	sh.Init(nrn)
	for _, v := range []float32{-20, 0, 20, 40, 60} {
		x := sh.State(nrn)
		x.X = v
		a, b := sh.Linear(nrn, x)
		m := sh.Gates.MInf(v)
		n := x.Y
		cor := (-sh.Gbar.L*(v-sh.Erev.L) - sh.Gbar.Na*m*m*m*(sh.NaMax-n)*(v-sh.Erev.Na) -
			sh.Gbar.K*n*n*n*n*(v-sh.Erev.K) - sh.GSyn*nrn.GSyn*(v-sh.ESyn) + nrn.IExt) / sh.C
		dv := a.X + b.X*v
		if dif := math32.Abs(dv - cor); dif > 1.0e-3 {
			t.Errorf("recurrent dv/dt at v: %v: %v, cor: %v", v, dv, cor)
		}
		f := sh.SoftThr(v)
		da := a.Z + b.Z*x.Z
		if dif := math32.Abs(da - (f*(1-x.Z)/sh.TauF - x.Z/sh.TauS)); dif > difTol {
			t.Errorf("recurrent da/dt at v: %v: %v", v, da)
		}
		ds := a.W + b.W*x.W
		if dif := math32.Abs(ds - (sh.AlphaD*(1-x.W) - sh.BetaD*f*x.W)); dif > difTol {
			t.Errorf("recurrent ds/dt at v: %v: %v", v, ds)
		}
	}
}

func TestMethodsAgree(t *testing.T) {
	sh := &SynHHModel{}
	sh.Defaults()
	run := func(meth Methods) *Neuron {
		ac := &ActParams{}
		ac.Defaults(Recurrent)
		ac.Method = meth
		nrn := &Neuron{}
		sh.Init(nrn)
		for i := 0; i < 500; i++ {
			ac.Integrate(sh, nrn, 0.01)
		}
		return nrn
	}
	ee := run(ExpEuler)
	rk := run(RK4)
	if dif := math32.Abs(ee.V - rk.V); dif > 1.0e-2 {
		t.Errorf("ExpEuler V: %v vs RK4 V: %v", ee.V, rk.V)
	}
	if dif := math32.Abs(ee.N - rk.N); dif > 1.0e-4 {
		t.Errorf("ExpEuler N: %v vs RK4 N: %v", ee.N, rk.N)
	}
	for _, nrn := range []*Neuron{ee, rk} {
		for _, x := range []float32{nrn.N, nrn.A, nrn.S} {
			if x < 0 || x > 1 {
				t.Errorf("gating variable out of [0, 1]: %v", x)
			}
		}
	}
}

func TestSpikeThrReset(t *testing.T) {
	sp := &SpikeParams{Mode: ThrReset, Thr: 0, VReset: -65}
	nrn := &Neuron{V: -1}
	if spk, _ := sp.SpikeFmV(nrn, 1); spk {
		t.Errorf("spike below threshold")
	}
	nrn.V = 0
	if spk, _ := sp.SpikeFmV(nrn, 1.1); spk {
		t.Errorf("spike at threshold: must be strictly above")
	}
	nrn.V = 12
	spk, st := sp.SpikeFmV(nrn, 1.2)
	if !spk || st != 1.2 {
		t.Errorf("no spike above threshold, or wrong time: %v %v", spk, st)
	}
	if nrn.V != -65 {
		t.Errorf("V not reset: %v", nrn.V)
	}
}

func TestSpikePeakDetect(t *testing.T) {
	sp := &SpikeParams{Mode: PeakDetect, Thr: 40}
	nrn := &Neuron{}
	vs := []float32{10, 38, 45, 70, 90, 85, 60, 41, 30, 20, 50, 35, 10}
	var spks []float32
	for i, v := range vs {
		nrn.V = v
		tm := float32(i)
		if spk, st := sp.SpikeFmV(nrn, tm); spk {
			spks = append(spks, st)
		}
		if nrn.V != v {
			t.Errorf("PeakDetect must not reset V")
		}
	}
	// one spike at the peak of each excursion: 90 at t = 4, and 50 at t = 10
	cor := []float32{4, 10}
	if len(spks) != len(cor) {
		t.Fatalf("spikes: %v, cor: %v", spks, cor)
	}
	for i := range cor {
		if spks[i] != cor[i] {
			t.Errorf("spike %d time: %v, cor: %v", i, spks[i], cor[i])
		}
	}
	if nrn.HasFlag(NeurAbove) || nrn.HasFlag(NeurPeaked) {
		t.Errorf("flags not cleared below threshold: %v", nrn.Flags)
	}
}

func TestNeuronVarByName(t *testing.T) {
	nrn := &Neuron{V: -65, N: 0.3, GSyn: 1.5, PeakT: 7}
	for nm, cor := range map[string]float32{"V": -65, "N": 0.3, "GSyn": 1.5, "PeakT": 7} {
		v, err := nrn.VarByName(nm)
		if err != nil {
			t.Error(err)
		}
		if v != cor {
			t.Errorf("VarByName(%s): %v, cor: %v", nm, v, cor)
		}
	}
	if _, err := nrn.VarByName("Vm"); err == nil {
		t.Errorf("expected error for unknown variable")
	}
	sy := &Synapse{Wt: 0.4, Apost: 0.2}
	if v, _ := sy.VarByName("Wt"); v != 0.4 {
		t.Errorf("Synapse VarByName(Wt): %v", v)
	}
	if v, _ := sy.VarByName("Apost"); v != 0.2 {
		t.Errorf("Synapse VarByName(Apost): %v", v)
	}
}
