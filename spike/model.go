// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"github.com/chewxy/math32"
	"github.com/emer/hhstdp/chans"
	"github.com/emer/hhstdp/gates"
	"github.com/goki/mat32"
)

///////////////////////////////////////////////////////////////////////
//  model.go contains the two neuron model variants and their common
//  update contract

// Model is the common update contract of the neuron model variants.
// Each model integrates four state variables, packed into a mat32.Vec4
// in the order given by StateVars.  The integration methods only need
// the per-variable linearization returned by Linear, so any Method can
// be used with any Model.
type Model interface {
	// Init sets the resting initial state of the neuron
	Init(nrn *Neuron)

	// State returns the integrated state variables of the neuron
	State(nrn *Neuron) mat32.Vec4

	// SetState sets the integrated state variables of the neuron
	SetState(nrn *Neuron, x mat32.Vec4)

	// Linear returns the linearization dx/dt = a + b * x of each state
	// variable at state x, holding the other variables fixed at x.
	// The inputs of the neuron (IExt, GSyn) are read from nrn.
	Linear(nrn *Neuron, x mat32.Vec4) (a, b mat32.Vec4)

	// StateVars returns the Neuron variable names of the state, in order
	StateVars() [4]string
}

// HHModel is the classic Hodgkin-Huxley neuron with sodium activation m,
// sodium inactivation h and potassium activation n, with rate constants
// in the absolute voltage convention (rest at -65 mV).
type HHModel struct {
	C     float32     `def:"1" min:"0" desc:"membrane capacitance in uF/cm^2"`
	Gbar  chans.Chans `view:"inline" desc:"[Defaults: 36, 12, 0.1] maximal conductances in mS/cm^2"`
	Erev  chans.Chans `view:"inline" desc:"[Defaults: 115, -12, 10.6] reversal potentials in mV"`
	VRest float32     `def:"-65" desc:"initial resting potential in mV -- gates start at their steady state for this potential"`

	Gates gates.Classic `view:"-" desc:"rate constants"`
}

func (hh *HHModel) Defaults() {
	hh.C = 1
	hh.Gbar.SetAll(36, 12, 0.1)
	hh.Erev.SetAll(115, -12, 10.6)
	hh.VRest = -65
}

func (hh *HHModel) Update() {
}

func (hh *HHModel) Init(nrn *Neuron) {
	nrn.V = hh.VRest
	nrn.M = hh.Gates.MInf(hh.VRest)
	nrn.H = hh.Gates.HInf(hh.VRest)
	nrn.N = hh.Gates.NInf(hh.VRest)
}

func (hh *HHModel) State(nrn *Neuron) mat32.Vec4 {
	return mat32.NewVec4(nrn.V, nrn.M, nrn.H, nrn.N)
}

func (hh *HHModel) SetState(nrn *Neuron, x mat32.Vec4) {
	nrn.V, nrn.M, nrn.H, nrn.N = x.X, x.Y, x.Z, x.W
}

func (hh *HHModel) StateVars() [4]string {
	return [4]string{"V", "M", "H", "N"}
}

// Conductances returns the gated conductances at state x
func (hh *HHModel) Conductances(x mat32.Vec4) chans.Chans {
	m, h, n := x.Y, x.Z, x.W
	n2 := n * n
	return chans.Chans{Na: hh.Gbar.Na * m * m * m * h, K: hh.Gbar.K * n2 * n2, L: hh.Gbar.L}
}

func (hh *HHModel) Linear(nrn *Neuron, x mat32.Vec4) (a, b mat32.Vec4) {
	v := x.X
	g := hh.Conductances(x)
	a.X = (g.Drive(&hh.Erev) + nrn.IExt) / hh.C
	b.X = -g.Sum() / hh.C

	am, bm := hh.Gates.AlphaM(v), hh.Gates.BetaM(v)
	ah, bh := hh.Gates.AlphaH(v), hh.Gates.BetaH(v)
	an, bn := hh.Gates.AlphaN(v), hh.Gates.BetaN(v)
	a.Y, b.Y = am, -(am + bm)
	a.Z, b.Z = ah, -(ah + bh)
	a.W, b.W = an, -(an + bn)
	return
}

// SynHHModel is the reduced Hodgkin-Huxley neuron used in recurrent networks,
// in the original HH convention (rest at 0 mV).  Sodium activation is
// instantaneous at m_inf(v), sodium inactivation is approximated by
// NaMax - n, and the neuron carries its own outgoing synaptic activation a
// and resource s, driven by a soft sigmoidal spike threshold on v:
//
//	dv/dt = (-gL(v-EL) - gNa m_inf^3 (NaMax-n)(v-ENa) - gK n^4 (v-EK) - GSyn g (v-ESyn) + I) / C
//	da/dt = f(v) (1-a) / TauF - a / TauS
//	ds/dt = AlphaD (1-s) - BetaD f(v) s
//
// where g is the accumulated synaptic input (Neuron.GSyn).
type SynHHModel struct {
	C           float32     `def:"1" min:"0" desc:"membrane capacitance in uF/cm^2"`
	Gbar        chans.Chans `view:"inline" desc:"[Defaults: 36, 12, 0.1] maximal conductances in mS/cm^2"`
	Erev        chans.Chans `view:"inline" desc:"[Defaults: 115, -12, 10.6] reversal potentials in mV"`
	NaMax       float32     `def:"0.8" desc:"sodium inactivation is approximated as NaMax - n"`
	GSyn        float32     `def:"3.6" desc:"maximal excitatory synaptic conductance in mS/cm^2"`
	ESyn        float32     `def:"70" desc:"excitatory synaptic reversal potential in mV"`
	TauS        float32     `def:"10" min:"0" desc:"decay time constant of the synaptic activation in ms"`
	TauF        float32     `def:"1" min:"0" desc:"rise time constant of the synaptic activation in ms"`
	AlphaD      float32     `def:"0.0015" desc:"recovery rate of the synaptic resource in 1/ms"`
	BetaD       float32     `def:"0.12" desc:"depletion rate of the synaptic resource in 1/ms"`
	VThr        float32     `def:"40" desc:"midpoint of the soft spike threshold sigmoid in mV"`
	Slope       float32     `def:"1" min:"0" desc:"slope of the soft spike threshold sigmoid in mV"`
	SynDecayTau float32     `def:"0" min:"0" desc:"if > 0, time constant in ms of exponential decay of the accumulated synaptic input GSyn -- 0 means it only accumulates"`
	InitV       float32     `def:"0" desc:"initial membrane potential in mV -- n starts at its steady state for this potential"`
	InitA       float32     `def:"0.01" desc:"initial synaptic activation"`
	InitS       float32     `def:"0.25" desc:"initial synaptic resource"`

	SDt        float32       `view:"-" json:"-" xml:"-" desc:"rate = 1 / TauS"`
	FDt        float32       `view:"-" json:"-" xml:"-" desc:"rate = 1 / TauF"`
	SynDecayDt float32       `view:"-" json:"-" xml:"-" desc:"rate = 1 / SynDecayTau, 0 if no decay"`
	Gates      gates.Shifted `view:"-" desc:"rate constants"`
}

func (sh *SynHHModel) Defaults() {
	sh.C = 1
	sh.Gbar.SetAll(36, 12, 0.1)
	sh.Erev.SetAll(115, -12, 10.6)
	sh.NaMax = 0.8
	sh.GSyn = 3.6
	sh.ESyn = 70
	sh.TauS = 10
	sh.TauF = 1
	sh.AlphaD = 0.0015
	sh.BetaD = 0.12
	sh.VThr = 40
	sh.Slope = 1
	sh.SynDecayTau = 0
	sh.InitV = 0
	sh.InitA = 0.01
	sh.InitS = 0.25
	sh.Update()
}

// Update must be called after any changes to parameters
func (sh *SynHHModel) Update() {
	sh.SDt = 1 / sh.TauS
	sh.FDt = 1 / sh.TauF
	if sh.SynDecayTau > 0 {
		sh.SynDecayDt = 1 / sh.SynDecayTau
	} else {
		sh.SynDecayDt = 0
	}
}

func (sh *SynHHModel) Init(nrn *Neuron) {
	nrn.V = sh.InitV
	nrn.N = sh.Gates.NInf(sh.InitV)
	nrn.A = sh.InitA
	nrn.S = sh.InitS
	nrn.M = sh.Gates.MInf(sh.InitV)
	nrn.H = 0
	nrn.GSyn = 0
}

func (sh *SynHHModel) State(nrn *Neuron) mat32.Vec4 {
	return mat32.NewVec4(nrn.V, nrn.N, nrn.A, nrn.S)
}

func (sh *SynHHModel) SetState(nrn *Neuron, x mat32.Vec4) {
	nrn.V, nrn.N, nrn.A, nrn.S = x.X, x.Y, x.Z, x.W
	nrn.M = sh.Gates.MInf(x.X)
}

func (sh *SynHHModel) StateVars() [4]string {
	return [4]string{"V", "N", "A", "S"}
}

// SoftThr returns the soft spike threshold f(v)
func (sh *SynHHModel) SoftThr(v float32) float32 {
	return gates.Sigmoid(v, sh.VThr, sh.Slope)
}

func (sh *SynHHModel) Linear(nrn *Neuron, x mat32.Vec4) (a, b mat32.Vec4) {
	v, n := x.X, x.Y
	m := sh.Gates.MInf(v)
	n2 := n * n
	g := chans.Chans{Na: sh.Gbar.Na * m * m * m * (sh.NaMax - n), K: sh.Gbar.K * n2 * n2, L: sh.Gbar.L}
	gs := sh.GSyn * nrn.GSyn
	a.X = (g.Drive(&sh.Erev) + gs*sh.ESyn + nrn.IExt) / sh.C
	b.X = -(g.Sum() + gs) / sh.C

	an, bn := sh.Gates.AlphaN(v), sh.Gates.BetaN(v)
	a.Y, b.Y = an, -(an + bn)

	f := sh.SoftThr(v)
	a.Z, b.Z = f*sh.FDt, -(f*sh.FDt + sh.SDt)
	a.W, b.W = sh.AlphaD, -(sh.AlphaD + sh.BetaD*f)
	return
}

// DecaySyn applies the exact decay of the accumulated synaptic input over dt
func (sh *SynHHModel) DecaySyn(nrn *Neuron, dt float32) {
	if sh.SynDecayDt == 0 || nrn.GSyn == 0 {
		return
	}
	nrn.GSyn *= math32.Exp(-dt * sh.SynDecayDt)
}
