// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"github.com/emer/hhstdp/gates"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

///////////////////////////////////////////////////////////////////////
//  act.go contains the integration and spiking params and functions

// spike.ActParams contains the neuron-level integration, spike detection
// and spike transmission params, shared by all neurons in the Network.
type ActParams struct {
	Method   Methods     `desc:"numerical integration method for the neuron state"`
	Spike    SpikeParams `view:"inline" desc:"how spikes are detected from the membrane potential"`
	Coupling Couplings   `desc:"how a pre-synaptic spike is transmitted to the post-synaptic neuron"`
}

// Defaults sets the params for the given model
func (ac *ActParams) Defaults(mod Models) {
	switch mod {
	case Classic:
		ac.Method = ExpEuler
		ac.Coupling = VoltageBump
		ac.Spike.Mode = ThrReset
		ac.Spike.Thr = 0
		ac.Spike.VReset = -65
	case Recurrent:
		ac.Method = RK4
		ac.Coupling = SynActivation
		ac.Spike.Mode = PeakDetect
		ac.Spike.Thr = 40
		ac.Spike.VReset = 0
	}
}

// Integrate advances the model state of the neuron by dt using Method
func (ac *ActParams) Integrate(md Model, nrn *Neuron, dt float32) {
	x := md.State(nrn)
	switch ac.Method {
	case ExpEuler:
		x = ExpEulerStep(md, nrn, x, dt)
	case RK4:
		x = RK4Step(md, nrn, x, dt)
	}
	md.SetState(nrn, x)
}

// ExpEulerStep advances each state variable by the exact solution of its
// linearization over dt, with all variables linearized at x
func ExpEulerStep(md Model, nrn *Neuron, x mat32.Vec4, dt float32) mat32.Vec4 {
	a, b := md.Linear(nrn, x)
	return mat32.NewVec4(
		gates.ExpEuler(x.X, a.X, b.X, dt),
		gates.ExpEuler(x.Y, a.Y, b.Y, dt),
		gates.ExpEuler(x.Z, a.Z, b.Z, dt),
		gates.ExpEuler(x.W, a.W, b.W, dt))
}

// Deriv returns dx/dt at x
func Deriv(md Model, nrn *Neuron, x mat32.Vec4) mat32.Vec4 {
	a, b := md.Linear(nrn, x)
	return a.Add(b.Mul(x))
}

// RK4Step advances the state by the classical 4th order Runge-Kutta method
func RK4Step(md Model, nrn *Neuron, x mat32.Vec4, dt float32) mat32.Vec4 {
	hdt := 0.5 * dt
	k1 := Deriv(md, nrn, x)
	k2 := Deriv(md, nrn, x.Add(k1.MulScalar(hdt)))
	k3 := Deriv(md, nrn, x.Add(k2.MulScalar(hdt)))
	k4 := Deriv(md, nrn, x.Add(k3.MulScalar(dt)))
	sum := k1.Add(k2.MulScalar(2)).Add(k3.MulScalar(2)).Add(k4)
	return x.Add(sum.MulScalar(dt / 6))
}

// SpikeParams determine how spikes are detected from the membrane potential
type SpikeParams struct {
	Mode   SpikeModes `desc:"spike detection mode"`
	Thr    float32    `def:"0,40" desc:"spike threshold in mV: a spike requires V > Thr"`
	VReset float32    `viewif:"Mode=ThrReset" def:"-65" desc:"V is reset to this value in mV after a spike in ThrReset mode"`
}

// SpikeFmV detects a spike from the membrane potential just computed for
// time t.  It returns whether the neuron spiked, and the time of the spike:
// in ThrReset mode this is t, in PeakDetect mode it is the time of the
// peak sample of the suprathreshold excursion, which is only known once V
// starts to fall.
func (sp *SpikeParams) SpikeFmV(nrn *Neuron, t float32) (bool, float32) {
	switch sp.Mode {
	case ThrReset:
		if nrn.V > sp.Thr {
			nrn.V = sp.VReset
			return true, t
		}
	case PeakDetect:
		if nrn.V > sp.Thr {
			if !nrn.HasFlag(NeurAbove) {
				nrn.SetFlag(NeurAbove)
				nrn.ClearFlag(NeurPeaked)
				nrn.PeakV = nrn.V
				nrn.PeakT = t
				return false, t
			}
			if nrn.HasFlag(NeurPeaked) {
				return false, t
			}
			if nrn.V >= nrn.PeakV {
				nrn.PeakV = nrn.V
				nrn.PeakT = t
				return false, t
			}
			nrn.SetFlag(NeurPeaked)
			return true, nrn.PeakT
		}
		if nrn.HasFlag(NeurAbove) {
			peaked := nrn.HasFlag(NeurPeaked)
			nrn.ClearFlag(NeurAbove)
			nrn.ClearFlag(NeurPeaked)
			if !peaked {
				return true, nrn.PeakT
			}
		}
	}
	return false, t
}

//////////////////////////////////////////////////////////////////////////////////////
//  Enums

// Models are the neuron model variants
type Models int32

var KiT_Models = kit.Enums.AddEnum(ModelsN, kit.NotBitFlag, nil)

const (
	// Classic is the Hodgkin-Huxley neuron with m, h, n gates (HHModel),
	// threshold-reset spikes and voltage-bump synapses
	Classic Models = iota

	// Recurrent is the reduced Hodgkin-Huxley neuron with its own synaptic
	// activation (SynHHModel), peak-detected spikes and conductance synapses
	Recurrent

	ModelsN
)

// Methods are the numerical integration methods
type Methods int32

var KiT_Methods = kit.Enums.AddEnum(MethodsN, kit.NotBitFlag, nil)

const (
	// ExpEuler is exponential Euler: each variable follows the exact solution
	// of its linearization over the step
	ExpEuler Methods = iota

	// RK4 is the classical fourth order Runge-Kutta method
	RK4

	MethodsN
)

// SpikeModes are the spike detection modes
type SpikeModes int32

var KiT_SpikeModes = kit.Enums.AddEnum(SpikeModesN, kit.NotBitFlag, nil)

const (
	// ThrReset emits a spike when V exceeds the threshold and resets V
	ThrReset SpikeModes = iota

	// PeakDetect emits one spike per suprathreshold excursion of V, timed at
	// the peak sample, without any reset
	PeakDetect

	SpikeModesN
)

// Couplings are the ways a spike is transmitted to the post-synaptic neuron
type Couplings int32

var KiT_Couplings = kit.Enums.AddEnum(CouplingsN, kit.NotBitFlag, nil)

const (
	// VoltageBump adds the weight in mV directly to the post-synaptic V
	VoltageBump Couplings = iota

	// SynActivation adds weight * A * S of the pre-synaptic neuron to the
	// accumulated synaptic input GSyn of the post-synaptic neuron
	SynActivation

	CouplingsN
)
