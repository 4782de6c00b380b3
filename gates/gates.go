// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gates provides the voltage-dependent rate constants (alpha / beta) of
the Hodgkin-Huxley gating variables, along with the steady-state and time
constant functions derived from them and the exponential-Euler update of a
single gate.

Two parameterizations are provided: Classic uses the absolute voltage
convention (rest at -65 mV), and Shifted uses the original Hodgkin-Huxley
convention with rest at 0 mV.  Several of the alpha functions have the form
x / (exp(x/y) - 1), which has a removable singularity at x = 0: VTrap returns
the continuous limit there instead of 0/0.

All rates are in 1/ms for v in mV.  All functions are pure.
*/
package gates

import "github.com/chewxy/math32"

// VTrapTol is the |x/y| range around the singularity of VTrap within which
// the series expansion is used.
const VTrapTol = 1.0e-4

// VTrap returns x / (exp(x/y) - 1), with the limit y * (1 - x/(2y)) for
// x/y near zero (y at x = 0).
func VTrap(x, y float32) float32 {
	u := x / y
	if math32.Abs(u) < VTrapTol {
		return y * (1 - 0.5*u)
	}
	return x / math32.Expm1(u)
}

// Inf returns the steady-state value alpha / (alpha + beta)
func Inf(alpha, beta float32) float32 {
	return alpha / (alpha + beta)
}

// Tau returns the time constant 1 / (alpha + beta), in ms
func Tau(alpha, beta float32) float32 {
	return 1 / (alpha + beta)
}

// ExpEuler advances dx/dt = a + b*x by dt using the exact solution for
// constant a and b.  For a gate with dx/dt = alpha*(1-x) - beta*x use
// a = alpha and b = -(alpha+beta), which gives x_inf + (x - x_inf)*exp(-dt/tau).
func ExpEuler(x, a, b, dt float32) float32 {
	if b == 0 {
		return x + a*dt
	}
	return x + (math32.Expm1(b*dt)/b)*(a+b*x)
}

// Gate advances a gating variable by dt given its rate constants
func Gate(x, alpha, beta, dt float32) float32 {
	return ExpEuler(x, alpha, -(alpha + beta), dt)
}

// Sigmoid returns 1 / (1 + exp((thr - v) / slope)), the smooth threshold
// function used as a soft spike detector.
func Sigmoid(v, thr, slope float32) float32 {
	return 1 / (1 + math32.Exp((thr-v)/slope))
}

// Kinetics is implemented by the rate sets
type Kinetics interface {
	// AlphaM, BetaM are the sodium activation rates
	AlphaM(v float32) float32
	BetaM(v float32) float32

	// AlphaN, BetaN are the potassium activation rates
	AlphaN(v float32) float32
	BetaN(v float32) float32
}

// Classic has the rate constants in the absolute convention (rest = -65 mV)
type Classic struct{}

func (Classic) AlphaM(v float32) float32 { return 0.1 * VTrap(-(v + 40), 10) }
func (Classic) BetaM(v float32) float32  { return 4 * math32.Exp(-(v+65)/18) }
func (Classic) AlphaH(v float32) float32 { return 0.07 * math32.Exp(-(v+65)/20) }
func (Classic) BetaH(v float32) float32  { return 1 / (1 + math32.Exp(-(v+35)/10)) }
func (Classic) AlphaN(v float32) float32 { return 0.01 * VTrap(-(v + 55), 10) }
func (Classic) BetaN(v float32) float32  { return 0.125 * math32.Exp(-(v+65)/80) }

// MInf, HInf, NInf are the steady-state gate values at v
func (c Classic) MInf(v float32) float32 { return Inf(c.AlphaM(v), c.BetaM(v)) }
func (c Classic) HInf(v float32) float32 { return Inf(c.AlphaH(v), c.BetaH(v)) }
func (c Classic) NInf(v float32) float32 { return Inf(c.AlphaN(v), c.BetaN(v)) }

// Shifted has the rate constants in the original HH convention (rest = 0 mV).
// There is no h gate: the model using it approximates h by a linear
// function of n.
type Shifted struct{}

func (Shifted) AlphaM(v float32) float32 { return 0.1 * VTrap(25-v, 10) }
func (Shifted) BetaM(v float32) float32  { return 4 * math32.Exp(-v/18) }
func (Shifted) AlphaN(v float32) float32 { return 0.01 * VTrap(10-v, 10) }
func (Shifted) BetaN(v float32) float32  { return 0.125 * math32.Exp(-v/80) }

func (s Shifted) MInf(v float32) float32 { return Inf(s.AlphaM(v), s.BetaM(v)) }
func (s Shifted) NInf(v float32) float32 { return Inf(s.AlphaN(v), s.BetaN(v)) }
