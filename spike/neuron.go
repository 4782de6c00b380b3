// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/goki/ki/bitflag"
	"github.com/goki/ki/kit"
)

// NeuronVarStart is the byte offset of fields in the Neuron structure
// where the float32 named variables start.
// Note: all non-float32 infrastructure variables must be at the start!
const NeuronVarStart = 4

// spike.Neuron holds all of the state of one Hodgkin-Huxley neuron.
// Which of the gating variables are used depends on the Model:
// the classic model uses V, M, H, N and the recurrent model uses V, N, A, S.
// All variables accessible via VarByName must be float32 and start at the top,
// in contiguous order.
type Neuron struct {
	Flags NeurFlags `desc:"bit flags for binary state variables"`

	V       float32 `desc:"membrane potential in mV"`
	M       float32 `desc:"sodium activation gate (classic model only -- the recurrent model uses the instantaneous steady state)"`
	H       float32 `desc:"sodium inactivation gate (classic model only)"`
	N       float32 `desc:"potassium activation gate"`
	A       float32 `desc:"synaptic activation driven by the soft spike threshold (recurrent model only)"`
	S       float32 `desc:"synaptic resource availability, depressed by activity (recurrent model only)"`
	IExt    float32 `desc:"external current in uA/cm^2 for the current step: applied current plus stimulus"`
	GSyn    float32 `desc:"accumulated normalized synaptic conductance from incoming spikes (recurrent model only) -- multiplied by the GSyn maximal conductance"`
	Spike   float32 `desc:"1 if the neuron emitted a spike on the current step, else 0"`
	LastSpk float32 `desc:"time in ms of the most recent spike, -1 if none yet"`
	PeakV   float32 `desc:"running maximum of V while above threshold, for peak spike detection"`
	PeakT   float32 `desc:"time in ms of PeakV"`
}

var NeuronVars = []string{"V", "M", "H", "N", "A", "S", "IExt", "GSyn", "Spike", "LastSpk", "PeakV", "PeakT"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIndexByName returns the index of the variable in the Neuron, or error
func NeuronVarIndexByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	fv := (*float32)(unsafe.Pointer(uintptr(unsafe.Pointer(nrn)) + uintptr(NeuronVarStart+4*idx)))
	return *fv
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIndexByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return nrn.VarByIndex(i), nil
}

func (nrn *Neuron) HasFlag(flag NeurFlags) bool {
	return bitflag.Has32(int32(nrn.Flags), int(flag))
}

func (nrn *Neuron) SetFlag(flag NeurFlags) {
	bitflag.Set32((*int32)(&nrn.Flags), int(flag))
}

func (nrn *Neuron) ClearFlag(flag NeurFlags) {
	bitflag.Clear32((*int32)(&nrn.Flags), int(flag))
}

// NeurFlags are bit-flags encoding relevant binary state for neurons
type NeurFlags int32

var KiT_NeurFlags = kit.Enums.AddEnum(NeurFlagsN, kit.BitFlag, nil)

// The neuron flags
const (
	// NeurAbove is set while V is above the spike threshold in PeakDetect mode
	NeurAbove NeurFlags = iota

	// NeurPeaked is set once the spike for the current suprathreshold
	// excursion has been emitted in PeakDetect mode
	NeurPeaked

	NeurFlagsN
)
