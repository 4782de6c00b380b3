// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"fmt"
	"reflect"

	"github.com/emer/hhstdp/stdp"
	"github.com/goki/ki/bitflag"
	"github.com/goki/ki/kit"
)

// spike.Synapse holds state for the plastic synaptic connection from
// neuron Pre to neuron Post.  The float32 variables must come first.
type Synapse struct {
	Wt    float32  `desc:"synaptic weight value, always within [0, WtMax]"`
	Apre  float32  `desc:"pre-synaptic eligibility trace, as of time LastT"`
	Apost float32  `desc:"post-synaptic eligibility trace, as of time LastT"`
	LastT float32  `desc:"time in ms at which the traces were last brought up to date"`
	Pre   int32    `desc:"index of the sending neuron"`
	Post  int32    `desc:"index of the receiving neuron"`
	Flags SynFlags `desc:"bit flags for binary state"`
}

var SynapseVars = []string{"Wt", "Apre", "Apost", "LastT"}

var SynapseVarsMap map[string]int

func init() {
	SynapseVarsMap = make(map[string]int, len(SynapseVars))
	for i, v := range SynapseVars {
		SynapseVarsMap[v] = i
	}
}

func (sy *Synapse) VarNames() []string {
	return SynapseVars
}

// SynapseVarByName returns the index of the variable in the Synapse, or error
func SynapseVarByName(varNm string) (int, error) {
	i, ok := SynapseVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Synapse VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SynapseVars list)
func (sy *Synapse) VarByIndex(idx int) float32 {
	v := reflect.ValueOf(*sy)
	return v.Field(idx).Interface().(float32)
}

// VarByName returns variable by name, or error
func (sy *Synapse) VarByName(varNm string) (float32, error) {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return 0, err
	}
	return sy.VarByIndex(i), nil
}

func (sy *Synapse) HasFlag(flag SynFlags) bool {
	return bitflag.Has32(int32(sy.Flags), int(flag))
}

func (sy *Synapse) SetFlag(flag SynFlags) {
	bitflag.Set32((*int32)(&sy.Flags), int(flag))
}

func (sy *Synapse) ClearFlag(flag SynFlags) {
	bitflag.Clear32((*int32)(&sy.Flags), int(flag))
}

// IsOff returns true if the synapse is disconnected: it neither transmits
// nor learns, and its state is frozen until it is reconnected.
func (sy *Synapse) IsOff() bool {
	return sy.HasFlag(SynOff)
}

// catchUp decays the traces to time t
func (sy *Synapse) catchUp(sp *stdp.Params, t float32) {
	if t > sy.LastT {
		sp.Decay(&sy.Apre, &sy.Apost, t-sy.LastT)
		sy.LastT = t
	}
}

// OnPre applies a pre-synaptic spike at time t
func (sy *Synapse) OnPre(sp *stdp.Params, t float32) {
	if !sp.On {
		return
	}
	sy.catchUp(sp, t)
	sp.OnPre(&sy.Wt, &sy.Apre, &sy.Apost)
}

// OnPost applies a post-synaptic spike at time t
func (sy *Synapse) OnPost(sp *stdp.Params, t float32) {
	if !sp.On {
		return
	}
	sy.catchUp(sp, t)
	sp.OnPost(&sy.Wt, &sy.Apre, &sy.Apost)
}

// SynFlags are bit-flags encoding binary state for synapses
type SynFlags int32

var KiT_SynFlags = kit.Enums.AddEnum(SynFlagsN, kit.BitFlag, nil)

const (
	// SynOff flag indicates that the synapse is disconnected
	SynOff SynFlags = iota

	SynFlagsN
)
