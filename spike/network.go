// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
	"github.com/emer/hhstdp/stdp"
)

// WtInitParams are the initial weight parameters: weights are drawn
// uniformly from [Min, Max] with a random source seeded by Seed.
type WtInitParams struct {
	Min  float32 `def:"0" min:"0" desc:"minimum initial weight"`
	Max  float32 `def:"1" min:"0" desc:"maximum initial weight"`
	Seed int64   `desc:"random seed for the initial weights -- the same seed gives the same weights"`

	Rnd erand.RndParams `view:"-" desc:"distribution parameters, set from Min, Max by Update"`
}

func (wp *WtInitParams) Defaults() {
	wp.Min = 0
	wp.Max = 1
	wp.Seed = 1
	wp.Update()
}

// Update must be called after any changes to parameters
func (wp *WtInitParams) Update() {
	wp.Rnd.Dist = erand.Uniform
	wp.Rnd.Mean = float64(wp.Min+wp.Max) / 2
	wp.Rnd.Var = float64(wp.Max-wp.Min) / 2
}

// spike.Network is a fully connected network of N Hodgkin-Huxley neurons,
// with one plastic Synapse for every ordered pair of distinct neurons.
// Synapses are stored in one arena, ordered by sender then receiver,
// so the synapses sent by one neuron are contiguous.  Disconnected
// synapses stay in the arena with the SynOff flag.
type Network struct {
	Model  Models       `desc:"which neuron model variant the network uses"`
	HH     HHModel      `viewif:"Model=Classic" desc:"classic Hodgkin-Huxley model params"`
	SynHH  SynHHModel   `viewif:"Model=Recurrent" desc:"recurrent Hodgkin-Huxley model params"`
	Act    ActParams    `view:"inline" desc:"integration, spike detection and transmission params"`
	STDP   stdp.Params  `view:"inline" desc:"spike-timing-dependent plasticity params"`
	WtInit WtInitParams `view:"inline" desc:"initial weight params"`
	NNeurs int          `desc:"number of neurons"`

	Neurons  []Neuron   `view:"-" desc:"neuron state, one per neuron"`
	Syns     []Synapse  `view:"-" desc:"synapse arena: the synapse from pre to post is at SynIdx(pre, post)"`
	RecvSyns [][]int32  `view:"-" desc:"for each receiving neuron, the arena indexes of its synapses, in sender order"`
	IApp     []float32  `view:"-" desc:"constant applied current per neuron in uA/cm^2"`
	Stims    []Stimulus `view:"-" desc:"time-varying stimulus per neuron, nil for none"`
	Time     float32    `inactive:"+" desc:"time in ms of the last step applied by the Integrator"`
}

// NewNetwork returns a new Network of n neurons of the given model, with
// default params.  Call Build to allocate it.
func NewNetwork(mod Models, n int) *Network {
	nt := &Network{}
	nt.Defaults(mod)
	nt.NNeurs = n
	return nt
}

// Defaults sets the default params for the given model variant
func (nt *Network) Defaults(mod Models) {
	nt.Model = mod
	nt.HH.Defaults()
	nt.SynHH.Defaults()
	nt.Act.Defaults(mod)
	nt.STDP.Defaults()
	nt.WtInit.Defaults()
	if mod == Recurrent {
		nt.STDP.Trace = stdp.TraceAdd
		nt.STDP.APlus = 0.1
		nt.STDP.AMinus = 0.105
		nt.STDP.WtRange.Max = 2
		nt.WtInit.Seed = 42
	}
	nt.Update()
}

// Update must be called after any changes to parameters
func (nt *Network) Update() {
	nt.HH.Update()
	nt.SynHH.Update()
	nt.STDP.Update()
	nt.WtInit.Update()
}

// Build creates a classic network of n neurons in which every ordered pair
// of distinct neurons is connected by one plastic synapse with an initial
// weight drawn uniformly from [wMin, wMax].  Weights are clipped into
// [0, wMax] after every update.
func Build(n int, wMin, wMax, tauPre, tauPost, aPlus, aMinus float32) (*Network, error) {
	nt := NewNetwork(Classic, n)
	nt.WtInit.Min = wMin
	nt.WtInit.Max = wMax
	nt.STDP.TauPre = tauPre
	nt.STDP.TauPost = tauPost
	nt.STDP.APlus = aPlus
	nt.STDP.AMinus = aMinus
	nt.STDP.WtRange.Max = wMax
	nt.Update()
	if err := nt.Build(); err != nil {
		return nil, err
	}
	return nt, nil
}

// CurModel returns the Model of the current model variant
func (nt *Network) CurModel() Model {
	if nt.Model == Recurrent {
		return &nt.SynHH
	}
	return &nt.HH
}

// Validate checks the params, returning an *InvalidConfigError for the first
// invalid value
func (nt *Network) Validate() error {
	finite := func(v float32) bool { return !math32.IsNaN(v) && !math32.IsInf(v, 0) }
	switch {
	case nt.Model < 0 || nt.Model >= ModelsN:
		return &InvalidConfigError{"Model", fmt.Sprintf("unknown model %d", nt.Model)}
	case nt.NNeurs <= 0:
		return &InvalidConfigError{"N", fmt.Sprintf("must be > 0, is %d", nt.NNeurs)}
	case !finite(nt.WtInit.Min) || !finite(nt.WtInit.Max) || nt.WtInit.Min < 0:
		return &InvalidConfigError{"WMin", fmt.Sprintf("must be finite and >= 0, is %g", nt.WtInit.Min)}
	case nt.WtInit.Min > nt.WtInit.Max:
		return &InvalidConfigError{"WMin", fmt.Sprintf("%g must be <= WMax %g", nt.WtInit.Min, nt.WtInit.Max)}
	case !finite(nt.STDP.WtRange.Max) || nt.STDP.WtRange.Max < 0:
		return &InvalidConfigError{"WtMax", fmt.Sprintf("must be finite and >= 0, is %g", nt.STDP.WtRange.Max)}
	case nt.WtInit.Max > nt.STDP.WtRange.Max:
		return &InvalidConfigError{"WMax", fmt.Sprintf("%g must be <= WtMax %g", nt.WtInit.Max, nt.STDP.WtRange.Max)}
	case !finite(nt.STDP.TauPre) || nt.STDP.TauPre <= 0:
		return &InvalidConfigError{"TauPre", fmt.Sprintf("must be > 0, is %g", nt.STDP.TauPre)}
	case !finite(nt.STDP.TauPost) || nt.STDP.TauPost <= 0:
		return &InvalidConfigError{"TauPost", fmt.Sprintf("must be > 0, is %g", nt.STDP.TauPost)}
	case !finite(nt.STDP.APlus) || nt.STDP.APlus < 0:
		return &InvalidConfigError{"APlus", fmt.Sprintf("must be >= 0, is %g", nt.STDP.APlus)}
	case !finite(nt.STDP.AMinus) || nt.STDP.AMinus < 0:
		return &InvalidConfigError{"AMinus", fmt.Sprintf("must be >= 0, is %g", nt.STDP.AMinus)}
	case nt.Act.Method < 0 || nt.Act.Method >= MethodsN:
		return &InvalidConfigError{"Method", fmt.Sprintf("unknown method %d", nt.Act.Method)}
	case nt.Act.Spike.Mode < 0 || nt.Act.Spike.Mode >= SpikeModesN:
		return &InvalidConfigError{"SpikeMode", fmt.Sprintf("unknown spike mode %d", nt.Act.Spike.Mode)}
	case nt.Act.Coupling < 0 || nt.Act.Coupling >= CouplingsN:
		return &InvalidConfigError{"Coupling", fmt.Sprintf("unknown coupling %d", nt.Act.Coupling)}
	}
	if nt.Model == Classic && nt.HH.C <= 0 {
		return &InvalidConfigError{"C", fmt.Sprintf("must be > 0, is %g", nt.HH.C)}
	}
	if nt.Model == Recurrent {
		sh := &nt.SynHH
		switch {
		case sh.C <= 0:
			return &InvalidConfigError{"C", fmt.Sprintf("must be > 0, is %g", sh.C)}
		case sh.TauS <= 0:
			return &InvalidConfigError{"TauS", fmt.Sprintf("must be > 0, is %g", sh.TauS)}
		case sh.TauF <= 0:
			return &InvalidConfigError{"TauF", fmt.Sprintf("must be > 0, is %g", sh.TauF)}
		case sh.Slope <= 0:
			return &InvalidConfigError{"Slope", fmt.Sprintf("must be > 0, is %g", sh.Slope)}
		case sh.SynDecayTau < 0:
			return &InvalidConfigError{"SynDecayTau", fmt.Sprintf("must be >= 0, is %g", sh.SynDecayTau)}
		}
	}
	if nt.IApp != nil && len(nt.IApp) != nt.NNeurs {
		return &InvalidConfigError{"IApp", fmt.Sprintf("must have N = %d values, has %d", nt.NNeurs, len(nt.IApp))}
	}
	if nt.Stims != nil && len(nt.Stims) != nt.NNeurs {
		return &InvalidConfigError{"Stims", fmt.Sprintf("must have N = %d values, has %d", nt.NNeurs, len(nt.Stims))}
	}
	return nil
}

// Build validates the params and then allocates and initializes the
// neurons and synapses.  It is all-or-nothing: on error the network is
// left exactly as it was.
func (nt *Network) Build() error {
	if err := nt.Validate(); err != nil {
		return err
	}
	nt.Update()
	n := nt.NNeurs
	nsyn := n * (n - 1)
	nrns := make([]Neuron, n)
	syns := make([]Synapse, nsyn)
	recv := make([][]int32, n)
	for ri := range recv {
		recv[ri] = make([]int32, 0, n-1)
	}
	rnd := erand.NewSysRand(nt.WtInit.Seed)
	si := 0
	for pi := 0; pi < n; pi++ {
		for ri := 0; ri < n; ri++ {
			if pi == ri {
				continue
			}
			sy := &syns[si]
			sy.Pre = int32(pi)
			sy.Post = int32(ri)
			sy.Wt = nt.STDP.Clip(float32(nt.WtInit.Rnd.Gen(-1, rnd)))
			recv[ri] = append(recv[ri], int32(si))
			si++
		}
	}
	iapp := nt.IApp
	if iapp == nil {
		iapp = make([]float32, n)
	}
	stims := nt.Stims
	if stims == nil {
		stims = make([]Stimulus, n)
	}

	nt.Neurons = nrns
	nt.Syns = syns
	nt.RecvSyns = recv
	nt.IApp = iapp
	nt.Stims = stims
	nt.InitActs()
	return nil
}

// InitActs sets all neurons to their initial resting state
func (nt *Network) InitActs() {
	md := nt.CurModel()
	for ni := range nt.Neurons {
		nrn := &nt.Neurons[ni]
		*nrn = Neuron{}
		md.Init(nrn)
		nrn.LastSpk = -1
	}
}

// IsBuilt returns true if the network has been built
func (nt *Network) IsBuilt() bool {
	return len(nt.Neurons) > 0 && len(nt.Neurons) == nt.NNeurs
}

// SynIdx returns the arena index of the synapse from pre to post, without
// any checking
func (nt *Network) SynIdx(pre, post int) int {
	si := pre*(nt.NNeurs-1) + post
	if post > pre {
		si--
	}
	return si
}

// SynIndex returns the arena index of the synapse from pre to post,
// or an *InvalidTopologyError for a self-synapse or out of range index
func (nt *Network) SynIndex(pre, post int) (int, error) {
	if pre < 0 || pre >= nt.NNeurs || post < 0 || post >= nt.NNeurs {
		return -1, &InvalidTopologyError{Pre: pre, Post: post, Msg: fmt.Sprintf("neuron index out of range [0, %d)", nt.NNeurs)}
	}
	if pre == post {
		return -1, &InvalidTopologyError{Pre: pre, Post: post, Msg: "self-synapses are not allowed"}
	}
	return nt.SynIdx(pre, post), nil
}

// Synapse returns the synapse from pre to post, or an *InvalidTopologyError
func (nt *Network) Synapse(pre, post int) (*Synapse, error) {
	si, err := nt.SynIndex(pre, post)
	if err != nil {
		return nil, err
	}
	return &nt.Syns[si], nil
}

// SendSyns returns the synapses sent by neuron pre, in receiver order
func (nt *Network) SendSyns(pre int) []Synapse {
	n := nt.NNeurs - 1
	return nt.Syns[pre*n : (pre+1)*n]
}

// ModifyConnectivity sets the connectivity from the N x N matrix W:
// W[i][j] == 0 disconnects the synapse from i to j, freezing its state,
// and W[i][j] != 0 connects it and sets its weight to W[i][j] directly,
// bypassing the learning rule.  The traces are left as they are: a
// disconnected synapse holds its traces as of the time it was disconnected,
// and they resume decaying from the time it is reconnected.
// W must have a zero diagonal, and all values must be within [0, WtMax],
// else an *InvalidTopologyError is returned and nothing is changed.
func (nt *Network) ModifyConnectivity(W [][]float32) error {
	if err := nt.CheckConnectivity(W); err != nil {
		return err
	}
	for pi, row := range W {
		for ri, w := range row {
			if pi == ri {
				continue
			}
			sy := &nt.Syns[nt.SynIdx(pi, ri)]
			if w == 0 {
				if !sy.IsOff() {
					sy.catchUp(&nt.STDP, nt.Time)
					sy.SetFlag(SynOff)
				}
				continue
			}
			if sy.IsOff() {
				sy.LastT = math32.Max(sy.LastT, nt.Time)
				sy.ClearFlag(SynOff)
			}
			sy.Wt = w
		}
	}
	return nil
}

// CheckConnectivity returns an *InvalidTopologyError if W is not a valid
// connectivity matrix for ModifyConnectivity
func (nt *Network) CheckConnectivity(W [][]float32) error {
	n := nt.NNeurs
	if !nt.IsBuilt() {
		return &InvalidTopologyError{Pre: -1, Post: -1, Msg: "network is not built"}
	}
	if len(W) != n {
		return &InvalidTopologyError{Pre: -1, Post: -1, Msg: fmt.Sprintf("matrix has %d rows, must be %d x %d", len(W), n, n)}
	}
	wmax := nt.STDP.WtRange.Max
	for pi, row := range W {
		if len(row) != n {
			return &InvalidTopologyError{Pre: pi, Post: -1, Msg: fmt.Sprintf("row has %d columns, must be %d", len(row), n)}
		}
		for ri, w := range row {
			switch {
			case pi == ri && w != 0:
				return &InvalidTopologyError{Pre: pi, Post: ri, Msg: fmt.Sprintf("diagonal must be zero, is %g", w)}
			case math32.IsNaN(w) || math32.IsInf(w, 0):
				return &InvalidTopologyError{Pre: pi, Post: ri, Msg: "weight is not finite"}
			case w < 0 || w > wmax:
				return &InvalidTopologyError{Pre: pi, Post: ri, Msg: fmt.Sprintf("weight %g outside of [0, %g]", w, wmax)}
			}
		}
	}
	return nil
}

// Weights returns the N x N matrix of current weights, with 0 on the
// diagonal and for disconnected synapses
func (nt *Network) Weights() [][]float32 {
	n := nt.NNeurs
	W := make([][]float32, n)
	for pi := range W {
		W[pi] = make([]float32, n)
	}
	for si := range nt.Syns {
		sy := &nt.Syns[si]
		if sy.IsOff() {
			continue
		}
		W[sy.Pre][sy.Post] = sy.Wt
	}
	return W
}

// SetIApp sets the constant applied current of each neuron
func (nt *Network) SetIApp(iapp []float32) error {
	if len(iapp) != nt.NNeurs {
		return &InvalidConfigError{"IApp", fmt.Sprintf("must have N = %d values, has %d", nt.NNeurs, len(iapp))}
	}
	nt.IApp = append(nt.IApp[:0], iapp...)
	return nil
}

// SetStimulus sets the stimulus of neuron ni, nil for none
func (nt *Network) SetStimulus(ni int, st Stimulus) error {
	if ni < 0 || ni >= len(nt.Stims) {
		return &InvalidConfigError{"Stims", fmt.Sprintf("neuron index %d out of range [0, %d)", ni, len(nt.Stims))}
	}
	nt.Stims[ni] = st
	return nil
}

// SetStimulusAll sets the same stimulus for all neurons
func (nt *Network) SetStimulusAll(st Stimulus) {
	for ni := range nt.Stims {
		nt.Stims[ni] = st
	}
}

// SizeReport returns a string reporting the size of the network
func (nt *Network) SizeReport() string {
	var b strings.Builder
	nn := len(nt.Neurons)
	nmem := nn * int(unsafe.Sizeof(Neuron{}))
	ns := len(nt.Syns)
	smem := ns*int(unsafe.Sizeof(Synapse{})) + ns*4
	off := 0
	for si := range nt.Syns {
		if nt.Syns[si].IsOff() {
			off++
		}
	}
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d (%d off) \t SynMem: %v\n", nt.Model, nn, (datasize.ByteSize)(nmem).HumanReadable(), ns, off, (datasize.ByteSize)(smem).HumanReadable())
	return b.String()
}
