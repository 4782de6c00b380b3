// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/timer"
	"github.com/goki/ki/ints"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

///////////////////////////////////////////////////////////////////////
//  integrator.go contains the fixed-step run loop

// Spike is one spike event: the neuron and the time of the spike in ms
type Spike struct {
	Neuron int
	Time   float32
}

// Recorder receives the trajectory of a run.  All calls are made
// synchronously from the run loop, in time order, and must not retain
// the Network.
type Recorder interface {
	// RecordStates is called every StateInterval with the neuron state
	RecordStates(t float32, nt *Network)

	// RecordSpikes is called on every step that has spikes
	RecordSpikes(spks []Spike)

	// RecordWeights is called every WtInterval with the synapse state
	RecordWeights(t float32, nt *Network)
}

// RunResult reports the outcome of one Run
type RunResult struct {
	State     RunStates `desc:"state of the integrator after the run: Completed, Failed or Canceled"`
	StartTime float32   `desc:"simulation time in ms at the start of the run"`
	EndTime   float32   `desc:"simulation time in ms of the last good step of the run"`
	Steps     int       `desc:"number of steps completed"`
	Spikes    []Spike   `desc:"all spikes of the run, in time order"`
	WallSecs  float64   `desc:"wall-clock duration of the run in seconds"`
}

// Integrator is the fixed-step scheduler that drives a Network forward in
// time: on each step it computes the external currents, updates all the
// neurons, detects spikes, and applies the synaptic updates of the spikes.
// It holds no numeric state of its own beyond the clock.
type Integrator struct {
	Net           *Network   `desc:"the network being integrated"`
	Time          Time       `desc:"simulation clock"`
	NThreads      int        `desc:"number of goroutines for the neuron updates -- <= 1 updates them serially"`
	StateInterval float32    `desc:"interval in ms between state recordings, 0 = none"`
	WtInterval    float32    `desc:"interval in ms between weight recordings, 0 = none"`
	Recorder      Recorder   `view:"-" desc:"optional sink for the recorded trajectory"`
	State         RunStates  `inactive:"+" desc:"current run state"`
	Timer         timer.Time `view:"-" desc:"accumulated wall-clock time over all runs"`

	mu     sync.Mutex
	spks   []Spike
	spkT   []float32
	dV     []float32
	dG     []float32
	thrBad []int
}

// NewIntegrator returns a new Integrator for the built network with step
// size dt in ms
func NewIntegrator(nt *Network, dt float32) (*Integrator, error) {
	if nt == nil || !nt.IsBuilt() {
		return nil, &InvalidConfigError{"Net", "network must be built"}
	}
	if !(dt > 0) || math32.IsInf(dt, 0) {
		return nil, &InvalidConfigError{"Dt", fmt.Sprintf("must be > 0, is %g", dt)}
	}
	it := &Integrator{Net: nt}
	it.Time.Dt = dt
	it.Time.Reset()
	nt.Time = 0
	return it, nil
}

// Reset returns the network to its initial neuron state and the clock to 0,
// leaving the synapses as they are.  A Failed integrator cannot be Reset:
// the network must be rebuilt.
func (it *Integrator) Reset() error {
	it.mu.Lock()
	defer it.mu.Unlock()
	switch it.State {
	case Running:
		return ErrRunning
	case Failed:
		return ErrRunFailed
	}
	it.Net.InitActs()
	it.Time.Reset()
	it.Net.Time = 0
	it.State = Idle
	return nil
}

// Run advances the network by round(dur / Dt) steps.  The context is checked
// between steps: on cancellation the partial result is returned together
// with the context's error.  A numerical divergence or stimulus error aborts
// the run and leaves the integrator Failed.  Time continues across runs.
func (it *Integrator) Run(ctx context.Context, dur float32) (*RunResult, error) {
	it.mu.Lock()
	switch it.State {
	case Running:
		it.mu.Unlock()
		return nil, ErrRunning
	case Failed:
		it.mu.Unlock()
		return nil, ErrRunFailed
	}
	if !(dur > 0) || math32.IsInf(dur, 0) {
		it.mu.Unlock()
		return nil, &InvalidConfigError{"Duration", fmt.Sprintf("must be > 0, is %g", dur)}
	}
	it.State = Running
	it.mu.Unlock()

	nsteps := int(math32.Round(dur / it.Time.Dt))
	res := &RunResult{StartTime: it.Time.Time, EndTime: it.Time.Time}
	tmr := timer.Time{}
	tmr.Start()
	it.Timer.Start()

	if it.Time.Cycle == 0 {
		it.record(nil)
	}
	var err error
	st := Completed
	for s := 0; s < nsteps; s++ {
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
			st = Canceled
			break
		}
		if err = it.step(); err != nil {
			st = Failed
			break
		}
		res.Steps++
		res.EndTime = it.Time.Time
		res.Spikes = append(res.Spikes, it.spks...)
		it.record(it.spks)
	}

	tmr.Stop()
	it.Timer.Stop()
	res.WallSecs = tmr.TotalSecs()
	res.State = st
	it.mu.Lock()
	it.State = st
	it.mu.Unlock()
	return res, err
}

// record sends the current state to the Recorder
func (it *Integrator) record(spks []Spike) {
	rec := it.Recorder
	if rec == nil {
		return
	}
	if len(spks) > 0 {
		rec.RecordSpikes(spks)
	}
	cyc := it.Time.Cycle
	if n := it.cyclesPer(it.StateInterval); n > 0 && cyc%n == 0 {
		rec.RecordStates(it.Time.Time, it.Net)
	}
	if n := it.cyclesPer(it.WtInterval); n > 0 && cyc%n == 0 {
		rec.RecordWeights(it.Time.Time, it.Net)
	}
}

// cyclesPer returns the number of steps in the interval, 0 if none
func (it *Integrator) cyclesPer(ival float32) int {
	if ival <= 0 {
		return 0
	}
	return ints.MaxInt(1, int(math32.Round(ival/it.Time.Dt)))
}

// step advances the network by one step
func (it *Integrator) step() error {
	nt := it.Net
	tm := &it.Time
	t0 := tm.Time
	t1 := tm.TimeAt(tm.Cycle + 1)
	n := len(nt.Neurons)
	if len(it.spkT) != n {
		it.spkT = make([]float32, n)
		it.dV = make([]float32, n)
		it.dG = make([]float32, n)
	}

	if err := it.extInputs(t0); err != nil {
		return err
	}
	if ni, vnm := it.cycleNeurons(t1); ni >= 0 {
		return &NumericalDivergenceError{Step: tm.Cycle, Time: t0, Neuron: ni, Synapse: -1, Var: vnm}
	}

	it.spks = it.spks[:0]
	for ni := range nt.Neurons {
		if nt.Neurons[ni].Spike > 0 {
			it.spks = append(it.spks, Spike{Neuron: ni, Time: it.spkT[ni]})
		}
	}
	if si, vnm := it.sendSpikes(); si >= 0 {
		return &NumericalDivergenceError{Step: tm.Cycle, Time: t0, Neuron: -1, Synapse: si, Var: vnm}
	}
	if ni, vnm := it.commitDeltas(); ni >= 0 {
		return &NumericalDivergenceError{Step: tm.Cycle, Time: t0, Neuron: ni, Synapse: -1, Var: vnm}
	}
	for _, sp := range it.spks {
		nt.Neurons[sp.Neuron].LastSpk = sp.Time
	}
	tm.CycleInc()
	nt.Time = tm.Time
	return nil
}

// extInputs sets the external current of each neuron for the step starting at t
func (it *Integrator) extInputs(t float32) error {
	nt := it.Net
	for ni := range nt.Neurons {
		iext := nt.IApp[ni]
		if st := nt.Stims[ni]; st != nil {
			c, err := st.CurrentAt(t)
			if err != nil {
				var se *StimulusLookupError
				if errors.As(err, &se) {
					se.Neuron = ni
				}
				return err
			}
			iext += c
		}
		nt.Neurons[ni].IExt = iext
	}
	return nil
}

// cycleNeurons integrates all neurons to time t and detects their spikes,
// using NThreads goroutines.  It returns the lowest index of a neuron
// with non-finite state and the variable name, or -1.
func (it *Integrator) cycleNeurons(t float32) (int, string) {
	nt := it.Net
	n := len(nt.Neurons)
	nthr := ints.MinInt(it.NThreads, n)
	if nthr <= 1 {
		for ni := 0; ni < n; ni++ {
			if vnm := it.cycleNeuron(ni, t); vnm != "" {
				return ni, vnm
			}
		}
		return -1, ""
	}
	if len(it.thrBad) != nthr {
		it.thrBad = make([]int, nthr)
	}
	chunk := (n + nthr - 1) / nthr
	var wg sync.WaitGroup
	for th := 0; th < nthr; th++ {
		st := th * chunk
		ed := ints.MinInt(st+chunk, n)
		it.thrBad[th] = -1
		wg.Add(1)
		go func(th, st, ed int) {
			defer wg.Done()
			for ni := st; ni < ed; ni++ {
				if vnm := it.cycleNeuron(ni, t); vnm != "" {
					it.thrBad[th] = ni
					return
				}
			}
		}(th, st, ed)
	}
	wg.Wait()
	for _, ni := range it.thrBad {
		if ni >= 0 {
			_, vnm := finiteState(nt.CurModel(), &nt.Neurons[ni])
			return ni, vnm
		}
	}
	return -1, ""
}

// cycleNeuron integrates one neuron to time t and detects its spike,
// returning the name of a non-finite state variable, or ""
func (it *Integrator) cycleNeuron(ni int, t float32) string {
	nt := it.Net
	nrn := &nt.Neurons[ni]
	md := nt.CurModel()
	nt.Act.Integrate(md, nrn, it.Time.Dt)
	if nt.Model == Recurrent {
		nt.SynHH.DecaySyn(nrn, it.Time.Dt)
	}
	if ok, vnm := finiteState(md, nrn); !ok {
		return vnm
	}
	nrn.Spike = 0
	if spk, st := nt.Act.Spike.SpikeFmV(nrn, t); spk {
		nrn.Spike = 1
		it.spkT[ni] = st
	}
	return ""
}

// finiteState checks the integrated state of the neuron, returning false
// and the variable name if it is not finite
func finiteState(md Model, nrn *Neuron) (bool, string) {
	x := md.State(nrn)
	vars := md.StateVars()
	for i, v := range [4]float32{x.X, x.Y, x.Z, x.W} {
		if mat32.IsNaN(v) || mat32.IsInf(v, 0) {
			return false, vars[i]
		}
	}
	return true, ""
}

// sendSpikes applies the synaptic effects of the spikes of the step:
// first all pre-synaptic events in neuron order, then all post-synaptic
// events.  Transmission uses the weight before the update and is
// accumulated into dV / dG.  It returns the index of a synapse with
// non-finite state and the variable name, or -1.
func (it *Integrator) sendSpikes() (int, string) {
	nt := it.Net
	sp := &nt.STDP
	n1 := nt.NNeurs - 1
	for _, spk := range it.spks {
		pnrn := &nt.Neurons[spk.Neuron]
		act := pnrn.A * pnrn.S
		off := spk.Neuron * n1
		syns := nt.SendSyns(spk.Neuron)
		for i := range syns {
			sy := &syns[i]
			if sy.IsOff() {
				continue
			}
			switch nt.Act.Coupling {
			case VoltageBump:
				it.dV[sy.Post] += sy.Wt
			case SynActivation:
				it.dG[sy.Post] += sy.Wt * act
			}
			sy.OnPre(sp, spk.Time)
			if vnm := finiteSyn(sy); vnm != "" {
				return off + i, vnm
			}
		}
	}
	for _, spk := range it.spks {
		for _, si := range nt.RecvSyns[spk.Neuron] {
			sy := &nt.Syns[si]
			if sy.IsOff() {
				continue
			}
			sy.OnPost(sp, spk.Time)
			if vnm := finiteSyn(sy); vnm != "" {
				return int(si), vnm
			}
		}
	}
	return -1, ""
}

// finiteSyn returns the name of a non-finite synapse variable, or ""
func finiteSyn(sy *Synapse) string {
	switch {
	case mat32.IsNaN(sy.Wt) || mat32.IsInf(sy.Wt, 0):
		return "Wt"
	case mat32.IsNaN(sy.Apre) || mat32.IsInf(sy.Apre, 0):
		return "Apre"
	case mat32.IsNaN(sy.Apost) || mat32.IsInf(sy.Apost, 0):
		return "Apost"
	}
	return ""
}

// commitDeltas applies the accumulated transmission to each neuron once,
// returning the index of a neuron with non-finite result, or -1
func (it *Integrator) commitDeltas() (int, string) {
	nt := it.Net
	for ni := range nt.Neurons {
		nrn := &nt.Neurons[ni]
		if dv := it.dV[ni]; dv != 0 {
			nrn.V += dv
			it.dV[ni] = 0
			if mat32.IsInf(nrn.V, 0) || mat32.IsNaN(nrn.V) {
				return ni, "V"
			}
		}
		if dg := it.dG[ni]; dg != 0 {
			nrn.GSyn += dg
			it.dG[ni] = 0
			if mat32.IsInf(nrn.GSyn, 0) || mat32.IsNaN(nrn.GSyn) {
				return ni, "GSyn"
			}
		}
	}
	return -1, ""
}

//////////////////////////////////////////////////////////////////////////////////////
//  Enums

// RunStates are the states of the Integrator
type RunStates int32

var KiT_RunStates = kit.Enums.AddEnum(RunStatesN, kit.NotBitFlag, nil)

const (
	// Idle is the state before the first run
	Idle RunStates = iota

	// Running is the state during a run
	Running

	// Completed is the state after a run that reached its duration
	Completed

	// Failed is the state after a run aborted by an error -- it is terminal
	Failed

	// Canceled is the state after a run stopped by its context
	Canceled

	RunStatesN
)
