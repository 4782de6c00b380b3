// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package record provides an etable based spike.Recorder, which keeps the
trajectory of a run in three append-only tables, one row per sample:

  - States: Time, Neuron and the model state variables of each neuron
  - Spikes: Time, Neuron of each spike
  - Weights: Time, Pre, Post and the state of each connected synapse

The tables can be saved as CSV files for plotting and analysis.
*/
package record

import (
	"fmt"
	"path/filepath"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
	"github.com/emer/hhstdp/spike"
	"github.com/goki/gi/gi"
)

var _ spike.Recorder = (*Recorder)(nil)

// Recorder records the trajectory of a run into etables
type Recorder struct {
	States    *etable.Table `view:"no-inline" desc:"neuron state, one row per neuron per state sample"`
	Spikes    *etable.Table `view:"no-inline" desc:"one row per spike"`
	Weights   *etable.Table `view:"no-inline" desc:"synapse state, one row per connected synapse per weight sample"`
	Neurons   []int         `desc:"neurons to record the state of -- all if empty"`
	StateVars []string      `inactive:"+" desc:"neuron variables in the States table, set from the model on the first sample"`
}

// New returns a new Recorder with empty tables
func New() *Recorder {
	rc := &Recorder{}
	rc.States = &etable.Table{}
	rc.Spikes = &etable.Table{}
	rc.Weights = &etable.Table{}
	rc.ConfigSpikes(rc.Spikes)
	rc.ConfigWeights(rc.Weights)
	return rc
}

// Reset removes all rows from the tables
func (rc *Recorder) Reset() {
	rc.States.SetNumRows(0)
	rc.Spikes.SetNumRows(0)
	rc.Weights.SetNumRows(0)
}

// ConfigStates configures the States table for the given neuron variables
func (rc *Recorder) ConfigStates(dt *etable.Table, vars []string) {
	dt.SetMetaData("name", "States")
	dt.SetMetaData("desc", "neuron state per sample")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
		{"Neuron", etensor.INT64, nil, nil},
	}
	for _, vnm := range vars {
		sch = append(sch, etable.Column{vnm, etensor.FLOAT64, nil, nil})
	}
	dt.SetFromSchema(sch, 0)
}

// ConfigSpikes configures the Spikes table
func (rc *Recorder) ConfigSpikes(dt *etable.Table) {
	dt.SetMetaData("name", "Spikes")
	dt.SetMetaData("desc", "spike times")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
		{"Neuron", etensor.INT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

// ConfigWeights configures the Weights table
func (rc *Recorder) ConfigWeights(dt *etable.Table) {
	dt.SetMetaData("name", "Weights")
	dt.SetMetaData("desc", "synapse state per sample")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
		{"Pre", etensor.INT64, nil, nil},
		{"Post", etensor.INT64, nil, nil},
	}
	for _, vnm := range spike.SynapseVars {
		if vnm == "LastT" {
			continue
		}
		sch = append(sch, etable.Column{vnm, etensor.FLOAT64, nil, nil})
	}
	dt.SetFromSchema(sch, 0)
}

// RecordStates records the state variables of the model of the network,
// plus the external current and the synaptic input
func (rc *Recorder) RecordStates(t float32, nt *spike.Network) {
	if rc.StateVars == nil {
		sv := nt.CurModel().StateVars()
		rc.StateVars = append(sv[:], "IExt", "GSyn")
		rc.ConfigStates(rc.States, rc.StateVars)
	}
	dt := rc.States
	nrec := len(rc.Neurons)
	if nrec == 0 {
		nrec = len(nt.Neurons)
	}
	row := dt.Rows
	dt.SetNumRows(row + nrec)
	for i := 0; i < nrec; i++ {
		ni := i
		if len(rc.Neurons) > 0 {
			ni = rc.Neurons[i]
		}
		nrn := &nt.Neurons[ni]
		dt.SetCellFloat("Time", row, float64(t))
		dt.SetCellFloat("Neuron", row, float64(ni))
		for _, vnm := range rc.StateVars {
			v, _ := nrn.VarByName(vnm)
			dt.SetCellFloat(vnm, row, float64(v))
		}
		row++
	}
}

func (rc *Recorder) RecordSpikes(spks []spike.Spike) {
	dt := rc.Spikes
	row := dt.Rows
	dt.SetNumRows(row + len(spks))
	for _, sp := range spks {
		dt.SetCellFloat("Time", row, float64(sp.Time))
		dt.SetCellFloat("Neuron", row, float64(sp.Neuron))
		row++
	}
}

// RecordWeights records the state of all connected synapses
func (rc *Recorder) RecordWeights(t float32, nt *spike.Network) {
	dt := rc.Weights
	row := dt.Rows
	for si := range nt.Syns {
		sy := &nt.Syns[si]
		if sy.IsOff() {
			continue
		}
		dt.SetNumRows(row + 1)
		dt.SetCellFloat("Time", row, float64(t))
		dt.SetCellFloat("Pre", row, float64(sy.Pre))
		dt.SetCellFloat("Post", row, float64(sy.Post))
		dt.SetCellFloat("Wt", row, float64(sy.Wt))
		dt.SetCellFloat("Apre", row, float64(sy.Apre))
		dt.SetCellFloat("Apost", row, float64(sy.Apost))
		row++
	}
}

// SpikeCounts returns the number of recorded spikes of each of n neurons
// in the time window [st, ed)
func (rc *Recorder) SpikeCounts(n int, st, ed float32) []int {
	cnts := make([]int, n)
	dt := rc.Spikes
	for row := 0; row < dt.Rows; row++ {
		t := float32(dt.CellFloat("Time", row))
		if t < st || t >= ed {
			continue
		}
		ni := int(dt.CellFloat("Neuron", row))
		if ni >= 0 && ni < n {
			cnts[ni]++
		}
	}
	return cnts
}

// WeightRange returns the range of the weights in the last weight sample
func (rc *Recorder) WeightRange() minmax.F32 {
	var mm minmax.F32
	mm.SetInfinity()
	dt := rc.Weights
	if dt.Rows == 0 {
		return mm
	}
	last := dt.CellFloat("Time", dt.Rows-1)
	for row := dt.Rows - 1; row >= 0; row-- {
		if dt.CellFloat("Time", row) != last {
			break
		}
		mm.FitValInRange(float32(dt.CellFloat("Wt", row)))
	}
	return mm
}

// SaveCSV saves the non-empty tables as states.csv, spikes.csv and
// weights.csv in the directory dir, with the given file name prefix
func (rc *Recorder) SaveCSV(dir, prefix string) error {
	tabs := []struct {
		nm string
		dt *etable.Table
	}{{"states", rc.States}, {"spikes", rc.Spikes}, {"weights", rc.Weights}}
	for _, tb := range tabs {
		if tb.dt.Rows == 0 {
			continue
		}
		fnm := filepath.Join(dir, prefix+tb.nm+".csv")
		if err := tb.dt.SaveCSV(gi.FileName(fnm), etable.Comma, etable.Headers); err != nil {
			return fmt.Errorf("record: saving %s: %w", fnm, err)
		}
	}
	return nil
}
