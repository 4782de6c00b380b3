// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/goki/gi/gi"
	"gopkg.in/yaml.v3"
)

// Weights is a snapshot of all the learned synaptic state of a Network,
// in the form saved to weight files
type Weights struct {
	Model Models   `yaml:"model"`
	N     int      `yaml:"n"`
	WtMax float32  `yaml:"wt_max"`
	Time  float32  `yaml:"time"`
	Syns  []SynWts `yaml:"synapses"`
}

// SynWts is the saved state of one synapse
type SynWts struct {
	Pre   int     `yaml:"pre"`
	Post  int     `yaml:"post"`
	Wt    float32 `yaml:"wt"`
	Apre  float32 `yaml:"apre"`
	Apost float32 `yaml:"apost"`
	LastT float32 `yaml:"last_t"`
	Off   bool    `yaml:"off,omitempty"`
}

// WeightsSnapshot returns the current synaptic state, as of time t
func (nt *Network) WeightsSnapshot(t float32) *Weights {
	ws := &Weights{Model: nt.Model, N: nt.NNeurs, WtMax: nt.STDP.WtRange.Max, Time: t}
	ws.Syns = make([]SynWts, len(nt.Syns))
	for si := range nt.Syns {
		sy := &nt.Syns[si]
		ws.Syns[si] = SynWts{Pre: int(sy.Pre), Post: int(sy.Post), Wt: sy.Wt, Apre: sy.Apre, Apost: sy.Apost, LastT: sy.LastT, Off: sy.IsOff()}
	}
	return ws
}

// SetWeights applies the snapshot, after checking all of it: on error
// nothing is changed.  Synapses missing from the snapshot are unchanged.
func (nt *Network) SetWeights(ws *Weights) error {
	if !nt.IsBuilt() {
		return &InvalidTopologyError{Pre: -1, Post: -1, Msg: "network is not built"}
	}
	if ws.N != nt.NNeurs {
		return &InvalidTopologyError{Pre: -1, Post: -1, Msg: fmt.Sprintf("weights are for %d neurons, network has %d", ws.N, nt.NNeurs)}
	}
	if ws.Model != nt.Model {
		return &InvalidTopologyError{Pre: -1, Post: -1, Msg: fmt.Sprintf("weights are for the %v model, network is %v", ws.Model, nt.Model)}
	}
	wmax := nt.STDP.WtRange.Max
	idxs := make([]int, len(ws.Syns))
	for i := range ws.Syns {
		sw := &ws.Syns[i]
		si, err := nt.SynIndex(sw.Pre, sw.Post)
		if err != nil {
			return err
		}
		for _, v := range []float32{sw.Wt, sw.Apre, sw.Apost, sw.LastT} {
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				return &InvalidTopologyError{Pre: sw.Pre, Post: sw.Post, Msg: "synapse state is not finite"}
			}
		}
		if sw.Wt < 0 || sw.Wt > wmax {
			return &InvalidTopologyError{Pre: sw.Pre, Post: sw.Post, Msg: fmt.Sprintf("weight %g outside of [0, %g]", sw.Wt, wmax)}
		}
		idxs[i] = si
	}
	for i, si := range idxs {
		sw := &ws.Syns[i]
		sy := &nt.Syns[si]
		sy.Wt, sy.Apre, sy.Apost, sy.LastT = sw.Wt, sw.Apre, sw.Apost, sw.LastT
		if sw.Off {
			sy.SetFlag(SynOff)
		} else {
			sy.ClearFlag(SynOff)
		}
	}
	return nil
}

// WriteWeightsYAML writes the synaptic state as of time t in YAML format
func (nt *Network) WriteWeightsYAML(w io.Writer, t float32) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nt.WeightsSnapshot(t)); err != nil {
		return err
	}
	return enc.Close()
}

// ReadWeightsYAML reads synaptic state in YAML format and applies it,
// returning the time of the snapshot
func (nt *Network) ReadWeightsYAML(r io.Reader) (float32, error) {
	ws := &Weights{}
	if err := yaml.NewDecoder(r).Decode(ws); err != nil {
		return 0, err
	}
	return ws.Time, nt.SetWeights(ws)
}

// SaveWeightsYAML saves the synaptic state as of time t
// to a YAML-formatted file.  If filename has .gz extension, then file is gzip compressed.
func (nt *Network) SaveWeightsYAML(filename gi.FileName, t float32) error {
	fp, err := os.Create(string(filename))
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	ext := filepath.Ext(string(filename))
	if ext == ".gz" {
		gzr := gzip.NewWriter(fp)
		err = nt.WriteWeightsYAML(gzr, t)
		if cerr := gzr.Close(); err == nil {
			err = cerr
		}
	} else {
		bw := bufio.NewWriter(fp)
		err = nt.WriteWeightsYAML(bw, t)
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// OpenWeightsYAML opens synaptic state from a YAML-formatted file, returning
// the time of the snapshot.  If filename has .gz extension, then file is gzip uncompressed.
func (nt *Network) OpenWeightsYAML(filename gi.FileName) (float32, error) {
	fp, err := os.Open(string(filename))
	if err != nil {
		log.Println(err)
		return 0, err
	}
	defer fp.Close()
	ext := filepath.Ext(string(filename))
	if ext == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return 0, err
		}
		defer gzr.Close()
		return nt.ReadWeightsYAML(gzr)
	}
	return nt.ReadWeightsYAML(bufio.NewReader(fp))
}
