// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/goki/gi/gi"
)

func TestBuild(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10} {
		nt, err := Build(n, 0, 1, 20, 20, 0.02, 0.025)
		if err != nil {
			t.Fatal(err)
		}
		if len(nt.Neurons) != n {
			t.Errorf("n: %d neurons: %d", n, len(nt.Neurons))
		}
		if len(nt.Syns) != n*(n-1) {
			t.Errorf("n: %d synapses: %d, cor: %d", n, len(nt.Syns), n*(n-1))
		}
		seen := map[[2]int32]bool{}
		for si := range nt.Syns {
			sy := &nt.Syns[si]
			if sy.Pre == sy.Post {
				t.Errorf("self synapse at %d", si)
			}
			key := [2]int32{sy.Pre, sy.Post}
			if seen[key] {
				t.Errorf("duplicate synapse: %v", key)
			}
			seen[key] = true
			if sy.Wt < 0 || sy.Wt > 1 {
				t.Errorf("initial weight out of [0, 1]: %v", sy.Wt)
			}
			if sy.Apre != 0 || sy.Apost != 0 || sy.LastT != 0 {
				t.Errorf("initial traces not zero: %+v", *sy)
			}
			if idx := nt.SynIdx(int(sy.Pre), int(sy.Post)); idx != si {
				t.Errorf("SynIdx(%d, %d): %d, cor: %d", sy.Pre, sy.Post, idx, si)
			}
		}
		for ri, rs := range nt.RecvSyns {
			if len(rs) != n-1 {
				t.Errorf("neuron %d receives %d synapses", ri, len(rs))
			}
			for _, si := range rs {
				if int(nt.Syns[si].Post) != ri {
					t.Errorf("RecvSyns[%d] has synapse to %d", ri, nt.Syns[si].Post)
				}
			}
		}
		for ni := range nt.Neurons {
			if nt.Neurons[ni].LastSpk != -1 || nt.Neurons[ni].V != -65 {
				t.Errorf("neuron %d not at rest: %+v", ni, nt.Neurons[ni])
			}
		}
	}
}

func TestBuildWtMax(t *testing.T) {
	nt, err := Build(2, 0, 0.5, 20, 20, 0.4, 0.025)
	if err != nil {
		t.Fatal(err)
	}
	if nt.STDP.WtRange.Max != 0.5 {
		t.Errorf("WtRange.Max: %v, cor: 0.5", nt.STDP.WtRange.Max)
	}
	sy, _ := nt.Synapse(0, 1)
	sy.Wt = 0.5
	sy.OnPost(&nt.STDP, 10)
	sy.OnPre(&nt.STDP, 10) // potentiates by APlus
	if sy.Wt != 0.5 {
		t.Errorf("weight after potentiation: %v, cor: 0.5", sy.Wt)
	}
	W := nt.Weights()
	W[0][1] = 0.9
	var te *InvalidTopologyError
	if err := nt.ModifyConnectivity(W); !errors.As(err, &te) {
		t.Errorf("expected InvalidTopologyError for weight above 0.5, got: %v", err)
	}

	nt0, err := Build(3, 0, 0, 20, 20, 0.02, 0.025)
	if err != nil {
		t.Fatal(err)
	}
	for si := range nt0.Syns {
		if nt0.Syns[si].Wt != 0 {
			t.Errorf("weight %d: %v, cor: 0", si, nt0.Syns[si].Wt)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	type args struct {
		n                                          int
		wMin, wMax, tauPre, tauPost, aPlus, aMinus float32
		field                                      string
	}
	for _, a := range []args{
		{0, 0, 1, 20, 20, 0.02, 0.025, "N"},
		{-3, 0, 1, 20, 20, 0.02, 0.025, "N"},
		{3, 0.8, 0.2, 20, 20, 0.02, 0.025, "WMin"},
		{3, -0.1, 1, 20, 20, 0.02, 0.025, "WMin"},
		{3, 0, 1, 0, 20, 0.02, 0.025, "TauPre"},
		{3, 0, 1, 20, -1, 0.02, 0.025, "TauPost"},
		{3, 0, 1, 20, 20, -0.02, 0.025, "APlus"},
		{3, 0, 1, 20, 20, 0.02, -0.025, "AMinus"},
	} {
		nt, err := Build(a.n, a.wMin, a.wMax, a.tauPre, a.tauPost, a.aPlus, a.aMinus)
		if nt != nil {
			t.Errorf("%v: network returned on error", a)
		}
		var ce *InvalidConfigError
		if !errors.As(err, &ce) {
			t.Errorf("%v: expected InvalidConfigError, got: %v", a, err)
			continue
		}
		if ce.Field != a.field {
			t.Errorf("%v: error field: %s, cor: %s", a, ce.Field, a.field)
		}
	}
}

func TestBuildAllOrNothing(t *testing.T) {
	nt, err := Build(4, 0, 1, 20, 20, 0.02, 0.025)
	if err != nil {
		t.Fatal(err)
	}
	W := nt.Weights()
	nrns := nt.Neurons
	nt.STDP.TauPre = -1
	if err := nt.Build(); err == nil {
		t.Fatalf("expected error")
	}
	if len(nt.Neurons) != 4 || &nt.Neurons[0] != &nrns[0] {
		t.Errorf("neurons changed by failed Build")
	}
	assertWeights(t, nt.Weights(), W)
}

func TestSeedReproducible(t *testing.T) {
	a, _ := Build(5, 0.2, 0.8, 20, 20, 0.02, 0.025)
	b, _ := Build(5, 0.2, 0.8, 20, 20, 0.02, 0.025)
	assertWeights(t, a.Weights(), b.Weights())
	for si := range a.Syns {
		if w := a.Syns[si].Wt; w < 0.2 || w > 0.8 {
			t.Errorf("weight out of [0.2, 0.8]: %v", w)
		}
	}

	c := NewNetwork(Classic, 5)
	c.WtInit.Min = 0.2
	c.WtInit.Max = 0.8
	c.WtInit.Seed = 7
	if err := c.Build(); err != nil {
		t.Fatal(err)
	}
	same := true
	for si := range a.Syns {
		if a.Syns[si].Wt != c.Syns[si].Wt {
			same = false
		}
	}
	if same {
		t.Errorf("different seeds gave the same weights")
	}
}

func TestSynIndexErrors(t *testing.T) {
	nt, _ := Build(3, 0, 1, 20, 20, 0.02, 0.025)
	for _, pp := range [][2]int{{1, 1}, {-1, 0}, {0, 3}, {5, 2}} {
		_, err := nt.Synapse(pp[0], pp[1])
		var te *InvalidTopologyError
		if !errors.As(err, &te) {
			t.Errorf("%v: expected InvalidTopologyError, got: %v", pp, err)
			continue
		}
		if te.Pre != pp[0] || te.Post != pp[1] {
			t.Errorf("%v: error pair: %d, %d", pp, te.Pre, te.Post)
		}
	}
	sy, err := nt.Synapse(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sy.Pre != 2 || sy.Post != 0 {
		t.Errorf("Synapse(2, 0) is %d -> %d", sy.Pre, sy.Post)
	}
}

func TestModifyConnectivity(t *testing.T) {
	nt, _ := Build(3, 0, 1, 20, 20, 0.02, 0.025)
	sy, _ := nt.Synapse(0, 1)
	sy.Apre = 0.3
	sy.Apost = 0.1
	W := [][]float32{
		{0, 0, 0.7},
		{0.25, 0, 1},
		{0.5, 0.125, 0},
	}
	for i := 0; i < 2; i++ { // idempotent
		if err := nt.ModifyConnectivity(W); err != nil {
			t.Fatal(err)
		}
		assertWeights(t, nt.Weights(), W)
	}
	if !sy.IsOff() {
		t.Errorf("synapse 0 -> 1 not off")
	}
	if sy.Apre != 0.3 || sy.Apost != 0.1 {
		t.Errorf("traces changed by ModifyConnectivity: %v %v", sy.Apre, sy.Apost)
	}

	// reconnect
	W[0][1] = 0.5
	if err := nt.ModifyConnectivity(W); err != nil {
		t.Fatal(err)
	}
	if sy.IsOff() || sy.Wt != 0.5 {
		t.Errorf("synapse 0 -> 1 not reconnected: %+v", *sy)
	}

	bads := [][][]float32{
		{{0, 1}, {1, 0}},
		{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{0, 0.5, 0}, {0, 0, 0}, {0, 0, 0, 0}},
		{{0, -0.5, 0}, {0, 0, 0}, {0, 0, 0}},
		{{0, 1.5, 0}, {0, 0, 0}, {0, 0, 0}},
	}
	for i, bad := range bads {
		err := nt.ModifyConnectivity(bad)
		var te *InvalidTopologyError
		if !errors.As(err, &te) {
			t.Errorf("bad matrix %d: expected InvalidTopologyError, got: %v", i, err)
		}
		assertWeights(t, nt.Weights(), W)
	}
}

func TestReconnectTraces(t *testing.T) {
	nt, _ := Build(3, 0, 1, 20, 20, 0.02, 0.025)
	sy, _ := nt.Synapse(0, 1)
	sy.Apre = 0.3
	sy.Apost = 0.1
	W := nt.Weights()

	nt.Time = 10
	W[0][1] = 0
	if err := nt.ModifyConnectivity(W); err != nil {
		t.Fatal(err)
	}
	apre := 0.3 * math32.Exp(-10.0/20.0)
	apost := 0.1 * math32.Exp(-10.0/20.0)
	if math32.Abs(sy.Apre-apre) > difTol || math32.Abs(sy.Apost-apost) > difTol || sy.LastT != 10 {
		t.Errorf("traces at disconnect: %v %v %v, cor: %v %v 10", sy.Apre, sy.Apost, sy.LastT, apre, apost)
	}
	pre, post := sy.Apre, sy.Apost

	nt.Time = 50 // disconnected synapses do not change
	if err := nt.ModifyConnectivity(W); err != nil {
		t.Fatal(err)
	}
	if sy.Apre != pre || sy.Apost != post || sy.LastT != 10 {
		t.Errorf("disconnected traces changed: %+v", *sy)
	}

	nt.Time = 100
	W[0][1] = 0.5
	if err := nt.ModifyConnectivity(W); err != nil {
		t.Fatal(err)
	}
	if sy.LastT != 100 || sy.Apre != pre || sy.Apost != post {
		t.Errorf("traces at reconnect: %+v", *sy)
	}
	sy.catchUp(&nt.STDP, 120)
	if math32.Abs(sy.Apre-pre*math32.Exp(-1)) > difTol {
		t.Errorf("Apre after reconnect: %v, cor: %v", sy.Apre, pre*math32.Exp(-1))
	}
}

func TestSetIAppStimulus(t *testing.T) {
	nt, _ := Build(3, 0, 1, 20, 20, 0.02, 0.025)
	if err := nt.SetIApp([]float32{1, 2}); err == nil {
		t.Errorf("expected error for wrong length")
	}
	if err := nt.SetIApp([]float32{1, 2, 3}); err != nil {
		t.Error(err)
	}
	if nt.IApp[2] != 3 {
		t.Errorf("IApp: %v", nt.IApp)
	}
	if err := nt.SetStimulus(3, Const(1)); err == nil {
		t.Errorf("expected error for out of range neuron")
	}
	if err := nt.SetStimulus(1, Const(1)); err != nil {
		t.Error(err)
	}
	if nt.Stims[0] != nil || nt.Stims[1] == nil {
		t.Errorf("Stims: %v", nt.Stims)
	}
}

func TestWeightsFile(t *testing.T) {
	nt, _ := Build(4, 0, 1, 20, 20, 0.02, 0.025)
	W := nt.Weights()
	W[1][3] = 0
	if err := nt.ModifyConnectivity(W); err != nil {
		t.Fatal(err)
	}
	sy, _ := nt.Synapse(2, 0)
	sy.Apre = 0.125
	sy.LastT = 12.5

	dir := t.TempDir()
	for _, fn := range []string{"wts.yaml", "wts.yaml.gz"} {
		fnm := gi.FileName(filepath.Join(dir, fn))
		if err := nt.SaveWeightsYAML(fnm, 42); err != nil {
			t.Fatal(err)
		}
		nt2, _ := Build(4, 0, 1, 20, 20, 0.02, 0.025)
		nt2.WtInit.Seed = 3
		nt2.Build()
		tm, err := nt2.OpenWeightsYAML(fnm)
		if err != nil {
			t.Fatal(err)
		}
		if tm != 42 {
			t.Errorf("%s: time: %v", fn, tm)
		}
		assertWeights(t, nt2.Weights(), W)
		sy2, _ := nt2.Synapse(2, 0)
		if sy2.Apre != 0.125 || sy2.LastT != 12.5 {
			t.Errorf("%s: traces not restored: %+v", fn, *sy2)
		}
		if sy3, _ := nt2.Synapse(1, 3); !sy3.IsOff() {
			t.Errorf("%s: off flag not restored", fn)
		}
	}

	rnt := NewNetwork(Recurrent, 4)
	if err := rnt.Build(); err != nil {
		t.Fatal(err)
	}
	var te *InvalidTopologyError
	if err := rnt.SetWeights(nt.WeightsSnapshot(0)); !errors.As(err, &te) {
		t.Errorf("expected InvalidTopologyError loading classic weights into a recurrent network, got: %v", err)
	}

	nt5, _ := Build(5, 0, 1, 20, 20, 0.02, 0.025)
	if _, err := nt5.OpenWeightsYAML(gi.FileName(filepath.Join(dir, "wts.yaml"))); err == nil {
		t.Errorf("expected error loading weights of a different size")
	}
}

func TestSizeReport(t *testing.T) {
	nt, _ := Build(10, 0, 1, 20, 20, 0.02, 0.025)
	rep := nt.SizeReport()
	if !strings.Contains(rep, "Neurons: 10") || !strings.Contains(rep, "Syns: 90") {
		t.Errorf("SizeReport: %s", rep)
	}
}

func assertWeights(t *testing.T, W, cor [][]float32) {
	t.Helper()
	if len(W) != len(cor) {
		t.Fatalf("weights: %d rows, cor: %d", len(W), len(cor))
	}
	for i := range cor {
		for j := range cor[i] {
			if W[i][j] != cor[i][j] {
				t.Errorf("W[%d][%d]: %v, cor: %v", i, j, W[i][j], cor[i][j])
			}
		}
	}
}
