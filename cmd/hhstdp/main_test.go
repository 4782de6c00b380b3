// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emer/hhstdp/spike"
)

func TestCmdArgs(t *testing.T) {
	dir := t.TempDir()
	ss := &Sim{}
	err := ss.CmdArgs([]string{"-n", "4", "-dur", "20", "-warmup", "5", "-seed", "3", "-wts", "-tag", "test", "-out", dir})
	if err != nil {
		t.Fatal(err)
	}
	cfg := ss.Config
	if cfg.Model != spike.Classic || cfg.N != 4 || cfg.Duration != 20 || cfg.Seed != 3 {
		t.Errorf("config: %+v", *cfg)
	}
	if ss.Integ.Time.Cycle != 250 {
		t.Errorf("cycles: %d, cor: 250", ss.Integ.Time.Cycle)
	}
	for _, fn := range []string{"hhstdp_classic_test_states.csv", "hhstdp_classic_test_wts.yaml.gz"} {
		if _, err := os.Stat(filepath.Join(dir, fn)); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}

	// start from the saved weights, with no plasticity
	ss2 := &Sim{}
	err = ss2.CmdArgs([]string{"-n", "4", "-dur", "1", "-nostdp", "-csv=false", "-startwts", filepath.Join(dir, "hhstdp_classic_test_wts.yaml.gz"), "-out", dir})
	if err != nil {
		t.Fatal(err)
	}
	if ss2.Config.STDP {
		t.Errorf("nostdp not applied")
	}
	W1 := ss.Integ.Net.Weights()
	W2 := ss2.Integ.Net.Weights()
	for i := range W1 {
		for j := range W1[i] {
			if W1[i][j] != W2[i][j] {
				t.Errorf("W[%d][%d]: %v, cor: %v", i, j, W2[i][j], W1[i][j])
			}
		}
	}
}

func TestCmdArgsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-model", "Cortical"},
		{"-n", "0"},
		{"-dt", "abc"},
		{"-config", "missing.toml"},
	} {
		ss := &Sim{}
		if err := ss.CmdArgs(append(args, "-out", t.TempDir())); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}
