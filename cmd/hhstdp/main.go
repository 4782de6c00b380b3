// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hhstdp runs a fully connected network of Hodgkin-Huxley neurons with
// STDP synapses, prints a summary of the spiking and learning, and saves
// the recorded trajectory as CSV files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/emer/empi/mpi"
	"github.com/emer/hhstdp/record"
	"github.com/emer/hhstdp/spike"
	"github.com/goki/gi/gi"
)

func main() {
	if err := TheSim.CmdArgs(os.Args[1:]); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// Sim holds the simulation and the command line options
type Sim struct {
	Config   *spike.Config     `desc:"simulation config"`
	Integ    *spike.Integrator `view:"-" desc:"the integrator, which owns the network"`
	Rec      *record.Recorder  `view:"-" desc:"recorded trajectory"`
	Warmup   float32           `desc:"duration in ms of an initial warm-up run, reported separately -- 0 for none"`
	OutDir   string            `desc:"directory for the saved files"`
	Tag      string            `desc:"extra tag to add to file names saved from this run"`
	SaveCSV  bool              `desc:"if true, save the recorded tables as CSV"`
	SaveWts  bool              `desc:"if true, save the final weights"`
	StartWts string            `desc:"if set, weights file to start from"`
	UseMPI   bool              `desc:"if true, use MPI: each rank runs its own seed and only rank 0 saves files"`
}

// TheSim is the overall state for this simulation
var TheSim Sim

// CmdArgs parses the command line args and runs the simulation
func (ss *Sim) CmdArgs(args []string) error {
	fs := flag.NewFlagSet("hhstdp", flag.ContinueOnError)
	var cfgFile, model string
	var n int
	var dur, dt float32
	var seed int64
	var threads int
	var nostdp bool
	fs.StringVar(&cfgFile, "config", "", "TOML config file -- flags override values in the file")
	fs.StringVar(&model, "model", "Classic", "model preset if no config file: Classic or Recurrent")
	fs.IntVar(&n, "n", 0, "number of neurons")
	fs.Var((*f32Flag)(&dur), "dur", "simulated duration in ms")
	fs.Var((*f32Flag)(&dt), "dt", "integration step in ms")
	fs.Int64Var(&seed, "seed", 0, "random seed for the initial weights")
	fs.IntVar(&threads, "threads", 0, "number of goroutines for the neuron updates")
	fs.BoolVar(&nostdp, "nostdp", false, "if true, synapses are not plastic")
	fs.Var((*f32Flag)(&ss.Warmup), "warmup", "duration in ms of an initial warm-up run")
	fs.StringVar(&ss.OutDir, "out", ".", "directory for the saved files")
	fs.StringVar(&ss.Tag, "tag", "", "extra tag to add to file names saved from this run")
	fs.BoolVar(&ss.SaveCSV, "csv", true, "if true, save the recorded tables as CSV")
	fs.BoolVar(&ss.SaveWts, "wts", false, "if true, save the final weights")
	fs.StringVar(&ss.StartWts, "startwts", "", "weights file to start from")
	fs.BoolVar(&ss.UseMPI, "mpi", false, "if set, use MPI for distributed runs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if ss.UseMPI {
		mpi.Init()
		defer mpi.Finalize()
	}

	var err error
	if cfgFile != "" {
		ss.Config, err = spike.OpenConfig(cfgFile)
		if err != nil {
			return err
		}
	} else {
		var mod spike.Models
		if err := mod.FromString(model); err != nil {
			return err
		}
		if mod == spike.Recurrent {
			ss.Config = spike.RecurrentConfig()
		} else {
			ss.Config = spike.ClassicConfig()
		}
	}
	cfg := ss.Config
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.N = n
			if len(cfg.IApp) != n {
				cfg.IApp = nil
			}
			cfg.W = nil
		case "dur":
			cfg.Duration = dur
		case "dt":
			cfg.Dt = dt
		case "seed":
			cfg.Seed = seed
		case "threads":
			cfg.NThreads = threads
		case "nostdp":
			cfg.STDP = !nostdp
		}
	})
	if ss.UseMPI {
		cfg.Seed += int64(mpi.WorldRank())
	}

	if err := ss.ConfigSim(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return ss.Run(ctx)
}

// ConfigSim builds the network, integrator and recorder from the Config
func (ss *Sim) ConfigSim() error {
	it, err := ss.Config.NewIntegrator()
	if err != nil {
		return err
	}
	ss.Integ = it
	if ss.StartWts != "" {
		mpi.Printf("Starting with initial weights from: %s\n", ss.StartWts)
		if _, err := it.Net.OpenWeightsYAML(gi.FileName(ss.StartWts)); err != nil {
			return err
		}
	}
	ss.Rec = record.New()
	it.Recorder = ss.Rec
	mpi.Printf("%s", it.Net.SizeReport())
	return nil
}

// Run runs the optional warm-up and then the main run, prints the summary
// and saves the files
func (ss *Sim) Run(ctx context.Context) error {
	it := ss.Integ
	cfg := ss.Config
	if ss.Warmup > 0 {
		res, err := it.Run(ctx, ss.Warmup)
		if res != nil {
			ss.Summary("warm-up", res)
		}
		if err != nil {
			return err
		}
	}
	mpi.Printf("Running %v model, N = %d for %g ms with dt = %g\n", cfg.Model, cfg.N, cfg.Duration, cfg.Dt)
	res, err := it.Run(ctx, cfg.Duration)
	if res != nil {
		ss.Summary("run", res)
	}
	if serr := ss.Save(); err == nil {
		err = serr
	}
	return err
}

// Summary prints the outcome of one run and the per-neuron spike counts
func (ss *Sim) Summary(label string, res *spike.RunResult) {
	n := ss.Config.N
	cnts := ss.Rec.SpikeCounts(n, res.StartTime, res.EndTime+ss.Config.Dt)
	var b strings.Builder
	nshow := n
	if nshow > 20 {
		nshow = 20
	}
	for ni := 0; ni < nshow; ni++ {
		fmt.Fprintf(&b, " %d", cnts[ni])
	}
	if nshow < n {
		b.WriteString(" ...")
	}
	mpi.AllPrintf("%s: %v at t = %g ms after %d steps (%.3g s): %d spikes, counts:%s\n", label, res.State, res.EndTime, res.Steps, res.WallSecs, len(res.Spikes), b.String())
	if wr := ss.Rec.WeightRange(); wr.Max >= wr.Min {
		mpi.Printf("weights: [%g, %g]\n", wr.Min, wr.Max)
	}
}

// FileName returns a file name for the given kind of output
func (ss *Sim) FileName(kind string) string {
	nm := "hhstdp_" + strings.ToLower(ss.Config.Model.String())
	if ss.Tag != "" {
		nm += "_" + ss.Tag
	}
	return filepath.Join(ss.OutDir, nm+"_"+kind)
}

// Save saves the recorded tables and the final weights, on rank 0 only
func (ss *Sim) Save() error {
	if mpi.WorldRank() > 0 {
		return nil
	}
	if ss.SaveCSV {
		pfx := filepath.Base(ss.FileName("")) // ends in _
		if err := ss.Rec.SaveCSV(ss.OutDir, pfx); err != nil {
			return err
		}
		fmt.Printf("Saved tables to: %s*.csv\n", ss.FileName(""))
	}
	if ss.SaveWts {
		fnm := ss.FileName("wts.yaml.gz")
		if err := ss.Integ.Net.SaveWeightsYAML(gi.FileName(fnm), ss.Integ.Time.Time); err != nil {
			return err
		}
		fmt.Printf("Saved weights to: %s\n", fnm)
	}
	return nil
}

// f32Flag is a float32 flag value
type f32Flag float32

func (f *f32Flag) String() string { return fmt.Sprint(float32(*f)) }

func (f *f32Flag) Set(s string) error {
	var v float32
	if _, err := fmt.Sscan(s, &v); err != nil {
		return err
	}
	*f = f32Flag(v)
	return nil
}
