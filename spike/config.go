// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/chewxy/math32"
	"github.com/emer/hhstdp/stdp"
)

// StimConfig configures a TimedArray stimulus applied to every neuron
type StimConfig struct {
	Values []float32 `desc:"current values in uA/cm^2, one per window -- empty for no stimulus"`
	Dt     float32   `desc:"duration of each window in ms"`
	Hold   bool      `desc:"hold the last value past the end of Values instead of failing"`
}

// Config is the complete configuration of a simulation: network, learning,
// inputs and run.  It can be loaded from a TOML file with OpenConfig.
type Config struct {
	Model         Models          `desc:"neuron model variant"`
	N             int             `desc:"number of neurons"`
	Dt            float32         `desc:"integration step in ms"`
	Duration      float32         `desc:"simulated duration in ms"`
	WMin          float32         `desc:"minimum initial weight"`
	WMax          float32         `desc:"maximum initial weight"`
	WtMax         float32         `desc:"maximum weight: weights are clipped into [0, WtMax]"`
	STDP          bool            `desc:"whether the synapses are plastic"`
	TauPre        float32         `desc:"pre-synaptic trace time constant in ms"`
	TauPost       float32         `desc:"post-synaptic trace time constant in ms"`
	APlus         float32         `desc:"potentiation amplitude"`
	AMinus        float32         `desc:"depression amplitude"`
	Trace         stdp.TraceModes `desc:"how spikes update the traces"`
	Rule          stdp.Rules      `desc:"which spike potentiates and which depresses"`
	IApp          []float32       `desc:"constant applied current per neuron in uA/cm^2 -- empty for none, else N values"`
	W             [][]float32     `desc:"optional N x N initial connectivity override, with zero diagonal"`
	Stim          StimConfig      `desc:"stimulus applied to every neuron"`
	Seed          int64           `desc:"random seed for the initial weights"`
	NThreads      int             `desc:"number of goroutines for the neuron updates"`
	StateInterval float32         `desc:"interval in ms between state recordings, 0 = none"`
	WtInterval    float32         `desc:"interval in ms between weight recordings, 0 = none"`
}

// Defaults sets the classic network defaults
func (cfg *Config) Defaults() {
	*cfg = Config{}
	cfg.Model = Classic
	cfg.N = 3
	cfg.Dt = 0.1
	cfg.Duration = 500
	cfg.WMin = 0
	cfg.WMax = 1
	cfg.WtMax = 1
	cfg.STDP = true
	cfg.TauPre = 20
	cfg.TauPost = 20
	cfg.APlus = 0.02
	cfg.AMinus = 0.025
	cfg.Trace = stdp.TraceSet
	cfg.Rule = stdp.PrePot
	cfg.Seed = 1
	cfg.NThreads = 1
	cfg.StateInterval = 1
}

// ClassicConfig returns the config of a small fully connected network of
// classic Hodgkin-Huxley neurons, stimulated by a 100 ms pulse of 5 uA/cm^2
func ClassicConfig() *Config {
	cfg := &Config{}
	cfg.Defaults()
	cfg.Stim = StimConfig{Values: []float32{0, 5, 0}, Dt: 100, Hold: true}
	return cfg
}

// RecurrentConfig returns the config of the 100 neuron recurrent network
// with heterogeneous applied currents
func RecurrentConfig() *Config {
	cfg := &Config{}
	cfg.Defaults()
	cfg.Model = Recurrent
	cfg.N = 100
	cfg.Dt = 0.01
	cfg.Duration = 4000
	cfg.WMin = 0
	cfg.WMax = 1
	cfg.WtMax = 2
	cfg.APlus = 0.1
	cfg.AMinus = 0.105
	cfg.Trace = stdp.TraceAdd
	cfg.Rule = stdp.PrePot
	cfg.IApp = append([]float32(nil), RecurrentIApp...)
	cfg.Seed = 42
	cfg.WtInterval = 50
	return cfg
}

// RecurrentIApp are the applied currents in uA/cm^2 of the neurons of the
// recurrent network
var RecurrentIApp = []float32{
	1.77633, -3.50002, -7.08579, -7.67495, 4.39299, 1.00314, -0.90991, -0.50249, -3.48903, -3.45378,
	-1.64006, -5.78616, 4.10871, 0.53438, 4.99176, -3.27296, -5.23499, 2.71477, 4.77798, -2.95206,
	-1.22211, -6.29200, -1.17679, -9.53719, -3.01477, 3.41060, 2.71249, -3.09259, -7.98303, -5.88778,
	1.52364, 2.79351, -2.80374, 0.67904, 3.66558, -3.62224, -0.20081, 2.63558, -1.00055, -9.72716,
	-7.09494, -4.50255, -5.78387, -7.81274, -2.45491, 1.19816, -9.06201, -2.50572, 4.37559, 4.94461,
	4.51659, -5.28123, -3.41212, -6.64083, 3.98831, -2.46132, -1.71789, -8.75896, -8.83633, 4.39482,
	-4.98642, 1.79510, -5.68133, 4.29960, 0.73855, 2.67083, -0.55376, 4.94186, -2.12485, -7.34443,
	-0.44572, -8.31904, -5.30320, 1.36982, 4.96384, 3.52412, 1.78182, -3.20475, 0.08255, -5.32517,
	-8.27189, -7.00156, 4.62416, -2.24113, 3.86608, -7.12287, -0.26353, 2.30689, -6.82760, -6.71819,
	-2.98639, 4.59990, -9.87960, 2.35496, -4.14457, 2.46208, -9.33210, -3.57189, 2.14530, 1.10065,
}

// Validate returns an *InvalidConfigError for the first invalid value
func (cfg *Config) Validate() error {
	bad := func(v float32) bool { return math32.IsNaN(v) || math32.IsInf(v, 0) }
	switch {
	case cfg.Model < 0 || cfg.Model >= ModelsN:
		return &InvalidConfigError{"Model", fmt.Sprintf("unknown model %d", cfg.Model)}
	case cfg.N <= 0:
		return &InvalidConfigError{"N", fmt.Sprintf("must be > 0, is %d", cfg.N)}
	case bad(cfg.Dt) || cfg.Dt <= 0:
		return &InvalidConfigError{"Dt", fmt.Sprintf("must be > 0, is %g", cfg.Dt)}
	case bad(cfg.Duration) || cfg.Duration <= 0:
		return &InvalidConfigError{"Duration", fmt.Sprintf("must be > 0, is %g", cfg.Duration)}
	case bad(cfg.WMin) || cfg.WMin < 0:
		return &InvalidConfigError{"WMin", fmt.Sprintf("must be >= 0, is %g", cfg.WMin)}
	case bad(cfg.WMax) || cfg.WMin > cfg.WMax:
		return &InvalidConfigError{"WMax", fmt.Sprintf("must be >= WMin %g, is %g", cfg.WMin, cfg.WMax)}
	case bad(cfg.WtMax) || cfg.WtMax < cfg.WMax:
		return &InvalidConfigError{"WtMax", fmt.Sprintf("must be >= WMax %g, is %g", cfg.WMax, cfg.WtMax)}
	case bad(cfg.TauPre) || cfg.TauPre <= 0:
		return &InvalidConfigError{"TauPre", fmt.Sprintf("must be > 0, is %g", cfg.TauPre)}
	case bad(cfg.TauPost) || cfg.TauPost <= 0:
		return &InvalidConfigError{"TauPost", fmt.Sprintf("must be > 0, is %g", cfg.TauPost)}
	case bad(cfg.APlus) || cfg.APlus < 0:
		return &InvalidConfigError{"APlus", fmt.Sprintf("must be >= 0, is %g", cfg.APlus)}
	case bad(cfg.AMinus) || cfg.AMinus < 0:
		return &InvalidConfigError{"AMinus", fmt.Sprintf("must be >= 0, is %g", cfg.AMinus)}
	case cfg.Trace < 0 || cfg.Trace >= stdp.TraceModesN:
		return &InvalidConfigError{"Trace", fmt.Sprintf("unknown trace mode %d", cfg.Trace)}
	case cfg.Rule < 0 || cfg.Rule >= stdp.RulesN:
		return &InvalidConfigError{"Rule", fmt.Sprintf("unknown rule %d", cfg.Rule)}
	case len(cfg.IApp) != 0 && len(cfg.IApp) != cfg.N:
		return &InvalidConfigError{"IApp", fmt.Sprintf("must have N = %d values, has %d", cfg.N, len(cfg.IApp))}
	case len(cfg.Stim.Values) > 0 && (bad(cfg.Stim.Dt) || cfg.Stim.Dt <= 0):
		return &InvalidConfigError{"Stim.Dt", fmt.Sprintf("must be > 0, is %g", cfg.Stim.Dt)}
	case cfg.NThreads < 0:
		return &InvalidConfigError{"NThreads", fmt.Sprintf("must be >= 0, is %d", cfg.NThreads)}
	case bad(cfg.StateInterval) || cfg.StateInterval < 0:
		return &InvalidConfigError{"StateInterval", fmt.Sprintf("must be >= 0, is %g", cfg.StateInterval)}
	case bad(cfg.WtInterval) || cfg.WtInterval < 0:
		return &InvalidConfigError{"WtInterval", fmt.Sprintf("must be >= 0, is %g", cfg.WtInterval)}
	}
	for i, v := range cfg.IApp {
		if bad(v) {
			return &InvalidConfigError{"IApp", fmt.Sprintf("value %d is not finite", i)}
		}
	}
	for i, v := range cfg.Stim.Values {
		if bad(v) {
			return &InvalidConfigError{"Stim.Values", fmt.Sprintf("value %d is not finite", i)}
		}
	}
	return nil
}

// NewNetwork validates the config and builds the network it describes,
// including the connectivity override and the stimulus
func (cfg *Config) NewNetwork() (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nt := NewNetwork(cfg.Model, cfg.N)
	nt.WtInit.Min = cfg.WMin
	nt.WtInit.Max = cfg.WMax
	nt.WtInit.Seed = cfg.Seed
	nt.STDP.On = cfg.STDP
	nt.STDP.TauPre = cfg.TauPre
	nt.STDP.TauPost = cfg.TauPost
	nt.STDP.APlus = cfg.APlus
	nt.STDP.AMinus = cfg.AMinus
	nt.STDP.Trace = cfg.Trace
	nt.STDP.Rule = cfg.Rule
	nt.STDP.WtRange.Max = cfg.WtMax
	if len(cfg.IApp) > 0 {
		nt.IApp = append([]float32(nil), cfg.IApp...)
	}
	nt.Update()
	if err := nt.Build(); err != nil {
		return nil, err
	}
	if cfg.W != nil {
		if err := nt.ModifyConnectivity(cfg.W); err != nil {
			return nil, err
		}
	}
	if len(cfg.Stim.Values) > 0 {
		nt.SetStimulusAll(&TimedArray{Values: append([]float32(nil), cfg.Stim.Values...), Dt: cfg.Stim.Dt, Hold: cfg.Stim.Hold})
	}
	return nt, nil
}

// NewIntegrator builds the network and returns an Integrator for it,
// configured with the step size, threads and recording intervals
func (cfg *Config) NewIntegrator() (*Integrator, error) {
	nt, err := cfg.NewNetwork()
	if err != nil {
		return nil, err
	}
	it, err := NewIntegrator(nt, cfg.Dt)
	if err != nil {
		return nil, err
	}
	it.NThreads = cfg.NThreads
	it.StateInterval = cfg.StateInterval
	it.WtInterval = cfg.WtInterval
	return it, nil
}

// OpenConfig loads a config from a TOML file.  Values not in the file keep
// the defaults of the model given in the file (ClassicConfig if none).
func OpenConfig(filename string) (*Config, error) {
	probe := struct{ Model Models }{}
	if _, err := toml.DecodeFile(filename, &probe); err != nil {
		return nil, err
	}
	cfg := ClassicConfig()
	if probe.Model == Recurrent {
		cfg = RecurrentConfig()
	}
	md, err := toml.DecodeFile(filename, cfg)
	if err != nil {
		return nil, err
	}
	if und := md.Undecoded(); len(und) > 0 {
		return nil, &InvalidConfigError{"file", fmt.Sprintf("unknown keys in %s: %v", filename, und)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
