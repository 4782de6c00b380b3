// Code generated by "stringer -type=Models,Methods,SpikeModes,Couplings,RunStates,NeurFlags,SynFlags"; text marshaling added by hand.

package spike

import (
	"errors"
	"strconv"
)

func _() {
	// An "invalid array index" compiler error signifies that the constant values have changed.
	// Re-run the stringer command to generate them again.
	var x [1]struct{}
	_ = x[Classic-0]
	_ = x[Recurrent-1]
	_ = x[ModelsN-2]
	_ = x[ExpEuler-0]
	_ = x[RK4-1]
	_ = x[MethodsN-2]
	_ = x[ThrReset-0]
	_ = x[PeakDetect-1]
	_ = x[SpikeModesN-2]
	_ = x[VoltageBump-0]
	_ = x[SynActivation-1]
	_ = x[CouplingsN-2]
	_ = x[Idle-0]
	_ = x[Running-1]
	_ = x[Completed-2]
	_ = x[Failed-3]
	_ = x[Canceled-4]
	_ = x[RunStatesN-5]
	_ = x[NeurAbove-0]
	_ = x[NeurPeaked-1]
	_ = x[NeurFlagsN-2]
	_ = x[SynOff-0]
	_ = x[SynFlagsN-1]
}

const _Models_name = "ClassicRecurrentModelsN"

var _Models_index = [...]uint8{0, 7, 16, 23}

func (i Models) String() string {
	if i < 0 || i >= Models(len(_Models_index)-1) {
		return "Models(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _Models_name[_Models_index[i]:_Models_index[i+1]]
}

func (i *Models) FromString(s string) error {
	for j := 0; j < len(_Models_index)-1; j++ {
		if s == _Models_name[_Models_index[j]:_Models_index[j+1]] {
			*i = Models(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: Models")
}

func (i Models) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Models) UnmarshalText(text []byte) error { return i.FromString(string(text)) }

const _Methods_name = "ExpEulerRK4MethodsN"

var _Methods_index = [...]uint8{0, 8, 11, 19}

func (i Methods) String() string {
	if i < 0 || i >= Methods(len(_Methods_index)-1) {
		return "Methods(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _Methods_name[_Methods_index[i]:_Methods_index[i+1]]
}

func (i *Methods) FromString(s string) error {
	for j := 0; j < len(_Methods_index)-1; j++ {
		if s == _Methods_name[_Methods_index[j]:_Methods_index[j+1]] {
			*i = Methods(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: Methods")
}

func (i Methods) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Methods) UnmarshalText(text []byte) error { return i.FromString(string(text)) }

const _SpikeModes_name = "ThrResetPeakDetectSpikeModesN"

var _SpikeModes_index = [...]uint8{0, 8, 18, 29}

func (i SpikeModes) String() string {
	if i < 0 || i >= SpikeModes(len(_SpikeModes_index)-1) {
		return "SpikeModes(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _SpikeModes_name[_SpikeModes_index[i]:_SpikeModes_index[i+1]]
}

func (i *SpikeModes) FromString(s string) error {
	for j := 0; j < len(_SpikeModes_index)-1; j++ {
		if s == _SpikeModes_name[_SpikeModes_index[j]:_SpikeModes_index[j+1]] {
			*i = SpikeModes(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: SpikeModes")
}

func (i SpikeModes) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *SpikeModes) UnmarshalText(text []byte) error { return i.FromString(string(text)) }

const _Couplings_name = "VoltageBumpSynActivationCouplingsN"

var _Couplings_index = [...]uint8{0, 11, 24, 34}

func (i Couplings) String() string {
	if i < 0 || i >= Couplings(len(_Couplings_index)-1) {
		return "Couplings(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _Couplings_name[_Couplings_index[i]:_Couplings_index[i+1]]
}

func (i *Couplings) FromString(s string) error {
	for j := 0; j < len(_Couplings_index)-1; j++ {
		if s == _Couplings_name[_Couplings_index[j]:_Couplings_index[j+1]] {
			*i = Couplings(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: Couplings")
}

func (i Couplings) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Couplings) UnmarshalText(text []byte) error { return i.FromString(string(text)) }

const _RunStates_name = "IdleRunningCompletedFailedCanceledRunStatesN"

var _RunStates_index = [...]uint8{0, 4, 11, 20, 26, 34, 44}

func (i RunStates) String() string {
	if i < 0 || i >= RunStates(len(_RunStates_index)-1) {
		return "RunStates(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _RunStates_name[_RunStates_index[i]:_RunStates_index[i+1]]
}

func (i *RunStates) FromString(s string) error {
	for j := 0; j < len(_RunStates_index)-1; j++ {
		if s == _RunStates_name[_RunStates_index[j]:_RunStates_index[j+1]] {
			*i = RunStates(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: RunStates")
}

func (i RunStates) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *RunStates) UnmarshalText(text []byte) error { return i.FromString(string(text)) }

const _NeurFlags_name = "NeurAboveNeurPeakedNeurFlagsN"

var _NeurFlags_index = [...]uint8{0, 9, 19, 29}

func (i NeurFlags) String() string {
	if i < 0 || i >= NeurFlags(len(_NeurFlags_index)-1) {
		return "NeurFlags(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _NeurFlags_name[_NeurFlags_index[i]:_NeurFlags_index[i+1]]
}

func (i *NeurFlags) FromString(s string) error {
	for j := 0; j < len(_NeurFlags_index)-1; j++ {
		if s == _NeurFlags_name[_NeurFlags_index[j]:_NeurFlags_index[j+1]] {
			*i = NeurFlags(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: NeurFlags")
}

func (i NeurFlags) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *NeurFlags) UnmarshalText(text []byte) error { return i.FromString(string(text)) }

const _SynFlags_name = "SynOffSynFlagsN"

var _SynFlags_index = [...]uint8{0, 6, 15}

func (i SynFlags) String() string {
	if i < 0 || i >= SynFlags(len(_SynFlags_index)-1) {
		return "SynFlags(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _SynFlags_name[_SynFlags_index[i]:_SynFlags_index[i+1]]
}

func (i *SynFlags) FromString(s string) error {
	for j := 0; j < len(_SynFlags_index)-1; j++ {
		if s == _SynFlags_name[_SynFlags_index[j]:_SynFlags_index[j+1]] {
			*i = SynFlags(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: SynFlags")
}

func (i SynFlags) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *SynFlags) UnmarshalText(text []byte) error { return i.FromString(string(text)) }
