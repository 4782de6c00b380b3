// Code generated by "stringer -type=TraceModes,Rules"; text marshaling added by hand.

package stdp

import (
	"errors"
	"strconv"
)

func _() {
	// An "invalid array index" compiler error signifies that the constant values have changed.
	// Re-run the stringer command to generate them again.
	var x [1]struct{}
	_ = x[TraceSet-0]
	_ = x[TraceAdd-1]
	_ = x[TraceModesN-2]
	_ = x[PrePot-0]
	_ = x[PostPot-1]
	_ = x[RulesN-2]
}

const _TraceModes_name = "TraceSetTraceAddTraceModesN"

var _TraceModes_index = [...]uint8{0, 8, 16, 27}

func (i TraceModes) String() string {
	if i < 0 || i >= TraceModes(len(_TraceModes_index)-1) {
		return "TraceModes(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _TraceModes_name[_TraceModes_index[i]:_TraceModes_index[i+1]]
}

func (i *TraceModes) FromString(s string) error {
	for j := 0; j < len(_TraceModes_index)-1; j++ {
		if s == _TraceModes_name[_TraceModes_index[j]:_TraceModes_index[j+1]] {
			*i = TraceModes(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: TraceModes")
}

func (i TraceModes) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *TraceModes) UnmarshalText(text []byte) error { return i.FromString(string(text)) }

const _Rules_name = "PrePotPostPotRulesN"

var _Rules_index = [...]uint8{0, 6, 13, 19}

func (i Rules) String() string {
	if i < 0 || i >= Rules(len(_Rules_index)-1) {
		return "Rules(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _Rules_name[_Rules_index[i]:_Rules_index[i+1]]
}

func (i *Rules) FromString(s string) error {
	for j := 0; j < len(_Rules_index)-1; j++ {
		if s == _Rules_name[_Rules_index[j]:_Rules_index[j+1]] {
			*i = Rules(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: Rules")
}

func (i Rules) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Rules) UnmarshalText(text []byte) error { return i.FromString(string(text)) }
