// Package callflag defines the set of capabilities a contract
// invocation is permitted to use, the same bitmask the node's
// manifest/permission checks and invocation scripts rely on.
package callflag

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CallFlag represents a bitmask of permissions granted to a contract
// call: whether it may read or write contract storage, call other
// contracts, or emit notifications.
type CallFlag byte

// This block defines all base and composite call flags the node
// recognizes.
const (
	NoneFlag        CallFlag = 0
	ReadStates      CallFlag = 1 << iota
	WriteStates
	AllowCall
	AllowNotify

	States   = ReadStates | WriteStates
	ReadOnly = ReadStates | AllowCall
	All      = States | AllowCall | AllowNotify
)

var flagNames = []struct {
	flag CallFlag
	name string
}{
	{ReadStates, "ReadStates"},
	{WriteStates, "WriteStates"},
	{AllowCall, "AllowCall"},
	{AllowNotify, "AllowNotify"},
}

// Has returns true if f has all bits of v set.
func (f CallFlag) Has(v CallFlag) bool {
	return f&v == v
}

// String returns the comma-separated list of flag names set in f. The
// States/ReadOnly/All combinations are rendered under their own
// canonical names instead of every constituent bit.
func (f CallFlag) String() string {
	switch f {
	case NoneFlag:
		return "None"
	case All:
		return "All"
	}
	var parts []string
	remaining := f
	switch {
	case remaining.Has(ReadOnly):
		parts = append(parts, "ReadOnly")
		remaining &^= ReadOnly
	case remaining.Has(States):
		parts = append(parts, "States")
		remaining &^= States
	default:
		if remaining.Has(ReadStates) {
			parts = append(parts, "ReadStates")
			remaining &^= ReadStates
		}
	}
	if remaining.Has(WriteStates) {
		parts = append(parts, "WriteStates")
		remaining &^= WriteStates
	}
	if remaining.Has(AllowCall) {
		parts = append(parts, "AllowCall")
		remaining &^= AllowCall
	}
	if remaining.Has(AllowNotify) {
		parts = append(parts, "AllowNotify")
	}
	return strings.Join(parts, ", ")
}

// FromString parses a comma-separated list of flag names (as produced
// by String, or any permutation/subset of the individual bit names)
// into a CallFlag. Each part may carry a single leading space (as
// after a ", " separator), but is otherwise matched verbatim against
// the canonical flag names; None and All must each appear alone.
func FromString(s string) (CallFlag, error) {
	parts := strings.Split(s, ",")
	var f CallFlag
	for _, p := range parts {
		name := strings.TrimPrefix(p, " ")
		switch name {
		case "None":
			if len(parts) != 1 {
				return NoneFlag, fmt.Errorf("None cannot be combined with other call flags")
			}
			return NoneFlag, nil
		case "All":
			if len(parts) != 1 {
				return NoneFlag, fmt.Errorf("All cannot be combined with other call flags")
			}
			return All, nil
		case "States":
			f |= States
		case "ReadOnly":
			f |= ReadOnly
		default:
			found := false
			for _, fn := range flagNames {
				if fn.name == name {
					f |= fn.flag
					found = true
					break
				}
			}
			if !found {
				return NoneFlag, fmt.Errorf("unknown call flag: %q", name)
			}
		}
	}
	return f, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f CallFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *CallFlag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := FromString(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (f CallFlag) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (f *CallFlag) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := FromString(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}
