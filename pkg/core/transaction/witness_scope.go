package transaction

import (
	"fmt"
	"strings"
)

// WitnessScope limits the use of a witness to specific contexts, so a
// signature collected for one invocation can't be replayed to authorize
// an unrelated call.
type WitnessScope byte

const (
	// None means the witness is only valid for transaction-level checks
	// (e.g. a sender paying fees) and can't be used by any contract.
	None WitnessScope = 0

	// CalledByEntry limits the witness to the entry script of the
	// invocation, i.e. the contract directly called by the transaction.
	CalledByEntry WitnessScope = 0x01

	// CustomContracts allows the witness to be used by the contracts
	// listed in the signer's AllowedContracts.
	CustomContracts WitnessScope = 0x10

	// CustomGroups allows the witness to be used by contracts that
	// belong to one of the signer's AllowedGroups.
	CustomGroups WitnessScope = 0x20

	// Rules allows the witness to be used when one of the signer's
	// WitnessRules evaluates to Allow.
	Rules WitnessScope = 0x40

	// Global allows the witness to be used everywhere. It can't be
	// combined with any other scope.
	Global WitnessScope = 0x80
)

var scopeNames = []struct {
	s WitnessScope
	n string
}{
	{CalledByEntry, "CalledByEntry"},
	{CustomContracts, "CustomContracts"},
	{CustomGroups, "CustomGroups"},
	{Rules, "Rules"},
	{Global, "Global"},
}

// ScopesFromByte converts a byte value into a WitnessScope, rejecting
// unknown bits and the combination of Global with anything else.
func ScopesFromByte(b byte) (WitnessScope, error) {
	if b == 0 {
		return None, nil
	}
	const validMask = byte(CalledByEntry | CustomContracts | CustomGroups | Rules | Global)
	if b&^validMask != 0 {
		return 0, fmt.Errorf("invalid scope %d", b)
	}
	if b&byte(Global) != 0 && b != byte(Global) {
		return 0, fmt.Errorf("Global scope can't be combined with other scopes")
	}
	return WitnessScope(b), nil
}

// ScopesFromString parses a comma-separated list of scope names (as
// used in CLI flags and JSON) into a WitnessScope.
func ScopesFromString(s string) (WitnessScope, error) {
	if s == "" {
		return 0, fmt.Errorf("empty scopes string")
	}
	parts := strings.Split(s, ",")
	var res WitnessScope
	for _, p := range parts {
		p = strings.TrimSpace(p)
		switch p {
		case "None":
			if len(parts) != 1 {
				return 0, fmt.Errorf("None can't be combined with other scopes")
			}
			return None, nil
		case "Global":
			if len(parts) != 1 {
				return 0, fmt.Errorf("Global can't be combined with other scopes")
			}
			return Global, nil
		case "CalledByEntry":
			res |= CalledByEntry
		case "CustomContracts":
			res |= CustomContracts
		case "CustomGroups":
			res |= CustomGroups
		case "WitnessRules", "Rules":
			res |= Rules
		default:
			return 0, fmt.Errorf("unknown scope: %q", p)
		}
	}
	return res, nil
}

// String implements the fmt.Stringer interface.
func (s WitnessScope) String() string {
	if s == None {
		return "None"
	}
	if s == Global {
		return "Global"
	}
	var parts []string
	for _, sn := range scopeNames {
		if sn.s == Global {
			continue
		}
		if s&sn.s != 0 {
			parts = append(parts, sn.n)
		}
	}
	return strings.Join(parts, ", ")
}
