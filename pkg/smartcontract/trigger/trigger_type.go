// Package trigger defines the set of events that can cause a
// contract's verification or application logic to run, matching the
// node's System.Runtime.GetTrigger values.
package trigger

import "fmt"

// Type represents the trigger under which a contract is being invoked.
type Type byte

// These are all supported trigger types.
const (
	// OnPersist fires once per block, before any transaction is
	// processed, for the native contracts' internal bookkeeping.
	OnPersist Type = 0x01
	// PostPersist fires once per block, after every transaction has
	// been processed.
	PostPersist Type = 0x02
	// Verification is used when a contract is invoked to verify that
	// a witness satisfies its signing requirements.
	Verification Type = 0x20
	// Application is used for regular contract invocations triggered
	// by a transaction's script.
	Application Type = 0x40

	// All is the union of every trigger type.
	All = OnPersist | PostPersist | Verification | Application
)

var triggerNames = map[Type]string{
	OnPersist:    "OnPersist",
	PostPersist:  "PostPersist",
	Verification: "Verification",
	Application:  "Application",
}

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	if s, ok := triggerNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(0x%02x)", byte(t))
}

// FromString parses a trigger type from its canonical name, including
// "All" for the union of every trigger.
func FromString(s string) (Type, error) {
	if s == "All" {
		return All, nil
	}
	for t, name := range triggerNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown trigger type: %q", s)
}
