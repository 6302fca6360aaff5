package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/vm/stackitem"
)

// WitnessAction decides whether a WitnessRule's condition permits or
// forbids the use of its witness.
type WitnessAction byte

const (
	WitnessDeny  WitnessAction = 0
	WitnessAllow WitnessAction = 1
)

// String implements the fmt.Stringer interface.
func (a WitnessAction) String() string {
	switch a {
	case WitnessDeny:
		return "Deny"
	case WitnessAllow:
		return "Allow"
	default:
		return fmt.Sprintf("Unknown(%d)", byte(a))
	}
}

// WitnessRule is one entry of a signer's Rules scope: Condition is
// evaluated and, if it matches, Action decides whether the witness may
// be used in that context.
type WitnessRule struct {
	Action    WitnessAction
	Condition WitnessCondition
}

// EncodeBinary implements the Serializable interface.
func (w *WitnessRule) EncodeBinary(bw *io.BinWriter) {
	bw.WriteB(byte(w.Action))
	w.Condition.EncodeBinary(bw)
}

// DecodeBinary implements the Serializable interface.
func (w *WitnessRule) DecodeBinary(br *io.BinReader) {
	action := WitnessAction(br.ReadB())
	if br.Err != nil {
		return
	}
	if action != WitnessDeny && action != WitnessAllow {
		br.Err = fmt.Errorf("invalid witness action %d", action)
		return
	}
	w.Action = action
	w.Condition = DecodeBinaryCondition(br)
}

type witnessRuleAux struct {
	Action    string          `json:"action"`
	Condition json.RawMessage `json:"condition"`
}

// MarshalJSON implements the json.Marshaler interface.
func (w WitnessRule) MarshalJSON() ([]byte, error) {
	cond, err := w.Condition.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(witnessRuleAux{Action: w.Action.String(), Condition: cond})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (w *WitnessRule) UnmarshalJSON(data []byte) error {
	var aux witnessRuleAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var action WitnessAction
	switch aux.Action {
	case "Deny":
		action = WitnessDeny
	case "Allow":
		action = WitnessAllow
	default:
		return fmt.Errorf("invalid witness action: %q", aux.Action)
	}
	if aux.Condition == nil {
		return fmt.Errorf("witness rule: missing condition")
	}
	cond, err := UnmarshalConditionJSON(aux.Condition)
	if err != nil {
		return err
	}
	w.Action = action
	w.Condition = cond
	return nil
}

// ToStackItem converts the rule into the VM representation used by
// native contracts that inspect the current signers (e.g. ContractManagement).
func (w *WitnessRule) ToStackItem() stackitem.Item {
	return stackitem.NewArray([]stackitem.Item{
		stackitem.Make(int64(w.Action)),
		conditionToStackItem(w.Condition),
	})
}

func conditionToStackItem(c WitnessCondition) stackitem.Item {
	switch cc := c.(type) {
	case *ConditionBoolean:
		return stackitem.NewArray([]stackitem.Item{
			stackitem.Make(byte(WitnessBoolean)),
			stackitem.Make(bool(*cc)),
		})
	default:
		return stackitem.NewArray([]stackitem.Item{
			stackitem.Make(byte(c.Type())),
		})
	}
}

// Copy returns a deep copy of the rule.
func (w *WitnessRule) Copy() *WitnessRule {
	return &WitnessRule{
		Action:    w.Action,
		Condition: copyCondition(w.Condition),
	}
}

func copyCondition(c WitnessCondition) WitnessCondition {
	switch cc := c.(type) {
	case *ConditionBoolean:
		v := *cc
		return &v
	case *ConditionNot:
		return &ConditionNot{Condition: copyCondition(cc.Condition)}
	case *ConditionAnd:
		cp := make(ConditionAnd, len(*cc))
		for i, sub := range *cc {
			cp[i] = copyCondition(sub)
		}
		return &cp
	case *ConditionOr:
		cp := make(ConditionOr, len(*cc))
		for i, sub := range *cc {
			cp[i] = copyCondition(sub)
		}
		return &cp
	case *ConditionScriptHash:
		v := *cc
		return &v
	case *ConditionGroup:
		v := *cc
		return &v
	case ConditionCalledByEntry:
		return cc
	case *ConditionCalledByContract:
		v := *cc
		return &v
	case *ConditionCalledByGroup:
		v := *cc
		return &v
	default:
		return c
	}
}
