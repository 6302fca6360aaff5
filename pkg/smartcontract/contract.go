package smartcontract

import (
	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
)

// CreateMultiSigRedeemScript builds the m-of-n multisig verification
// script for pubs, the script an account derived from a committee of
// signers uses to prove a witness satisfies its threshold.
func CreateMultiSigRedeemScript(m int, pubs []*keys.PublicKey) ([]byte, error) {
	return keys.PublicKeys(pubs).GetVerificationScript(m)
}

// ParseMultiSigContract recovers the threshold and member public keys
// from an m-of-n multisig verification script, or reports that script
// isn't one.
func ParseMultiSigContract(script []byte) (int, []*keys.PublicKey, error) {
	m, pubs, err := keys.ParseMultiSigContract(script)
	return m, pubs, err
}
