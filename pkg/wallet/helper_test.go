package wallet

import (
	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

func keysFromHex(s string) (*keys.PrivateKey, error) {
	return keys.NewPrivateKeyFromHex(s)
}

func emptyHash() util.Uint256 {
	return util.Uint256{}
}
