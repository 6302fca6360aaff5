package txbuilder_test

import (
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go-sdk/pkg/txbuilder"
)

// Compile-time assertions that rpcclient's concrete clients satisfy
// txbuilder.Client without an adapter.
var (
	_ txbuilder.Client = (*rpcclient.Client)(nil)
	_ txbuilder.Client = (*rpcclient.WSClient)(nil)
)
