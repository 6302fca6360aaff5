package invoker_test

import (
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient/invoker"
)

// Compile-time assertions that rpcclient's concrete clients satisfy
// invoker.RPCInvoke without an adapter.
var (
	_ invoker.RPCInvoke = (*rpcclient.Client)(nil)
	_ invoker.RPCInvoke = (*rpcclient.WSClient)(nil)
)
