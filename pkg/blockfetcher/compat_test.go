package blockfetcher_test

import (
	"github.com/nspcc-dev/neo-go-sdk/pkg/blockfetcher"
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient"
)

// Compile-time assertions that both transports satisfy BlockNotifier,
// and that rpcclient's concrete clients satisfy the narrow interfaces
// each transport needs without an adapter.
var (
	_ blockfetcher.BlockNotifier = (*blockfetcher.Poller)(nil)
	_ blockfetcher.BlockNotifier = (*blockfetcher.Subscriber)(nil)

	_ blockfetcher.Client   = (*rpcclient.Client)(nil)
	_ blockfetcher.WSClient = (*rpcclient.WSClient)(nil)
)
