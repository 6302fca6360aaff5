package result

// Version is the result of getversion: the node's identity and the
// protocol parameters a client needs in order to build and sign
// transactions against it (network magic, address version) and to
// size its requests to the node's limits.
type Version struct {
	TCPPort   uint16   `json:"tcpport"`
	WSPort    uint16   `json:"wsport,omitempty"`
	Nonce     uint32   `json:"nonce"`
	UserAgent string   `json:"useragent"`
	RPC       RPC      `json:"rpc"`
	Protocol  Protocol `json:"protocol"`
}

// RPC describes limits and feature flags of the node's RPC server.
type RPC struct {
	MaxIteratorResultItems int  `json:"maxiteratorresultitems"`
	SessionEnabled         bool `json:"sessionenabled"`
}

// Protocol describes the consensus/network parameters of the chain the
// node is running, the parts a client-side SDK needs: the network
// magic that salts every signature, the address version byte, and the
// traceability/validity window bounds applied to transactions.
type Protocol struct {
	AddressVersion              byte   `json:"addressversion"`
	Network                     uint32 `json:"network"`
	MillisecondsPerBlock        uint32 `json:"msperblock"`
	MaxTraceableBlocks          uint32 `json:"maxtraceableblocks"`
	MaxValidUntilBlockIncrement uint32 `json:"maxvaliduntilblockincrement"`
	MaxTransactionsPerBlock     uint32 `json:"maxtransactionsperblock"`
	MemoryPoolMaxTransactions   int    `json:"memorypoolmaxtransactions"`
	ValidatorsCount             byte   `json:"validatorscount"`
}
