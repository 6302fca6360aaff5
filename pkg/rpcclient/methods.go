package rpcclient

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// GetVersion calls getversion.
func (c *Client) GetVersion() (result.Version, error) {
	var v result.Version
	err := c.do("getversion", nil, &v)
	return v, err
}

// GetPeers calls getpeers.
func (c *Client) GetPeers() (result.GetPeers, error) {
	var v result.GetPeers
	err := c.do("getpeers", nil, &v)
	return v, err
}

// GetConnectionCount calls getconnectioncount.
func (c *Client) GetConnectionCount() (int, error) {
	var v int
	err := c.do("getconnectioncount", nil, &v)
	return v, err
}

// ValidateAddress calls validateaddress.
func (c *Client) ValidateAddress(address string) (result.ValidateAddress, error) {
	var v result.ValidateAddress
	err := c.do("validateaddress", []any{address}, &v)
	return v, err
}

// GetBestBlockHash calls getbestblockhash.
func (c *Client) GetBestBlockHash() (util.Uint256, error) {
	var v util.Uint256
	err := c.do("getbestblockhash", nil, &v)
	return v, err
}

// GetBlockCount calls getblockcount.
func (c *Client) GetBlockCount() (uint32, error) {
	var v uint32
	err := c.do("getblockcount", nil, &v)
	return v, err
}

// GetBlockHash calls getblockhash for the block at index.
func (c *Client) GetBlockHash(index uint32) (util.Uint256, error) {
	var v util.Uint256
	err := c.do("getblockhash", []any{index}, &v)
	return v, err
}

// GetBlockByIndex calls getblock with verbose=true for the block at index.
func (c *Client) GetBlockByIndex(index uint32) (*result.Block, error) {
	v := new(result.Block)
	err := c.do("getblock", []any{index, true}, v)
	return v, err
}

// GetBlockByHash calls getblock with verbose=true for the given hash.
func (c *Client) GetBlockByHash(hash util.Uint256) (*result.Block, error) {
	v := new(result.Block)
	err := c.do("getblock", []any{hash, true}, v)
	return v, err
}

// GetBlockHeaderByHash calls getblockheader with verbose=true.
func (c *Client) GetBlockHeaderByHash(hash util.Uint256) (*result.Header, error) {
	v := new(result.Header)
	err := c.do("getblockheader", []any{hash, true}, v)
	return v, err
}

// GetCommittee calls getcommittee: the current committee member keys,
// hex-encoded, with no vote/active data attached.
func (c *Client) GetCommittee() ([]string, error) {
	var v []string
	err := c.do("getcommittee", nil, &v)
	return v, err
}

// GetNextBlockValidators calls getnextblockvalidators.
func (c *Client) GetNextBlockValidators() ([]result.Validator, error) {
	var v []result.Validator
	err := c.do("getnextblockvalidators", nil, &v)
	return v, err
}

// GetContractStateByHash calls getcontractstate for a deployed
// contract's script hash, caching the result: a contract's state only
// changes when it's updated or destroyed, so repeated lookups of the
// same hash within a Client's lifetime skip the round trip.
func (c *Client) GetContractStateByHash(hash util.Uint160) (*result.ContractState, error) {
	if cached, ok := c.contractCache.Get(hash); ok {
		return cached.(*result.ContractState), nil
	}
	v := new(result.ContractState)
	if err := c.do("getcontractstate", []any{hash}, v); err != nil {
		return nil, err
	}
	c.contractCache.Add(hash, v)
	return v, nil
}

// GetContractStateByID calls getcontractstate for a native or
// deployed contract's numeric id.
func (c *Client) GetContractStateByID(id int32) (*result.ContractState, error) {
	v := new(result.ContractState)
	err := c.do("getcontractstate", []any{id}, v)
	return v, err
}

// GetStorageByHash calls getstorage, returning the raw value stored
// under key in the given contract's storage, or nil if absent.
func (c *Client) GetStorageByHash(hash util.Uint160, key []byte) ([]byte, error) {
	var v string
	err := c.do("getstorage", []any{hash, base64.StdEncoding.EncodeToString(key)}, &v)
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(v)
}

// FindStorage calls findstorage, returning one page of a contract's
// storage entries whose keys start with prefix.
func (c *Client) FindStorage(hash util.Uint160, prefix []byte, start int) (result.FindStorage, error) {
	var v result.FindStorage
	err := c.do("findstorage", []any{hash, base64.StdEncoding.EncodeToString(prefix), start}, &v)
	return v, err
}

// GetRawTransaction calls getrawtransaction with verbose=false,
// returning the transaction's raw wire bytes.
func (c *Client) GetRawTransaction(hash util.Uint256) ([]byte, error) {
	var v string
	err := c.do("getrawtransaction", []any{hash, false}, &v)
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(v)
}

// GetRawTransactionVerbose calls getrawtransaction with verbose=true,
// decoding both the transaction itself and the block metadata it was
// confirmed under from the same response.
func (c *Client) GetRawTransactionVerbose(hash util.Uint256) (*transaction.Transaction, *result.RawTransaction, error) {
	resp, err := c.perform("getrawtransaction", []any{hash, true})
	if err != nil {
		return nil, nil, err
	}
	if resp.Error != nil {
		return nil, nil, resp.Error
	}
	tx := new(transaction.Transaction)
	if err := json.Unmarshal(resp.Result, tx); err != nil {
		return nil, nil, &ProtocolError{Err: fmt.Errorf("decoding transaction: %w", err)}
	}
	meta := new(result.RawTransaction)
	if err := json.Unmarshal(resp.Result, meta); err != nil {
		return nil, nil, &ProtocolError{Err: fmt.Errorf("decoding transaction metadata: %w", err)}
	}
	return tx, meta, nil
}

// GetTransactionHeight calls gettransactionheight.
func (c *Client) GetTransactionHeight(hash util.Uint256) (uint32, error) {
	var v uint32
	err := c.do("gettransactionheight", []any{hash}, &v)
	return v, err
}

// GetApplicationLog calls getapplicationlog for a transaction or block hash.
func (c *Client) GetApplicationLog(hash util.Uint256, trigger *string) (*result.AppLog, error) {
	params := []any{hash}
	if trigger != nil {
		params = append(params, *trigger)
	}
	v := new(result.AppLog)
	err := c.do("getapplicationlog", params, v)
	return v, err
}

// InvokeFunction calls invokefunction against a deployed contract's
// method with args, under the given signer set (which may be empty
// for a read-only call with no witness checks).
func (c *Client) InvokeFunction(hash util.Uint160, method string, args []smartcontract.Parameter, signers []neorpc.SignerWithWitness) (*result.Invoke, error) {
	params := []any{hash, method, args}
	if signers != nil {
		params = append(params, signers)
	}
	v := new(result.Invoke)
	err := c.do("invokefunction", params, v)
	return v, err
}

// InvokeScript calls invokescript with a raw, already-assembled
// script, under the given signer set.
func (c *Client) InvokeScript(script []byte, signers []neorpc.SignerWithWitness) (*result.Invoke, error) {
	params := []any{base64.StdEncoding.EncodeToString(script)}
	if signers != nil {
		params = append(params, signers)
	}
	v := new(result.Invoke)
	err := c.do("invokescript", params, v)
	return v, err
}

// TraverseIterator calls traverseiterator, pulling up to count more
// items from an iterator returned in an invoke result's session.
func (c *Client) TraverseIterator(session, iterator string, count int) ([]smartcontract.Parameter, error) {
	var v []smartcontract.Parameter
	err := c.do("traverseiterator", []any{session, iterator, count}, &v)
	return v, err
}

// TerminateSession calls terminatesession, releasing a session's
// iterators on the node before it would otherwise expire.
func (c *Client) TerminateSession(session string) (bool, error) {
	var v bool
	err := c.do("terminatesession", []any{session}, &v)
	return v, err
}

// SendRawTransaction calls sendrawtransaction with a fully signed
// transaction's wire bytes, returning its hash once accepted.
func (c *Client) SendRawTransaction(rawTx []byte) (util.Uint256, error) {
	var v struct {
		Hash util.Uint256 `json:"hash"`
	}
	err := c.do("sendrawtransaction", []any{base64.StdEncoding.EncodeToString(rawTx)}, &v)
	return v.Hash, err
}

// CalculateNetworkFee calls calculatenetworkfee for a transaction with
// placeholder witnesses already attached, returning the network fee it
// would require once properly signed.
func (c *Client) CalculateNetworkFee(tx []byte) (int64, error) {
	var v result.NetworkFee
	err := c.do("calculatenetworkfee", []any{base64.StdEncoding.EncodeToString(tx)}, &v)
	return v.Value, err
}

// GetNEP17Balances calls getnep17balances for account.
func (c *Client) GetNEP17Balances(account util.Uint160) (*result.NEP17Balances, error) {
	v := new(result.NEP17Balances)
	err := c.do("getnep17balances", []any{account}, v)
	return v, err
}

// GetNEP17Transfers calls getnep17transfers for account, optionally
// bounded by a unix-second timestamp window.
func (c *Client) GetNEP17Transfers(account util.Uint160, from, to *uint64) (*result.NEP17Transfers, error) {
	params := []any{account}
	if from != nil {
		params = append(params, *from)
		if to != nil {
			params = append(params, *to)
		}
	}
	v := new(result.NEP17Transfers)
	err := c.do("getnep17transfers", params, v)
	return v, err
}

// GetStateRoot calls getstateroot for the block at index.
func (c *Client) GetStateRoot(index uint32) (*result.StateRoot, error) {
	v := new(result.StateRoot)
	err := c.do("getstateroot", []any{index}, v)
	return v, err
}

// GetProof calls getproof, the inclusion proof of key in contract's
// storage against the given state root.
func (c *Client) GetProof(root util.Uint256, contract util.Uint160, key []byte) (result.ProofWithKey, error) {
	var v string
	err := c.do("getproof", []any{root, contract, base64.StdEncoding.EncodeToString(key)}, &v)
	if err != nil {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, &ProtocolError{Err: err}
	}
	return result.ProofWithKey(b), nil
}

// VerifyProof calls verifyproof, checking proof against root without
// needing the full state tree locally.
func (c *Client) VerifyProof(root util.Uint256, proof result.ProofWithKey) (bool, error) {
	var v bool
	err := c.do("verifyproof", []any{root, base64.StdEncoding.EncodeToString(proof)}, &v)
	return v, err
}

// GetStateHeight calls getstateheight.
func (c *Client) GetStateHeight() (result.StateHeight, error) {
	var v result.StateHeight
	err := c.do("getstateheight", nil, &v)
	return v, err
}

// GetUnclaimedGas calls getunclaimedgas for account.
func (c *Client) GetUnclaimedGas(account util.Uint160) (result.UnclaimedGas, error) {
	var v result.UnclaimedGas
	err := c.do("getunclaimedgas", []any{account}, &v)
	return v, err
}

// GetWalletBalance calls getwalletbalance for an asset hash, against
// the node's own (server-side) wallet.
func (c *Client) GetWalletBalance(asset util.Uint160) (result.WalletBalance, error) {
	var v result.WalletBalance
	err := c.do("getwalletbalance", []any{asset}, &v)
	return v, err
}
