// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package atomic

import (
	"context"

	"github.com/ava-labs/avalanche-sdk-go/api"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"

	avajson "github.com/ava-labs/avalanche-sdk-go/utils/json"
)

// Client for interacting with the atomic API of an evm chain
type Client struct {
	Requester rpc.EndpointRequester
}

// NewClient returns a Client for interacting with the atomic API of [chain]
func NewClient(uri, chain string) *Client {
	return &Client{Requester: rpc.NewEndpointRequester(
		uri + "/ext/bc/" + chain + "/avax",
	)}
}

// NewCChainClient returns a Client for interacting with the C Chain
func NewCChainClient(uri string) *Client {
	return NewClient(uri, "C")
}

// IssueTx issues a transaction to a node and returns the TxID
func (c *Client) IssueTx(ctx context.Context, txBytes []byte, options ...rpc.Option) (ids.ID, error) {
	txStr, err := formatting.Encode(formatting.Hex, txBytes)
	if err != nil {
		return ids.Empty, err
	}
	res := &api.JSONTxID{}
	err = c.Requester.SendRequest(ctx, "avax.issueTx", &api.FormattedTx{
		Tx:       txStr,
		Encoding: formatting.Hex,
	}, res, options...)
	return res.TxID, err
}

// GetAtomicTxStatusReply defines the GetAtomicTxStatus replies returned from the API
type GetAtomicTxStatusReply struct {
	Status      Status          `json:"status"`
	BlockHeight *avajson.Uint64 `json:"blockHeight,omitempty"`
}

// GetAtomicTxStatus returns the status of [txID]
func (c *Client) GetAtomicTxStatus(ctx context.Context, txID ids.ID, options ...rpc.Option) (Status, error) {
	res := &GetAtomicTxStatusReply{}
	err := c.Requester.SendRequest(ctx, "avax.getAtomicTxStatus", &api.JSONTxID{
		TxID: txID,
	}, res, options...)
	return res.Status, err
}

// GetAtomicUTXOs returns the byte representation of the atomic UTXOs controlled by [addrs]
// from [sourceChain]
func (c *Client) GetAtomicUTXOs(
	ctx context.Context,
	addrs []string,
	sourceChain string,
	limit uint32,
	startAddress string,
	startUTXOID string,
	options ...rpc.Option,
) ([][]byte, api.Index, error) {
	res := &api.GetUTXOsReply{}
	err := c.Requester.SendRequest(ctx, "avax.getUTXOs", &api.GetUTXOsArgs{
		Addresses:   addrs,
		SourceChain: sourceChain,
		Limit:       avajson.Uint32(limit),
		StartIndex: api.Index{
			Address: startAddress,
			UTXO:    startUTXOID,
		},
		Encoding: formatting.Hex,
	}, res, options...)
	if err != nil {
		return nil, api.Index{}, err
	}

	utxos, err := res.DecodeUTXOs()
	if err != nil {
		return nil, api.Index{}, err
	}
	return utxos, res.EndIndex, nil
}
