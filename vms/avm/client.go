// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avm

import (
	"context"

	"github.com/ava-labs/avalanche-sdk-go/api"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/snow/choices"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"

	avajson "github.com/ava-labs/avalanche-sdk-go/utils/json"
)

// Client for an AVM endpoint
type Client struct {
	Requester rpc.EndpointRequester
}

// NewClient returns an AVM client for interacting with the chain named by
// [chain], usually "X".
func NewClient(uri, chain string) *Client {
	path := uri + "/ext/bc/" + chain
	return &Client{Requester: rpc.NewEndpointRequester(path)}
}

func (c *Client) IssueTx(ctx context.Context, txBytes []byte, options ...rpc.Option) (ids.ID, error) {
	txStr, err := formatting.Encode(formatting.Hex, txBytes)
	if err != nil {
		return ids.Empty, err
	}
	res := &api.JSONTxID{}
	err = c.Requester.SendRequest(ctx, "avm.issueTx", &api.FormattedTx{
		Tx:       txStr,
		Encoding: formatting.Hex,
	}, res, options...)
	return res.TxID, err
}

func (c *Client) GetTxStatus(ctx context.Context, txID ids.ID, options ...rpc.Option) (choices.Status, error) {
	res := &GetTxStatusReply{}
	err := c.Requester.SendRequest(ctx, "avm.getTxStatus", &api.GetTxStatusArgs{
		TxID: txID,
	}, res, options...)
	return res.Status, err
}

func (c *Client) GetUTXOs(
	ctx context.Context,
	addrs []string,
	limit uint32,
	startAddress string,
	startUTXOID string,
	options ...rpc.Option,
) ([][]byte, api.Index, error) {
	return c.GetAtomicUTXOs(ctx, addrs, "", limit, startAddress, startUTXOID, options...)
}

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
	err := c.Requester.SendRequest(ctx, "avm.getUTXOs", &api.GetUTXOsArgs{
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

func (c *Client) GetAssetDescription(ctx context.Context, assetID string, options ...rpc.Option) (*GetAssetDescriptionReply, error) {
	res := &GetAssetDescriptionReply{}
	err := c.Requester.SendRequest(ctx, "avm.getAssetDescription", &GetAssetDescriptionArgs{
		AssetID: assetID,
	}, res, options...)
	return res, err
}
