// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package platformvm

import (
	"context"

	"github.com/ava-labs/avalanche-sdk-go/api"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"

	avajson "github.com/ava-labs/avalanche-sdk-go/utils/json"
)

// Client for interacting with the P Chain endpoint
type Client struct {
	Requester rpc.EndpointRequester
}

// NewClient returns a Client for interacting with the P Chain endpoint
func NewClient(uri string) *Client {
	return &Client{Requester: rpc.NewEndpointRequester(
		uri + "/ext/" + constants.PChainAlias,
	)}
}

// GetBalance returns the balance of [addrs] on the P Chain
func (c *Client) GetBalance(ctx context.Context, addrs []string, options ...rpc.Option) (*GetBalanceResponse, error) {
	res := &GetBalanceResponse{}
	err := c.Requester.SendRequest(ctx, "platform.getBalance", &GetBalanceRequest{
		Addresses: addrs,
	}, res, options...)
	return res, err
}

// GetUTXOs returns the byte representation of the UTXOs controlled by [addrs]
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
	err := c.Requester.SendRequest(ctx, "platform.getUTXOs", &api.GetUTXOsArgs{
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

// IssueTx issues the transaction and returns its txID
func (c *Client) IssueTx(ctx context.Context, txBytes []byte, options ...rpc.Option) (ids.ID, error) {
	txStr, err := formatting.Encode(formatting.Hex, txBytes)
	if err != nil {
		return ids.Empty, err
	}

	res := &IssueTxReply{}
	err = c.Requester.SendRequest(ctx, "platform.issueTx", &api.FormattedTx{
		Tx:       txStr,
		Encoding: formatting.Hex,
	}, res, options...)
	return res.TxID, err
}

// GetTxStatus returns the status of the transaction corresponding to [txID]
func (c *Client) GetTxStatus(ctx context.Context, txID ids.ID, options ...rpc.Option) (*GetTxStatusResponse, error) {
	res := &GetTxStatusResponse{}
	err := c.Requester.SendRequest(ctx, "platform.getTxStatus", &api.GetTxStatusArgs{
		TxID: txID,
	}, res, options...)
	return res, err
}

// GetFeeConfig returns the dynamic fee config of the chain.
func (c *Client) GetFeeConfig(ctx context.Context, options ...rpc.Option) (*gas.Config, error) {
	res := &GetFeeConfigReply{}
	if err := c.Requester.SendRequest(ctx, "platform.getFeeConfig", struct{}{}, res, options...); err != nil {
		return nil, err
	}
	config := res.config()
	return &config, nil
}

// GetFeeState returns the current fee state of the chain.
func (c *Client) GetFeeState(ctx context.Context, options ...rpc.Option) (*FeeState, error) {
	res := &GetFeeStateReply{}
	if err := c.Requester.SendRequest(ctx, "platform.getFeeState", struct{}{}, res, options...); err != nil {
		return nil, err
	}
	return &FeeState{
		State: gas.State{
			Capacity: gas.Gas(res.Capacity),
			Excess:   gas.Gas(res.Excess),
		},
		Price: gas.Price(res.Price),
		Time:  res.Time,
	}, nil
}
