// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package c

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

var (
	errNoBaseFee = errors.New("latest header has no base fee")

	_ Backend = (*backend)(nil)
)

// EthClient is the subset of the go-ethereum ethclient.Client used to read
// C-Chain account state.
type EthClient interface {
	BalanceAt(ctx context.Context, account ethcommon.Address, blockNumber *big.Int) (*big.Int, error)
	NonceAt(ctx context.Context, account ethcommon.Address, blockNumber *big.Int) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// Backend provides the C-Chain state the builder needs.
type Backend interface {
	common.ChainUTXOs

	// Balance returns the wei held by [addr] at the latest block.
	Balance(ctx context.Context, addr ethcommon.Address) (*big.Int, error)
	// Nonce returns the next nonce of [addr] at the latest block.
	Nonce(ctx context.Context, addr ethcommon.Address) (uint64, error)
	// BaseFee returns the base fee of the latest block in wei.
	BaseFee(ctx context.Context) (*big.Int, error)
}

type backend struct {
	common.ChainUTXOs

	client EthClient
}

func NewBackend(utxos common.ChainUTXOs, client EthClient) Backend {
	return &backend{
		ChainUTXOs: utxos,
		client:     client,
	}
}

func (b *backend) Balance(ctx context.Context, addr ethcommon.Address) (*big.Int, error) {
	return b.client.BalanceAt(ctx, addr, nil)
}

func (b *backend) Nonce(ctx context.Context, addr ethcommon.Address) (uint64, error) {
	return b.client.NonceAt(ctx, addr, nil)
}

func (b *backend) BaseFee(ctx context.Context) (*big.Int, error) {
	header, err := b.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, err
	}
	if header.BaseFee == nil {
		return nil, errNoBaseFee
	}
	return header.BaseFee, nil
}
