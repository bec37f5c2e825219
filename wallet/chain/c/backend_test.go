// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package c

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

var errTest = errors.New("non-nil error")

type testEthClient struct {
	balance *big.Int
	nonce   uint64
	header  *types.Header
	err     error
}

func (c *testEthClient) BalanceAt(context.Context, ethcommon.Address, *big.Int) (*big.Int, error) {
	return c.balance, c.err
}

func (c *testEthClient) NonceAt(context.Context, ethcommon.Address, *big.Int) (uint64, error) {
	return c.nonce, c.err
}

func (c *testEthClient) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return c.header, c.err
}

func TestBackendBaseFee(t *testing.T) {
	tests := []struct {
		name            string
		client          *testEthClient
		expectedBaseFee *big.Int
		expectedErr     error
	}{
		{
			name: "latest header",
			client: &testEthClient{
				header: &types.Header{BaseFee: big.NewInt(25)},
			},
			expectedBaseFee: big.NewInt(25),
		},
		{
			name: "pre london header",
			client: &testEthClient{
				header: &types.Header{},
			},
			expectedErr: errNoBaseFee,
		},
		{
			name: "client error",
			client: &testEthClient{
				err: errTest,
			},
			expectedErr: errTest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			backend := NewBackend(common.NewChainUTXOs(cChainID, common.NewUTXOs()), tt.client)
			baseFee, err := backend.BaseFee(context.Background())
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr == nil {
				require.Zero(tt.expectedBaseFee.Cmp(baseFee))
			}
		})
	}
}

func TestBackendAccountState(t *testing.T) {
	require := require.New(t)

	backend := NewBackend(
		common.NewChainUTXOs(cChainID, common.NewUTXOs()),
		&testEthClient{
			balance: big.NewInt(7),
			nonce:   4,
		},
	)
	ctx := context.Background()

	balance, err := backend.Balance(ctx, ethAddrA)
	require.NoError(err)
	require.Equal(int64(7), balance.Int64())

	nonce, err := backend.Nonce(ctx, ethAddrA)
	require.NoError(err)
	require.Equal(uint64(4), nonce)
}
