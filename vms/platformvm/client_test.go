// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package platformvm

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/api"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc/rpcmock"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/status"

	avajson "github.com/ava-labs/avalanche-sdk-go/utils/json"
)

func TestGetAtomicUTXOs(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	requester := rpcmock.NewEndpointRequester(ctrl)
	c := &Client{Requester: requester}

	utxoBytes := []byte{0x00, 0x00, 0x01, 0x02}
	utxoStr, err := formatting.Encode(formatting.Hex, utxoBytes)
	require.NoError(err)

	requester.EXPECT().SendRequest(gomock.Any(), "platform.getUTXOs", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, args interface{}, reply interface{}, _ ...rpc.Option) error {
			utxoArgs := args.(*api.GetUTXOsArgs)
			require.Equal([]string{"P-fuji1abc"}, utxoArgs.Addresses)
			require.Equal("C", utxoArgs.SourceChain)
			require.Equal("P-fuji1abc", utxoArgs.StartIndex.Address)
			require.Equal("utxo", utxoArgs.StartIndex.UTXO)

			r := reply.(*api.GetUTXOsReply)
			r.NumFetched = 1
			r.UTXOs = []string{utxoStr}
			r.EndIndex = api.Index{Address: "P-fuji1abc", UTXO: "next"}
			r.Encoding = formatting.Hex
			return nil
		},
	)

	utxos, endIndex, err := c.GetAtomicUTXOs(context.Background(), []string{"P-fuji1abc"}, "C", 1024, "P-fuji1abc", "utxo")
	require.NoError(err)
	require.Equal([][]byte{utxoBytes}, utxos)
	require.Equal("next", endIndex.UTXO)
}

func TestIssueTx(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	requester := rpcmock.NewEndpointRequester(ctrl)
	c := &Client{Requester: requester}

	txBytes := []byte{0x00, 0x00}
	txID := ids.GenerateTestID()
	requester.EXPECT().SendRequest(gomock.Any(), "platform.issueTx", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, args interface{}, reply interface{}, _ ...rpc.Option) error {
			tx := args.(*api.FormattedTx)
			require.Equal(formatting.Hex, tx.Encoding)
			decoded, err := formatting.Decode(formatting.Hex, tx.Tx)
			require.NoError(err)
			require.Equal(txBytes, decoded)

			reply.(*IssueTxReply).TxID = txID
			return nil
		},
	)

	gotTxID, err := c.IssueTx(context.Background(), txBytes)
	require.NoError(err)
	require.Equal(txID, gotTxID)
}

func TestGetTxStatus(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	requester := rpcmock.NewEndpointRequester(ctrl)
	c := &Client{Requester: requester}

	txID := ids.GenerateTestID()
	requester.EXPECT().SendRequest(gomock.Any(), "platform.getTxStatus", &api.GetTxStatusArgs{TxID: txID}, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ interface{}, reply interface{}, _ ...rpc.Option) error {
			r := reply.(*GetTxStatusResponse)
			r.Status = status.Dropped
			r.Reason = "insufficient funds"
			return nil
		},
	)

	res, err := c.GetTxStatus(context.Background(), txID)
	require.NoError(err)
	require.Equal(status.Dropped, res.Status)
	require.Equal("insufficient funds", res.Reason)
}

func TestGetFees(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	requester := rpcmock.NewEndpointRequester(ctrl)
	c := &Client{Requester: requester}

	requester.EXPECT().SendRequest(gomock.Any(), "platform.getFeeConfig", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ interface{}, reply interface{}, _ ...rpc.Option) error {
			r := reply.(*GetFeeConfigReply)
			r.Weights = [gas.NumDimensions]avajson.Uint64{1, 1000, 1000, 4}
			r.MinPrice = 1
			r.ExcessConversionConstant = 2_164_043
			return nil
		},
	)
	config, err := c.GetFeeConfig(context.Background())
	require.NoError(err)
	require.Equal(gas.Dimensions{1, 1000, 1000, 4}, config.Weights)
	require.Equal(gas.Price(1), config.MinPrice)

	now := time.Unix(1_700_000_000, 0)
	requester.EXPECT().SendRequest(gomock.Any(), "platform.getFeeState", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ interface{}, reply interface{}, _ ...rpc.Option) error {
			r := reply.(*GetFeeStateReply)
			r.Capacity = 1_000_000
			r.Excess = 10
			r.Price = 2
			r.Time = now
			return nil
		},
	)
	state, err := c.GetFeeState(context.Background())
	require.NoError(err)
	require.Equal(gas.Gas(1_000_000), state.Capacity)
	require.Equal(gas.Gas(10), state.Excess)
	require.Equal(gas.Price(2), state.Price)
	require.Equal(now, state.Time)
}
