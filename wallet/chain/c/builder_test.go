// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package c

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/utils/units"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/evm/atomic"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

var (
	avaxAssetID = ids.ID{'a', 'v', 'a', 'x'}
	cChainID    = ids.ID{'C'}
	xChainID    = ids.ID{'X'}
	pChainID    = constants.PlatformChainID

	testContext = &Context{
		NetworkID:    constants.FujiID,
		BlockchainID: cChainID,
		AVAXAssetID:  avaxAssetID,
	}

	// 25 gwei
	testBaseFee = big.NewInt(25 * int64(units.WeiPerNanoAvax))

	avaxAddr = ids.ShortID{1}
	ethAddrA = ethcommon.Address{1}
	ethAddrB = ethcommon.Address{2}
)

type testBackend struct {
	common.ChainUTXOs

	balances     map[ethcommon.Address]*big.Int
	nonces       map[ethcommon.Address]uint64
	baseFee      *big.Int
	baseFeeCalls int
}

func (b *testBackend) Balance(_ context.Context, addr ethcommon.Address) (*big.Int, error) {
	balance, ok := b.balances[addr]
	if !ok {
		return new(big.Int), nil
	}
	return new(big.Int).Set(balance), nil
}

func (b *testBackend) Nonce(_ context.Context, addr ethcommon.Address) (uint64, error) {
	return b.nonces[addr], nil
}

func (b *testBackend) BaseFee(context.Context) (*big.Int, error) {
	b.baseFeeCalls++
	return b.baseFee, nil
}

func newUTXO(txID byte, assetID ids.ID, amount uint64, owner ids.ShortID) *avax.UTXO {
	return &avax.UTXO{
		UTXOID: avax.UTXOID{TxID: ids.ID{txID}},
		Asset:  avax.Asset{ID: assetID},
		Out: &secp256k1fx.TransferOutput{
			Amt: amount,
			OutputOwners: secp256k1fx.OutputOwners{
				Threshold: 1,
				Addrs:     []ids.ShortID{owner},
			},
		},
	}
}

func newTestBackend(t *testing.T, sourceChainID ids.ID, utxos ...*avax.UTXO) *testBackend {
	ctx := context.Background()
	allUTXOs := common.NewUTXOs()
	for _, utxo := range utxos {
		require.NoError(t, allUTXOs.AddUTXO(ctx, sourceChainID, cChainID, utxo))
	}
	return &testBackend{
		ChainUTXOs: common.NewChainUTXOs(cChainID, allUTXOs),
		balances:   make(map[ethcommon.Address]*big.Int),
		nonces:     make(map[ethcommon.Address]uint64),
		baseFee:    testBaseFee,
	}
}

func newTestBuilder(backend Backend) Builder {
	return New(
		set.Of(avaxAddr),
		set.Of(ethAddrA, ethAddrB),
		testContext,
		backend,
	)
}

func TestNewImportTx(t *testing.T) {
	require := require.New(t)

	backend := newTestBackend(t, xChainID,
		newUTXO(1, avaxAssetID, units.Avax, avaxAddr),
		newUTXO(2, avaxAssetID, units.Avax, avaxAddr),
		newUTXO(3, ids.ID{'u', 's', 'd', 'c'}, units.Avax, avaxAddr),
		newUTXO(4, avaxAssetID, units.Avax, ids.ShortID{9}),
	)
	builder := newTestBuilder(backend)

	utx, err := builder.NewImportTx(xChainID, ethAddrA)
	require.NoError(err)
	require.Equal(1, backend.baseFeeCalls)
	require.Equal(xChainID, utx.SourceChain)
	require.Len(utx.ImportedInputs, 2)
	require.Len(utx.Outs, 1)
	require.Equal(ethAddrA, utx.Outs[0].Address)
	require.Equal(avaxAssetID, utx.Outs[0].AssetID)

	gasUsed, err := utx.GasUsed(true)
	require.NoError(err)
	expectedFee, err := atomic.CalculateDynamicFee(gasUsed, testBaseFee)
	require.NoError(err)

	burned, err := utx.Burned(avaxAssetID)
	require.NoError(err)
	require.Equal(expectedFee, burned)
	require.Equal(2*units.Avax-expectedFee, utx.Outs[0].Amount)

	balance, err := builder.GetImportableBalance(xChainID)
	require.NoError(err)
	require.Equal(2*units.Avax, balance)
}

func TestNewImportTxInsufficientFunds(t *testing.T) {
	tests := []struct {
		name  string
		utxos []*avax.UTXO
	}{
		{
			name: "no utxos",
		},
		{
			name: "dust",
			utxos: []*avax.UTXO{
				newUTXO(1, avaxAssetID, units.NanoAvax, avaxAddr),
			},
		},
		{
			name: "only foreign owners",
			utxos: []*avax.UTXO{
				newUTXO(1, avaxAssetID, units.Avax, ids.ShortID{9}),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newTestBackend(t, pChainID, tt.utxos...)
			builder := newTestBuilder(backend)

			_, err := builder.NewImportTx(pChainID, ethAddrA, common.WithBaseFee(testBaseFee))
			require.ErrorIs(t, err, ErrInsufficientFunds)
			require.Zero(t, backend.baseFeeCalls)
		})
	}
}

func TestNewExportTx(t *testing.T) {
	require := require.New(t)

	backend := newTestBackend(t, cChainID)
	// A can only cover part of the export, so B is debited for the rest.
	backend.balances[ethAddrA] = units.NanoAvaxToWei(units.Avax / 2)
	backend.balances[ethAddrB] = units.NanoAvaxToWei(10 * units.Avax)
	backend.nonces[ethAddrA] = 3
	backend.nonces[ethAddrB] = 7
	builder := newTestBuilder(backend)

	outputs := []*secp256k1fx.TransferOutput{{
		Amt: units.Avax,
		OutputOwners: secp256k1fx.OutputOwners{
			Threshold: 1,
			Addrs:     []ids.ShortID{avaxAddr},
		},
	}}
	utx, err := builder.NewExportTx(pChainID, outputs)
	require.NoError(err)
	require.Equal(pChainID, utx.DestinationChain)
	require.Len(utx.ExportedOutputs, 1)
	require.Equal(avaxAssetID, utx.ExportedOutputs[0].AssetID())

	require.Len(utx.Ins, 2)
	require.Equal(ethAddrA, utx.Ins[0].Address)
	require.Equal(units.Avax/2, utx.Ins[0].Amount)
	require.Equal(uint64(3), utx.Ins[0].Nonce)
	require.Equal(ethAddrB, utx.Ins[1].Address)
	require.Equal(uint64(7), utx.Ins[1].Nonce)

	gasUsed, err := utx.GasUsed(true)
	require.NoError(err)
	expectedFee, err := atomic.CalculateDynamicFee(gasUsed, testBaseFee)
	require.NoError(err)

	burned, err := utx.Burned(avaxAssetID)
	require.NoError(err)
	require.Equal(expectedFee, burned)
}

func TestNewExportTxSkipsDustAccounts(t *testing.T) {
	require := require.New(t)

	backend := newTestBackend(t, cChainID)
	// 1000 nAVAX can't pay for the input it would add.
	backend.balances[ethAddrA] = units.NanoAvaxToWei(1000)
	backend.balances[ethAddrB] = units.NanoAvaxToWei(10 * units.Avax)
	builder := newTestBuilder(backend)

	outputs := []*secp256k1fx.TransferOutput{{
		Amt: units.Avax,
		OutputOwners: secp256k1fx.OutputOwners{
			Threshold: 1,
			Addrs:     []ids.ShortID{avaxAddr},
		},
	}}
	utx, err := builder.NewExportTx(xChainID, outputs, common.WithBaseFee(testBaseFee))
	require.NoError(err)
	require.Zero(backend.baseFeeCalls)
	require.Len(utx.Ins, 1)
	require.Equal(ethAddrB, utx.Ins[0].Address)
}

func TestNewExportTxInsufficientFunds(t *testing.T) {
	require := require.New(t)

	backend := newTestBackend(t, cChainID)
	backend.balances[ethAddrA] = units.NanoAvaxToWei(units.Avax / 2)
	backend.balances[ethAddrB] = units.NanoAvaxToWei(units.Avax / 2)
	builder := newTestBuilder(backend)

	outputs := []*secp256k1fx.TransferOutput{{
		Amt: units.Avax,
		OutputOwners: secp256k1fx.OutputOwners{
			Threshold: 1,
			Addrs:     []ids.ShortID{avaxAddr},
		},
	}}
	_, err := builder.NewExportTx(pChainID, outputs)
	require.ErrorIs(err, ErrInsufficientFunds)
}

func TestGetBalance(t *testing.T) {
	require := require.New(t)

	backend := newTestBackend(t, cChainID)
	backend.balances[ethAddrA] = big.NewInt(1)
	backend.balances[ethAddrB] = big.NewInt(2)
	builder := newTestBuilder(backend)

	balance, err := builder.GetBalance()
	require.NoError(err)
	require.Equal(int64(3), balance.Int64())

	balance, err = builder.GetBalance(common.WithCustomEthAddresses(set.Of(ethAddrB)))
	require.NoError(err)
	require.Equal(int64(2), balance.Int64())
}

func TestImportFee(t *testing.T) {
	require := require.New(t)

	backend := newTestBackend(t, pChainID,
		newUTXO(1, avaxAssetID, units.Avax, avaxAddr),
		newUTXO(2, avaxAssetID, units.Avax, avaxAddr),
	)
	utx, err := newTestBuilder(backend).NewImportTx(pChainID, ethAddrA)
	require.NoError(err)
	burned, err := utx.Burned(avaxAssetID)
	require.NoError(err)

	estimate, err := ImportFee(testContext, pChainID, len(utx.ImportedInputs), testBaseFee)
	require.NoError(err)
	require.Equal(burned, estimate)

	fewer, err := ImportFee(testContext, pChainID, 1, testBaseFee)
	require.NoError(err)
	require.Less(fewer, estimate)
}
