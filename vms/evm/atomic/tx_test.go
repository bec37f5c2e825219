// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package atomic

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

var (
	cChainID    = ids.ID{'c'}
	avaxAssetID = ids.ID{'a', 'v', 'a', 'x'}
	ethAddr     = common.HexToAddress("0x8db97C7cEcE249c2b98bDC0226Cc4C2A57BF52FC")
	shortAddr   = ids.ShortID{1}
)

func newTestExportTx() *UnsignedExportTx {
	return &UnsignedExportTx{
		NetworkID:        constants.FujiID,
		BlockchainID:     cChainID,
		DestinationChain: constants.PlatformChainID,
		Ins: []EVMInput{{
			Address: ethAddr,
			Amount:  1_000_280_000,
			AssetID: avaxAssetID,
			Nonce:   7,
		}},
		ExportedOutputs: []*avax.TransferableOutput{{
			Asset: avax.Asset{ID: avaxAssetID},
			Out: &secp256k1fx.TransferOutput{
				Amt: 1_000_000_000,
				OutputOwners: secp256k1fx.OutputOwners{
					Threshold: 1,
					Addrs:     []ids.ShortID{shortAddr},
				},
			},
		}},
	}
}

func TestExportTxRoundTrip(t *testing.T) {
	require := require.New(t)

	utx := newTestExportTx()
	tx := &Tx{
		UnsignedAtomicTx: utx,
		Creds:            []*secp256k1fx.Credential{secp256k1fx.NewEmptyCredential(1)},
	}
	require.NoError(tx.Initialize(Codec))
	require.NoError(utx.Verify(constants.FujiID, cChainID))

	parsed, err := ExtractAtomicTx(Codec, tx.SignedBytes())
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(tx.UnsignedBytes(), parsed.UnsignedBytes())

	parsedUtx, ok := parsed.UnsignedAtomicTx.(*UnsignedExportTx)
	require.True(ok)
	require.Equal(utx.Ins, parsedUtx.Ins)
	require.Equal(utx.ExportedOutputs, parsedUtx.ExportedOutputs)

	unsigned, err := ExtractUnsignedAtomicTx(Codec, tx.UnsignedBytes())
	require.NoError(err)
	require.Equal(1, unsigned.NumCredentials())
}

func TestExportTxGasUsed(t *testing.T) {
	require := require.New(t)

	utx := newTestExportTx()
	tx := &Tx{UnsignedAtomicTx: utx}
	require.NoError(tx.Initialize(Codec))

	gasUsed, err := utx.GasUsed(false)
	require.NoError(err)
	require.Equal(uint64(len(tx.UnsignedBytes()))+secp256k1fx.CostPerSignature, gasUsed)

	gasUsedFixed, err := utx.GasUsed(true)
	require.NoError(err)
	require.Equal(gasUsed+AtomicTxIntrinsicGas, gasUsedFixed)

	burned, err := utx.Burned(avaxAssetID)
	require.NoError(err)
	require.Equal(uint64(280_000), burned)
}

func TestImportTxBurned(t *testing.T) {
	require := require.New(t)

	utx := &UnsignedImportTx{
		NetworkID:    constants.FujiID,
		BlockchainID: cChainID,
		SourceChain:  constants.PlatformChainID,
		ImportedInputs: []*avax.TransferableInput{{
			UTXOID: avax.UTXOID{TxID: ids.ID{1}},
			Asset:  avax.Asset{ID: avaxAssetID},
			In: &secp256k1fx.TransferInput{
				Amt:   1_000_000,
				Input: secp256k1fx.Input{SigIndices: []uint32{0}},
			},
		}},
		Outs: []EVMOutput{{
			Address: ethAddr,
			Amount:  900_000,
			AssetID: avaxAssetID,
		}},
	}
	tx := &Tx{
		UnsignedAtomicTx: utx,
		Creds:            []*secp256k1fx.Credential{secp256k1fx.NewEmptyCredential(1)},
	}
	require.NoError(tx.Initialize(Codec))
	require.NoError(utx.Verify(constants.FujiID, cChainID))

	burned, err := utx.Burned(avaxAssetID)
	require.NoError(err)
	require.Equal(uint64(100_000), burned)

	gasUsed, err := utx.GasUsed(true)
	require.NoError(err)
	require.Equal(uint64(len(tx.UnsignedBytes()))+secp256k1fx.CostPerSignature+AtomicTxIntrinsicGas, gasUsed)
	require.Equal(1, utx.InputUTXOs().Len())
}

func TestCalculateDynamicFee(t *testing.T) {
	tests := []struct {
		gas           uint64
		baseFee       *big.Int
		expectedErr   error
		expectedValue uint64
	}{
		{
			gas:           1,
			baseFee:       new(big.Int).Set(X2CRate.ToBig()),
			expectedValue: 1,
		},
		{
			gas:           21000,
			baseFee:       big.NewInt(25 * 1_000_000_000),
			expectedValue: 525000,
		},
		{
			gas:           1,
			baseFee:       big.NewInt(1),
			expectedValue: 1,
		},
		{
			gas:         1,
			baseFee:     nil,
			expectedErr: errNilBaseFee,
		},
	}

	for _, test := range tests {
		cost, err := CalculateDynamicFee(test.gas, test.baseFee)
		require.ErrorIs(t, err, test.expectedErr)
		require.Equal(t, test.expectedValue, cost)
	}
}

func TestVerifyUnsortedInputs(t *testing.T) {
	utx := newTestExportTx()
	utx.Ins = append(utx.Ins, utx.Ins[0])
	require.ErrorIs(t, utx.Verify(constants.FujiID, cChainID), ErrInputsNotSortedUnique)
}
