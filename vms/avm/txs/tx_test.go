// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

var (
	chainID = ids.ID{'x', 'c', 'h', 'a', 'i', 'n'}
	assetID = ids.ID{'a', 'v', 'a', 'x'}
	addr    = ids.ShortID{1, 2, 3}
)

func newTransferOutput(amt uint64) *avax.TransferableOutput {
	return &avax.TransferableOutput{
		Asset: avax.Asset{ID: assetID},
		Out: &secp256k1fx.TransferOutput{
			Amt: amt,
			OutputOwners: secp256k1fx.OutputOwners{
				Threshold: 1,
				Addrs:     []ids.ShortID{addr},
			},
		},
	}
}

func newTransferInput(txID ids.ID, amt uint64) *avax.TransferableInput {
	return &avax.TransferableInput{
		UTXOID: avax.UTXOID{TxID: txID},
		Asset:  avax.Asset{ID: assetID},
		In: &secp256k1fx.TransferInput{
			Amt:   amt,
			Input: secp256k1fx.Input{SigIndices: []uint32{0}},
		},
	}
}

func TestBaseTxHeader(t *testing.T) {
	require := require.New(t)

	tx := &Tx{Unsigned: &BaseTx{BaseTx: avax.BaseTx{
		NetworkID:    constants.FujiID,
		BlockchainID: chainID,
		Memo:         []byte{},
	}}}
	require.NoError(tx.Initialize(Codec))

	unsignedBytes := tx.UnsignedBytes()
	expected := []byte{
		// codec version
		0x00, 0x00,
		// BaseTx type ID
		0x00, 0x00, 0x00, 0x00,
		// network ID
		0x00, 0x00, 0x00, 0x05,
	}
	require.Equal(expected, unsignedBytes[:len(expected)])

	// zero credentials follow the unsigned body
	require.Equal(append(unsignedBytes, 0x00, 0x00, 0x00, 0x00), tx.Bytes())
}

func TestExportTxRoundTrip(t *testing.T) {
	require := require.New(t)

	utx := &ExportTx{
		BaseTx: BaseTx{BaseTx: avax.BaseTx{
			NetworkID:    constants.FujiID,
			BlockchainID: chainID,
			Ins:          []*avax.TransferableInput{newTransferInput(ids.ID{1}, 2_000_000)},
			Memo:         []byte("memo"),
		}},
		DestinationChain: constants.PlatformChainID,
		ExportedOuts:     []*avax.TransferableOutput{newTransferOutput(1_000_000)},
	}
	tx := &Tx{
		Unsigned: utx,
		Creds:    []*secp256k1fx.Credential{secp256k1fx.NewEmptyCredential(1)},
	}
	require.NoError(tx.Initialize(Codec))

	parsed, err := Parse(Codec, tx.Bytes())
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(tx.UnsignedBytes(), parsed.UnsignedBytes())
	require.Len(parsed.Creds, 1)

	parsedUtx, ok := parsed.Unsigned.(*ExportTx)
	require.True(ok)
	require.Equal(utx.DestinationChain, parsedUtx.DestinationChain)
	require.Equal(utx.ExportedOuts, parsedUtx.ExportedOuts)
	require.Equal([]byte("memo"), parsedUtx.Memo)
	require.NoError(parsedUtx.SyntacticVerify(constants.FujiID, chainID))

	unsigned, err := ParseUnsigned(Codec, tx.UnsignedBytes())
	require.NoError(err)
	require.Equal(tx.UnsignedBytes(), unsigned.Bytes())
	require.Len(unsigned.Spends(), 1)
}

func TestImportTxSpendsOrder(t *testing.T) {
	require := require.New(t)

	local := newTransferInput(ids.ID{1}, 10)
	imported := newTransferInput(ids.ID{2}, 20)
	utx := &ImportTx{
		BaseTx: BaseTx{BaseTx: avax.BaseTx{
			Ins: []*avax.TransferableInput{local},
		}},
		ImportedIns: []*avax.TransferableInput{imported},
	}
	require.Equal([]*avax.TransferableInput{local, imported}, utx.Spends())
	require.Equal(2, utx.InputIDs().Len())
}

func TestSyntacticVerify(t *testing.T) {
	tests := []struct {
		name        string
		tx          UnsignedTx
		expectedErr error
	}{
		{
			name: "valid base tx",
			tx: &BaseTx{BaseTx: avax.BaseTx{
				NetworkID:    constants.FujiID,
				BlockchainID: chainID,
				Outs:         []*avax.TransferableOutput{newTransferOutput(1)},
			}},
		},
		{
			name: "wrong network",
			tx: &BaseTx{BaseTx: avax.BaseTx{
				NetworkID:    constants.MainnetID,
				BlockchainID: chainID,
			}},
			expectedErr: avax.ErrWrongNetworkID,
		},
		{
			name: "import without inputs",
			tx: &ImportTx{BaseTx: BaseTx{BaseTx: avax.BaseTx{
				NetworkID:    constants.FujiID,
				BlockchainID: chainID,
			}}},
			expectedErr: ErrNoImportInputs,
		},
		{
			name: "export without outputs",
			tx: &ExportTx{BaseTx: BaseTx{BaseTx: avax.BaseTx{
				NetworkID:    constants.FujiID,
				BlockchainID: chainID,
			}}},
			expectedErr: ErrNoExportOutputs,
		},
		{
			name: "unsorted exported outputs",
			tx: &ExportTx{
				BaseTx: BaseTx{BaseTx: avax.BaseTx{
					NetworkID:    constants.FujiID,
					BlockchainID: chainID,
				}},
				ExportedOuts: []*avax.TransferableOutput{
					newTransferOutput(2),
					newTransferOutput(1),
				},
			},
			expectedErr: avax.ErrOutputsNotSorted,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.tx.SyntacticVerify(constants.FujiID, chainID)
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}
