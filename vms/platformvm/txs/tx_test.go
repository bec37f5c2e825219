// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/hashing"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/stakeable"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

var (
	testAVAXAssetID = ids.ID{'a', 'v', 'a', 'x'}
	testOwner       = ids.ShortID{'o', 'w', 'n', 'e', 'r'}
)

func newTestImportTx() *ImportTx {
	return &ImportTx{
		BaseTx: BaseTx{
			BaseTx: avax.BaseTx{
				NetworkID:    constants.FujiID,
				BlockchainID: constants.PlatformChainID,
				Outs: []*avax.TransferableOutput{{
					Asset: avax.Asset{ID: testAVAXAssetID},
					Out: &secp256k1fx.TransferOutput{
						Amt: 900,
						OutputOwners: secp256k1fx.OutputOwners{
							Threshold: 1,
							Addrs:     []ids.ShortID{testOwner},
						},
					},
				}},
				Ins: []*avax.TransferableInput{{
					UTXOID: avax.UTXOID{TxID: ids.ID{1}},
					Asset:  avax.Asset{ID: testAVAXAssetID},
					In: &stakeable.LockIn{
						Locktime: 1,
						TransferableIn: &secp256k1fx.TransferInput{
							Amt:   100,
							Input: secp256k1fx.Input{SigIndices: []uint32{0}},
						},
					},
				}},
				Memo: []byte{},
			},
		},
		SourceChain: ids.ID{'x'},
		ImportedInputs: []*avax.TransferableInput{{
			UTXOID: avax.UTXOID{TxID: ids.ID{2}, OutputIndex: 1},
			Asset:  avax.Asset{ID: testAVAXAssetID},
			In: &secp256k1fx.TransferInput{
				Amt:   1000,
				Input: secp256k1fx.Input{SigIndices: []uint32{0, 1}},
			},
		}},
	}
}

func TestTxRoundTrip(t *testing.T) {
	require := require.New(t)

	utx := newTestImportTx()
	tx := &Tx{
		Unsigned: utx,
		Creds: []*secp256k1fx.Credential{
			secp256k1fx.NewEmptyCredential(1),
			secp256k1fx.NewEmptyCredential(2),
		},
	}
	require.NoError(tx.Initialize(Codec))
	require.Equal(ids.ID(hashing.ComputeHash256Array(tx.Bytes())), tx.ID())
	require.NoError(tx.SyntacticVerify(constants.FujiID, constants.PlatformChainID))

	parsed, err := Parse(Codec, tx.Bytes())
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(tx.UnsignedBytes(), parsed.UnsignedBytes())
	require.Equal(tx.Creds, parsed.Creds)
	require.Len(parsed.Unsigned.Spends(), 2)

	// The signed bytes start with the unsigned bytes.
	require.Equal(tx.UnsignedBytes(), tx.Bytes()[:len(tx.UnsignedBytes())])

	utxs, err := ParseUnsigned(Codec, tx.UnsignedBytes())
	require.NoError(err)
	require.IsType(&ImportTx{}, utxs)
	require.Equal(tx.UnsignedBytes(), utxs.Bytes())
}

func TestParseErrors(t *testing.T) {
	require := require.New(t)

	tx := &Tx{Unsigned: newTestImportTx()}
	require.NoError(tx.Initialize(Codec))

	// Unsigned bytes are missing the credential count.
	_, err := Parse(Codec, tx.UnsignedBytes())
	require.ErrorIs(err, wrappers.ErrInsufficientLength)

	_, err = Parse(Codec, append(tx.Bytes(), 0))
	require.ErrorIs(err, codec.ErrExtraSpace)

	badType := append([]byte{}, tx.Bytes()...)
	badType[5] = 99 // type ID
	_, err = Parse(Codec, badType)
	require.ErrorIs(err, codec.ErrUnknownTypeID)
}

func TestExportTxSyntacticVerify(t *testing.T) {
	owners := secp256k1fx.OutputOwners{
		Threshold: 1,
		Addrs:     []ids.ShortID{testOwner},
	}
	tests := []struct {
		name        string
		outs        []*avax.TransferableOutput
		expectedErr error
	}{
		{
			name:        "no outputs",
			expectedErr: ErrNoExportOutputs,
		},
		{
			name: "locked output",
			outs: []*avax.TransferableOutput{{
				Asset: avax.Asset{ID: testAVAXAssetID},
				Out: &stakeable.LockOut{
					Locktime:        1,
					TransferableOut: &secp256k1fx.TransferOutput{Amt: 1, OutputOwners: owners},
				},
			}},
			expectedErr: ErrWrongLocktime,
		},
		{
			name: "valid",
			outs: []*avax.TransferableOutput{{
				Asset: avax.Asset{ID: testAVAXAssetID},
				Out:   &secp256k1fx.TransferOutput{Amt: 1, OutputOwners: owners},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &ExportTx{
				BaseTx: BaseTx{BaseTx: avax.BaseTx{
					NetworkID:    constants.FujiID,
					BlockchainID: constants.PlatformChainID,
				}},
				DestinationChain: ids.ID{'c'},
				ExportedOutputs:  tt.outs,
			}
			err := tx.SyntacticVerify(constants.FujiID, constants.PlatformChainID)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
