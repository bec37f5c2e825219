// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avax

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

func TestSortTransferableOutputs(t *testing.T) {
	require := require.New(t)

	_, r := newTestManager(t)
	outs := []*TransferableOutput{
		{
			Asset: Asset{ID: ids.ID{1}},
			Out:   &secp256k1fx.TransferOutput{Amt: 1},
		},
		{
			Asset: Asset{ID: ids.ID{0}},
			Out:   &secp256k1fx.TransferOutput{Amt: 2},
		},
		{
			Asset: Asset{ID: ids.ID{0}},
			Out:   &secp256k1fx.TransferOutput{Amt: 1},
		},
	}
	require.False(IsSortedTransferableOutputs(outs, r))
	SortTransferableOutputs(outs, r)
	require.True(IsSortedTransferableOutputs(outs, r))

	require.Equal(ids.ID{0}, outs[0].AssetID())
	require.Equal(uint64(1), outs[0].Out.Amount())
	require.Equal(uint64(2), outs[1].Out.Amount())
	require.Equal(ids.ID{1}, outs[2].AssetID())
}

func TestSortTransferableInputsWithSigners(t *testing.T) {
	require := require.New(t)

	ins := []*TransferableInput{
		{UTXOID: UTXOID{TxID: ids.ID{1}, OutputIndex: 0}},
		{UTXOID: UTXOID{TxID: ids.ID{0}, OutputIndex: 1}},
		{UTXOID: UTXOID{TxID: ids.ID{0}, OutputIndex: 0}},
	}
	signers := [][]string{{"c"}, {"b"}, {"a"}}

	require.False(IsSortedAndUniqueTransferableInputs(ins))
	SortTransferableInputsWithSigners(ins, signers)
	require.True(IsSortedAndUniqueTransferableInputs(ins))
	require.Equal([][]string{{"a"}, {"b"}, {"c"}}, signers)

	ins = append(ins, ins[2])
	require.False(IsSortedAndUniqueTransferableInputs(ins))
}

func TestUTXOIDFromString(t *testing.T) {
	require := require.New(t)

	utxoID := &UTXOID{TxID: ids.ID{5}, OutputIndex: 3}
	parsed, err := UTXOIDFromString(utxoID.String())
	require.NoError(err)
	require.Equal(utxoID, parsed)
	require.Equal(utxoID.InputID(), parsed.InputID())

	_, err = UTXOIDFromString("abc")
	require.ErrorIs(err, errMalformedUTXOIDString)
}
