// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fee

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/stakeable"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

var testWeights = gas.Dimensions{
	gas.Bandwidth: 1,
	gas.DBRead:    1000,
	gas.DBWrite:   1000,
	gas.Compute:   4,
}

func transferOutput(amount uint64, numAddrs int) *avax.TransferableOutput {
	addrs := make([]ids.ShortID, numAddrs)
	for i := range addrs {
		addrs[i] = ids.ShortID{byte(i + 1)}
	}
	return &avax.TransferableOutput{
		Out: &secp256k1fx.TransferOutput{
			Amt: amount,
			OutputOwners: secp256k1fx.OutputOwners{
				Threshold: 1,
				Addrs:     addrs,
			},
		},
	}
}

func transferInput(txID byte, numSigs int) *avax.TransferableInput {
	sigIndices := make([]uint32, numSigs)
	for i := range sigIndices {
		sigIndices[i] = uint32(i)
	}
	return &avax.TransferableInput{
		UTXOID: avax.UTXOID{TxID: ids.ID{txID}},
		In: &secp256k1fx.TransferInput{
			Amt:   1,
			Input: secp256k1fx.Input{SigIndices: sigIndices},
		},
	}
}

func credentials(ins ...*avax.TransferableInput) []*secp256k1fx.Credential {
	creds := make([]*secp256k1fx.Credential, len(ins))
	for i, in := range ins {
		numSigs := 0
		switch in := in.In.(type) {
		case *secp256k1fx.TransferInput:
			numSigs = len(in.SigIndices)
		case *stakeable.LockIn:
			numSigs = len(in.TransferableIn.(*secp256k1fx.TransferInput).SigIndices)
		}
		creds[i] = secp256k1fx.NewEmptyCredential(numSigs)
	}
	return creds
}

// The bandwidth dimension is exactly the size of the signed transaction.
func TestTxComplexityMatchesSize(t *testing.T) {
	lockedIn := transferInput(9, 1)
	lockedIn.In = &stakeable.LockIn{
		Locktime:       10,
		TransferableIn: lockedIn.In,
	}

	tests := []struct {
		name               string
		tx                 txs.UnsignedTx
		expectedComplexity gas.Dimensions
	}{
		{
			name: "base tx",
			tx: &txs.BaseTx{BaseTx: avax.BaseTx{
				Outs: []*avax.TransferableOutput{transferOutput(1, 1), transferOutput(2, 2)},
				Ins:  []*avax.TransferableInput{transferInput(1, 1)},
				Memo: []byte("memo"),
			}},
			expectedComplexity: gas.Dimensions{
				gas.Bandwidth: 58 + 80 + 100 + 161 + 4,
				gas.DBRead:    1,
				gas.DBWrite:   3,
				gas.Compute:   200,
			},
		},
		{
			name: "import tx",
			tx: &txs.ImportTx{
				BaseTx: txs.BaseTx{BaseTx: avax.BaseTx{
					Outs: []*avax.TransferableOutput{transferOutput(1, 1)},
					Ins:  []*avax.TransferableInput{lockedIn},
				}},
				ImportedInputs: []*avax.TransferableInput{transferInput(2, 2)},
			},
			expectedComplexity: gas.Dimensions{
				gas.Bandwidth: 58 + 36 + 80 + 173 + 230,
				gas.DBRead:    2,
				gas.DBWrite:   3,
				gas.Compute:   600,
			},
		},
		{
			name: "export tx",
			tx: &txs.ExportTx{
				BaseTx: txs.BaseTx{BaseTx: avax.BaseTx{
					Ins: []*avax.TransferableInput{transferInput(3, 1)},
				}},
				ExportedOutputs: []*avax.TransferableOutput{transferOutput(1, 1)},
			},
			expectedComplexity: gas.Dimensions{
				gas.Bandwidth: 58 + 36 + 161 + 80,
				gas.DBRead:    1,
				gas.DBWrite:   2,
				gas.Compute:   200,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			complexity, err := TxComplexity(test.tx)
			require.NoError(err)
			require.Equal(test.expectedComplexity, complexity)

			tx := &txs.Tx{
				Unsigned: test.tx,
				Creds:    credentials(test.tx.Spends()...),
			}
			require.NoError(tx.Initialize(txs.Codec))
			require.Len(tx.Bytes(), int(complexity[gas.Bandwidth]))
		})
	}
}

func TestCalculateFee(t *testing.T) {
	require := require.New(t)

	tx := &txs.BaseTx{BaseTx: avax.BaseTx{
		Outs: []*avax.TransferableOutput{transferOutput(1, 1)},
		Ins:  []*avax.TransferableInput{transferInput(1, 1)},
	}}
	calc := NewDynamicCalculator(testWeights, 2)

	fee, err := calc.CalculateFee(tx)
	require.NoError(err)
	// bandwidth 58+80+161, one read, two writes and one signature
	require.Equal(2*(uint64(58+80+161)+1000+2000+4*200), fee)

	// No hidden state between calls.
	again, err := calc.CalculateFee(tx)
	require.NoError(err)
	require.Equal(fee, again)

	_, err = calc.CalculateFee(&txs.BaseTx{BaseTx: avax.BaseTx{
		Ins: []*avax.TransferableInput{{In: &stakeable.LockIn{
			Locktime:       1,
			TransferableIn: &stakeable.LockIn{Locktime: 1},
		}}},
	}})
	require.ErrorIs(err, errUnsupportedInput)
}
