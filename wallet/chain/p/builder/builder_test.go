// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/utils/units"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/stakeable"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs/fee"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"
)

var (
	avaxAssetID = ids.ID{'a', 'v', 'a', 'x'}
	cChainID    = ids.ID{'C'}

	testContext = &Context{
		NetworkID:         constants.FujiID,
		AVAXAssetID:       avaxAssetID,
		ComplexityWeights: gas.Dimensions{1, 1000, 1000, 4},
		GasPrice:          1,
	}

	ownerAddr     = ids.ShortID{1}
	strangerAddr  = ids.ShortID{2}
	recipientAddr = ids.ShortID{3}
)

func ownedBy(addr ids.ShortID) secp256k1fx.OutputOwners {
	return secp256k1fx.OutputOwners{
		Threshold: 1,
		Addrs:     []ids.ShortID{addr},
	}
}

func newUTXO(txID byte, assetID ids.ID, amount uint64, addr ids.ShortID) *avax.UTXO {
	return &avax.UTXO{
		UTXOID: avax.UTXOID{TxID: ids.ID{txID}},
		Asset:  avax.Asset{ID: assetID},
		Out: &secp256k1fx.TransferOutput{
			Amt:          amount,
			OutputOwners: ownedBy(addr),
		},
	}
}

func newLockedUTXO(txID byte, amount uint64, locktime uint64) *avax.UTXO {
	return &avax.UTXO{
		UTXOID: avax.UTXOID{TxID: ids.ID{txID}},
		Asset:  avax.Asset{ID: avaxAssetID},
		Out: &stakeable.LockOut{
			Locktime: locktime,
			TransferableOut: &secp256k1fx.TransferOutput{
				Amt:          amount,
				OutputOwners: ownedBy(ownerAddr),
			},
		},
	}
}

func newTestBuilder(t *testing.T, utxosByChain map[ids.ID][]*avax.UTXO) Builder {
	ctx := context.Background()
	utxos := common.NewUTXOs()
	for sourceChainID, chainUTXOs := range utxosByChain {
		for _, utxo := range chainUTXOs {
			require.NoError(t, utxos.AddUTXO(ctx, sourceChainID, constants.PlatformChainID, utxo))
		}
	}
	return New(
		set.Of(ownerAddr),
		testContext,
		common.NewChainUTXOs(constants.PlatformChainID, utxos),
	)
}

func avaxBurned(t *testing.T, ins []*avax.TransferableInput, outs ...[]*avax.TransferableOutput) uint64 {
	var consumed, produced uint64
	for _, in := range ins {
		if in.AssetID() == avaxAssetID {
			consumed += in.In.Amount()
		}
	}
	for _, outputs := range outs {
		for _, out := range outputs {
			if out.AssetID() == avaxAssetID {
				produced += out.Out.Amount()
			}
		}
	}
	require.GreaterOrEqual(t, consumed, produced)
	return consumed - produced
}

func expectedFee(t *testing.T, utx txs.UnsignedTx) uint64 {
	calculator := fee.NewDynamicCalculator(testContext.ComplexityWeights, testContext.GasPrice)
	txFee, err := calculator.CalculateFee(utx)
	require.NoError(t, err)
	return txFee
}

func TestNewBaseTx(t *testing.T) {
	require := require.New(t)

	var (
		spendable = newUTXO(1, avaxAssetID, 10*units.Avax, ownerAddr)
		foreign   = newUTXO(2, avaxAssetID, 50*units.Avax, strangerAddr)
		locked    = newLockedUTXO(3, 50*units.Avax, uint64(time.Now().Add(time.Hour).Unix()))
		b         = newTestBuilder(t, map[ids.ID][]*avax.UTXO{
			constants.PlatformChainID: {spendable, foreign, locked},
		})
		outputs = []*avax.TransferableOutput{{
			Asset: avax.Asset{ID: avaxAssetID},
			Out: &secp256k1fx.TransferOutput{
				Amt:          units.Avax,
				OutputOwners: ownedBy(recipientAddr),
			},
		}}
	)

	utx, err := b.NewBaseTx(outputs, common.WithMemo([]byte("memo")))
	require.NoError(err)
	require.NotEmpty(utx.Bytes())
	require.Equal([]byte("memo"), utx.Memo)

	require.Len(utx.Ins, 1)
	require.Equal(spendable.InputID(), utx.Ins[0].InputID())
	require.Equal([]uint32{0}, utx.Ins[0].In.(*secp256k1fx.TransferInput).SigIndices)

	// recipient + change
	require.Len(utx.Outs, 2)
	require.Equal(expectedFee(t, utx), avaxBurned(t, utx.Ins, utx.Outs))
	require.True(avax.IsSortedTransferableOutputs(utx.Outs, txs.Registry))
	require.NoError(utx.SyntacticVerify(testContext.NetworkID, constants.PlatformChainID))
}

func TestNewBaseTxNonAVAXAsset(t *testing.T) {
	require := require.New(t)

	otherAssetID := ids.ID{'u', 's', 'd'}
	b := newTestBuilder(t, map[ids.ID][]*avax.UTXO{
		constants.PlatformChainID: {
			newUTXO(1, avaxAssetID, units.Avax, ownerAddr),
			newUTXO(2, otherAssetID, 100, ownerAddr),
		},
	})

	utx, err := b.NewBaseTx([]*avax.TransferableOutput{{
		Asset: avax.Asset{ID: otherAssetID},
		Out: &secp256k1fx.TransferOutput{
			Amt:          60,
			OutputOwners: ownedBy(recipientAddr),
		},
	}})
	require.NoError(err)
	require.Len(utx.Ins, 2)

	balances := map[ids.ID]uint64{}
	for _, out := range utx.Outs {
		balances[out.AssetID()] += out.Out.Amount()
	}
	require.Equal(uint64(100), balances[otherAssetID])
	require.Equal(expectedFee(t, utx), avaxBurned(t, utx.Ins, utx.Outs))
}

func TestNewBaseTxInsufficientFunds(t *testing.T) {
	tests := []struct {
		name   string
		utxos  []*avax.UTXO
		amount uint64
	}{
		{
			name:   "amount exceeds balance",
			utxos:  []*avax.UTXO{newUTXO(1, avaxAssetID, units.Avax, ownerAddr)},
			amount: 2 * units.Avax,
		},
		{
			name:   "amount equals balance",
			utxos:  []*avax.UTXO{newUTXO(1, avaxAssetID, units.Avax, ownerAddr)},
			amount: units.Avax,
		},
		{
			name: "only locked funds",
			utxos: []*avax.UTXO{
				newLockedUTXO(1, 10*units.Avax, uint64(time.Now().Add(time.Hour).Unix())),
			},
			amount: units.Avax,
		},
		{
			name:   "only foreign funds",
			utxos:  []*avax.UTXO{newUTXO(1, avaxAssetID, 10*units.Avax, strangerAddr)},
			amount: units.Avax,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder(t, map[ids.ID][]*avax.UTXO{
				constants.PlatformChainID: tt.utxos,
			})
			_, err := b.NewBaseTx([]*avax.TransferableOutput{{
				Asset: avax.Asset{ID: avaxAssetID},
				Out: &secp256k1fx.TransferOutput{
					Amt:          tt.amount,
					OutputOwners: ownedBy(recipientAddr),
				},
			}})
			require.ErrorIs(t, err, ErrInsufficientFunds)
		})
	}
}

func TestNewExportTx(t *testing.T) {
	require := require.New(t)

	b := newTestBuilder(t, map[ids.ID][]*avax.UTXO{
		constants.PlatformChainID: {
			newUTXO(1, avaxAssetID, 3*units.Avax, ownerAddr),
			newUTXO(2, avaxAssetID, 4*units.Avax, ownerAddr),
		},
	})
	exported := []*avax.TransferableOutput{{
		Asset: avax.Asset{ID: avaxAssetID},
		Out: &secp256k1fx.TransferOutput{
			Amt:          5 * units.Avax,
			OutputOwners: ownedBy(recipientAddr),
		},
	}}

	utx, err := b.NewExportTx(cChainID, exported)
	require.NoError(err)
	require.Equal(cChainID, utx.DestinationChain)
	require.Len(utx.ExportedOutputs, 1)
	require.Len(utx.Ins, 2)
	require.Len(utx.Outs, 1)
	require.True(avax.IsSortedAndUniqueTransferableInputs(utx.Ins))
	require.Equal(expectedFee(t, utx), avaxBurned(t, utx.Ins, utx.Outs, utx.ExportedOutputs))
}

func TestNewImportTx(t *testing.T) {
	require := require.New(t)

	b := newTestBuilder(t, map[ids.ID][]*avax.UTXO{
		cChainID: {
			newUTXO(1, avaxAssetID, 2*units.Avax, ownerAddr),
			newUTXO(2, avaxAssetID, 2*units.Avax, strangerAddr),
		},
	})
	to := ownedBy(recipientAddr)

	utx, err := b.NewImportTx(cChainID, &to)
	require.NoError(err)
	require.Equal(cChainID, utx.SourceChain)
	require.Len(utx.ImportedInputs, 1)
	require.Empty(utx.Ins)
	require.Len(utx.Outs, 1)

	out := utx.Outs[0].Out.(*secp256k1fx.TransferOutput)
	require.Equal(to, out.OutputOwners)
	require.Equal(2*units.Avax-expectedFee(t, utx), out.Amt)
}

func TestNewImportTxNothingToImport(t *testing.T) {
	b := newTestBuilder(t, map[ids.ID][]*avax.UTXO{
		cChainID: {newUTXO(1, avaxAssetID, units.Avax, strangerAddr)},
	})
	to := ownedBy(ownerAddr)

	_, err := b.NewImportTx(cChainID, &to)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestGetBalance(t *testing.T) {
	require := require.New(t)

	b := newTestBuilder(t, map[ids.ID][]*avax.UTXO{
		constants.PlatformChainID: {
			newUTXO(1, avaxAssetID, units.Avax, ownerAddr),
			newUTXO(2, avaxAssetID, 2*units.Avax, strangerAddr),
			newLockedUTXO(3, 4*units.Avax, uint64(time.Now().Add(time.Hour).Unix())),
			newLockedUTXO(4, 8*units.Avax, 1),
		},
		cChainID: {
			newUTXO(5, avaxAssetID, 16*units.Avax, ownerAddr),
		},
	})

	balance, err := b.GetBalance()
	require.NoError(err)
	require.Equal(map[ids.ID]uint64{avaxAssetID: 9 * units.Avax}, balance)

	importable, err := b.GetImportableBalance(cChainID)
	require.NoError(err)
	require.Equal(map[ids.ID]uint64{avaxAssetID: 16 * units.Avax}, importable)
}

func generateUTXOs(random *rand.Rand, assetID ids.ID, locktime uint64) []*avax.UTXO {
	utxos := make([]*avax.UTXO, random.Intn(10))
	for i := range utxos {
		var output avax.TransferableOut = &secp256k1fx.TransferOutput{
			Amt: random.Uint64(),
			OutputOwners: secp256k1fx.OutputOwners{
				Locktime:  random.Uint64(),
				Threshold: 1,
				Addrs:     []ids.ShortID{ids.GenerateTestShortID()},
			},
		}
		if locktime != 0 {
			output = &stakeable.LockOut{
				Locktime:        locktime,
				TransferableOut: output,
			}
		}
		utxos[i] = &avax.UTXO{
			UTXOID: avax.UTXOID{
				TxID:        ids.GenerateTestID(),
				OutputIndex: random.Uint32(),
			},
			Asset: avax.Asset{
				ID: assetID,
			},
			Out: output,
		}
	}
	return utxos
}

func concat(utxoSlices ...[]*avax.UTXO) []*avax.UTXO {
	var utxos []*avax.UTXO
	for _, s := range utxoSlices {
		utxos = append(utxos, s...)
	}
	return utxos
}

func TestSplitByLocktime(t *testing.T) {
	seed := time.Now().UnixNano()
	t.Logf("Seed: %d", seed)
	random := rand.New(rand.NewSource(seed)) //#nosec G404

	var (
		require = require.New(t)

		unlockedTime     uint64 = 100
		expectedUnlocked        = concat(
			generateUTXOs(random, ids.GenerateTestID(), 0),
			generateUTXOs(random, ids.GenerateTestID(), unlockedTime-1),
			generateUTXOs(random, ids.GenerateTestID(), unlockedTime),
		)
		expectedLocked = concat(
			generateUTXOs(random, ids.GenerateTestID(), unlockedTime+100),
			generateUTXOs(random, ids.GenerateTestID(), unlockedTime+1),
		)
		utxos = concat(
			expectedUnlocked,
			expectedLocked,
		)
	)
	random.Shuffle(len(utxos), func(i, j int) {
		utxos[i], utxos[j] = utxos[j], utxos[i]
	})

	utxosByLocktime := splitByLocktime(utxos, unlockedTime)
	require.ElementsMatch(expectedUnlocked, utxosByLocktime.unlocked)
	require.ElementsMatch(expectedLocked, utxosByLocktime.locked)
}

func TestByAssetID(t *testing.T) {
	seed := time.Now().UnixNano()
	t.Logf("Seed: %d", seed)
	random := rand.New(rand.NewSource(seed)) //#nosec G404

	var (
		require = require.New(t)

		assetID           = ids.GenerateTestID()
		expectedRequested = generateUTXOs(random, assetID, random.Uint64())
		expectedOther     = generateUTXOs(random, ids.GenerateTestID(), random.Uint64())
		utxos             = concat(
			expectedRequested,
			expectedOther,
		)
	)
	random.Shuffle(len(utxos), func(i, j int) {
		utxos[i], utxos[j] = utxos[j], utxos[i]
	})

	utxosByAssetID := splitByAssetID(utxos, assetID)
	require.ElementsMatch(expectedRequested, utxosByAssetID.requested)
	require.ElementsMatch(expectedOther, utxosByAssetID.other)
}

func TestUnwrapOutput(t *testing.T) {
	normalOutput := &secp256k1fx.TransferOutput{
		Amt: 123,
		OutputOwners: secp256k1fx.OutputOwners{
			Locktime:  456,
			Threshold: 1,
			Addrs:     []ids.ShortID{ids.ShortEmpty},
		},
	}

	tests := []struct {
		name             string
		output           codec.Packable
		expectedOutput   *secp256k1fx.TransferOutput
		expectedLocktime uint64
		expectedErr      error
	}{
		{
			name:             "normal output",
			output:           normalOutput,
			expectedOutput:   normalOutput,
			expectedLocktime: 0,
			expectedErr:      nil,
		},
		{
			name: "locked output",
			output: &stakeable.LockOut{
				Locktime:        789,
				TransferableOut: normalOutput,
			},
			expectedOutput:   normalOutput,
			expectedLocktime: 789,
			expectedErr:      nil,
		},
		{
			name: "locked output with no locktime",
			output: &stakeable.LockOut{
				Locktime:        0,
				TransferableOut: normalOutput,
			},
			expectedOutput:   normalOutput,
			expectedLocktime: 0,
			expectedErr:      nil,
		},
		{
			name:             "invalid output",
			output:           nil,
			expectedOutput:   nil,
			expectedLocktime: 0,
			expectedErr:      ErrUnknownOutputType,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			output, locktime, err := unwrapOutput(test.output)
			require.ErrorIs(err, test.expectedErr)
			require.Equal(test.expectedOutput, output)
			require.Equal(test.expectedLocktime, locktime)
		})
	}
}
