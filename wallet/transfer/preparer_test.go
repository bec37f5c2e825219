// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/math"
	"github.com/ava-labs/avalanche-sdk-go/utils/units"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"

	ptxs "github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs"
)

var testFeeConfig = gas.Config{
	Weights: gas.Dimensions{1, 1000, 1000, 4},
}

func newTestUTXO(txID byte, assetID ids.ID, amount uint64, addr ids.ShortID) *avax.UTXO {
	return &avax.UTXO{
		UTXOID: avax.UTXOID{TxID: ids.ID{txID}},
		Asset:  avax.Asset{ID: assetID},
		Out: &secp256k1fx.TransferOutput{
			Amt:          amount,
			OutputOwners: ownedBy(addr),
		},
	}
}

func newTestPreparer(t *testing.T, pChain *fakePClient) (*preparer, *Account) {
	env := newTestEnv(t)
	pContext := testContext
	pContext.PlatformFeeConfig = testFeeConfig
	return &preparer{
		context: pContext,
		pClient: pChain,
		cClient: pChain,
		evm:     env.evm,
	}, env.account
}

func parsePTx(t *testing.T, prepared *Prepared) ptxs.UnsignedTx {
	tx, err := ptxs.Parse(ptxs.Codec, prepared.Tx.Bytes())
	require.NoError(t, err)
	return tx.Unsigned
}

func TestPreparePBaseTx(t *testing.T) {
	require := require.New(t)

	pChain := &fakePClient{price: 1}
	p, from := newTestPreparer(t, pChain)
	utxo := newTestUTXO(1, testContext.AVAXAssetID, 10*units.Avax, from.Address)
	pChain.utxos = map[string][]*avax.UTXO{
		"": {utxo},
	}

	prepared, err := p.PreparePBaseTx(context.Background(), from, recipientAddr, units.Avax)
	require.NoError(err)
	require.Equal(constants.PChainAlias, prepared.ChainAlias)
	require.Positive(prepared.Fee)
	require.Len(prepared.Tx.Inputs, 1)
	require.Equal(utxo.UTXOID, prepared.Tx.Inputs[0].UTXOID)
	require.Contains(prepared.Tx.Owners, utxo.InputID())

	utx, ok := parsePTx(t, prepared).(*ptxs.BaseTx)
	require.True(ok)

	var (
		sent     uint64
		produced uint64
	)
	for _, out := range utx.Outs {
		produced, err = math.Add(produced, out.Out.Amount())
		require.NoError(err)

		owners := out.Out.(*secp256k1fx.TransferOutput).OutputOwners
		if owners.Addrs[0] == recipientAddr {
			sent += out.Out.Amount()
		}
	}
	require.Equal(units.Avax, sent)
	require.Equal(10*units.Avax-prepared.Fee, produced)
}

func TestPreparePImportTx(t *testing.T) {
	require := require.New(t)

	pChain := &fakePClient{price: 1}
	p, from := newTestPreparer(t, pChain)
	imported := newTestUTXO(1, testContext.AVAXAssetID, units.Avax, from.Address)
	pChain.utxos = map[string][]*avax.UTXO{
		testContext.CBlockchainID.String(): {imported},
	}

	prepared, err := p.PreparePImportTx(context.Background(), from, recipientAddr)
	require.NoError(err)
	require.Equal(testContext.CBlockchainID, prepared.Tx.SourceChain)
	require.Contains(prepared.Tx.Owners, imported.InputID())
	require.Positive(prepared.Fee)

	utx, ok := parsePTx(t, prepared).(*ptxs.ImportTx)
	require.True(ok)
	require.Len(utx.ImportedInputs, 1)
	require.Len(utx.Outs, 1)
	require.Equal(units.Avax-prepared.Fee, utx.Outs[0].Out.Amount())
}

func TestPreparePExportTxOwnedBySender(t *testing.T) {
	require := require.New(t)

	pChain := &fakePClient{price: 1}
	p, from := newTestPreparer(t, pChain)
	pChain.utxos = map[string][]*avax.UTXO{
		"": {newTestUTXO(1, testContext.AVAXAssetID, 10*units.Avax, from.Address)},
	}

	prepared, err := p.PreparePExportTx(context.Background(), from, units.Avax)
	require.NoError(err)

	utx, ok := parsePTx(t, prepared).(*ptxs.ExportTx)
	require.True(ok)
	require.Equal(testContext.CBlockchainID, utx.DestinationChain)
	require.Len(utx.ExportedOutputs, 1)

	out := utx.ExportedOutputs[0].Out.(*secp256k1fx.TransferOutput)
	require.Equal(units.Avax, out.Amt)
	require.Equal([]ids.ShortID{from.Address}, out.Addrs)
}

func TestImportFee(t *testing.T) {
	require := require.New(t)

	p, _ := newTestPreparer(t, &fakePClient{price: 1})

	pFee, err := p.ImportFee(context.Background(), constants.PChainAlias)
	require.NoError(err)
	require.Positive(pFee)

	cFee, err := p.ImportFee(context.Background(), constants.CChainAlias)
	require.NoError(err)
	require.Positive(cFee)

	_, err = p.ImportFee(context.Background(), constants.XChainAlias)
	require.ErrorIs(err, ErrInvalidChain)
}

func TestBurnedAVAX(t *testing.T) {
	otherAssetID := ids.ID{'o', 't', 'h', 'e', 'r'}
	in := func(assetID ids.ID, amount uint64) *avax.TransferableInput {
		return &avax.TransferableInput{
			Asset: avax.Asset{ID: assetID},
			In:    &secp256k1fx.TransferInput{Amt: amount},
		}
	}
	out := func(assetID ids.ID, amount uint64) *avax.TransferableOutput {
		return &avax.TransferableOutput{
			Asset: avax.Asset{ID: assetID},
			Out:   &secp256k1fx.TransferOutput{Amt: amount},
		}
	}

	tests := []struct {
		name         string
		ins          []*avax.TransferableInput
		outs         []*avax.TransferableOutput
		expectedBurn uint64
		expectedErr  error
	}{
		{
			name: "no change",
			ins:  []*avax.TransferableInput{in(testContext.AVAXAssetID, 5)},
			outs: []*avax.TransferableOutput{out(testContext.AVAXAssetID, 5)},
		},
		{
			name: "other assets ignored",
			ins: []*avax.TransferableInput{
				in(testContext.AVAXAssetID, 5),
				in(otherAssetID, 100),
			},
			outs: []*avax.TransferableOutput{
				out(testContext.AVAXAssetID, 2),
				out(otherAssetID, 1),
			},
			expectedBurn: 3,
		},
		{
			name:        "produced more than consumed",
			ins:         []*avax.TransferableInput{in(testContext.AVAXAssetID, 1)},
			outs:        []*avax.TransferableOutput{out(testContext.AVAXAssetID, 2)},
			expectedErr: math.ErrUnderflow,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			burned, err := burnedAVAX(testContext.AVAXAssetID, test.ins, test.outs)
			require.ErrorIs(err, test.expectedErr)
			require.Equal(test.expectedBurn, burned)
		})
	}
}
