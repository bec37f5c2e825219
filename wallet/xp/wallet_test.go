// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/api"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
	"github.com/ava-labs/avalanche-sdk-go/wallet/chain"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary"

	ptxs "github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs"
)

var (
	errTest = errors.New("non-nil error")

	avaxAssetID = ids.ID{'a', 'v', 'a', 'x'}
	cChainID    = ids.ID{'c'}
	otherAddr   = ids.ShortID{'o', 't', 'h', 'e', 'r'}
)

// testChain serves [utxos] for every source chain listed and records the
// issued txs.
type testChain struct {
	utxos    map[string][]*avax.UTXO
	utxosErr error

	issued   [][]byte
	issueErr error

	statuses []TxStatus
	polls    int
}

func (c *testChain) GetAtomicUTXOs(
	_ context.Context,
	_ []string,
	sourceChain string,
	_ uint32,
	_ string,
	_ string,
	_ ...rpc.Option,
) ([][]byte, api.Index, error) {
	if c.utxosErr != nil {
		return nil, api.Index{}, c.utxosErr
	}
	utxos := c.utxos[sourceChain]
	utxosBytes := make([][]byte, len(utxos))
	for i, utxo := range utxos {
		b, err := ptxs.Codec.Marshal(ptxs.CodecVersion, utxo)
		if err != nil {
			return nil, api.Index{}, err
		}
		utxosBytes[i] = b
	}
	return utxosBytes, api.Index{}, nil
}

func (c *testChain) IssueTx(_ context.Context, txBytes []byte, _ ...rpc.Option) (ids.ID, error) {
	if c.issueErr != nil {
		return ids.Empty, c.issueErr
	}
	c.issued = append(c.issued, txBytes)
	return ids.ID{byte(len(c.issued))}, nil
}

func (c *testChain) TxStatus(context.Context, ids.ID, ...rpc.Option) (TxStatus, error) {
	status := c.statuses[min(c.polls, len(c.statuses)-1)]
	c.polls++
	return status, nil
}

func newTestSigner(t *testing.T) *LocalSigner {
	key, err := secp256k1.NewPrivateKey()
	require.NoError(t, err)
	return NewLocalSigner(key)
}

func newTestWallet(pChain *testChain) *Wallet {
	return &Wallet{
		Context: primary.Context{
			NetworkID: constants.FujiID,
			HRP:       constants.FujiHRP,
		},
		Chains: map[string]Chain{
			constants.PChainAlias: pChain,
		},
	}
}

func ownedUTXO(utxoID avax.UTXOID, addrs ...ids.ShortID) *avax.UTXO {
	return &avax.UTXO{
		UTXOID: utxoID,
		Asset:  avax.Asset{ID: avaxAssetID},
		Out: &secp256k1fx.TransferOutput{
			Amt: 10,
			OutputOwners: secp256k1fx.OutputOwners{
				Threshold: uint32(len(addrs)),
				Addrs:     addrs,
			},
		},
	}
}

func spend(utxoID avax.UTXOID, sigIndices ...uint32) *avax.TransferableInput {
	return &avax.TransferableInput{
		UTXOID: utxoID,
		Asset:  avax.Asset{ID: avaxAssetID},
		In: &secp256k1fx.TransferInput{
			Amt:   10,
			Input: secp256k1fx.Input{SigIndices: sigIndices},
		},
	}
}

func newPBaseTx(ins ...*avax.TransferableInput) *ptxs.Tx {
	return &ptxs.Tx{Unsigned: &ptxs.BaseTx{BaseTx: avax.BaseTx{
		NetworkID:    constants.FujiID,
		BlockchainID: constants.PlatformChainID,
		Ins:          ins,
	}}}
}

func newPImportTx(imported ...*avax.TransferableInput) *ptxs.Tx {
	return &ptxs.Tx{Unsigned: &ptxs.ImportTx{
		BaseTx: ptxs.BaseTx{BaseTx: avax.BaseTx{
			NetworkID:    constants.FujiID,
			BlockchainID: constants.PlatformChainID,
		}},
		SourceChain:    cChainID,
		ImportedInputs: imported,
	}}
}

// requireSignedBy checks that [sig] was produced by [signer] over the
// unsigned bytes of [tx].
func requireSignedBy(t *testing.T, signer *LocalSigner, tx *chain.Tx, sig [secp256k1.SignatureLen]byte) {
	require := require.New(t)

	pk, err := secp256k1.RecoverPublicKey(tx.UnsignedBytes(), sig[:])
	require.NoError(err)
	require.Equal(signer.Address(), pk.Address())
}

func TestResolveSigner(t *testing.T) {
	var (
		local        = newTestSigner(t)
		walletSigner = newTestSigner(t)
		remote       = &RemoteSigner{}
		nilLocal     *LocalSigner
	)
	tests := []struct {
		name        string
		wallet      *Wallet
		requested   Signer
		expected    Signer
		expectedErr error
	}{
		{
			name:      "requested signer",
			wallet:    &Wallet{Signer: walletSigner, Remote: remote},
			requested: local,
			expected:  local,
		},
		{
			name:     "wallet signer",
			wallet:   &Wallet{Signer: walletSigner, Remote: remote},
			expected: walletSigner,
		},
		{
			name:      "typed nil falls through",
			wallet:    &Wallet{Remote: remote},
			requested: nilLocal,
			expected:  remote,
		},
		{
			name:        "no signer",
			wallet:      &Wallet{},
			expectedErr: ErrNoSigner,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			signer, err := test.wallet.resolveSigner(test.requested)
			require.ErrorIs(err, test.expectedErr)
			require.Equal(test.expected, signer)
		})
	}
}
