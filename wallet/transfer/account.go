// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfer

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting"
	"github.com/ava-labs/avalanche-sdk-go/wallet/xp"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Account is the sender of a transfer.
type Account struct {
	Signer xp.Signer
	// Address controls the sender's funds on the P-Chain and in shared
	// memory.
	Address ids.ShortID
	// EthAddress holds the sender's funds on the C-Chain.
	EthAddress ethcommon.Address
}

func NewLocalAccount(signer *xp.LocalSigner) *Account {
	return &Account{
		Signer:     signer,
		Address:    signer.Address(),
		EthAddress: signer.EthAddress(),
	}
}

// NewRemoteAccount derives the addresses of the wallet's active account from
// its public keys.
func NewRemoteAccount(ctx context.Context, signer *xp.RemoteSigner) (*Account, error) {
	keys, err := signer.GetAccountPubKey(ctx)
	if err != nil {
		return nil, err
	}
	xpKey, err := parsePublicKey(keys.XP)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse XP public key: %w", err)
	}
	evmKey, err := parsePublicKey(keys.EVM)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse EVM public key: %w", err)
	}
	return &Account{
		Signer:     signer,
		Address:    xpKey.Address(),
		EthAddress: evmKey.EthAddress(),
	}, nil
}

func parsePublicKey(keyHex string) (*secp256k1.PublicKey, error) {
	keyBytes, err := formatting.Decode(formatting.HexNC, keyHex)
	if err != nil {
		return nil, err
	}
	return secp256k1.ToPublicKey(keyBytes)
}
