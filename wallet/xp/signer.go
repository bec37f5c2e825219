// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xp

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting/address"
	"github.com/ava-labs/avalanche-sdk-go/utils/hashing"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

const signedMessagePrefix = "\x1AAvalanche Signed Message:\n"

var (
	_ Signer = (*LocalSigner)(nil)
	_ Signer = (*RemoteSigner)(nil)
)

// Signer is either a *LocalSigner or a *RemoteSigner.
type Signer interface {
	isSigner()
}

// LocalSigner signs with a secp256k1 key held in memory.
type LocalSigner struct {
	key *secp256k1.PrivateKey
}

func NewLocalSigner(key *secp256k1.PrivateKey) *LocalSigner {
	return &LocalSigner{key: key}
}

func (*LocalSigner) isSigner() {}

func (s *LocalSigner) PublicKey() *secp256k1.PublicKey {
	return s.key.PublicKey()
}

// Address is the X/P-Chain address of the key.
func (s *LocalSigner) Address() ids.ShortID {
	return s.key.Address()
}

// EthAddress is the C-Chain account of the key.
func (s *LocalSigner) EthAddress() ethcommon.Address {
	return s.key.EthAddress()
}

// FormattedAddress returns the bech32 address of the key on [chainAlias],
// for example "P-fuji1...".
func (s *LocalSigner) FormattedAddress(chainAlias, hrp string) (string, error) {
	addr := s.Address()
	return address.Format(chainAlias, hrp, addr[:])
}

func (s *LocalSigner) Sign(msg []byte) ([]byte, error) {
	return s.key.Sign(msg)
}

func (s *LocalSigner) SignHash(hash []byte) ([]byte, error) {
	return s.key.SignHash(hash)
}

// SignEVMTx signs a C-Chain transaction for the EVM chain [chainID].
func (s *LocalSigner) SignEVMTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key.ToECDSA())
}

// SignMessage signs [msg] using the Avalanche signed message envelope.
func (s *LocalSigner) SignMessage(msg []byte) ([]byte, error) {
	return s.key.SignHash(MessageHash(msg))
}

// MessageHash is the digest signed by SignMessage.
func MessageHash(msg []byte) []byte {
	size := len(signedMessagePrefix) + wrappers.IntLen + len(msg)
	p := wrappers.Packer{
		MaxSize: size,
		Bytes:   make([]byte, 0, size),
	}
	p.PackFixedBytes([]byte(signedMessagePrefix))
	p.PackBytes(msg)
	return hashing.ComputeHash256(p.Bytes)
}
