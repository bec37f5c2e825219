// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xp

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// RemoteSigner delegates signing to a wallet that exposes the avalanche_*
// JSON-RPC methods. Errors returned by the wallet are passed through
// unmodified.
type RemoteSigner struct {
	Requester rpc.EndpointRequester
}

func NewRemoteSigner(uri string) *RemoteSigner {
	return &RemoteSigner{Requester: rpc.NewEndpointRequester(uri)}
}

func (*RemoteSigner) isSigner() {}

type SignTransactionArgs struct {
	TransactionHex string   `json:"transactionHex"`
	ChainAlias     string   `json:"chainAlias"`
	UTXOIDs        []string `json:"utxos,omitempty"`
	SubnetAuth     []uint32 `json:"subnetAuth,omitempty"`
	DisableAuth    []uint32 `json:"disableAuth,omitempty"`
}

type SignTransactionReply struct {
	SignedTransactionHex string `json:"signedTransactionHex"`
}

// SignTransaction returns the hex of the tx after the wallet has added its
// signatures.
func (s *RemoteSigner) SignTransaction(ctx context.Context, args *SignTransactionArgs, options ...rpc.Option) (string, error) {
	res := &SignTransactionReply{}
	err := s.Requester.SendRequest(ctx, "avalanche_signTransaction", args, res, options...)
	return res.SignedTransactionHex, err
}

type SendTransactionArgs struct {
	SignTransactionArgs

	// SigIndices holds, per input, the owner positions the wallet is expected
	// to sign for.
	SigIndices [][]uint32 `json:"signatureIndices,omitempty"`
	// FeeTolerance is the percentage by which the wallet may raise the fee.
	FeeTolerance uint32 `json:"feeTolerance,omitempty"`
}

type SendTransactionReply struct {
	TxHash ids.ID `json:"txHash"`
}

// SendTransaction signs and issues the tx inside the wallet.
func (s *RemoteSigner) SendTransaction(ctx context.Context, args *SendTransactionArgs, options ...rpc.Option) (ids.ID, error) {
	res := &SendTransactionReply{}
	err := s.Requester.SendRequest(ctx, "avalanche_sendTransaction", args, res, options...)
	return res.TxHash, err
}

type SignMessageArgs struct {
	Message    string `json:"message"`
	ChainAlias string `json:"chainAlias,omitempty"`
}

type SignMessageReply struct {
	Signature string `json:"signature"`
}

func (s *RemoteSigner) SignMessage(ctx context.Context, args *SignMessageArgs, options ...rpc.Option) (string, error) {
	res := &SignMessageReply{}
	err := s.Requester.SendRequest(ctx, "avalanche_signMessage", args, res, options...)
	return res.Signature, err
}

type AccountPubKeyReply struct {
	XP  string `json:"xp"`
	EVM string `json:"evm"`
}

// GetAccountPubKey returns the hex encoded public keys of the wallet's
// active account.
func (s *RemoteSigner) GetAccountPubKey(ctx context.Context, options ...rpc.Option) (*AccountPubKeyReply, error) {
	res := &AccountPubKeyReply{}
	err := s.Requester.SendRequest(ctx, "avalanche_getAccountPubKey", struct{}{}, res, options...)
	return res, err
}

type EVMTransactionArgs struct {
	From  ethcommon.Address  `json:"from"`
	To    *ethcommon.Address `json:"to"`
	Value *hexutil.Big       `json:"value,omitempty"`
	Data  hexutil.Bytes      `json:"data,omitempty"`
}

// SendEVMTransaction asks the wallet to sign and broadcast a C-Chain
// transaction.
func (s *RemoteSigner) SendEVMTransaction(ctx context.Context, args *EVMTransactionArgs, options ...rpc.Option) (ethcommon.Hash, error) {
	var res ethcommon.Hash
	err := s.Requester.SendRequest(ctx, "eth_sendTransaction", []*EVMTransactionArgs{args}, &res, options...)
	return res, err
}
