// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
)

var _ UnsignedTx = (*BaseTx)(nil)

// UnsignedTx is an unsigned X-Chain transaction
type UnsignedTx interface {
	codec.Packable

	SetBytes(unsignedBytes []byte)
	Bytes() []byte

	InputIDs() set.Set[ids.ID]
	Outputs() []*avax.TransferableOutput
	Spends() []*avax.TransferableInput

	SyntacticVerify(networkID uint32, chainID ids.ID) error

	Visit(visitor Visitor) error
}

// BaseTx is the basis of all X-Chain transactions.
type BaseTx struct {
	avax.BaseTx `json:",inline"`

	bytes []byte
}

func (t *BaseTx) SetBytes(bytes []byte) {
	t.bytes = bytes
}

func (t *BaseTx) Bytes() []byte {
	return t.bytes
}

func (t *BaseTx) InputIDs() set.Set[ids.ID] {
	return t.BaseTx.InputIDs()
}

func (t *BaseTx) Outputs() []*avax.TransferableOutput {
	return t.Outs
}

func (t *BaseTx) Spends() []*avax.TransferableInput {
	return t.Ins
}

func (t *BaseTx) SyntacticVerify(networkID uint32, chainID ids.ID) error {
	if t == nil {
		return ErrNilTx
	}
	return t.BaseTx.Verify(networkID, chainID, Registry)
}

func (t *BaseTx) Visit(v Visitor) error {
	return v.BaseTx(t)
}
