// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
)

var (
	_ UnsignedTx = (*ImportTx)(nil)

	ErrNoImportInputs = errors.New("tx has no imported inputs")
)

// ImportTx is an unsigned importTx
type ImportTx struct {
	BaseTx `json:",inline"`

	// Which chain to consume the funds from
	SourceChain ids.ID `json:"sourceChain"`

	// Inputs that consume UTXOs produced on the chain
	ImportedInputs []*avax.TransferableInput `json:"importedInputs"`
}

func (tx *ImportTx) PackFields(c codec.Codec, p *wrappers.Packer) {
	tx.BaseTx.PackFields(c, p)
	p.PackFixedBytes(tx.SourceChain[:])
	avax.PackInputs(c, p, tx.ImportedInputs)
}

func (tx *ImportTx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	tx.BaseTx.UnpackFields(c, p)
	copy(tx.SourceChain[:], p.UnpackFixedBytes(ids.IDLen))
	tx.ImportedInputs = avax.UnpackInputs(c, p)
}

// InputIDs returns the set of inputs this transaction consumes
func (tx *ImportTx) InputIDs() set.Set[ids.ID] {
	inputs := tx.BaseTx.InputIDs()
	for _, in := range tx.ImportedInputs {
		inputs.Add(in.InputID())
	}
	return inputs
}

func (tx *ImportTx) Spends() []*avax.TransferableInput {
	ins := make([]*avax.TransferableInput, 0, len(tx.Ins)+len(tx.ImportedInputs))
	ins = append(ins, tx.Ins...)
	return append(ins, tx.ImportedInputs...)
}

// SyntacticVerify this transaction is well-formed
func (tx *ImportTx) SyntacticVerify(networkID uint32, chainID ids.ID) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	case len(tx.ImportedInputs) == 0:
		return ErrNoImportInputs
	}

	if err := tx.BaseTx.SyntacticVerify(networkID, chainID); err != nil {
		return err
	}
	for _, in := range tx.ImportedInputs {
		if err := in.Verify(); err != nil {
			return err
		}
	}
	if !avax.IsSortedAndUniqueTransferableInputs(tx.ImportedInputs) {
		return avax.ErrInputsNotSortedUnique
	}
	return nil
}

func (tx *ImportTx) Visit(visitor Visitor) error {
	return visitor.ImportTx(tx)
}
