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

	ErrNoImportInputs = errors.New("no import inputs")
)

// ImportTx is a transaction that imports an asset from another blockchain.
type ImportTx struct {
	BaseTx

	// Which chain to consume the funds from
	SourceChain ids.ID `json:"sourceChain"`

	// The inputs to this transaction
	ImportedIns []*avax.TransferableInput `json:"importedInputs"`
}

func (t *ImportTx) PackFields(c codec.Codec, p *wrappers.Packer) {
	t.BaseTx.PackFields(c, p)
	p.PackFixedBytes(t.SourceChain[:])
	avax.PackInputs(c, p, t.ImportedIns)
}

func (t *ImportTx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	t.BaseTx.UnpackFields(c, p)
	copy(t.SourceChain[:], p.UnpackFixedBytes(ids.IDLen))
	t.ImportedIns = avax.UnpackInputs(c, p)
}

// InputIDs track which UTXOs this transaction is consuming.
func (t *ImportTx) InputIDs() set.Set[ids.ID] {
	inputs := t.BaseTx.InputIDs()
	for _, in := range t.ImportedIns {
		inputs.Add(in.InputID())
	}
	return inputs
}

func (t *ImportTx) Spends() []*avax.TransferableInput {
	ins := make([]*avax.TransferableInput, 0, len(t.Ins)+len(t.ImportedIns))
	ins = append(ins, t.Ins...)
	return append(ins, t.ImportedIns...)
}

func (t *ImportTx) SyntacticVerify(networkID uint32, chainID ids.ID) error {
	switch {
	case t == nil:
		return ErrNilTx
	case len(t.ImportedIns) == 0:
		return ErrNoImportInputs
	}
	if err := t.BaseTx.SyntacticVerify(networkID, chainID); err != nil {
		return err
	}
	for _, in := range t.ImportedIns {
		if err := in.Verify(); err != nil {
			return err
		}
	}
	if !avax.IsSortedAndUniqueTransferableInputs(t.ImportedIns) {
		return avax.ErrInputsNotSortedUnique
	}
	return nil
}

func (t *ImportTx) Visit(v Visitor) error {
	return v.ImportTx(t)
}
