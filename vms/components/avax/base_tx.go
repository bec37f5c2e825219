// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avax

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

// MaxMemoSize is the maximum number of bytes in the memo field
const MaxMemoSize = 256

var (
	ErrNilTx                 = errors.New("nil tx is not valid")
	ErrWrongNetworkID        = errors.New("tx has wrong network ID")
	ErrWrongChainID          = errors.New("tx has wrong chain ID")
	ErrMemoTooLarge          = errors.New("memo exceeds maximum length")
	ErrInputsNotSortedUnique = errors.New("inputs not sorted and unique")
	ErrOutputsNotSorted      = errors.New("outputs not sorted")

	_ codec.Packable = (*BaseTx)(nil)
)

// BaseTx is the basis of all standard transactions.
type BaseTx struct {
	NetworkID    uint32                `json:"networkID"`
	BlockchainID ids.ID                `json:"blockchainID"`
	Outs         []*TransferableOutput `json:"outputs"`
	Ins          []*TransferableInput  `json:"inputs"`
	Memo         []byte                `json:"memo"`
}

func (t *BaseTx) PackFields(c codec.Codec, p *wrappers.Packer) {
	p.PackInt(t.NetworkID)
	p.PackFixedBytes(t.BlockchainID[:])
	PackOutputs(c, p, t.Outs)
	PackInputs(c, p, t.Ins)
	p.PackBytes(t.Memo)
}

func (t *BaseTx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	t.NetworkID = p.UnpackInt()
	copy(t.BlockchainID[:], p.UnpackFixedBytes(ids.IDLen))
	t.Outs = UnpackOutputs(c, p)
	t.Ins = UnpackInputs(c, p)
	t.Memo = p.UnpackLimitedBytes(MaxMemoSize)
}

// InputUTXOs track which UTXOs this transaction is consuming.
func (t *BaseTx) InputUTXOs() []*UTXOID {
	utxos := make([]*UTXOID, len(t.Ins))
	for i, in := range t.Ins {
		utxos[i] = &in.UTXOID
	}
	return utxos
}

// NumCredentials returns the number of expected credentials
func (t *BaseTx) NumCredentials() int {
	return len(t.Ins)
}

// InputIDs returns the set of inputs this transaction consumes
func (t *BaseTx) InputIDs() set.Set[ids.ID] {
	inputIDs := make(set.Set[ids.ID], len(t.Ins))
	for _, in := range t.Ins {
		inputIDs.Add(in.InputID())
	}
	return inputIDs
}

// Verify ensures that transaction metadata is valid
func (t *BaseTx) Verify(networkID uint32, chainID ids.ID, c codec.Codec) error {
	switch {
	case t == nil:
		return ErrNilTx
	case t.NetworkID != networkID:
		return fmt.Errorf("%w: expected %d got %d", ErrWrongNetworkID, networkID, t.NetworkID)
	case t.BlockchainID != chainID:
		return fmt.Errorf("%w: expected %s got %s", ErrWrongChainID, chainID, t.BlockchainID)
	case len(t.Memo) > MaxMemoSize:
		return fmt.Errorf("%w: %d > %d", ErrMemoTooLarge, len(t.Memo), MaxMemoSize)
	case !IsSortedTransferableOutputs(t.Outs, c):
		return ErrOutputsNotSorted
	case !IsSortedAndUniqueTransferableInputs(t.Ins):
		return ErrInputsNotSortedUnique
	}
	for _, out := range t.Outs {
		if err := out.Verify(); err != nil {
			return err
		}
	}
	for _, in := range t.Ins {
		if err := in.Verify(); err != nil {
			return err
		}
	}
	return nil
}

// PackOutputs writes a length prefixed list of outputs.
func PackOutputs(c codec.Codec, p *wrappers.Packer, outs []*TransferableOutput) {
	p.PackInt(uint32(len(outs)))
	for _, out := range outs {
		out.PackFields(c, p)
	}
}

// UnpackOutputs reads a length prefixed list of outputs.
func UnpackOutputs(c codec.Codec, p *wrappers.Packer) []*TransferableOutput {
	// asset ID + type ID
	n := p.UnpackLen(ids.IDLen + wrappers.IntLen)
	if p.Errored() {
		return nil
	}
	outs := make([]*TransferableOutput, n)
	for i := range outs {
		outs[i] = &TransferableOutput{}
		outs[i].UnpackFields(c, p)
		if p.Errored() {
			return nil
		}
	}
	return outs
}

// PackInputs writes a length prefixed list of inputs.
func PackInputs(c codec.Codec, p *wrappers.Packer, ins []*TransferableInput) {
	p.PackInt(uint32(len(ins)))
	for _, in := range ins {
		in.PackFields(c, p)
	}
}

// UnpackInputs reads a length prefixed list of inputs.
func UnpackInputs(c codec.Codec, p *wrappers.Packer) []*TransferableInput {
	// utxo ID + asset ID + type ID
	n := p.UnpackLen(ids.IDLen + wrappers.IntLen + ids.IDLen + wrappers.IntLen)
	if p.Errored() {
		return nil
	}
	ins := make([]*TransferableInput, n)
	for i := range ins {
		ins[i] = &TransferableInput{}
		ins[i].UnpackFields(c, p)
		if p.Errored() {
			return nil
		}
	}
	return ins
}
