// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avax

import (
	"bytes"
	"errors"
	"slices"
	"sort"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

var (
	ErrNilTransferableOutput   = errors.New("nil transferable output is not valid")
	ErrNilTransferableFxOutput = errors.New("nil transferable feature extension output is not valid")

	ErrNilTransferableInput   = errors.New("nil transferable input is not valid")
	ErrNilTransferableFxInput = errors.New("nil transferable feature extension input is not valid")

	_ codec.Packable = (*TransferableOutput)(nil)
	_ codec.Packable = (*TransferableInput)(nil)
)

// Amounter is a data structure that has an amount of something associated
// with it
type Amounter interface {
	// Amount returns how much value this element represents of the asset in its
	// transaction.
	Amount() uint64
}

// TransferableOut is the interface a feature extension must provide to
// transfer value between features extensions.
type TransferableOut interface {
	codec.Packable
	Amounter
	Verify() error
}

// Coster is a data structure that has a cost associated with it
type Coster interface {
	// Cost returns how much this element costs to be included in its
	// transaction.
	Cost() (uint64, error)
}

// TransferableIn is the interface a feature extension must provide to
// consume a TransferableOut.
type TransferableIn interface {
	codec.Packable
	Amounter
	Coster
	Verify() error
}

// TransferableOutput is the unsigned form of an output that moves [Asset].
type TransferableOutput struct {
	Asset `json:"asset"`
	// FxID has a default value of ids.Empty and is not serialized.
	FxID ids.ID `json:"fxID"`

	Out TransferableOut `json:"output"`
}

func (out *TransferableOutput) PackFields(c codec.Codec, p *wrappers.Packer) {
	out.Asset.pack(p)
	c.PackInterface(p, out.Out)
}

func (out *TransferableOutput) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	out.Asset.unpack(p)
	v := c.UnpackInterface(p)
	if p.Errored() {
		return
	}
	o, ok := v.(TransferableOut)
	if !ok {
		p.Add(codec.ErrDoesNotImplementInterface)
		return
	}
	out.Out = o
}

// Output returns the feature extension output that this Output is using.
func (out *TransferableOutput) Output() TransferableOut {
	return out.Out
}

func (out *TransferableOutput) Verify() error {
	switch {
	case out == nil:
		return ErrNilTransferableOutput
	case out.Out == nil:
		return ErrNilTransferableFxOutput
	default:
		return out.Out.Verify()
	}
}

type innerSortTransferableOutputs struct {
	outs  []*TransferableOutput
	codec codec.Codec
}

func (outs *innerSortTransferableOutputs) Less(i, j int) bool {
	iOut := outs.outs[i]
	jOut := outs.outs[j]

	if assetComp := iOut.AssetID().Compare(jOut.AssetID()); assetComp != 0 {
		return assetComp < 0
	}

	iBytes, err := packOutput(outs.codec, iOut.Out)
	if err != nil {
		return false
	}
	jBytes, err := packOutput(outs.codec, jOut.Out)
	if err != nil {
		return false
	}
	return bytes.Compare(iBytes, jBytes) == -1
}

func (outs *innerSortTransferableOutputs) Len() int {
	return len(outs.outs)
}

func (outs *innerSortTransferableOutputs) Swap(i, j int) {
	o := outs.outs
	o[j], o[i] = o[i], o[j]
}

func packOutput(c codec.Codec, out TransferableOut) ([]byte, error) {
	p := wrappers.Packer{MaxSize: codec.DefaultMaxSize}
	c.PackInterface(&p, out)
	return p.Bytes, p.Err
}

// SortTransferableOutputs sorts output objects by asset ID and then by the
// serialized output.
func SortTransferableOutputs(outs []*TransferableOutput, c codec.Codec) {
	sort.Sort(&innerSortTransferableOutputs{outs: outs, codec: c})
}

// IsSortedTransferableOutputs returns true if output objects are sorted
func IsSortedTransferableOutputs(outs []*TransferableOutput, c codec.Codec) bool {
	return sort.IsSorted(&innerSortTransferableOutputs{outs: outs, codec: c})
}

// TransferableInput spends the UTXO identified by [UTXOID].
type TransferableInput struct {
	UTXOID `json:"utxoID"`
	Asset  `json:"asset"`
	// FxID has a default value of ids.Empty and is not serialized.
	FxID ids.ID `json:"fxID"`

	In TransferableIn `json:"input"`
}

func (in *TransferableInput) PackFields(c codec.Codec, p *wrappers.Packer) {
	in.UTXOID.pack(p)
	in.Asset.pack(p)
	c.PackInterface(p, in.In)
}

func (in *TransferableInput) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	in.UTXOID.unpack(p)
	in.Asset.unpack(p)
	v := c.UnpackInterface(p)
	if p.Errored() {
		return
	}
	i, ok := v.(TransferableIn)
	if !ok {
		p.Add(codec.ErrDoesNotImplementInterface)
		return
	}
	in.In = i
}

// Input returns the feature extension input that this Input is using.
func (in *TransferableInput) Input() TransferableIn {
	return in.In
}

func (in *TransferableInput) Verify() error {
	switch {
	case in == nil:
		return ErrNilTransferableInput
	case in.In == nil:
		return ErrNilTransferableFxInput
	default:
		return in.In.Verify()
	}
}

func (in *TransferableInput) Compare(other *TransferableInput) int {
	return in.UTXOID.Compare(&other.UTXOID)
}

// SortTransferableInputs sorts inputs by the UTXO they consume.
func SortTransferableInputs(ins []*TransferableInput) {
	slices.SortFunc(ins, (*TransferableInput).Compare)
}

// IsSortedAndUniqueTransferableInputs returns true if no two inputs consume
// the same UTXO and the inputs are sorted.
func IsSortedAndUniqueTransferableInputs(ins []*TransferableInput) bool {
	for i := 1; i < len(ins); i++ {
		if ins[i-1].Compare(ins[i]) >= 0 {
			return false
		}
	}
	return true
}

type innerSortTransferableInputsWithSigners[T any] struct {
	ins     []*TransferableInput
	signers [][]T
}

func (ins *innerSortTransferableInputsWithSigners[_]) Less(i, j int) bool {
	return ins.ins[i].Compare(ins.ins[j]) < 0
}

func (ins *innerSortTransferableInputsWithSigners[_]) Len() int {
	return len(ins.ins)
}

func (ins *innerSortTransferableInputsWithSigners[_]) Swap(i, j int) {
	ins.ins[j], ins.ins[i] = ins.ins[i], ins.ins[j]
	ins.signers[j], ins.signers[i] = ins.signers[i], ins.signers[j]
}

// SortTransferableInputsWithSigners sorts the inputs and signers based on the
// input's utxo ID
func SortTransferableInputsWithSigners[T any](ins []*TransferableInput, signers [][]T) {
	sort.Sort(&innerSortTransferableInputsWithSigners[T]{ins: ins, signers: signers})
}
