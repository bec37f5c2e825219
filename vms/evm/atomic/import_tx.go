// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package atomic

import (
	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"

	safemath "github.com/ava-labs/avalanche-sdk-go/utils/math"
)

var _ UnsignedAtomicTx = (*UnsignedImportTx)(nil)

// UnsignedImportTx is an unsigned ImportTx
type UnsignedImportTx struct {
	Metadata
	// ID of the network on which this tx was issued
	NetworkID uint32 `json:"networkID"`
	// ID of this blockchain.
	BlockchainID ids.ID `json:"blockchainID"`
	// Which chain to consume the funds from
	SourceChain ids.ID `json:"sourceChain"`

	// Inputs that consume UTXOs produced on the chain
	ImportedInputs []*avax.TransferableInput `json:"importedInputs"`
	// Outputs
	Outs []EVMOutput `json:"outputs"`
}

func (utx *UnsignedImportTx) PackFields(c codec.Codec, p *wrappers.Packer) {
	p.PackInt(utx.NetworkID)
	p.PackFixedBytes(utx.BlockchainID[:])
	p.PackFixedBytes(utx.SourceChain[:])
	avax.PackInputs(c, p, utx.ImportedInputs)
	packEVMOutputs(p, utx.Outs)
}

func (utx *UnsignedImportTx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	utx.NetworkID = p.UnpackInt()
	copy(utx.BlockchainID[:], p.UnpackFixedBytes(ids.IDLen))
	copy(utx.SourceChain[:], p.UnpackFixedBytes(ids.IDLen))
	utx.ImportedInputs = avax.UnpackInputs(c, p)
	utx.Outs = unpackEVMOutputs(p)
}

// InputUTXOs returns the UTXOIDs of the imported funds
func (utx *UnsignedImportTx) InputUTXOs() set.Set[ids.ID] {
	set := set.NewSet[ids.ID](len(utx.ImportedInputs))
	for _, in := range utx.ImportedInputs {
		set.Add(in.InputID())
	}
	return set
}

func (utx *UnsignedImportTx) NumCredentials() int {
	return len(utx.ImportedInputs)
}

// Verify this transaction is well-formed
func (utx *UnsignedImportTx) Verify(networkID uint32, chainID ids.ID) error {
	switch {
	case utx == nil:
		return ErrNilTx
	case len(utx.ImportedInputs) == 0:
		return ErrNoImportInputs
	case utx.NetworkID != networkID:
		return ErrWrongNetworkID
	case utx.BlockchainID != chainID:
		return ErrWrongChainID
	}

	for _, out := range utx.Outs {
		if err := out.Verify(); err != nil {
			return err
		}
	}
	for _, in := range utx.ImportedInputs {
		if err := in.Verify(); err != nil {
			return err
		}
	}
	if !avax.IsSortedAndUniqueTransferableInputs(utx.ImportedInputs) {
		return ErrInputsNotSortedUnique
	}
	if !isSortedAndUnique(utx.Outs) {
		return ErrOutputsNotSortedUnique
	}
	return nil
}

func (utx *UnsignedImportTx) GasUsed(fixedFee bool) (uint64, error) {
	var (
		cost = calcBytesCost(len(utx.Bytes()))
		err  error
	)
	for _, in := range utx.ImportedInputs {
		inCost, err := in.In.Cost()
		if err != nil {
			return 0, err
		}
		cost, err = safemath.Add(cost, inCost)
		if err != nil {
			return 0, err
		}
	}
	if fixedFee {
		cost, err = safemath.Add(cost, AtomicTxIntrinsicGas)
		if err != nil {
			return 0, err
		}
	}
	return cost, nil
}

// Burned returns the amount of [assetID] burned by this transaction
func (utx *UnsignedImportTx) Burned(assetID ids.ID) (uint64, error) {
	var (
		spent uint64
		input uint64
		err   error
	)
	for _, out := range utx.Outs {
		if out.AssetID == assetID {
			spent, err = safemath.Add(spent, out.Amount)
			if err != nil {
				return 0, err
			}
		}
	}
	for _, in := range utx.ImportedInputs {
		if in.AssetID() == assetID {
			input, err = safemath.Add(input, in.Input().Amount())
			if err != nil {
				return 0, err
			}
		}
	}
	return safemath.Sub(input, spent)
}
