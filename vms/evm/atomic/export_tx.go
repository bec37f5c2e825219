// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package atomic

import (
	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"

	safemath "github.com/ava-labs/avalanche-sdk-go/utils/math"
)

var _ UnsignedAtomicTx = (*UnsignedExportTx)(nil)

// UnsignedExportTx is an unsigned ExportTx
type UnsignedExportTx struct {
	Metadata
	// ID of the network on which this tx was issued
	NetworkID uint32 `json:"networkID"`
	// ID of this blockchain.
	BlockchainID ids.ID `json:"blockchainID"`
	// Which chain to send the funds to
	DestinationChain ids.ID `json:"destinationChain"`
	// Inputs
	Ins []EVMInput `json:"inputs"`
	// Outputs that are exported to the chain
	ExportedOutputs []*avax.TransferableOutput `json:"exportedOutputs"`
}

func (utx *UnsignedExportTx) PackFields(c codec.Codec, p *wrappers.Packer) {
	p.PackInt(utx.NetworkID)
	p.PackFixedBytes(utx.BlockchainID[:])
	p.PackFixedBytes(utx.DestinationChain[:])
	packEVMInputs(p, utx.Ins)
	avax.PackOutputs(c, p, utx.ExportedOutputs)
}

func (utx *UnsignedExportTx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	utx.NetworkID = p.UnpackInt()
	copy(utx.BlockchainID[:], p.UnpackFixedBytes(ids.IDLen))
	copy(utx.DestinationChain[:], p.UnpackFixedBytes(ids.IDLen))
	utx.Ins = unpackEVMInputs(p)
	utx.ExportedOutputs = avax.UnpackOutputs(c, p)
}

// InputUTXOs returns a set of all the hash(address:nonce) exporting funds.
func (utx *UnsignedExportTx) InputUTXOs() set.Set[ids.ID] {
	set := set.NewSet[ids.ID](len(utx.Ins))
	for _, in := range utx.Ins {
		// Total populated bytes is exactly 32 bytes.
		// 8 (Nonce) + 4 (Address Length) + 20 (Address)
		var rawID [32]byte
		packer := wrappers.Packer{Bytes: rawID[:]}
		packer.PackLong(in.Nonce)
		packer.PackBytes(in.Address.Bytes())
		set.Add(ids.ID(rawID))
	}
	return set
}

func (utx *UnsignedExportTx) NumCredentials() int {
	return len(utx.Ins)
}

// Verify this transaction is well-formed
func (utx *UnsignedExportTx) Verify(networkID uint32, chainID ids.ID) error {
	switch {
	case utx == nil:
		return ErrNilTx
	case len(utx.ExportedOutputs) == 0:
		return ErrNoExportOutputs
	case utx.NetworkID != networkID:
		return ErrWrongNetworkID
	case utx.BlockchainID != chainID:
		return ErrWrongChainID
	}

	for _, in := range utx.Ins {
		if err := in.Verify(); err != nil {
			return err
		}
	}
	for _, out := range utx.ExportedOutputs {
		if err := out.Verify(); err != nil {
			return err
		}
	}
	if !avax.IsSortedTransferableOutputs(utx.ExportedOutputs, Registry) {
		return avax.ErrOutputsNotSorted
	}
	if !isSortedAndUnique(utx.Ins) {
		return ErrInputsNotSortedUnique
	}
	return nil
}

func (utx *UnsignedExportTx) GasUsed(fixedFee bool) (uint64, error) {
	byteCost := calcBytesCost(len(utx.Bytes()))
	numSigs := uint64(len(utx.Ins))
	sigCost, err := safemath.Mul(numSigs, secp256k1fx.CostPerSignature)
	if err != nil {
		return 0, err
	}
	cost, err := safemath.Add(byteCost, sigCost)
	if err != nil {
		return 0, err
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
func (utx *UnsignedExportTx) Burned(assetID ids.ID) (uint64, error) {
	var (
		input uint64
		err   error
	)
	for _, in := range utx.Ins {
		if in.AssetID == assetID {
			input, err = safemath.Add(input, in.Amount)
			if err != nil {
				return 0, err
			}
		}
	}
	return burned(assetID, input, utx.ExportedOutputs)
}
