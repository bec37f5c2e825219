// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/stakeable"
)

var (
	_ UnsignedTx = (*ExportTx)(nil)

	ErrWrongLocktime   = errors.New("wrong locktime reported")
	ErrNoExportOutputs = errors.New("no export outputs")
)

// ExportTx is an unsigned exportTx
type ExportTx struct {
	BaseTx `json:",inline"`

	// Which chain to send the funds to
	DestinationChain ids.ID `json:"destinationChain"`

	// Outputs that are exported to the chain
	ExportedOutputs []*avax.TransferableOutput `json:"exportedOutputs"`
}

func (tx *ExportTx) PackFields(c codec.Codec, p *wrappers.Packer) {
	tx.BaseTx.PackFields(c, p)
	p.PackFixedBytes(tx.DestinationChain[:])
	avax.PackOutputs(c, p, tx.ExportedOutputs)
}

func (tx *ExportTx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	tx.BaseTx.UnpackFields(c, p)
	copy(tx.DestinationChain[:], p.UnpackFixedBytes(ids.IDLen))
	tx.ExportedOutputs = avax.UnpackOutputs(c, p)
}

// SyntacticVerify this transaction is well-formed
func (tx *ExportTx) SyntacticVerify(networkID uint32, chainID ids.ID) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	case len(tx.ExportedOutputs) == 0:
		return ErrNoExportOutputs
	}

	if err := tx.BaseTx.SyntacticVerify(networkID, chainID); err != nil {
		return err
	}
	for _, out := range tx.ExportedOutputs {
		if err := out.Verify(); err != nil {
			return err
		}
		if _, ok := out.Output().(*stakeable.LockOut); ok {
			return ErrWrongLocktime
		}
	}
	if !avax.IsSortedTransferableOutputs(tx.ExportedOutputs, Registry) {
		return avax.ErrOutputsNotSorted
	}
	return nil
}

func (tx *ExportTx) Visit(visitor Visitor) error {
	return visitor.ExportTx(tx)
}
