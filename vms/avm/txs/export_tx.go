// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
)

var (
	_ UnsignedTx = (*ExportTx)(nil)

	ErrNoExportOutputs = errors.New("no export outputs")
)

// ExportTx is a transaction that exports an asset to another blockchain.
type ExportTx struct {
	BaseTx

	// Which chain to send the funds to
	DestinationChain ids.ID `json:"destinationChain"`

	// The outputs this transaction is sending to the other chain
	ExportedOuts []*avax.TransferableOutput `json:"exportedOutputs"`
}

func (t *ExportTx) PackFields(c codec.Codec, p *wrappers.Packer) {
	t.BaseTx.PackFields(c, p)
	p.PackFixedBytes(t.DestinationChain[:])
	avax.PackOutputs(c, p, t.ExportedOuts)
}

func (t *ExportTx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	t.BaseTx.UnpackFields(c, p)
	copy(t.DestinationChain[:], p.UnpackFixedBytes(ids.IDLen))
	t.ExportedOuts = avax.UnpackOutputs(c, p)
}

func (t *ExportTx) SyntacticVerify(networkID uint32, chainID ids.ID) error {
	switch {
	case t == nil:
		return ErrNilTx
	case len(t.ExportedOuts) == 0:
		return ErrNoExportOutputs
	}
	if err := t.BaseTx.SyntacticVerify(networkID, chainID); err != nil {
		return err
	}
	for _, out := range t.ExportedOuts {
		if err := out.Verify(); err != nil {
			return err
		}
	}
	if !avax.IsSortedTransferableOutputs(t.ExportedOuts, Registry) {
		return avax.ErrOutputsNotSorted
	}
	return nil
}

func (t *ExportTx) Visit(v Visitor) error {
	return v.ExportTx(t)
}
