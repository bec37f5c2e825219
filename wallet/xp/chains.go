// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xp

import (
	"context"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"
	"github.com/ava-labs/avalanche-sdk-go/vms/avm"
	"github.com/ava-labs/avalanche-sdk-go/vms/evm/atomic"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary"
)

// Status strings reported by the P-Chain, X-Chain and C-Chain atomic APIs.
const (
	StatusUnknown    = "Unknown"
	StatusProcessing = "Processing"
	StatusAccepted   = "Accepted"
	StatusCommitted  = "Committed"
	StatusRejected   = "Rejected"
	StatusDropped    = "Dropped"
	StatusAborted    = "Aborted"
)

var (
	_ Chain = (*pChain)(nil)
	_ Chain = (*xChain)(nil)
	_ Chain = (*cChain)(nil)
)

// TxStatus is the status of an issued tx, independent of the chain that
// reported it.
type TxStatus struct {
	Status string
	// Reason is only reported by the P-Chain for dropped txs.
	Reason string
}

// Decided reports whether the status is final, and if so whether the tx was
// accepted.
func (s TxStatus) Decided() (accepted bool, decided bool) {
	switch s.Status {
	case StatusAccepted, StatusCommitted:
		return true, true
	case StatusRejected, StatusDropped, StatusAborted:
		return false, true
	default:
		return false, false
	}
}

// Chain is the set of chain APIs needed to sign, issue and confirm txs.
type Chain interface {
	primary.UTXOClient

	IssueTx(ctx context.Context, txBytes []byte, options ...rpc.Option) (ids.ID, error)
	TxStatus(ctx context.Context, txID ids.ID, options ...rpc.Option) (TxStatus, error)
}

type pChain struct {
	*platformvm.Client
}

func NewPChain(client *platformvm.Client) Chain {
	return &pChain{Client: client}
}

func (c *pChain) TxStatus(ctx context.Context, txID ids.ID, options ...rpc.Option) (TxStatus, error) {
	res, err := c.GetTxStatus(ctx, txID, options...)
	if err != nil {
		return TxStatus{}, err
	}
	return TxStatus{
		Status: res.Status.String(),
		Reason: res.Reason,
	}, nil
}

type xChain struct {
	*avm.Client
}

func NewXChain(client *avm.Client) Chain {
	return &xChain{Client: client}
}

func (c *xChain) TxStatus(ctx context.Context, txID ids.ID, options ...rpc.Option) (TxStatus, error) {
	status, err := c.GetTxStatus(ctx, txID, options...)
	if err != nil {
		return TxStatus{}, err
	}
	return TxStatus{Status: status.String()}, nil
}

type cChain struct {
	*atomic.Client
}

func NewCChain(client *atomic.Client) Chain {
	return &cChain{Client: client}
}

func (c *cChain) TxStatus(ctx context.Context, txID ids.ID, options ...rpc.Option) (TxStatus, error) {
	status, err := c.GetAtomicTxStatus(ctx, txID, options...)
	if err != nil {
		return TxStatus{}, err
	}
	return TxStatus{Status: status.String()}, nil
}
