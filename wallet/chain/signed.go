// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/vms/evm/atomic"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"

	xtxs "github.com/ava-labs/avalanche-sdk-go/vms/avm/txs"
	ptxs "github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs"
)

var (
	_ signed = (*pTx)(nil)
	_ signed = (*xTx)(nil)
	_ signed = (*cTx)(nil)
)

type pTx struct {
	tx *ptxs.Tx
}

func (t *pTx) id() ids.ID                              { return t.tx.ID() }
func (t *pTx) bytes() []byte                           { return t.tx.Bytes() }
func (t *pTx) unsignedBytes() []byte                   { return t.tx.UnsignedBytes() }
func (t *pTx) credentials() []*secp256k1fx.Credential { return t.tx.Creds }

func (t *pTx) setCredentials(creds []*secp256k1fx.Credential) error {
	t.tx.Creds = creds
	return t.tx.Initialize(ptxs.Codec)
}

type xTx struct {
	tx *xtxs.Tx
}

func (t *xTx) id() ids.ID                              { return t.tx.ID() }
func (t *xTx) bytes() []byte                           { return t.tx.Bytes() }
func (t *xTx) unsignedBytes() []byte                   { return t.tx.UnsignedBytes() }
func (t *xTx) credentials() []*secp256k1fx.Credential { return t.tx.Creds }

func (t *xTx) setCredentials(creds []*secp256k1fx.Credential) error {
	t.tx.Creds = creds
	return t.tx.Initialize(xtxs.Codec)
}

type cTx struct {
	tx *atomic.Tx
}

func (t *cTx) id() ids.ID                              { return t.tx.ID() }
func (t *cTx) bytes() []byte                           { return t.tx.SignedBytes() }
func (t *cTx) unsignedBytes() []byte                   { return t.tx.UnsignedBytes() }
func (t *cTx) credentials() []*secp256k1fx.Credential { return t.tx.Creds }

func (t *cTx) setCredentials(creds []*secp256k1fx.Credential) error {
	t.tx.Creds = creds
	return t.tx.Initialize(atomic.Codec)
}

// PTx returns the underlying P-Chain tx, if any.
func (t *Tx) PTx() (*ptxs.Tx, bool) {
	tx, ok := t.tx.(*pTx)
	if !ok {
		return nil, false
	}
	return tx.tx, true
}

// XTx returns the underlying X-Chain tx, if any.
func (t *Tx) XTx() (*xtxs.Tx, bool) {
	tx, ok := t.tx.(*xTx)
	if !ok {
		return nil, false
	}
	return tx.tx, true
}

// CTx returns the underlying C-Chain atomic tx, if any.
func (t *Tx) CTx() (*atomic.Tx, bool) {
	tx, ok := t.tx.(*cTx)
	if !ok {
		return nil, false
	}
	return tx.tx, true
}
