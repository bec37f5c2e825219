// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package xp signs, issues and confirms P-Chain, X-Chain and C-Chain atomic
// transactions.
package xp

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanche-sdk-go/utils/logging"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary"
)

var (
	ErrNoSigner     = errors.New("no signer available")
	ErrUnknownChain = errors.New("unknown chain")
)

// Wallet holds everything needed to sign and issue txs. The zero value of
// every optional field is usable.
type Wallet struct {
	Context primary.Context
	// Chains maps a chain alias ("P", "X" or "C") to its APIs.
	Chains map[string]Chain
	// Signer is used when a request doesn't specify one.
	Signer Signer
	// Remote is used when neither the request nor the wallet specify a
	// signer.
	Remote *RemoteSigner
	Log    logging.Logger
}

func (w *Wallet) log() logging.Logger {
	if w.Log != nil {
		return w.Log
	}
	return logging.NoLog{}
}

func (w *Wallet) chain(alias string) (Chain, error) {
	c, ok := w.Chains[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChain, alias)
	}
	return c, nil
}

// resolveSigner returns the first of [requested], the wallet's signer and the
// wallet's remote signer that is set.
func (w *Wallet) resolveSigner(requested Signer) (Signer, error) {
	for _, s := range []Signer{requested, w.Signer} {
		switch s := s.(type) {
		case *LocalSigner:
			if s != nil {
				return s, nil
			}
		case *RemoteSigner:
			if s != nil {
				return s, nil
			}
		}
	}
	if w.Remote != nil {
		return w.Remote, nil
	}
	return nil, ErrNoSigner
}
