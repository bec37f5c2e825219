// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package common

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
)

var (
	_ UTXOs      = (*utxos)(nil)
	_ ChainUTXOs = (*chainUTXOs)(nil)

	ErrNotFound = errors.New("not found")
)

// UTXOs holds the UTXOs fetched for a single operation, keyed by the chain
// they were exported from and the chain that can consume them.
type UTXOs interface {
	AddUTXO(ctx context.Context, sourceChainID, destinationChainID ids.ID, utxo *avax.UTXO) error
	RemoveUTXO(ctx context.Context, sourceChainID, destinationChainID, utxoID ids.ID) error

	UTXOs(ctx context.Context, sourceChainID, destinationChainID ids.ID) ([]*avax.UTXO, error)
	GetUTXO(ctx context.Context, sourceChainID, destinationChainID, utxoID ids.ID) (*avax.UTXO, error)
}

// ChainUTXOs is a view of UTXOs that are consumable by a single chain.
type ChainUTXOs interface {
	AddUTXO(ctx context.Context, destinationChainID ids.ID, utxo *avax.UTXO) error
	RemoveUTXO(ctx context.Context, sourceChainID, utxoID ids.ID) error

	UTXOs(ctx context.Context, sourceChainID ids.ID) ([]*avax.UTXO, error)
	GetUTXO(ctx context.Context, sourceChainID, utxoID ids.ID) (*avax.UTXO, error)
}

type chainPair struct {
	source      ids.ID
	destination ids.ID
}

type utxos struct {
	lock  sync.RWMutex
	utxos map[chainPair]map[ids.ID]*avax.UTXO
}

func NewUTXOs() UTXOs {
	return &utxos{
		utxos: make(map[chainPair]map[ids.ID]*avax.UTXO),
	}
}

func (u *utxos) AddUTXO(_ context.Context, sourceChainID, destinationChainID ids.ID, utxo *avax.UTXO) error {
	u.lock.Lock()
	defer u.lock.Unlock()

	pair := chainPair{source: sourceChainID, destination: destinationChainID}
	chainUTXOs, ok := u.utxos[pair]
	if !ok {
		chainUTXOs = make(map[ids.ID]*avax.UTXO)
		u.utxos[pair] = chainUTXOs
	}
	chainUTXOs[utxo.InputID()] = utxo
	return nil
}

func (u *utxos) RemoveUTXO(_ context.Context, sourceChainID, destinationChainID, utxoID ids.ID) error {
	u.lock.Lock()
	defer u.lock.Unlock()

	pair := chainPair{source: sourceChainID, destination: destinationChainID}
	delete(u.utxos[pair], utxoID)
	return nil
}

func (u *utxos) UTXOs(_ context.Context, sourceChainID, destinationChainID ids.ID) ([]*avax.UTXO, error) {
	u.lock.RLock()
	defer u.lock.RUnlock()

	pair := chainPair{source: sourceChainID, destination: destinationChainID}
	return maps.Values(u.utxos[pair]), nil
}

func (u *utxos) GetUTXO(_ context.Context, sourceChainID, destinationChainID, utxoID ids.ID) (*avax.UTXO, error) {
	u.lock.RLock()
	defer u.lock.RUnlock()

	pair := chainPair{source: sourceChainID, destination: destinationChainID}
	utxo, ok := u.utxos[pair][utxoID]
	if !ok {
		return nil, ErrNotFound
	}
	return utxo, nil
}

type chainUTXOs struct {
	utxos   UTXOs
	chainID ids.ID
}

func NewChainUTXOs(chainID ids.ID, utxos UTXOs) ChainUTXOs {
	return &chainUTXOs{
		utxos:   utxos,
		chainID: chainID,
	}
}

func (c *chainUTXOs) AddUTXO(ctx context.Context, destinationChainID ids.ID, utxo *avax.UTXO) error {
	return c.utxos.AddUTXO(ctx, c.chainID, destinationChainID, utxo)
}

func (c *chainUTXOs) RemoveUTXO(ctx context.Context, sourceChainID, utxoID ids.ID) error {
	return c.utxos.RemoveUTXO(ctx, sourceChainID, c.chainID, utxoID)
}

func (c *chainUTXOs) UTXOs(ctx context.Context, sourceChainID ids.ID) ([]*avax.UTXO, error) {
	return c.utxos.UTXOs(ctx, sourceChainID, c.chainID)
}

func (c *chainUTXOs) GetUTXO(ctx context.Context, sourceChainID, utxoID ids.ID) (*avax.UTXO, error) {
	return c.utxos.GetUTXO(ctx, sourceChainID, c.chainID, utxoID)
}
