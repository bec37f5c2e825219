// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primary

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-sdk-go/api"
	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"
)

const (
	// MaxUTXOsToFetch is the page size the nodes serve UTXOs with.
	MaxUTXOsToFetch = 1024

	// MaxUTXOs bounds the number of UTXOs accumulated by a single fetch.
	MaxUTXOs = 5000
)

var ErrUTXOCapExceeded = errors.New("utxo cap exceeded")

// UTXOClient is implemented by the P-Chain, X-Chain and C-Chain atomic
// clients.
type UTXOClient interface {
	GetAtomicUTXOs(
		ctx context.Context,
		addrs []string,
		sourceChain string,
		limit uint32,
		startAddress string,
		startUTXOID string,
		options ...rpc.Option,
	) ([][]byte, api.Index, error)
}

// FetchUTXOs pages through every UTXO referencing [addrs] that was exported
// from [sourceChain]. An empty [sourceChain] fetches the chain's own UTXOs.
//
// Pagination stops at the first page shorter than MaxUTXOsToFetch. Once
// MaxUTXOs have been accumulated the remaining pages are skipped, the result
// is truncated to MaxUTXOs and a warning is logged, or ErrUTXOCapExceeded is
// returned if common.WithStrictUTXOCap was provided.
func FetchUTXOs(
	ctx context.Context,
	client UTXOClient,
	c *codec.Manager,
	addrs []string,
	sourceChain string,
	options ...common.Option,
) ([]*avax.UTXO, error) {
	ops := common.NewOptions(options)

	var (
		utxos      []*avax.UTXO
		startIndex api.Index
	)
	for {
		utxosBytes, endIndex, err := client.GetAtomicUTXOs(
			ctx,
			addrs,
			sourceChain,
			MaxUTXOsToFetch,
			startIndex.Address,
			startIndex.UTXO,
		)
		if err != nil {
			return nil, err
		}

		page, err := avax.ParseUTXOs(c, utxosBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse UTXO: %w", err)
		}
		utxos = append(utxos, page...)

		if len(utxosBytes) < MaxUTXOsToFetch {
			return utxos, nil
		}
		if len(utxos) >= MaxUTXOs {
			if ops.StrictUTXOCap() {
				return nil, fmt.Errorf("%w: fetched %d UTXOs with more remaining",
					ErrUTXOCapExceeded,
					len(utxos),
				)
			}
			ops.Log().Warn("stopped fetching UTXOs at cap",
				zap.Int("numFetched", len(utxos)),
				zap.Int("cap", MaxUTXOs),
				zap.String("sourceChain", sourceChain),
			)
			return utxos[:MaxUTXOs], nil
		}

		startIndex = endIndex
	}
}

// AddAllUTXOs fetches all the UTXOs referenced by [addrs] that were exported
// from [sourceChainID] to [destinationChainID] and adds them to [utxos].
func AddAllUTXOs(
	ctx context.Context,
	utxos common.UTXOs,
	client UTXOClient,
	c *codec.Manager,
	sourceChainID ids.ID,
	destinationChainID ids.ID,
	addrs []string,
	options ...common.Option,
) error {
	sourceChain := ""
	if sourceChainID != destinationChainID {
		sourceChain = sourceChainID.String()
	}

	fetched, err := FetchUTXOs(ctx, client, c, addrs, sourceChain, options...)
	if err != nil {
		return err
	}
	for _, utxo := range fetched {
		if err := utxos.AddUTXO(ctx, sourceChainID, destinationChainID, utxo); err != nil {
			return err
		}
	}
	return nil
}
