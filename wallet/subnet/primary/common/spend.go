// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/stakeable"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

var ErrUnknownOwnerType = errors.New("unknown owner type")

// MatchOwners attempts to match a list of addresses up to the provided
// threshold.
func MatchOwners(
	owners *secp256k1fx.OutputOwners,
	addrs set.Set[ids.ShortID],
	minIssuanceTime uint64,
) ([]uint32, bool) {
	if owners.Locktime > minIssuanceTime {
		return nil, false
	}

	sigs := make([]uint32, 0, owners.Threshold)
	for i := uint32(0); i < uint32(len(owners.Addrs)) && uint32(len(sigs)) < owners.Threshold; i++ {
		if addrs.Contains(owners.Addrs[i]) {
			sigs = append(sigs, i)
		}
	}
	return sigs, uint32(len(sigs)) == owners.Threshold
}

// SpentOwners returns the owners of the UTXOs consumed by [ins], keyed by
// UTXO ID. The UTXOs must be present in [utxos] under [sourceChainID].
func SpentOwners(
	ctx context.Context,
	utxos ChainUTXOs,
	sourceChainID ids.ID,
	ins []*avax.TransferableInput,
) (map[ids.ID]*secp256k1fx.OutputOwners, error) {
	owners := make(map[ids.ID]*secp256k1fx.OutputOwners, len(ins))
	for _, in := range ins {
		utxoID := in.InputID()
		utxo, err := utxos.GetUTXO(ctx, sourceChainID, utxoID)
		if err != nil {
			return nil, fmt.Errorf("failed to lookup UTXO %s: %w", utxoID, err)
		}

		owner, err := OutputOwners(utxo.Out)
		if err != nil {
			return nil, err
		}
		owners[utxoID] = owner
	}
	return owners, nil
}

// OutputOwners returns the owners of [out], looking through stakeable locks.
func OutputOwners(out codec.Packable) (*secp256k1fx.OutputOwners, error) {
	if lockedOut, ok := out.(*stakeable.LockOut); ok {
		out = lockedOut.TransferableOut
	}
	transferOut, ok := out.(*secp256k1fx.TransferOutput)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownOwnerType, out)
	}
	return &transferOut.OutputOwners, nil
}
