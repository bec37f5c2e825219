// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1fx

import (
	"errors"
	"slices"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting/address"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

var (
	ErrNilOutput            = errors.New("nil output")
	ErrOutputUnspendable    = errors.New("output is unspendable")
	ErrOutputUnoptimized    = errors.New("output representation should be optimized")
	ErrAddrsNotSortedUnique = errors.New("addresses not sorted and unique")

	_ codec.Packable = (*OutputOwners)(nil)
)

// OutputOwners is a threshold of addresses that may spend an output after
// Locktime.
type OutputOwners struct {
	Locktime  uint64        `json:"locktime"`
	Threshold uint32        `json:"threshold"`
	Addrs     []ids.ShortID `json:"addresses"`
}

func (out *OutputOwners) PackFields(_ codec.Codec, p *wrappers.Packer) {
	p.PackLong(out.Locktime)
	p.PackInt(out.Threshold)
	packShortIDs(p, out.Addrs)
}

func (out *OutputOwners) UnpackFields(_ codec.Codec, p *wrappers.Packer) {
	out.Locktime = p.UnpackLong()
	out.Threshold = p.UnpackInt()
	out.Addrs = unpackShortIDs(p)
}

// AddressesSet returns addresses as a set
func (out *OutputOwners) AddressesSet() set.Set[ids.ShortID] {
	return set.Of(out.Addrs...)
}

// Equals returns true if the provided owners create the same condition
func (out *OutputOwners) Equals(other *OutputOwners) bool {
	if out == other {
		return true
	}
	if out == nil || other == nil || out.Locktime != other.Locktime || out.Threshold != other.Threshold {
		return false
	}
	return slices.Equal(out.Addrs, other.Addrs)
}

func (out *OutputOwners) Verify() error {
	switch {
	case out == nil:
		return ErrNilOutput
	case out.Threshold > uint32(len(out.Addrs)):
		return ErrOutputUnspendable
	case out.Threshold == 0 && len(out.Addrs) > 0:
		return ErrOutputUnoptimized
	case !isSortedAndUnique(out.Addrs):
		return ErrAddrsNotSortedUnique
	default:
		return nil
	}
}

// Sort orders the addresses so that the owners verify.
func (out *OutputOwners) Sort() {
	slices.SortFunc(out.Addrs, ids.ShortID.Compare)
	out.Addrs = slices.Compact(out.Addrs)
}

// FormattedAddresses renders the owners as "<alias>-<hrp>1..." strings.
func (out *OutputOwners) FormattedAddresses(chainAlias, hrp string) ([]string, error) {
	return address.FormatAddresses(chainAlias, hrp, out.Addrs)
}

func isSortedAndUnique(addrs []ids.ShortID) bool {
	for i := 1; i < len(addrs); i++ {
		if addrs[i-1].Compare(addrs[i]) >= 0 {
			return false
		}
	}
	return true
}
