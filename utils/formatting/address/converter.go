// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/avalanche-sdk-go/ids"
)

var (
	ErrChainMismatch     = errors.New("address chain alias mismatch")
	ErrInvalidEVMAddress = errors.New("invalid EVM address")
)

// ParseToID parses an XP address into its 20 byte identifier, ignoring the
// chain alias and HRP.
func ParseToID(addrStr string) (ids.ShortID, error) {
	_, _, addrBytes, err := Parse(addrStr)
	if err != nil {
		return ids.ShortID{}, err
	}
	return ids.ToShortID(addrBytes)
}

// ParseToIDs is ParseToID for every element of [addrsStr].
func ParseToIDs(addrsStr []string) ([]ids.ShortID, error) {
	addrs := make([]ids.ShortID, len(addrsStr))
	for i, addrStr := range addrsStr {
		var err error
		addrs[i], err = ParseToID(addrStr)
		if err != nil {
			return nil, err
		}
	}
	return addrs, nil
}

// ParseChainAddress parses [addrStr] and requires that it is prefixed with
// [chainAlias].
func ParseChainAddress(chainAlias string, addrStr string) (ids.ShortID, error) {
	alias, _, addrBytes, err := Parse(addrStr)
	if err != nil {
		return ids.ShortID{}, err
	}
	if alias != chainAlias {
		return ids.ShortID{}, fmt.Errorf("%w: expected %s address but got %q", ErrChainMismatch, chainAlias, addrStr)
	}
	return ids.ToShortID(addrBytes)
}

// FormatAddresses produces the "<alias>-<hrp>1..." form of every address.
func FormatAddresses(chainIDAlias string, hrp string, addrs []ids.ShortID) ([]string, error) {
	addrsStr := make([]string, len(addrs))
	for i, addr := range addrs {
		var err error
		addrsStr[i], err = Format(chainIDAlias, hrp, addr[:])
		if err != nil {
			return nil, fmt.Errorf("could not format address %s, chain %s, hrp %s: %w", addr, chainIDAlias, hrp, err)
		}
	}
	return addrsStr, nil
}

// ConvertAddresses re-encodes addresses of arbitrary chains and HRPs
// (e.g. X-local1....) for [destChain] and [toHRP] (e.g. P-custom1...).
func ConvertAddresses(destChain string, toHRP string, addresses []string) ([]string, error) {
	convertedAddrs := make([]string, len(addresses))
	for i, addr := range addresses {
		_, _, addrBytes, err := Parse(addr)
		if err != nil {
			return nil, err
		}
		convertedAddrs[i], err = Format(destChain, toHRP, addrBytes)
		if err != nil {
			return nil, err
		}
	}
	return convertedAddrs, nil
}

// IsEVMAddress reports whether [addrStr] is a 0x prefixed 20 byte hex string.
func IsEVMAddress(addrStr string) bool {
	return strings.HasPrefix(addrStr, "0x") && common.IsHexAddress(addrStr)
}

// ParseEVMAddress parses a 0x prefixed C-Chain EVM address.
func ParseEVMAddress(addrStr string) (common.Address, error) {
	if !IsEVMAddress(addrStr) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidEVMAddress, addrStr)
	}
	return common.HexToAddress(addrStr), nil
}
