// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package constants

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanche-sdk-go/ids"
)

// Const variables to be exported
const (
	MainnetID uint32 = 1
	FujiID    uint32 = 5
	LocalID   uint32 = 12345

	TestnetID uint32 = FujiID

	MainnetName = "mainnet"
	FujiName    = "fuji"
	TestnetName = "testnet"
	LocalName   = "local"

	MainnetHRP = "avax"
	FujiHRP    = "fuji"

	// Local networks share the permissive fallback prefix.
	LocalHRP    = FallbackHRP
	FallbackHRP = "custom"
)

var (
	// PlatformChainID is the blockchain ID of the P-Chain on every network.
	PlatformChainID = ids.Empty

	NetworkIDToNetworkName = map[uint32]string{
		MainnetID: MainnetName,
		FujiID:    FujiName,
		LocalID:   LocalName,
	}
	NetworkNameToNetworkID = map[string]uint32{
		MainnetName: MainnetID,
		FujiName:    FujiID,
		TestnetName: TestnetID,
		LocalName:   LocalID,
	}

	NetworkIDToHRP = map[uint32]string{
		MainnetID: MainnetHRP,
		FujiID:    FujiHRP,
		LocalID:   LocalHRP,
	}

	ValidNetworkPrefix = "network-"

	ErrParseNetworkName = errors.New("failed to parse network name")
)

// GetHRP returns the Human-Readable-Part of bech32 addresses for a networkID.
// Unknown networks fall back to FallbackHRP.
func GetHRP(networkID uint32) string {
	if hrp, ok := NetworkIDToHRP[networkID]; ok {
		return hrp
	}
	return FallbackHRP
}

// NetworkName returns a human readable name for the network with
// ID [networkID]
func NetworkName(networkID uint32) string {
	if name, exists := NetworkIDToNetworkName[networkID]; exists {
		return name
	}
	return fmt.Sprintf("network-%d", networkID)
}

// NetworkID returns the ID of the network with name [networkName]
func NetworkID(networkName string) (uint32, error) {
	networkName = strings.ToLower(networkName)
	if id, exists := NetworkNameToNetworkID[networkName]; exists {
		return id, nil
	}

	idStr := networkName
	if strings.HasPrefix(networkName, ValidNetworkPrefix) {
		idStr = networkName[len(ValidNetworkPrefix):]
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParseNetworkName, networkName)
	}
	return uint32(id), nil
}
