// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package constants

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetHRP(t *testing.T) {
	tests := []struct {
		networkID uint32
		hrp       string
	}{
		{networkID: MainnetID, hrp: "avax"},
		{networkID: FujiID, hrp: "fuji"},
		{networkID: LocalID, hrp: "custom"},
		{networkID: 1337, hrp: FallbackHRP},
	}
	for _, tt := range tests {
		t.Run(NetworkName(tt.networkID), func(t *testing.T) {
			require.Equal(t, tt.hrp, GetHRP(tt.networkID))
		})
	}
}

func TestNetworkID(t *testing.T) {
	tests := []struct {
		name        string
		id          uint32
		expectedErr error
	}{
		{name: "MAINNET", id: MainnetID},
		{name: "testnet", id: FujiID},
		{name: "network-1337", id: 1337},
		{name: "4321", id: 4321},
		{name: "network-abc", expectedErr: ErrParseNetworkName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			id, err := NetworkID(tt.name)
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.id, id)
		})
	}
}
