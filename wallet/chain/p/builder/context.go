// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
)

const Alias = "P"

// Context is the P-Chain configuration a transaction is built against.
// GasPrice must be refreshed from the chain's fee state before every build.
type Context struct {
	NetworkID         uint32
	AVAXAssetID       ids.ID
	ComplexityWeights gas.Dimensions
	GasPrice          gas.Price
}
