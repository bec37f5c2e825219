// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package platformvm

import (
	"time"

	"github.com/ava-labs/avalanche-sdk-go/api"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/status"

	avajson "github.com/ava-labs/avalanche-sdk-go/utils/json"
)

// GetBalanceRequest is the request for getBalance
type GetBalanceRequest struct {
	Addresses []string `json:"addresses"`
}

// GetBalanceResponse is the response from getBalance
type GetBalanceResponse struct {
	Balance            avajson.Uint64  `json:"balance"`
	Unlocked           avajson.Uint64  `json:"unlocked"`
	LockedStakeable    avajson.Uint64  `json:"lockedStakeable"`
	LockedNotStakeable avajson.Uint64  `json:"lockedNotStakeable"`
	UTXOIDs            []*avax.UTXOID `json:"utxoIDs"`
}

type GetTxStatusResponse struct {
	Status status.Status `json:"status"`
	// Reason this tx was dropped.
	// Only non-empty if Status is dropped
	Reason string `json:"reason,omitempty"`
}

// GetFeeConfigReply is the dynamic fee configuration of the P-Chain.
type GetFeeConfigReply struct {
	Weights                  [gas.NumDimensions]avajson.Uint64 `json:"weights"`
	MaxCapacity              avajson.Uint64                    `json:"maxCapacity"`
	MaxPerSecond             avajson.Uint64                    `json:"maxPerSecond"`
	TargetPerSecond          avajson.Uint64                    `json:"targetPerSecond"`
	MinPrice                 avajson.Uint64                    `json:"minPrice"`
	ExcessConversionConstant avajson.Uint64                    `json:"excessConversionConstant"`
}

func (r *GetFeeConfigReply) config() gas.Config {
	var weights gas.Dimensions
	for i, w := range r.Weights {
		weights[i] = uint64(w)
	}
	return gas.Config{
		Weights:                  weights,
		MaxCapacity:              gas.Gas(r.MaxCapacity),
		MaxPerSecond:             gas.Gas(r.MaxPerSecond),
		TargetPerSecond:          gas.Gas(r.TargetPerSecond),
		MinPrice:                 gas.Price(r.MinPrice),
		ExcessConversionConstant: gas.Gas(r.ExcessConversionConstant),
	}
}

// GetFeeStateReply is the current dynamic fee state of the P-Chain.
type GetFeeStateReply struct {
	Capacity avajson.Uint64 `json:"capacity"`
	Excess   avajson.Uint64 `json:"excess"`
	Price    avajson.Uint64 `json:"price"`
	Time     time.Time      `json:"timestamp"`
}

// FeeState is the parsed form of GetFeeStateReply.
type FeeState struct {
	gas.State
	Price gas.Price
	Time  time.Time
}

// IssueTxReply is the result of issueTx
type IssueTxReply = api.JSONTxID
