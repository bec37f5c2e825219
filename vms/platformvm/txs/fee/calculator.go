// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fee

import (
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs"
)

// Calculator computes the dynamic fee of P-Chain transactions.
type Calculator struct {
	weights gas.Dimensions
	price   gas.Price
}

func NewDynamicCalculator(weights gas.Dimensions, price gas.Price) *Calculator {
	return &Calculator{
		weights: weights,
		price:   price,
	}
}

// CalculateFee returns the fee required to accept [tx].
func (c *Calculator) CalculateFee(tx txs.UnsignedTx) (uint64, error) {
	complexity, err := TxComplexity(tx)
	if err != nil {
		return 0, err
	}
	return c.ComplexityFee(complexity)
}

// ComplexityFee returns the fee charged for [complexity].
func (c *Calculator) ComplexityFee(complexity gas.Dimensions) (uint64, error) {
	gasUsed, err := complexity.ToGas(c.weights)
	if err != nil {
		return 0, err
	}
	return gasUsed.Cost(c.price)
}
