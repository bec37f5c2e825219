// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gas

import (
	"math"

	"github.com/holiman/uint256"

	safemath "github.com/ava-labs/avalanche-sdk-go/utils/math"
)

var maxUint64 = new(uint256.Int).SetUint64(math.MaxUint64)

type (
	Gas   uint64
	Price uint64
)

// Cost converts the gas to nAVAX based on the price.
//
// If overflow would occur, an error is returned.
func (g Gas) Cost(price Price) (uint64, error) {
	return safemath.Mul(uint64(g), uint64(price))
}

// CalculatePrice approximates
//
//	minPrice * e^(excess / excessConversionConstant)
//
// using the EIP-4844 fake exponential. Results that would exceed MaxUint64
// saturate, which bounds every intermediate value by MaxUint193.
func CalculatePrice(
	minPrice Price,
	excess Gas,
	excessConversionConstant Gas,
) Price {
	var (
		numerator   uint256.Int
		denominator uint256.Int

		i              uint256.Int
		output         uint256.Int
		numeratorAccum uint256.Int

		maxOutput uint256.Int
	)
	numerator.SetUint64(uint64(excess))
	denominator.SetUint64(uint64(excessConversionConstant))
	if denominator.IsZero() {
		return minPrice
	}

	i.SetOne()
	numeratorAccum.SetUint64(uint64(minPrice))
	numeratorAccum.Mul(&numeratorAccum, &denominator)

	maxOutput.Mul(&denominator, maxUint64)
	for numeratorAccum.Sign() > 0 {
		output.Add(&output, &numeratorAccum)
		if output.Cmp(&maxOutput) >= 0 {
			return math.MaxUint64
		}
		numeratorAccum.Mul(&numeratorAccum, &numerator)
		numeratorAccum.Div(&numeratorAccum, &denominator)
		numeratorAccum.Div(&numeratorAccum, &i)

		i.AddUint64(&i, 1)
	}
	return Price(output.Div(&output, &denominator).Uint64())
}
