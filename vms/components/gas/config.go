// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gas

// Config is the dynamic fee configuration a chain reports.
type Config struct {
	Weights                  Dimensions `json:"weights"`
	MaxCapacity              Gas        `json:"maxCapacity"`
	MaxPerSecond             Gas        `json:"maxPerSecond"`
	TargetPerSecond          Gas        `json:"targetPerSecond"`
	MinPrice                 Price      `json:"minPrice"`
	ExcessConversionConstant Gas        `json:"excessConversionConstant"`
}

// State is the fee state of a chain at a point in time.
type State struct {
	Capacity Gas `json:"capacity"`
	Excess   Gas `json:"excess"`
}

// Price returns the current gas price implied by [s] under [c].
func (c *Config) Price(s State) Price {
	return CalculatePrice(c.MinPrice, s.Excess, c.ExcessConversionConstant)
}
