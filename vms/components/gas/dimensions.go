// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gas

import (
	"fmt"

	safemath "github.com/ava-labs/avalanche-sdk-go/utils/math"
)

const (
	Bandwidth Dimension = iota
	DBRead
	DBWrite // includes deletes
	Compute

	NumDimensions = iota
)

var dimensionNames = [NumDimensions]string{
	Bandwidth: "bandwidth",
	DBRead:    "dbRead",
	DBWrite:   "dbWrite",
	Compute:   "compute",
}

type (
	Dimension  uint
	Dimensions [NumDimensions]uint64
)

func (d Dimension) String() string {
	if d >= NumDimensions {
		return fmt.Sprintf("dimension(%d)", uint(d))
	}
	return dimensionNames[d]
}

// Add returns d + sum(os...).
//
// If overflow occurs, an error is returned.
func (d Dimensions) Add(os ...*Dimensions) (Dimensions, error) {
	var err error
	for _, o := range os {
		for i := range o {
			d[i], err = safemath.Add(d[i], o[i])
			if err != nil {
				return d, fmt.Errorf("%s: %w", Dimension(i), err)
			}
		}
	}
	return d, nil
}

// Sub returns d - sum(os...).
//
// If underflow occurs, an error is returned.
func (d Dimensions) Sub(os ...*Dimensions) (Dimensions, error) {
	var err error
	for _, o := range os {
		for i := range o {
			d[i], err = safemath.Sub(d[i], o[i])
			if err != nil {
				return d, fmt.Errorf("%s: %w", Dimension(i), err)
			}
		}
	}
	return d, nil
}

// ToGas returns the dot product of [d] and [weights].
//
// If overflow occurs, an error is returned.
func (d Dimensions) ToGas(weights Dimensions) (Gas, error) {
	var res uint64
	for i := range d {
		v, err := safemath.Mul(d[i], weights[i])
		if err != nil {
			return 0, err
		}
		res, err = safemath.Add(res, v)
		if err != nil {
			return 0, err
		}
	}
	return Gas(res), nil
}
