// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Denominations of value
const (
	NanoAvax  uint64 = 1
	MicroAvax uint64 = 1000 * NanoAvax
	MilliAvax uint64 = 1000 * MicroAvax
	Avax      uint64 = 1000 * MilliAvax
	KiloAvax  uint64 = 1000 * Avax
	MegaAvax  uint64 = 1000 * KiloAvax

	// WeiPerNanoAvax is the C-Chain conversion rate between 18 decimal wei
	// and 9 decimal nAVAX.
	WeiPerNanoAvax uint64 = 1_000_000_000

	avaxDecimals = 9
	weiDecimals  = 18
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrTooPrecise     = errors.New("amount has more decimals than supported")
	ErrAmountOverflow = errors.New("amount overflows uint64")

	weiPerNanoAvax = new(big.Int).SetUint64(WeiPerNanoAvax)
)

// WeiToNanoAvax truncates a wei amount to nAVAX. The remainder is returned so
// that callers can reject amounts that are not representable on the X and
// P-Chains.
func WeiToNanoAvax(wei *big.Int) (uint64, *big.Int, error) {
	if wei.Sign() < 0 {
		return 0, nil, ErrNegativeAmount
	}
	nAVAX, rem := new(big.Int).QuoRem(wei, weiPerNanoAvax, new(big.Int))
	if !nAVAX.IsUint64() {
		return 0, nil, fmt.Errorf("%w: %s wei", ErrAmountOverflow, wei)
	}
	return nAVAX.Uint64(), rem, nil
}

// NanoAvaxToWei scales an nAVAX amount to wei.
func NanoAvaxToWei(nAVAX uint64) *big.Int {
	wei := new(big.Int).SetUint64(nAVAX)
	return wei.Mul(wei, weiPerNanoAvax)
}

// ParseAvax parses a decimal AVAX string such as "1.25" into nAVAX.
func ParseAvax(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	scaled := d.Shift(avaxDecimals)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrTooPrecise, s)
	}
	n := scaled.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrAmountOverflow, s)
	}
	return n.Uint64(), nil
}

// ParseAvaxToWei parses a decimal AVAX string such as "0.5" into wei.
func ParseAvaxToWei(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, ErrNegativeAmount
	}
	scaled := d.Shift(weiDecimals)
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %s", ErrTooPrecise, s)
	}
	return scaled.BigInt(), nil
}

// FormatAvax renders an nAVAX amount as a decimal AVAX string.
func FormatAvax(nAVAX uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(nAVAX), -avaxDecimals).String()
}

// FormatWei renders a wei amount as a decimal AVAX string.
func FormatWei(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, -weiDecimals).String()
}
