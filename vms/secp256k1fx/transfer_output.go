// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1fx

import (
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

var (
	ErrNoValueOutput = errors.New("output has no value")

	_ codec.Packable = (*TransferOutput)(nil)
)

type TransferOutput struct {
	Amt uint64 `json:"amount"`

	OutputOwners `json:"outputOwners"`
}

func (out *TransferOutput) PackFields(c codec.Codec, p *wrappers.Packer) {
	p.PackLong(out.Amt)
	out.OutputOwners.PackFields(c, p)
}

func (out *TransferOutput) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	out.Amt = p.UnpackLong()
	out.OutputOwners.UnpackFields(c, p)
}

// Amount returns the quantity of the asset this output consumes
func (out *TransferOutput) Amount() uint64 {
	return out.Amt
}

func (out *TransferOutput) Verify() error {
	switch {
	case out == nil:
		return ErrNilOutput
	case out.Amt == 0:
		return ErrNoValueOutput
	default:
		return out.OutputOwners.Verify()
	}
}

func (out *TransferOutput) Owners() *OutputOwners {
	return &out.OutputOwners
}
