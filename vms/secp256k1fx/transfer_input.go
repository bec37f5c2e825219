// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1fx

import (
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

var (
	ErrNoValueInput = errors.New("input has no value")

	_ codec.Packable = (*TransferInput)(nil)
)

type TransferInput struct {
	Amt uint64 `json:"amount"`

	Input `json:"input"`
}

func (in *TransferInput) PackFields(c codec.Codec, p *wrappers.Packer) {
	p.PackLong(in.Amt)
	in.Input.PackFields(c, p)
}

func (in *TransferInput) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	in.Amt = p.UnpackLong()
	in.Input.UnpackFields(c, p)
}

// Amount returns the quantity of the asset this input produces
func (in *TransferInput) Amount() uint64 {
	return in.Amt
}

// Verify this input is syntactically valid
func (in *TransferInput) Verify() error {
	switch {
	case in == nil:
		return ErrNilInput
	case in.Amt == 0:
		return ErrNoValueInput
	default:
		return in.Input.Verify()
	}
}
