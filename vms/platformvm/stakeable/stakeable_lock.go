// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stakeable

import (
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
)

var (
	ErrInvalidLocktime      = errors.New("invalid locktime")
	ErrNestedStakeableLocks = errors.New("shouldn't nest stakeable locks")

	_ avax.TransferableOut = (*LockOut)(nil)
	_ avax.TransferableIn  = (*LockIn)(nil)
)

// LockOut is an output that can be staked but not transferred until
// Locktime.
type LockOut struct {
	Locktime             uint64 `json:"locktime"`
	avax.TransferableOut `json:"output"`
}

func (s *LockOut) PackFields(c codec.Codec, p *wrappers.Packer) {
	p.PackLong(s.Locktime)
	c.PackInterface(p, s.TransferableOut)
}

func (s *LockOut) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	s.Locktime = p.UnpackLong()
	out, ok := c.UnpackInterface(p).(avax.TransferableOut)
	if !ok && !p.Errored() {
		p.Add(codec.ErrDoesNotImplementInterface)
	}
	s.TransferableOut = out
}

func (s *LockOut) Verify() error {
	if s.Locktime == 0 {
		return ErrInvalidLocktime
	}
	if _, nested := s.TransferableOut.(*LockOut); nested {
		return ErrNestedStakeableLocks
	}
	return s.TransferableOut.Verify()
}

// LockIn consumes a LockOut.
type LockIn struct {
	Locktime            uint64 `json:"locktime"`
	avax.TransferableIn `json:"input"`
}

func (s *LockIn) PackFields(c codec.Codec, p *wrappers.Packer) {
	p.PackLong(s.Locktime)
	c.PackInterface(p, s.TransferableIn)
}

func (s *LockIn) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	s.Locktime = p.UnpackLong()
	in, ok := c.UnpackInterface(p).(avax.TransferableIn)
	if !ok && !p.Errored() {
		p.Add(codec.ErrDoesNotImplementInterface)
	}
	s.TransferableIn = in
}

func (s *LockIn) Verify() error {
	if s.Locktime == 0 {
		return ErrInvalidLocktime
	}
	if _, nested := s.TransferableIn.(*LockIn); nested {
		return ErrNestedStakeableLocks
	}
	return s.TransferableIn.Verify()
}
