// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1fx

import (
	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

// Type IDs shared by the X-Chain, the P-Chain and C-Chain atomic
// transactions.
const (
	TransferInputID  uint32 = 5
	MintOutputID     uint32 = 6
	TransferOutputID uint32 = 7
	MintOperationID  uint32 = 8
	CredentialID     uint32 = 9
	InputID          uint32 = 10
	OutputOwnersID   uint32 = 11
)

// MaxAddrs bounds how many addresses or signatures are read for a single
// output or credential.
const MaxAddrs = 1024

// RegisterTypes registers the fx types that can appear behind an interface.
func RegisterTypes(r *codec.Registry) error {
	errs := wrappers.Errs{}
	errs.Add(
		r.RegisterType(TransferInputID, func() codec.Packable { return &TransferInput{} }),
		r.RegisterType(TransferOutputID, func() codec.Packable { return &TransferOutput{} }),
		r.RegisterType(CredentialID, func() codec.Packable { return &Credential{} }),
		r.RegisterType(InputID, func() codec.Packable { return &Input{} }),
		r.RegisterType(OutputOwnersID, func() codec.Packable { return &OutputOwners{} }),
	)
	return errs.Err
}

func packShortIDs(p *wrappers.Packer, addrs []ids.ShortID) {
	p.PackInt(uint32(len(addrs)))
	for _, addr := range addrs {
		p.PackFixedBytes(addr[:])
	}
}

func unpackShortIDs(p *wrappers.Packer) []ids.ShortID {
	n := p.UnpackLen(ids.ShortIDLen)
	if n > MaxAddrs {
		p.Add(codec.ErrMaxSliceLenExceeded)
		return nil
	}
	addrs := make([]ids.ShortID, n)
	for i := range addrs {
		copy(addrs[i][:], p.UnpackFixedBytes(ids.ShortIDLen))
	}
	return addrs
}

func packUint32s(p *wrappers.Packer, vals []uint32) {
	p.PackInt(uint32(len(vals)))
	for _, v := range vals {
		p.PackInt(v)
	}
}

func unpackUint32s(p *wrappers.Packer) []uint32 {
	n := p.UnpackLen(wrappers.IntLen)
	if n > MaxAddrs {
		p.Add(codec.ErrMaxSliceLenExceeded)
		return nil
	}
	vals := make([]uint32, n)
	for i := range vals {
		vals[i] = p.UnpackInt()
	}
	return vals
}

func packSigs(p *wrappers.Packer, sigs [][secp256k1.SignatureLen]byte) {
	p.PackInt(uint32(len(sigs)))
	for _, sig := range sigs {
		p.PackFixedBytes(sig[:])
	}
}

func unpackSigs(p *wrappers.Packer) [][secp256k1.SignatureLen]byte {
	n := p.UnpackLen(secp256k1.SignatureLen)
	if n > MaxAddrs {
		p.Add(codec.ErrMaxSliceLenExceeded)
		return nil
	}
	sigs := make([][secp256k1.SignatureLen]byte, n)
	for i := range sigs {
		copy(sigs[i][:], p.UnpackFixedBytes(secp256k1.SignatureLen))
	}
	return sigs
}
