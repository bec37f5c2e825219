// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1fx

import (
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/math"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

const CostPerSignature uint64 = 1000

var (
	ErrNilInput                    = errors.New("nil input")
	ErrInputIndicesNotSortedUnique = errors.New("address indices not sorted and unique")

	_ codec.Packable = (*Input)(nil)
)

type Input struct {
	// This input consumes an output, which has an owner list.
	// This input will be spent with a list of signatures.
	// SignatureList[i] is the signature of OwnerList[SigIndices[i]]
	SigIndices []uint32 `json:"signatureIndices"`
}

func (in *Input) PackFields(_ codec.Codec, p *wrappers.Packer) {
	packUint32s(p, in.SigIndices)
}

func (in *Input) UnpackFields(_ codec.Codec, p *wrappers.Packer) {
	in.SigIndices = unpackUint32s(p)
}

// InputSigIndices returns the owner positions this input is signed by.
func (in *Input) InputSigIndices() []uint32 {
	return in.SigIndices
}

// Cost is the C-Chain gas charged for verifying this input's signatures.
func (in *Input) Cost() (uint64, error) {
	numSigs := uint64(len(in.SigIndices))
	return math.Mul(numSigs, CostPerSignature)
}

// Verify this input is syntactically valid
func (in *Input) Verify() error {
	if in == nil {
		return ErrNilInput
	}
	for i := 1; i < len(in.SigIndices); i++ {
		if in.SigIndices[i-1] >= in.SigIndices[i] {
			return ErrInputIndicesNotSortedUnique
		}
	}
	return nil
}
