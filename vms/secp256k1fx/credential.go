// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1fx

import (
	"encoding/json"
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

var (
	ErrNilCredential = errors.New("nil credential")

	_ codec.Packable = (*Credential)(nil)
)

// Credential holds one signature per entry of the matching input's
// SigIndices. Unsigned slots are zero.
type Credential struct {
	Sigs [][secp256k1.SignatureLen]byte `json:"signatures"`
}

// NewEmptyCredential returns a credential with [numSigs] zeroed slots.
func NewEmptyCredential(numSigs int) *Credential {
	return &Credential{
		Sigs: make([][secp256k1.SignatureLen]byte, numSigs),
	}
}

func (cr *Credential) PackFields(_ codec.Codec, p *wrappers.Packer) {
	packSigs(p, cr.Sigs)
}

func (cr *Credential) UnpackFields(_ codec.Codec, p *wrappers.Packer) {
	cr.Sigs = unpackSigs(p)
}

// MarshalJSON marshals [cr] to JSON
// The string representation of each signature is created using the hex
// formatter
func (cr *Credential) MarshalJSON() ([]byte, error) {
	signatures := make([]string, len(cr.Sigs))
	for i, sig := range cr.Sigs {
		sigStr, err := formatting.Encode(formatting.HexNC, sig[:])
		if err != nil {
			return nil, err
		}
		signatures[i] = sigStr
	}
	jsonFieldMap := map[string]interface{}{
		"signatures": signatures,
	}
	return json.Marshal(jsonFieldMap)
}

func (cr *Credential) Verify() error {
	if cr == nil {
		return ErrNilCredential
	}
	return nil
}
