// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1fx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

func TestCredentialRoundTrip(t *testing.T) {
	require := require.New(t)

	r := codec.NewRegistry()
	require.NoError(RegisterTypes(r))

	key := secp256k1.TestKeys()[0]
	sig, err := key.Sign([]byte("message"))
	require.NoError(err)

	cred := NewEmptyCredential(2)
	copy(cred.Sigs[1][:], sig)

	p := wrappers.Packer{MaxSize: 1024}
	r.PackInterface(&p, cred)
	require.NoError(p.Err)
	// type id + length + 2 signatures
	require.Len(p.Bytes, 4+4+2*secp256k1.SignatureLen)

	p = wrappers.Packer{Bytes: p.Bytes}
	parsed := r.UnpackInterface(&p)
	require.NoError(p.Err)
	require.Equal(cred, parsed)
}

func TestCredentialMarshalJSON(t *testing.T) {
	require := require.New(t)

	cred := NewEmptyCredential(1)
	b, err := cred.MarshalJSON()
	require.NoError(err)
	require.Contains(string(b), `"signatures":["0x`)
}

func TestInputVerify(t *testing.T) {
	tests := []struct {
		name        string
		in          *Input
		expectedErr error
	}{
		{
			name:        "nil",
			expectedErr: ErrNilInput,
		},
		{
			name:        "unsorted",
			in:          &Input{SigIndices: []uint32{1, 0}},
			expectedErr: ErrInputIndicesNotSortedUnique,
		},
		{
			name:        "duplicate",
			in:          &Input{SigIndices: []uint32{1, 1}},
			expectedErr: ErrInputIndicesNotSortedUnique,
		},
		{
			name: "valid",
			in:   &Input{SigIndices: []uint32{0, 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.in.Verify(), tt.expectedErr)
		})
	}
}

func TestInputCost(t *testing.T) {
	require := require.New(t)

	in := &TransferInput{
		Amt:   1,
		Input: Input{SigIndices: []uint32{0, 1, 2}},
	}
	cost, err := in.Cost()
	require.NoError(err)
	require.Equal(3*CostPerSignature, cost)
	require.Equal([]uint32{0, 1, 2}, in.InputSigIndices())
}
