// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackerRoundTrip(t *testing.T) {
	require := require.New(t)

	p := Packer{MaxSize: math.MaxInt32}
	p.PackByte(0x01)
	p.PackShort(0x0203)
	p.PackInt(0x04050607)
	p.PackLong(0x08090a0b0c0d0e0f)
	p.PackBool(true)
	p.PackBytes([]byte{0xaa, 0xbb})
	p.PackFixedBytes([]byte{0xcc})
	require.NoError(p.Err)
	require.Equal(
		[]byte{
			0x01,
			0x02, 0x03,
			0x04, 0x05, 0x06, 0x07,
			0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
			0x01,
			0x00, 0x00, 0x00, 0x02, 0xaa, 0xbb,
			0xcc,
		},
		p.Bytes,
	)

	u := Packer{Bytes: p.Bytes}
	require.Equal(byte(0x01), u.UnpackByte())
	require.Equal(uint16(0x0203), u.UnpackShort())
	require.Equal(uint32(0x04050607), u.UnpackInt())
	require.Equal(uint64(0x08090a0b0c0d0e0f), u.UnpackLong())
	require.True(u.UnpackBool())
	require.Equal([]byte{0xaa, 0xbb}, u.UnpackLimitedBytes(math.MaxUint32))
	require.Equal([]byte{0xcc}, u.UnpackFixedBytes(1))
	require.NoError(u.Err)
	require.Equal(len(p.Bytes), u.Offset)
}

func TestPackerErrors(t *testing.T) {
	tests := []struct {
		name        string
		unpack      func(p *Packer)
		bytes       []byte
		expectedErr error
	}{
		{
			name:        "short read",
			bytes:       []byte{0x00, 0x01},
			unpack:      func(p *Packer) { p.UnpackInt() },
			expectedErr: ErrInsufficientLength,
		},
		{
			name:        "bad bool",
			bytes:       []byte{0x02},
			unpack:      func(p *Packer) { p.UnpackBool() },
			expectedErr: errBadBool,
		},
		{
			name:        "oversized bytes",
			bytes:       []byte{0x00, 0x00, 0x00, 0x05, 0x01},
			unpack:      func(p *Packer) { p.UnpackLimitedBytes(4) },
			expectedErr: errOversized,
		},
		{
			name:        "length larger than remaining",
			bytes:       []byte{0xff, 0xff, 0xff, 0xff},
			unpack:      func(p *Packer) { p.UnpackLen(1) },
			expectedErr: ErrInsufficientLength,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Packer{Bytes: tt.bytes}
			tt.unpack(&p)
			require.ErrorIs(t, p.Err, tt.expectedErr)
		})
	}
}

func TestPackerMaxSize(t *testing.T) {
	require := require.New(t)

	p := Packer{MaxSize: 3}
	p.PackInt(1)
	require.ErrorIs(p.Err, ErrInsufficientLength)

	// later writes are no-ops
	p.PackByte(7)
	p.PackBytes([]byte{1, 2})
	require.ErrorIs(p.Err, ErrInsufficientLength)
	require.Empty(p.Bytes)
	require.Zero(p.Offset)
}

func TestPackerErroredKeepsPackedBytes(t *testing.T) {
	require := require.New(t)

	p := Packer{MaxSize: 2}
	p.PackByte(1)
	p.PackInt(2)
	require.ErrorIs(p.Err, ErrInsufficientLength)

	p.PackByte(3)
	require.Equal([]byte{1}, p.Bytes)
	require.Equal(1, p.Offset)
}
