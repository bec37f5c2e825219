// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package formatting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodingMarshalJSON(t *testing.T) {
	require := require.New(t)

	b, err := json.Marshal(Hex)
	require.NoError(err)
	require.Equal(`"hex"`, string(b))

	var enc Encoding
	require.NoError(json.Unmarshal([]byte(`"HexNC"`), &enc))
	require.Equal(HexNC, enc)
}

func TestEncodeDecodeHex(t *testing.T) {
	require := require.New(t)

	bytes := []byte{0x00, 0x01, 0x02, 0x03}
	str, err := Encode(Hex, bytes)
	require.NoError(err)
	require.Equal("0x00010203"+"f0c990d8", str)

	decoded, err := Decode(Hex, str)
	require.NoError(err)
	require.Equal(bytes, decoded)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name        string
		encoding    Encoding
		str         string
		expectedErr error
	}{
		{
			name:        "missing prefix",
			encoding:    Hex,
			str:         "00010203f0c990d8",
			expectedErr: ErrMissingHexPrefix,
		},
		{
			name:        "missing checksum",
			encoding:    Hex,
			str:         "0x0001",
			expectedErr: ErrMissingChecksum,
		},
		{
			name:        "bad checksum",
			encoding:    Hex,
			str:         "0x00010203f0c990d9",
			expectedErr: ErrBadChecksum,
		},
		{
			name:        "invalid encoding",
			encoding:    Encoding(9),
			str:         "0x00",
			expectedErr: errInvalidEncoding,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoding, tt.str)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestDecodeHexNC(t *testing.T) {
	require := require.New(t)

	decoded, err := Decode(HexNC, "0xdeadbeef")
	require.NoError(err)
	require.Equal([]byte{0xde, 0xad, 0xbe, 0xef}, decoded)
}
