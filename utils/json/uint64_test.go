// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64(t *testing.T) {
	tests := []struct {
		in          string
		out         Uint64
		expectError bool
	}{
		{in: `"18446744073709551615"`, out: 18446744073709551615},
		{in: `12345`, out: 12345},
		{in: `null`, out: 0},
		{in: `"-1"`, expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require := require.New(t)

			var u Uint64
			err := json.Unmarshal([]byte(tt.in), &u)
			if tt.expectError {
				require.Error(err)
				return
			}
			require.NoError(err)
			require.Equal(tt.out, u)
		})
	}
}

func TestUint32Marshal(t *testing.T) {
	b, err := json.Marshal(Uint32(1024))
	require.NoError(t, err)
	require.Equal(t, `"1024"`, string(b))
}
