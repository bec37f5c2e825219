// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package set

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	require := require.New(t)

	s := Of(1, 2)
	require.True(s.Contains(1))
	require.Equal(2, s.Len())

	s.Add(2, 3)
	require.Equal(3, s.Len())
	require.ElementsMatch([]int{1, 2, 3}, s.List())

	s.Remove(1, 4)
	require.False(s.Contains(1))
	require.Equal(2, s.Len())
}
