// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package atomic

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/api"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc/rpcmock"
)

func TestGetAtomicTxStatus(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	requester := rpcmock.NewEndpointRequester(ctrl)
	c := &Client{Requester: requester}

	txID := ids.GenerateTestID()
	requester.EXPECT().SendRequest(gomock.Any(), "avax.getAtomicTxStatus", &api.JSONTxID{TxID: txID}, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ interface{}, reply interface{}, _ ...rpc.Option) error {
			return json.Unmarshal([]byte(`{"status":"Accepted","blockHeight":"12"}`), reply)
		},
	)

	status, err := c.GetAtomicTxStatus(context.Background(), txID)
	require.NoError(err)
	require.Equal(Accepted, status)
}

func TestStatusJSON(t *testing.T) {
	require := require.New(t)

	for _, status := range []Status{Unknown, Dropped, Processing, Accepted} {
		b, err := json.Marshal(status)
		require.NoError(err)

		var parsed Status
		require.NoError(json.Unmarshal(b, &parsed))
		require.Equal(status, parsed)
	}

	var parsed Status
	err := json.Unmarshal([]byte(`"Committed"`), &parsed)
	require.ErrorIs(err, errUnknownStatus)
}
