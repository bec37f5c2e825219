// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	rpc "github.com/gorilla/rpc/v2/json2"
)

type echoArgs struct {
	Value string `json:"value"`
}

type echoReply struct {
	Value string `json:"value"`
}

func TestSendRequest(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(err)

		var req struct {
			Method string       `json:"method"`
			Params echoArgs     `json:"params"`
			ID     *json.Number `json:"id"`
		}
		require.NoError(json.Unmarshal(body, &req))
		require.Equal("platform.echo", req.Method)
		require.Equal("application/json", r.Header.Get("Content-Type"))
		require.Equal("yes", r.Header.Get("X-Test"))
		require.Equal("1", r.URL.Query().Get("q"))

		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + req.ID.String() + `,"result":{"value":"` + req.Params.Value + `"}}`))
	}))
	defer server.Close()

	requester := NewEndpointRequester(server.URL + "/ext/bc/P")
	var reply echoReply
	require.NoError(requester.SendRequest(
		context.Background(),
		"platform.echo",
		&echoArgs{Value: "hi"},
		&reply,
		WithHeader("X-Test", "yes"),
		WithQueryParam("q", "1"),
	))
	require.Equal("hi", reply.Value)
}

func TestSendRequestServerError(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":0,"error":{"code":-32000,"message":"tx not found"}}`))
	}))
	defer server.Close()

	requester := NewEndpointRequester(server.URL)
	err := requester.SendRequest(context.Background(), "platform.getTx", struct{}{}, &struct{}{})

	var rpcErr *rpc.Error
	require.ErrorAs(err, &rpcErr)
	require.Equal("tx not found", rpcErr.Message)
}

func TestSendRequestBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	requester := NewEndpointRequester(server.URL)
	err := requester.SendRequest(context.Background(), "info.getNetworkID", struct{}{}, &struct{}{})
	require.ErrorContains(t, err, "received status code: 503")
}
