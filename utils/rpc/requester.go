// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"
	"net/url"
)

var _ EndpointRequester = (*avalancheEndpointRequester)(nil)

// EndpointRequester sends JSON-RPC requests to a single endpoint, such as
// http://127.0.0.1:9650/ext/bc/P.
type EndpointRequester interface {
	SendRequest(ctx context.Context, method string, params interface{}, reply interface{}, options ...Option) error
}

type avalancheEndpointRequester struct {
	uri    string
	client *http.Client
}

func NewEndpointRequester(uri string) EndpointRequester {
	return NewEndpointRequesterWithClient(uri, http.DefaultClient)
}

// NewEndpointRequesterWithClient uses [client] for transport, letting callers
// set timeouts.
func NewEndpointRequesterWithClient(uri string, client *http.Client) EndpointRequester {
	return &avalancheEndpointRequester{
		uri:    uri,
		client: client,
	}
}

func (e *avalancheEndpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params interface{},
	reply interface{},
	options ...Option,
) error {
	uri, err := url.Parse(e.uri)
	if err != nil {
		return err
	}
	return SendJSONRequest(
		ctx,
		e.client,
		uri,
		method,
		params,
		reply,
		options...,
	)
}
