// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

//go:generate go run github.com/golang/mock/mockgen@v1.6.0 -package=${GOPACKAGE}mock -destination=${GOPACKAGE}mock/requester.go -mock_names=EndpointRequester=EndpointRequester . EndpointRequester
