// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

// CodecVersion is the current default codec version
const CodecVersion = 0

// Type IDs of the X-Chain codec. CreateAssetTx (1) and OperationTx (2) are
// not decoded.
const (
	BaseTxID   uint32 = 0
	ImportTxID uint32 = 3
	ExportTxID uint32 = 4
)

var (
	Codec    *codec.Manager
	Registry *codec.Registry
)

func init() {
	Registry = codec.NewRegistry()
	Codec = codec.NewDefaultManager()

	errs := wrappers.Errs{}
	errs.Add(
		Registry.RegisterType(BaseTxID, func() codec.Packable { return &BaseTx{} }),
		Registry.RegisterType(ImportTxID, func() codec.Packable { return &ImportTx{} }),
		Registry.RegisterType(ExportTxID, func() codec.Packable { return &ExportTx{} }),
		secp256k1fx.RegisterTypes(Registry),
		Codec.RegisterCodec(CodecVersion, Registry),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}
