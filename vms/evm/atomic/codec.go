// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package atomic

import (
	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

const CodecVersion = 0

// Type IDs of the atomic tx codec. The secp256k1fx types follow at 5.
const (
	ImportTxID uint32 = 0
	ExportTxID uint32 = 1
)

var (
	// Codec does serialization and deserialization
	Codec    *codec.Manager
	Registry *codec.Registry
)

func init() {
	Registry = codec.NewRegistry()
	Codec = codec.NewDefaultManager()

	errs := wrappers.Errs{}
	errs.Add(
		Registry.RegisterType(ImportTxID, func() codec.Packable { return &UnsignedImportTx{} }),
		Registry.RegisterType(ExportTxID, func() codec.Packable { return &UnsignedExportTx{} }),
		secp256k1fx.RegisterTypes(Registry),
		Codec.RegisterCodec(CodecVersion, Registry),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}
