// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/stakeable"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

const CodecVersion = 0

// Type IDs of the P-Chain codec. Gaps belong to staking, subnet and block
// types that this package doesn't decode.
const (
	ImportTxID         uint32 = 17
	ExportTxID         uint32 = 18
	StakeableLockInID  uint32 = 21
	StakeableLockOutID uint32 = 22
	BaseTxID           uint32 = 34
)

var (
	// Codec marshals and unmarshals P-Chain transactions and UTXOs.
	Codec *codec.Manager

	// Registry is the type registry backing Codec.
	Registry *codec.Registry
)

func init() {
	Registry = codec.NewRegistry()
	Codec = codec.NewDefaultManager()

	errs := wrappers.Errs{}
	errs.Add(
		secp256k1fx.RegisterTypes(Registry),
		Registry.RegisterType(ImportTxID, func() codec.Packable { return &ImportTx{} }),
		Registry.RegisterType(ExportTxID, func() codec.Packable { return &ExportTx{} }),
		Registry.RegisterType(StakeableLockInID, func() codec.Packable { return &stakeable.LockIn{} }),
		Registry.RegisterType(StakeableLockOutID, func() codec.Packable { return &stakeable.LockOut{} }),
		Registry.RegisterType(BaseTxID, func() codec.Packable { return &BaseTx{} }),
		Codec.RegisterCodec(CodecVersion, Registry),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}
