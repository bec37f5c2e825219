// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
)

// UnsignedTx is an unsigned transaction
type UnsignedTx interface {
	codec.Packable

	// SetBytes caches the serialized form produced by the codec.
	SetBytes(unsignedBytes []byte)
	Bytes() []byte

	InputIDs() set.Set[ids.ID]
	Outputs() []*avax.TransferableOutput

	// Spends returns the consumed inputs in the order of the credentials
	// that authorize them.
	Spends() []*avax.TransferableInput

	// SyntacticVerify verifies that the transaction is well-formed.
	SyntacticVerify(networkID uint32, chainID ids.ID) error

	// Visit calls [visitor] with this transaction's concrete type
	Visit(visitor Visitor) error
}
