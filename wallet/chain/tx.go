// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain bridges the P-Chain, X-Chain and C-Chain atomic transaction
// formats behind a single signable transaction type.
package chain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/evm/atomic"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/stakeable"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"

	xtxs "github.com/ava-labs/avalanche-sdk-go/vms/avm/txs"
	ptxs "github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs"
)

var (
	ErrUnknownChainAlias = errors.New("unknown chain alias")

	errUnsupportedInput = errors.New("unsupported input type")
	errUninitializedTx  = errors.New("tx is nil")
)

// Input is one credential-bearing input of a transaction.
type Input struct {
	// UTXOID is the UTXO consumed by the input. Zero for EVM inputs.
	UTXOID avax.UTXOID
	// SigIndices are the positions, within the UTXO's owner addresses, of
	// the keys whose signatures the matching credential must carry.
	SigIndices []uint32

	// EVMAddress is the account debited by a C-Chain export input.
	EVMAddress common.Address
	IsEVM      bool
}

// signed is implemented by each chain's signed transaction.
type signed interface {
	id() ids.ID
	bytes() []byte
	unsignedBytes() []byte
	credentials() []*secp256k1fx.Credential
	setCredentials(creds []*secp256k1fx.Credential) error
}

// Tx is a transaction of the P-Chain, X-Chain or C-Chain atomic layer
// together with the data required to sign it.
type Tx struct {
	ChainAlias string
	// SourceChain is the chain funds are imported from. Empty for every
	// other tx kind.
	SourceChain ids.ID
	// Inputs are in credential order.
	Inputs []Input
	// Owners of the consumed UTXOs keyed by UTXO InputID. Only populated
	// for txs produced by a builder.
	Owners map[ids.ID]*secp256k1fx.OutputOwners

	tx signed
}

// ID returns the hash of the signed bytes.
func (t *Tx) ID() ids.ID {
	return t.tx.id()
}

// Bytes returns the signed bytes.
func (t *Tx) Bytes() []byte {
	return t.tx.bytes()
}

// UnsignedBytes returns the bytes every credential signs over.
func (t *Tx) UnsignedBytes() []byte {
	return t.tx.unsignedBytes()
}

// Credentials may be nil if the tx was parsed from unsigned bytes.
func (t *Tx) Credentials() []*secp256k1fx.Credential {
	return t.tx.credentials()
}

// SetCredentials replaces the credentials and re-serializes the tx.
func (t *Tx) SetCredentials(creds []*secp256k1fx.Credential) error {
	return t.tx.setCredentials(creds)
}

// Hex returns the signed bytes as checksummed hex.
func (t *Tx) Hex() (string, error) {
	return formatting.Encode(formatting.Hex, t.Bytes())
}

// Codec returns the codec of the chain named by [alias].
func Codec(alias string) (*codec.Manager, error) {
	switch alias {
	case constants.PChainAlias:
		return ptxs.Codec, nil
	case constants.XChainAlias:
		return xtxs.Codec, nil
	case constants.CChainAlias:
		return atomic.Codec, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChainAlias, alias)
	}
}

// NewPTx wraps a P-Chain tx, serializing it if needed.
func NewPTx(tx *ptxs.Tx, owners map[ids.ID]*secp256k1fx.OutputOwners) (*Tx, error) {
	if tx == nil || tx.Unsigned == nil {
		return nil, errUninitializedTx
	}
	if len(tx.Bytes()) == 0 {
		if err := tx.Initialize(ptxs.Codec); err != nil {
			return nil, err
		}
	}
	inputs, err := transferableInputs(tx.Unsigned.Spends())
	if err != nil {
		return nil, err
	}
	t := &Tx{
		ChainAlias: constants.PChainAlias,
		Inputs:     inputs,
		Owners:     owners,
		tx:         &pTx{tx: tx},
	}
	if utx, ok := tx.Unsigned.(*ptxs.ImportTx); ok {
		t.SourceChain = utx.SourceChain
	}
	return t, nil
}

// NewXTx wraps an X-Chain tx, serializing it if needed.
func NewXTx(tx *xtxs.Tx, owners map[ids.ID]*secp256k1fx.OutputOwners) (*Tx, error) {
	if tx == nil || tx.Unsigned == nil {
		return nil, errUninitializedTx
	}
	if len(tx.Bytes()) == 0 {
		if err := tx.Initialize(xtxs.Codec); err != nil {
			return nil, err
		}
	}
	inputs, err := transferableInputs(tx.Unsigned.Spends())
	if err != nil {
		return nil, err
	}
	t := &Tx{
		ChainAlias: constants.XChainAlias,
		Inputs:     inputs,
		Owners:     owners,
		tx:         &xTx{tx: tx},
	}
	if utx, ok := tx.Unsigned.(*xtxs.ImportTx); ok {
		t.SourceChain = utx.SourceChain
	}
	return t, nil
}

// NewCTx wraps a C-Chain atomic tx, serializing it if needed.
func NewCTx(tx *atomic.Tx, owners map[ids.ID]*secp256k1fx.OutputOwners) (*Tx, error) {
	if tx == nil || tx.UnsignedAtomicTx == nil {
		return nil, errUninitializedTx
	}
	if len(tx.SignedBytes()) == 0 {
		if err := tx.Initialize(atomic.Codec); err != nil {
			return nil, err
		}
	}
	t := &Tx{
		ChainAlias: constants.CChainAlias,
		Owners:     owners,
		tx:         &cTx{tx: tx},
	}
	switch utx := tx.UnsignedAtomicTx.(type) {
	case *atomic.UnsignedImportTx:
		inputs, err := transferableInputs(utx.ImportedInputs)
		if err != nil {
			return nil, err
		}
		t.SourceChain = utx.SourceChain
		t.Inputs = inputs
	case *atomic.UnsignedExportTx:
		t.Inputs = make([]Input, len(utx.Ins))
		for i, in := range utx.Ins {
			t.Inputs[i] = Input{
				SigIndices: []uint32{0},
				EVMAddress: in.Address,
				IsEVM:      true,
			}
		}
	default:
		return nil, fmt.Errorf("%w: %T", errUnsupportedInput, utx)
	}
	return t, nil
}

// Parse returns the tx encoded by [txBytes] on the chain named by [alias].
// Unsigned bytes are accepted too, in which case the tx has no credentials.
func Parse(alias string, txBytes []byte) (*Tx, error) {
	var (
		tx  *Tx
		err error
	)
	switch alias {
	case constants.PChainAlias:
		var stx *ptxs.Tx
		if stx, err = ptxs.Parse(ptxs.Codec, txBytes); err == nil {
			tx, err = NewPTx(stx, nil)
		}
	case constants.XChainAlias:
		var stx *xtxs.Tx
		if stx, err = xtxs.Parse(xtxs.Codec, txBytes); err == nil {
			tx, err = NewXTx(stx, nil)
		}
	case constants.CChainAlias:
		var stx *atomic.Tx
		if stx, err = atomic.ExtractAtomicTx(atomic.Codec, txBytes); err == nil {
			tx, err = NewCTx(stx, nil)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChainAlias, alias)
	}
	if err == nil {
		return tx, nil
	}

	tx, unsignedErr := ParseUnsigned(alias, txBytes)
	if unsignedErr != nil {
		return nil, err
	}
	return tx, nil
}

// ParseUnsigned returns the unsigned tx encoded by [unsignedBytes] on the
// chain named by [alias]. The returned tx has no credentials.
func ParseUnsigned(alias string, unsignedBytes []byte) (*Tx, error) {
	switch alias {
	case constants.PChainAlias:
		utx, err := ptxs.ParseUnsigned(ptxs.Codec, unsignedBytes)
		if err != nil {
			return nil, err
		}
		return NewPTx(&ptxs.Tx{Unsigned: utx}, nil)
	case constants.XChainAlias:
		utx, err := xtxs.ParseUnsigned(xtxs.Codec, unsignedBytes)
		if err != nil {
			return nil, err
		}
		return NewXTx(&xtxs.Tx{Unsigned: utx}, nil)
	case constants.CChainAlias:
		utx, err := atomic.ExtractUnsignedAtomicTx(atomic.Codec, unsignedBytes)
		if err != nil {
			return nil, err
		}
		return NewCTx(&atomic.Tx{UnsignedAtomicTx: utx}, nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChainAlias, alias)
	}
}

func transferableInputs(ins []*avax.TransferableInput) ([]Input, error) {
	inputs := make([]Input, len(ins))
	for i, in := range ins {
		sigIndices, err := inputSigIndices(in.In)
		if err != nil {
			return nil, err
		}
		inputs[i] = Input{
			UTXOID:     in.UTXOID,
			SigIndices: sigIndices,
		}
	}
	return inputs, nil
}

func inputSigIndices(in avax.TransferableIn) ([]uint32, error) {
	if lockIn, ok := in.(*stakeable.LockIn); ok {
		in = lockIn.TransferableIn
	}
	transferInput, ok := in.(*secp256k1fx.TransferInput)
	if !ok {
		return nil, fmt.Errorf("%w: %T", errUnsupportedInput, in)
	}
	return transferInput.SigIndices, nil
}
