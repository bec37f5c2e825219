// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/hashing"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
)

var (
	_ codec.Packable = (*Tx)(nil)

	ErrNilTx = errors.New("tx is nil")

	errNotUnsignedTx          = errors.New("decoded value is not an unsigned tx")
	errNotCredential          = errors.New("decoded value is not a secp256k1fx credential")
	errSignedTxNotInitialized = errors.New("signed tx was never initialized and is not valid")
)

// Tx is a signed transaction
type Tx struct {
	// The body of this transaction
	Unsigned UnsignedTx `json:"unsignedTx"`

	// The credentials of this transaction
	Creds []*secp256k1fx.Credential `json:"credentials"`

	id    ids.ID
	bytes []byte
}

func (tx *Tx) PackFields(c codec.Codec, p *wrappers.Packer) {
	c.PackInterface(p, tx.Unsigned)
	p.PackInt(uint32(len(tx.Creds)))
	for _, cred := range tx.Creds {
		c.PackInterface(p, cred)
	}
}

func (tx *Tx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	utx, ok := c.UnpackInterface(p).(UnsignedTx)
	if !ok {
		if !p.Errored() {
			p.Add(errNotUnsignedTx)
		}
		return
	}
	tx.Unsigned = utx

	// type ID + number of signatures
	numCreds := p.UnpackLen(2 * wrappers.IntLen)
	if p.Errored() {
		return
	}
	tx.Creds = make([]*secp256k1fx.Credential, numCreds)
	for i := range tx.Creds {
		cred, ok := c.UnpackInterface(p).(*secp256k1fx.Credential)
		if !ok {
			if !p.Errored() {
				p.Add(errNotCredential)
			}
			return
		}
		tx.Creds[i] = cred
	}
}

// Parse signed tx starting from its byte representation.
func Parse(c *codec.Manager, signedBytes []byte) (*Tx, error) {
	tx := &Tx{}
	if _, err := c.Unmarshal(signedBytes, tx); err != nil {
		return nil, fmt.Errorf("couldn't parse tx: %w", err)
	}

	unsignedBytes, err := c.MarshalInterface(CodecVersion, tx.Unsigned)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal UnsignedTx: %w", err)
	}

	tx.SetBytes(unsignedBytes, signedBytes)
	return tx, nil
}

// ParseUnsigned parses the bytes of an unsigned transaction.
func ParseUnsigned(c *codec.Manager, unsignedBytes []byte) (UnsignedTx, error) {
	v, _, err := c.UnmarshalInterface(unsignedBytes)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse unsigned tx: %w", err)
	}
	utx, ok := v.(UnsignedTx)
	if !ok {
		return nil, errNotUnsignedTx
	}
	utx.SetBytes(unsignedBytes)
	return utx, nil
}

// Initialize serializes [tx] and caches its bytes and ID.
func (tx *Tx) Initialize(c *codec.Manager) error {
	unsignedBytes, err := c.MarshalInterface(CodecVersion, tx.Unsigned)
	if err != nil {
		return fmt.Errorf("couldn't marshal UnsignedTx: %w", err)
	}

	signedBytes, err := c.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal Tx: %w", err)
	}

	tx.SetBytes(unsignedBytes, signedBytes)
	return nil
}

func (tx *Tx) SetBytes(unsignedBytes, signedBytes []byte) {
	tx.Unsigned.SetBytes(unsignedBytes)
	tx.bytes = signedBytes
	tx.id = hashing.ComputeHash256Array(signedBytes)
}

// ID returns the ID of this transaction. It is the hash of the signed bytes.
func (tx *Tx) ID() ids.ID {
	return tx.id
}

// Bytes returns the binary representation of this tx
func (tx *Tx) Bytes() []byte {
	return tx.bytes
}

// UnsignedBytes returns the bytes that credentials sign over.
func (tx *Tx) UnsignedBytes() []byte {
	return tx.Unsigned.Bytes()
}

// UTXOs returns the UTXOs transaction is producing.
func (tx *Tx) UTXOs() []*avax.UTXO {
	outs := tx.Unsigned.Outputs()
	utxos := make([]*avax.UTXO, len(outs))
	for i, out := range outs {
		utxos[i] = &avax.UTXO{
			UTXOID: avax.UTXOID{
				TxID:        tx.id,
				OutputIndex: uint32(i),
			},
			Asset: avax.Asset{ID: out.AssetID()},
			Out:   out.Out,
		}
	}
	return utxos
}

func (tx *Tx) SyntacticVerify(networkID uint32, chainID ids.ID) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.id == ids.Empty:
		return errSignedTxNotInitialized
	default:
		return tx.Unsigned.SyntacticVerify(networkID, chainID)
	}
}
