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

	ErrNilTx = errors.New("nil tx")

	errNotUnsignedTx = errors.New("decoded value is not an unsigned tx")
	errNotCredential = errors.New("decoded value is not a secp256k1fx credential")
)

// Tx is the core operation that can be performed. The tx uses the UTXO model.
// Specifically, a txs inputs will consume previous txs outputs. A tx will be
// valid if the inputs have the authority to consume the outputs they are
// attempting to consume and the inputs consume sufficient state to produce the
// outputs.
type Tx struct {
	Unsigned UnsignedTx                `json:"unsignedTx"`
	Creds    []*secp256k1fx.Credential `json:"credentials"`

	id    ids.ID
	bytes []byte
}

func (t *Tx) PackFields(c codec.Codec, p *wrappers.Packer) {
	c.PackInterface(p, t.Unsigned)
	p.PackInt(uint32(len(t.Creds)))
	for _, cred := range t.Creds {
		c.PackInterface(p, cred)
	}
}

func (t *Tx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	utx, ok := c.UnpackInterface(p).(UnsignedTx)
	if !ok {
		if !p.Errored() {
			p.Add(errNotUnsignedTx)
		}
		return
	}
	t.Unsigned = utx

	numCreds := p.UnpackLen(2 * wrappers.IntLen)
	if p.Errored() {
		return
	}
	t.Creds = make([]*secp256k1fx.Credential, numCreds)
	for i := range t.Creds {
		cred, ok := c.UnpackInterface(p).(*secp256k1fx.Credential)
		if !ok {
			if !p.Errored() {
				p.Add(errNotCredential)
			}
			return
		}
		t.Creds[i] = cred
	}
}

// Parse returns the signed tx encoded by [signedBytes].
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

// ParseUnsigned returns the unsigned tx encoded by [unsignedBytes].
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

// Initialize serializes the tx and caches its ID and bytes.
func (t *Tx) Initialize(c *codec.Manager) error {
	unsignedBytes, err := c.MarshalInterface(CodecVersion, t.Unsigned)
	if err != nil {
		return fmt.Errorf("problem creating transaction: %w", err)
	}

	signedBytes, err := c.Marshal(CodecVersion, t)
	if err != nil {
		return fmt.Errorf("problem creating transaction: %w", err)
	}

	t.SetBytes(unsignedBytes, signedBytes)
	return nil
}

func (t *Tx) SetBytes(unsignedBytes, signedBytes []byte) {
	t.id = hashing.ComputeHash256Array(signedBytes)
	t.bytes = signedBytes
	t.Unsigned.SetBytes(unsignedBytes)
}

// ID returns the unique ID of this tx
func (t *Tx) ID() ids.ID {
	return t.id
}

// Bytes returns the binary representation of this tx
func (t *Tx) Bytes() []byte {
	return t.bytes
}

func (t *Tx) UnsignedBytes() []byte {
	return t.Unsigned.Bytes()
}

// UTXOs returns the UTXOs transaction is producing.
func (t *Tx) UTXOs() []*avax.UTXO {
	outs := t.Unsigned.Outputs()
	utxos := make([]*avax.UTXO, len(outs))
	for i, out := range outs {
		utxos[i] = &avax.UTXO{
			UTXOID: avax.UTXOID{
				TxID:        t.id,
				OutputIndex: uint32(i),
			},
			Asset: avax.Asset{ID: out.AssetID()},
			Out:   out.Out,
		}
	}
	return utxos
}
