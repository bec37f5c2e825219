// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avax

import (
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

var (
	errNilUTXO   = errors.New("nil utxo is not valid")
	errEmptyUTXO = errors.New("empty utxo is not valid")

	_ codec.Packable = (*UTXO)(nil)
)

// UTXO is an unspent output as returned by a chain's getUTXOs method.
type UTXO struct {
	UTXOID `json:"utxoID"`
	Asset  `json:"asset"`

	Out codec.Packable `json:"output"`
}

func (utxo *UTXO) PackFields(c codec.Codec, p *wrappers.Packer) {
	utxo.UTXOID.pack(p)
	utxo.Asset.pack(p)
	c.PackInterface(p, utxo.Out)
}

func (utxo *UTXO) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	utxo.UTXOID.unpack(p)
	utxo.Asset.unpack(p)
	utxo.Out = c.UnpackInterface(p)
}

func (utxo *UTXO) Verify() error {
	switch {
	case utxo == nil:
		return errNilUTXO
	case utxo.Out == nil:
		return errEmptyUTXO
	default:
		return utxo.Asset.Verify()
	}
}

// ParseUTXOs decodes [utxosBytes] with the chain codec [manager].
func ParseUTXOs(manager *codec.Manager, utxosBytes [][]byte) ([]*UTXO, error) {
	utxos := make([]*UTXO, len(utxosBytes))
	for i, utxoBytes := range utxosBytes {
		utxo := &UTXO{}
		if _, err := manager.Unmarshal(utxoBytes, utxo); err != nil {
			return nil, err
		}
		utxos[i] = utxo
	}
	return utxos, nil
}
