// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avax

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

var (
	errNilUTXOID                 = errors.New("nil utxo ID is not valid")
	errMalformedUTXOIDString     = errors.New("unexpected number of tokens in string")
	errFailedDecodingUTXOIDTxID  = errors.New("failed decoding UTXOID TxID")
	errFailedDecodingUTXOIDIndex = errors.New("failed decoding UTXOID index")
)

type UTXOID struct {
	TxID        ids.ID `json:"txID"`
	OutputIndex uint32 `json:"outputIndex"`
}

func (utxo *UTXOID) pack(p *wrappers.Packer) {
	p.PackFixedBytes(utxo.TxID[:])
	p.PackInt(utxo.OutputIndex)
}

func (utxo *UTXOID) unpack(p *wrappers.Packer) {
	copy(utxo.TxID[:], p.UnpackFixedBytes(ids.IDLen))
	utxo.OutputIndex = p.UnpackInt()
}

// InputSource returns the source of the UTXO that this input is spending
func (utxo *UTXOID) InputSource() (ids.ID, uint32) {
	return utxo.TxID, utxo.OutputIndex
}

// InputID returns a unique ID of the UTXO that this input is spending
func (utxo *UTXOID) InputID() ids.ID {
	return utxo.TxID.Prefix(uint64(utxo.OutputIndex))
}

func (utxo *UTXOID) String() string {
	return fmt.Sprintf("%s:%d", utxo.TxID, utxo.OutputIndex)
}

// UTXOIDFromString attempts to parse a string into a UTXOID
func UTXOIDFromString(s string) (*UTXOID, error) {
	ss := strings.Split(s, ":")
	if len(ss) != 2 {
		return nil, errMalformedUTXOIDString
	}

	txID, err := ids.FromString(ss[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedDecodingUTXOIDTxID, err)
	}

	idx, err := strconv.ParseUint(ss[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedDecodingUTXOIDIndex, err)
	}

	return &UTXOID{
		TxID:        txID,
		OutputIndex: uint32(idx),
	}, nil
}

func (utxo *UTXOID) Verify() error {
	if utxo == nil {
		return errNilUTXOID
	}
	return nil
}

func (utxo *UTXOID) Compare(other *UTXOID) int {
	if txIDComp := utxo.TxID.Compare(other.TxID); txIDComp != 0 {
		return txIDComp
	}
	return cmp.Compare(utxo.OutputIndex, other.OutputIndex)
}
