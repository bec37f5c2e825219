// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package formatting

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanche-sdk-go/utils/hashing"
)

const (
	hexPrefix   = "0x"
	checksumLen = 4
)

var (
	errInvalidEncoding  = errors.New("invalid encoding")
	ErrMissingHexPrefix = errors.New("missing 0x prefix to hex encoding")
	ErrMissingChecksum  = errors.New("input string is smaller than the checksum size")
	ErrBadChecksum      = errors.New("invalid input checksum")
)

// Encoding defines how bytes are converted to a string and vice versa
type Encoding uint8

const (
	// Hex specifies a hex plus 4 byte checksum encoding format
	Hex Encoding = iota
	// HexNC specifies a hex encoding format with no checksum
	HexNC
)

func (enc Encoding) String() string {
	switch enc {
	case Hex:
		return "hex"
	case HexNC:
		return "hexnc"
	default:
		return errInvalidEncoding.Error()
	}
}

func (enc Encoding) MarshalJSON() ([]byte, error) {
	switch enc {
	case Hex, HexNC:
		return []byte(`"` + enc.String() + `"`), nil
	default:
		return nil, errInvalidEncoding
	}
}

func (enc *Encoding) UnmarshalJSON(b []byte) error {
	switch strings.ToLower(string(b)) {
	case `"hex"`:
		*enc = Hex
	case `"hexnc"`:
		*enc = HexNC
	default:
		return errInvalidEncoding
	}
	return nil
}

// Encode [bytes] to a string using the given encoding format.
func Encode(encoding Encoding, bytes []byte) (string, error) {
	switch encoding {
	case Hex:
		checked := make([]byte, len(bytes)+checksumLen)
		copy(checked, bytes)
		copy(checked[len(bytes):], hashing.Checksum(bytes, checksumLen))
		return hexPrefix + hex.EncodeToString(checked), nil
	case HexNC:
		return hexPrefix + hex.EncodeToString(bytes), nil
	default:
		return "", errInvalidEncoding
	}
}

// Decode [str] to bytes using the given encoding. The checksum of Hex strings
// is verified and stripped.
func Decode(encoding Encoding, str string) ([]byte, error) {
	switch {
	case encoding != Hex && encoding != HexNC:
		return nil, errInvalidEncoding
	case len(str) == 0:
		return nil, nil
	case !strings.HasPrefix(str, hexPrefix):
		return nil, ErrMissingHexPrefix
	}

	decodedBytes, err := hex.DecodeString(str[len(hexPrefix):])
	if err != nil {
		return nil, fmt.Errorf("couldn't decode hex: %w", err)
	}
	if encoding == HexNC {
		return decodedBytes, nil
	}
	if len(decodedBytes) < checksumLen {
		return nil, ErrMissingChecksum
	}
	rawBytes := decodedBytes[:len(decodedBytes)-checksumLen]
	checksum := decodedBytes[len(decodedBytes)-checksumLen:]
	if !bytes.Equal(checksum, hashing.Checksum(rawBytes, checksumLen)) {
		return nil, ErrBadChecksum
	}
	return rawBytes, nil
}
