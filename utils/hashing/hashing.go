// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashing

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/ripemd160" //nolint:gosec
)

const (
	HashLen = sha256.Size
	AddrLen = ripemd160.Size
)

var ErrInvalidHashLen = errors.New("invalid hash length")

type (
	Hash256 = [HashLen]byte
	Hash160 = [AddrLen]byte
)

// ComputeHash256Array returns the sha256 digest of buf.
func ComputeHash256Array(buf []byte) Hash256 {
	return sha256.Sum256(buf)
}

func ComputeHash256(buf []byte) []byte {
	h := sha256.Sum256(buf)
	return h[:]
}

// ComputeHash160 returns the ripemd160 digest of buf.
func ComputeHash160(buf []byte) []byte {
	ripe := ripemd160.New() //nolint:gosec
	_, _ = ripe.Write(buf)
	return ripe.Sum(nil)
}

// Checksum returns the trailing [length] bytes of sha256(bytes).
// Panics if length > 32.
func Checksum(bytes []byte, length int) []byte {
	hash := sha256.Sum256(bytes)
	return hash[HashLen-length:]
}

func ToHash160(bytes []byte) (Hash160, error) {
	hash := Hash160{}
	if bytesLen := len(bytes); bytesLen != AddrLen {
		return hash, fmt.Errorf("%w: expected 20 bytes but got %d", ErrInvalidHashLen, bytesLen)
	}
	copy(hash[:], bytes)
	return hash, nil
}

// PubkeyBytesToAddress is the ripemd160(sha256(key)) address derivation used
// by the X, P and C-Chain atomic layer.
func PubkeyBytesToAddress(key []byte) []byte {
	return ComputeHash160(ComputeHash256(key))
}

func ToHash256(bytes []byte) (Hash256, error) {
	hash := Hash256{}
	if bytesLen := len(bytes); bytesLen != HashLen {
		return hash, fmt.Errorf("%w: expected 32 bytes but got %d", ErrInvalidHashLen, bytesLen)
	}
	copy(hash[:], bytes)
	return hash, nil
}
