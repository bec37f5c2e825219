// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfer

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanche-sdk-go/ids"
)

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidChain         = errors.New("invalid chain")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrAddressChainMismatch = errors.New("address chain mismatch")
	ErrNetworkMismatch      = errors.New("address network mismatch")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInsufficientFee      = errors.New("insufficient fee")
	ErrNoAccount            = errors.New("no account to send from")

	_ error = (*ExportCompletedError)(nil)
)

// invalidTokenError keeps the message callers display verbatim while still
// matching ErrInvalidToken.
type invalidTokenError struct {
	token string
}

func (e *invalidTokenError) Error() string {
	return fmt.Sprintf("Invalid token: %s, only AVAX is supported.", e.token)
}

func (*invalidTokenError) Is(target error) bool {
	return target == ErrInvalidToken
}

// ExportCompletedError is returned when a cross-chain transfer fails after
// its export was issued. The exported funds are held in shared memory and can
// be recovered by importing them on DestinationChain.
type ExportCompletedError struct {
	ExportTxID       ids.ID
	SourceChain      string
	DestinationChain string
	// Stage is the last state the transfer reached.
	Stage State
	Err   error
}

func (e *ExportCompletedError) Error() string {
	return fmt.Sprintf(
		"export %s from %s-Chain completed but the transfer to %s-Chain failed after %s: %s",
		e.ExportTxID,
		e.SourceChain,
		e.DestinationChain,
		e.Stage,
		e.Err,
	)
}

func (e *ExportCompletedError) Unwrap() error {
	return e.Err
}
