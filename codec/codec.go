// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"errors"

	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

var (
	ErrUnknownTypeID             = errors.New("unknown type ID")
	ErrUnregisteredType          = errors.New("type is not registered")
	ErrDuplicateType             = errors.New("duplicate type registration")
	ErrDoesNotImplementInterface = errors.New("does not implement interface")
	ErrMaxSliceLenExceeded       = errors.New("max slice length exceeded")
	ErrExtraSpace                = errors.New("trailing buffer space")
	ErrMarshalNil                = errors.New("can't marshal nil value")
)

// Packable is a value that writes and reads its own fields, in declaration
// order, using the avalanchego linear wire format. Nested interface values
// are written through the provided Codec so that they carry their type ID.
type Packable interface {
	PackFields(c Codec, p *wrappers.Packer)
	UnpackFields(c Codec, p *wrappers.Packer)
}

// Codec packs interface values as a uint32 type ID followed by their fields.
type Codec interface {
	PackInterface(p *wrappers.Packer, v Packable)
	UnpackInterface(p *wrappers.Packer) Packable
}
