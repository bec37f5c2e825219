// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

const (
	// VersionSize is the number of bytes of the codec version prefix.
	VersionSize = wrappers.ShortLen

	// DefaultMaxSize is the max size, in bytes, of something being marshalled
	// by Marshal()
	DefaultMaxSize = 256 * 1024

	// initial capacity of byte slice that values are marshaled into.
	initialSliceCap = 128
)

var (
	errUnmarshalNil      = errors.New("can't unmarshal nil")
	errCantUnpackVersion = errors.New("couldn't unpack codec version")
	ErrUnknownVersion    = errors.New("unknown codec version")
	errDuplicatedVersion = errors.New("duplicated codec version")
)

// Manager prefixes everything it marshals with a codec version and dispatches
// to the Codec registered for that version.
type Manager struct {
	lock    sync.RWMutex
	maxSize int
	codecs  map[uint16]Codec
}

// NewManager returns a new codec manager.
func NewManager(maxSize int) *Manager {
	return &Manager{
		maxSize: maxSize,
		codecs:  map[uint16]Codec{},
	}
}

// NewDefaultManager returns a new codec manager.
func NewDefaultManager() *Manager {
	return NewManager(DefaultMaxSize)
}

// RegisterCodec is used to register a new codec version that can be used to
// (un)marshal with.
func (m *Manager) RegisterCodec(version uint16, codec Codec) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, exists := m.codecs[version]; exists {
		return errDuplicatedVersion
	}
	m.codecs[version] = codec
	return nil
}

func (m *Manager) codec(version uint16) (Codec, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	c, exists := m.codecs[version]
	if !exists {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}
	return c, nil
}

// Marshal writes the version followed by the fields of [value].
func (m *Manager) Marshal(version uint16, value Packable) ([]byte, error) {
	return m.marshal(version, func(c Codec, p *wrappers.Packer) {
		value.PackFields(c, p)
	})
}

// MarshalInterface writes the version, the type ID of [value] and then its
// fields. This is the layout of a transaction's unsigned bytes.
func (m *Manager) MarshalInterface(version uint16, value Packable) ([]byte, error) {
	return m.marshal(version, func(c Codec, p *wrappers.Packer) {
		c.PackInterface(p, value)
	})
}

func (m *Manager) marshal(version uint16, pack func(Codec, *wrappers.Packer)) ([]byte, error) {
	c, err := m.codec(version)
	if err != nil {
		return nil, err
	}

	p := wrappers.Packer{
		MaxSize: m.maxSize,
		Bytes:   make([]byte, 0, initialSliceCap),
	}
	p.PackShort(version)
	pack(c, &p)
	return p.Bytes, p.Err
}

// Unmarshal reads [bytes] into [dest]. Trailing bytes are an error.
func (m *Manager) Unmarshal(bytes []byte, dest Packable) (uint16, error) {
	if dest == nil {
		return 0, errUnmarshalNil
	}
	return m.unmarshal(bytes, func(c Codec, p *wrappers.Packer) {
		dest.UnpackFields(c, p)
	})
}

// UnmarshalInterface reads a type ID prefixed value from [bytes].
func (m *Manager) UnmarshalInterface(bytes []byte) (Packable, uint16, error) {
	var v Packable
	version, err := m.unmarshal(bytes, func(c Codec, p *wrappers.Packer) {
		v = c.UnpackInterface(p)
	})
	return v, version, err
}

func (m *Manager) unmarshal(bytes []byte, unpack func(Codec, *wrappers.Packer)) (uint16, error) {
	if len(bytes) > m.maxSize {
		return 0, fmt.Errorf("byte array exceeds maximum length, %d", m.maxSize)
	}

	p := wrappers.Packer{
		Bytes: bytes,
	}
	version := p.UnpackShort()
	if p.Errored() {
		return 0, errCantUnpackVersion
	}

	c, err := m.codec(version)
	if err != nil {
		return version, err
	}
	unpack(c, &p)
	if p.Errored() {
		return version, p.Err
	}
	if p.Offset != len(bytes) {
		return version, fmt.Errorf("%w: read %d provided %d", ErrExtraSpace, p.Offset, len(bytes))
	}
	return version, nil
}
