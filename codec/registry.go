// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
)

var _ Codec = (*Registry)(nil)

// Registry maps type IDs to concrete types. Each VM assigns its own IDs, so
// every chain keeps a separate Registry.
type Registry struct {
	lock         sync.RWMutex
	typeIDToNew  map[uint32]func() Packable
	typeToTypeID map[reflect.Type]uint32
}

func NewRegistry() *Registry {
	return &Registry{
		typeIDToNew:  make(map[uint32]func() Packable),
		typeToTypeID: make(map[reflect.Type]uint32),
	}
}

// RegisterType associates [typeID] with the concrete type returned by [newFn].
// [newFn] must return a pointer.
func (r *Registry) RegisterType(typeID uint32, newFn func() Packable) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	t := reflect.TypeOf(newFn())
	if _, ok := r.typeIDToNew[typeID]; ok {
		return fmt.Errorf("%w: type ID %d", ErrDuplicateType, typeID)
	}
	if _, ok := r.typeToTypeID[t]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t)
	}
	r.typeIDToNew[typeID] = newFn
	r.typeToTypeID[t] = typeID
	return nil
}

// TypeID returns the registered ID of [v]'s concrete type.
func (r *Registry) TypeID(v Packable) (uint32, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	t := reflect.TypeOf(v)
	typeID, ok := r.typeToTypeID[t]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnregisteredType, t)
	}
	return typeID, nil
}

func (r *Registry) PackInterface(p *wrappers.Packer, v Packable) {
	if p.Errored() {
		return
	}
	if v == nil || reflect.ValueOf(v).IsNil() {
		p.Add(ErrMarshalNil)
		return
	}
	typeID, err := r.TypeID(v)
	if err != nil {
		p.Add(err)
		return
	}
	p.PackInt(typeID)
	v.PackFields(r, p)
}

func (r *Registry) UnpackInterface(p *wrappers.Packer) Packable {
	typeID := p.UnpackInt()
	if p.Errored() {
		return nil
	}

	r.lock.RLock()
	newFn, ok := r.typeIDToNew[typeID]
	r.lock.RUnlock()
	if !ok {
		p.Add(fmt.Errorf("%w: %d", ErrUnknownTypeID, typeID))
		return nil
	}
	v := newFn()
	v.UnpackFields(r, p)
	return v
}
