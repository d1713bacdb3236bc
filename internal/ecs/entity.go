package ecs

import (
	"fmt"
	"math/bits"
	"reflect"
	"strings"
	"sync"
)

// Entity uniquely identifies a live entity in a World. Ids of removed
// entities are handed out again.
type Entity uint32

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity Entity = 0

// ComponentID is the process-wide number of a component type, assigned the
// first time the type is used with any World.
type ComponentID uint8

// MaxComponentTypes bounds the number of distinct component types. Bit 0 of
// every entity mask records liveness, the remaining bits one type each.
const MaxComponentTypes = 63

// Mask is the set of component types an entity carries.
type Mask uint64

const aliveBit Mask = 1

func (id ComponentID) bit() Mask { return Mask(2) << id }

// Contains reports whether m is a superset of sub.
func (m Mask) Contains(sub Mask) bool { return m&sub == sub }

// MaskOf ORs the bits of the given component types.
func MaskOf(ids ...ComponentID) Mask {
	var m Mask
	for _, id := range ids {
		m |= id.bit()
	}
	return m
}

// ids lists the component types in m, lowest first.
func (m Mask) ids() []ComponentID {
	m &^= aliveBit
	out := make([]ComponentID, 0, bits.OnesCount64(uint64(m)))
	for m != 0 {
		b := bits.TrailingZeros64(uint64(m))
		out = append(out, ComponentID(b-1))
		m &^= 1 << b
	}
	return out
}

// The registry is shared by every World in the process; SSH sessions build
// worlds concurrently.
var registry = struct {
	sync.Mutex
	ids   map[reflect.Type]ComponentID
	types []reflect.Type
}{ids: make(map[reflect.Type]ComponentID)}

// ID returns the component ID of T, registering T on first use.
// It panics once more than MaxComponentTypes types have been registered.
func ID[T any]() ComponentID {
	typ := reflect.TypeFor[T]()

	registry.Lock()
	defer registry.Unlock()
	if id, ok := registry.ids[typ]; ok {
		return id
	}
	if len(registry.types) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: cannot register %s: maximum number of component types (%d) reached", typ, MaxComponentTypes))
	}
	id := ComponentID(len(registry.types))
	registry.ids[typ] = id
	registry.types = append(registry.types, typ)
	return id
}

// typeName is used in error messages.
func typeName(id ComponentID) string {
	registry.Lock()
	defer registry.Unlock()
	if int(id) < len(registry.types) {
		return registry.types[id].String()
	}
	return fmt.Sprintf("component#%d", id)
}

// String lists the component types in m, for diagnostics.
func (m Mask) String() string {
	names := make([]string, 0, 4)
	for _, id := range m.ids() {
		names = append(names, typeName(id))
	}
	return "{" + strings.Join(names, ", ") + "}"
}
