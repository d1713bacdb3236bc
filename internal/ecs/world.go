package ecs

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	ErrEntityNotFound         = errors.New("entity not found")
	ErrComponentAlreadyExists = errors.New("component already exists")
	ErrComponentNotFound      = errors.New("component not found")
)

// table is the type-erased view of a column, used when removing an entity
// whose component types are only known by ID.
type table interface {
	clear(e Entity)
}

// column stores the components of one type, indexed by entity ID.
type column[T any] struct {
	data []T
}

func (c *column[T]) clear(e Entity) {
	var zero T
	if int(e) < len(c.data) {
		c.data[e] = zero
	}
}

func (c *column[T]) set(e Entity, v T) {
	if n := int(e) + 1; n > len(c.data) {
		c.data = append(c.data, make([]T, n-len(c.data))...)
	}
	c.data[e] = v
}

// World is the central entity registry and component store.
//
// Pointers returned by Get and handed out by the Each helpers stay valid
// until the next structural change (adding or removing entities or
// components).
type World struct {
	masks   []Mask // masks[0] is never live
	free    []Entity
	tables  [MaxComponentTypes]table
	members [MaxComponentTypes][]Entity // live holders of each type, ascending
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{masks: make([]Mask, 1)}
}

// CreateEntity returns an unused entity ID, reusing the most recently
// removed one when available, and marks it alive.
func (w *World) CreateEntity() Entity {
	if n := len(w.free); n > 0 {
		e := w.free[n-1]
		w.free = w.free[:n-1]
		w.masks[e] = aliveBit
		return e
	}
	w.masks = append(w.masks, aliveBit)
	return Entity(len(w.masks) - 1)
}

// HasEntity reports whether e is alive.
func (w *World) HasEntity(e Entity) bool {
	return int(e) < len(w.masks) && w.masks[e]&aliveBit != 0
}

// RemoveEntity detaches all components of e and releases its ID.
func (w *World) RemoveEntity(e Entity) error {
	if !w.HasEntity(e) {
		return fmt.Errorf("remove entity %d: %w", e, ErrEntityNotFound)
	}
	for _, id := range w.masks[e].ids() {
		w.detach(e, id)
	}
	w.masks[e] = 0
	w.free = append(w.free, e)
	return nil
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.masks) - 1 - len(w.free)
}

// Mask returns the component set of e; zero if e is not alive.
func (w *World) Mask(e Entity) Mask {
	if !w.HasEntity(e) {
		return 0
	}
	return w.masks[e]
}

// Has reports whether e is alive and carries every listed component type.
func (w *World) Has(e Entity, ids ...ComponentID) bool {
	return w.HasEntity(e) && w.masks[e].Contains(MaskOf(ids...))
}

// Count returns how many live entities carry the component type.
func (w *World) Count(id ComponentID) int {
	return len(w.members[id])
}

// Query yields, in increasing ID order, every live entity that carries all
// listed component types; with no types it yields every live entity.
//
// Only the holders of the rarest listed type are visited. Adding or removing
// entities or components of the queried types while iterating is not
// supported.
func (w *World) Query(ids ...ComponentID) iter.Seq[Entity] {
	want := MaskOf(ids...) | aliveBit
	return func(yield func(Entity) bool) {
		if len(ids) == 0 {
			for e := 1; e < len(w.masks); e++ {
				if w.masks[e]&aliveBit != 0 && !yield(Entity(e)) {
					return
				}
			}
			return
		}
		rarest := ids[0]
		for _, id := range ids[1:] {
			if len(w.members[id]) < len(w.members[rarest]) {
				rarest = id
			}
		}
		for _, e := range w.members[rarest] {
			if w.masks[e].Contains(want) && !yield(e) {
				return
			}
		}
	}
}

// detach drops component type id from e without touching the mask.
func (w *World) detach(e Entity, id ComponentID) {
	if i, found := slices.BinarySearch(w.members[id], e); found {
		w.members[id] = slices.Delete(w.members[id], i, i+1)
	}
	if t := w.tables[id]; t != nil {
		t.clear(e)
	}
}

func columnOf[T any](w *World, id ComponentID) *column[T] {
	if t := w.tables[id]; t != nil {
		return t.(*column[T])
	}
	c := &column[T]{}
	w.tables[id] = c
	return c
}

// Add attaches v to e.
func Add[T any](w *World, e Entity, v T) error {
	id := ID[T]()
	if !w.HasEntity(e) {
		return fmt.Errorf("add %s to entity %d: %w", typeName(id), e, ErrEntityNotFound)
	}
	if w.masks[e]&id.bit() != 0 {
		return fmt.Errorf("add %s to entity %d: %w", typeName(id), e, ErrComponentAlreadyExists)
	}
	columnOf[T](w, id).set(e, v)
	w.masks[e] |= id.bit()
	i, _ := slices.BinarySearch(w.members[id], e)
	w.members[id] = slices.Insert(w.members[id], i, e)
	return nil
}

// Remove detaches the T component of e.
func Remove[T any](w *World, e Entity) error {
	id := ID[T]()
	if !w.HasEntity(e) {
		return fmt.Errorf("remove %s from entity %d: %w", typeName(id), e, ErrEntityNotFound)
	}
	if w.masks[e]&id.bit() == 0 {
		return fmt.Errorf("remove %s from entity %d: %w", typeName(id), e, ErrComponentNotFound)
	}
	w.detach(e, id)
	w.masks[e] &^= id.bit()
	return nil
}

// Get returns a pointer to the T component of e.
func Get[T any](w *World, e Entity) (*T, error) {
	id := ID[T]()
	if !w.HasEntity(e) {
		return nil, fmt.Errorf("get %s of entity %d: %w", typeName(id), e, ErrEntityNotFound)
	}
	if w.masks[e]&id.bit() == 0 {
		return nil, fmt.Errorf("get %s of entity %d: %w", typeName(id), e, ErrComponentNotFound)
	}
	return &columnOf[T](w, id).data[e], nil
}

// HasComponent reports whether e is alive and carries a T.
func HasComponent[T any](w *World, e Entity) bool {
	return w.Has(e, ID[T]())
}
