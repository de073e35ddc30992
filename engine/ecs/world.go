package ecs

import (
	"fmt"
	"reflect"
)

type WorldOption func(*World)

// WithCapacity pre-sizes the entity allocator.
func WithCapacity(n int) WorldOption {
	return func(w *World) {
		if n > 0 {
			w.entities = NewEntityAllocator(n)
		}
	}
}

type remover interface {
	Remove(e Entity) bool
}

// World holds entities, their component storages and shared resources.
// Callers own synchronization: the world must not be written while a
// render call reads it.
type World struct {
	entities  *EntityAllocator
	storages  map[reflect.Type]remover
	resources map[reflect.Type]interface{}
}

// NewWorld constructs a world with no registered storages.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		entities:  NewEntityAllocator(64),
		storages:  make(map[reflect.Type]remover),
		resources: make(map[reflect.Type]interface{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) CreateEntity() Entity {
	return w.entities.Create()
}

// DeleteEntity removes every component of e and releases its id.
func (w *World) DeleteEntity(e Entity) error {
	if err := w.entities.Release(e); err != nil {
		return err
	}
	for _, s := range w.storages {
		s.Remove(e)
	}
	return nil
}

func (w *World) IsAlive(e Entity) bool {
	return w.entities.IsAlive(e)
}

func (w *World) EntityCount() int {
	return w.entities.Len()
}

// Register installs the storage used for components of type T, replacing
// any previous one.
func Register[T any](w *World, s Storage[T]) {
	w.storages[reflect.TypeOf((*T)(nil)).Elem()] = s
}

// Read returns the storage registered for T, or nil.
func Read[T any](w *World) Storage[T] {
	s, ok := w.storages[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil
	}
	return s.(Storage[T])
}

// Insert attaches c to e. The storage for T must be registered.
func Insert[T any](w *World, e Entity, c T) error {
	s := Read[T](w)
	if s == nil {
		return fmt.Errorf("no storage registered for component %s", reflect.TypeOf((*T)(nil)).Elem())
	}
	if !w.entities.IsAlive(e) {
		return fmt.Errorf("entity '%d' is not alive", e)
	}
	s.Insert(e, c)
	return nil
}

// Get returns the component T of e, if any.
func Get[T any](w *World, e Entity) (*T, bool) {
	s := Read[T](w)
	if s == nil {
		return nil, false
	}
	return s.Get(e)
}

// SetResource stores a world-wide value of type T.
func SetResource[T any](w *World, v T) {
	w.resources[reflect.TypeOf((*T)(nil)).Elem()] = v
}

// Resource returns the world-wide value of type T.
func Resource[T any](w *World) (T, bool) {
	v, ok := w.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}
