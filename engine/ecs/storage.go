package ecs

import "slices"

// Storage is a component store keyed by entity.
type Storage[T any] interface {
	Insert(e Entity, c T)
	Remove(e Entity) bool
	Get(e Entity) (*T, bool)
	// Each visits components in storage order until fn returns false.
	Each(fn func(e Entity, c *T) bool)
	Len() int
}

// VecStorage keeps components in a slice indexed by entity. Iteration is
// contiguous and in ascending entity order, which suits components that
// are visited every frame.
type VecStorage[T any] struct {
	data    []T
	owners  []Entity
	present []bool
	count   int
}

func NewVecStorage[T any]() *VecStorage[T] {
	return &VecStorage[T]{}
}

func (s *VecStorage[T]) Insert(e Entity, c T) {
	i := e.Index()
	if i >= len(s.data) {
		n := i + 1
		s.data = append(s.data, make([]T, n-len(s.data))...)
		s.owners = append(s.owners, make([]Entity, n-len(s.owners))...)
		s.present = append(s.present, make([]bool, n-len(s.present))...)
	}
	if !s.present[i] {
		s.count++
	}
	// A newer generation takes the row over.
	s.data[i] = c
	s.owners[i] = e
	s.present[i] = true
}

func (s *VecStorage[T]) Remove(e Entity) bool {
	if !s.has(e) {
		return false
	}
	i := e.Index()
	var zero T
	s.data[i] = zero
	s.present[i] = false
	s.count--
	return true
}

func (s *VecStorage[T]) Get(e Entity) (*T, bool) {
	if !s.has(e) {
		return nil, false
	}
	return &s.data[e.Index()], true
}

func (s *VecStorage[T]) has(e Entity) bool {
	i := e.Index()
	return i < len(s.present) && s.present[i] && s.owners[i] == e
}

func (s *VecStorage[T]) Each(fn func(e Entity, c *T) bool) {
	for i := range s.data {
		if !s.present[i] {
			continue
		}
		if !fn(s.owners[i], &s.data[i]) {
			return
		}
	}
}

func (s *VecStorage[T]) Len() int {
	return s.count
}

// MapStorage keeps components in a map, for components carried by few
// entities. Each visits entities in ascending index order.
type MapStorage[T any] struct {
	data map[Entity]*T
}

func NewMapStorage[T any]() *MapStorage[T] {
	return &MapStorage[T]{data: make(map[Entity]*T)}
}

func (s *MapStorage[T]) Insert(e Entity, c T) {
	s.data[e] = &c
}

func (s *MapStorage[T]) Remove(e Entity) bool {
	if _, ok := s.data[e]; !ok {
		return false
	}
	delete(s.data, e)
	return true
}

func (s *MapStorage[T]) Get(e Entity) (*T, bool) {
	c, ok := s.data[e]
	return c, ok
}

func (s *MapStorage[T]) Each(fn func(e Entity, c *T) bool) {
	keys := make([]Entity, 0, len(s.data))
	for e := range s.data {
		keys = append(keys, e)
	}
	slices.SortFunc(keys, func(a, b Entity) int {
		if a.Index() != b.Index() {
			return a.Index() - b.Index()
		}
		return int(a.Generation()) - int(b.Generation())
	})
	for _, e := range keys {
		if !fn(e, s.data[e]) {
			return
		}
	}
}

func (s *MapStorage[T]) Len() int {
	return len(s.data)
}

// Join visits every entity present in both storages, in the iteration
// order of a. Pass the denser storage as a.
func Join[A, B any](a Storage[A], b Storage[B], fn func(e Entity, ca *A, cb *B)) {
	if a == nil || b == nil {
		return
	}
	a.Each(func(e Entity, ca *A) bool {
		if cb, ok := b.Get(e); ok {
			fn(e, ca, cb)
		}
		return true
	})
}
