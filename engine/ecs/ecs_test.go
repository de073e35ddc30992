package ecs

import "testing"

type position struct{ X, Y float32 }
type name string

func TestEntityAllocatorReusesLowestFreeID(t *testing.T) {
	a := NewEntityAllocator(4)
	e0, e1, e2 := a.Create(), a.Create(), a.Create()
	if e0 != 0 || e1 != 1 || e2 != 2 {
		t.Fatalf("Create() = %d, %d, %d; want 0, 1, 2", e0, e1, e2)
	}
	if err := a.Release(e1); err != nil {
		t.Fatalf("Release(%d) error = %v", e1, err)
	}
	if err := a.Release(e1); err == nil {
		t.Error("double Release should fail")
	}
	if err := a.Release(Entity(42)); err == nil {
		t.Error("Release of out of range id should fail")
	}
	reused := a.Create()
	if reused.Index() != e1.Index() || reused == e1 {
		t.Errorf("Create() after release = %d, want index %d with a new generation", reused, e1.Index())
	}
	if a.IsAlive(e1) || !a.IsAlive(reused) {
		t.Error("stale handle still alive after its index was reused")
	}
	if got := a.Create(); got != 3 {
		t.Errorf("Create() = %d, want 3", got)
	}
	if a.Len() != 4 {
		t.Errorf("Len() = %d, want 4", a.Len())
	}
}

func TestEntityAllocatorGenerations(t *testing.T) {
	a := NewEntityAllocator(1)
	e := a.Create()
	for i := 0; i < 3; i++ {
		if err := a.Release(e); err != nil {
			t.Fatal(err)
		}
		next := a.Create()
		if next.Index() != 0 || next.Generation() != e.Generation()+1 {
			t.Fatalf("Create() = index %d generation %d", next.Index(), next.Generation())
		}
		if err := a.Release(e); err == nil {
			t.Error("Release of a stale handle should fail")
		}
		e = next
	}
}

func TestVecStorageRejectsStaleEntity(t *testing.T) {
	s := NewVecStorage[position]()
	old := makeEntity(2, 0)
	current := makeEntity(2, 1)
	s.Insert(old, position{X: 1})
	s.Insert(current, position{X: 2})

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if _, ok := s.Get(old); ok {
		t.Error("Get with a stale generation should miss")
	}
	if s.Remove(old) {
		t.Error("Remove with a stale generation should fail")
	}
	p, ok := s.Get(current)
	if !ok || p.X != 2 {
		t.Errorf("Get(current) = %v, %v", p, ok)
	}
	s.Each(func(e Entity, _ *position) bool {
		if e != current {
			t.Errorf("Each yielded %d, want %d", e, current)
		}
		return true
	})
}

func TestVecStorage(t *testing.T) {
	s := NewVecStorage[position]()
	s.Insert(5, position{X: 5})
	s.Insert(1, position{X: 1})
	s.Insert(5, position{X: 50})

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	p, ok := s.Get(5)
	if !ok || p.X != 50 {
		t.Errorf("Get(5) = %v, %v; want X=50", p, ok)
	}
	if _, ok := s.Get(3); ok {
		t.Error("Get(3) should miss")
	}

	var order []Entity
	s.Each(func(e Entity, _ *position) bool {
		order = append(order, e)
		return true
	})
	if len(order) != 2 || order[0] != 1 || order[1] != 5 {
		t.Errorf("Each order = %v, want [1 5]", order)
	}

	if !s.Remove(1) || s.Remove(1) {
		t.Error("Remove(1) should succeed exactly once")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d after remove, want 1", s.Len())
	}
}

func TestMapStorageOrdered(t *testing.T) {
	s := NewMapStorage[name]()
	for _, e := range []Entity{9, 2, 7} {
		s.Insert(e, name("n"))
	}
	var order []Entity
	s.Each(func(e Entity, _ *name) bool {
		order = append(order, e)
		return len(order) < 2
	})
	if len(order) != 2 || order[0] != 2 || order[1] != 7 {
		t.Errorf("Each order = %v, want [2 7] (stopped early)", order)
	}
}

func TestJoin(t *testing.T) {
	a := NewVecStorage[position]()
	b := NewMapStorage[name]()
	a.Insert(0, position{})
	a.Insert(1, position{})
	a.Insert(3, position{})
	b.Insert(3, "three")
	b.Insert(1, "one")
	b.Insert(2, "two")

	var got []Entity
	Join[position, name](a, b, func(e Entity, _ *position, n *name) {
		got = append(got, e)
	})
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("Join visited %v, want [1 3]", got)
	}

	Join[position, name](a, nil, func(Entity, *position, *name) {
		t.Error("Join with nil storage must not call fn")
	})
}

func TestWorld(t *testing.T) {
	w := NewWorld(WithCapacity(8))
	Register[position](w, NewVecStorage[position]())

	e := w.CreateEntity()
	if err := Insert(w, e, position{X: 1, Y: 2}); err != nil {
		t.Fatalf("Insert error = %v", err)
	}
	if err := Insert(w, e, name("x")); err == nil {
		t.Error("Insert of unregistered component should fail")
	}
	if err := Insert(w, Entity(99), position{}); err == nil {
		t.Error("Insert on dead entity should fail")
	}

	p, ok := Get[position](w, e)
	if !ok || p.Y != 2 {
		t.Errorf("Get = %v, %v", p, ok)
	}

	if err := w.DeleteEntity(e); err != nil {
		t.Fatalf("DeleteEntity error = %v", err)
	}
	if _, ok := Get[position](w, e); ok {
		t.Error("components must be removed with their entity")
	}
	reused := w.CreateEntity()
	if err := Insert(w, reused, position{X: 9}); err != nil {
		t.Fatal(err)
	}
	if w.IsAlive(e) {
		t.Error("deleted entity reported alive after its index was reused")
	}
	if _, ok := Get[position](w, e); ok {
		t.Error("stale entity resolved to the component of its successor")
	}

	SetResource(w, name("camera"))
	r, ok := Resource[name](w)
	if !ok || r != "camera" {
		t.Errorf("Resource = %q, %v", r, ok)
	}
	if _, ok := Resource[position](w); ok {
		t.Error("missing resource should report !ok")
	}
}
