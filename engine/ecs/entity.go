package ecs

import "fmt"

const (
	indexBits = 24
	indexMask = 1<<indexBits - 1
	// MaxEntities is the number of ids a world can hold at once.
	MaxEntities = 1 << indexBits
)

// Entity identifies a row across every component storage of a World.
// The low 24 bits are the row index, the high 8 bits a generation that
// changes every time the index is released, so a stale handle to a
// deleted entity never matches the entity that reuses its row.
type Entity uint32

func makeEntity(index int, generation uint8) Entity {
	return Entity(uint32(generation)<<indexBits | uint32(index))
}

// Index is the storage row of e.
func (e Entity) Index() int {
	return int(e & indexMask)
}

func (e Entity) Generation() uint8 {
	return uint8(e >> indexBits)
}

// EntityAllocator hands out entity ids, reusing the lowest released index
// (with a new generation) before growing.
type EntityAllocator struct {
	alive       []bool
	generations []uint8
	free        int
	count       int
}

func NewEntityAllocator(capacity int) *EntityAllocator {
	return &EntityAllocator{
		alive:       make([]bool, 0, capacity),
		generations: make([]uint8, 0, capacity),
	}
}

func (a *EntityAllocator) Create() Entity {
	for i := a.free; i < len(a.alive); i++ {
		// Existing free spot. Take it.
		if !a.alive[i] {
			a.alive[i] = true
			a.free = i + 1
			a.count++
			return makeEntity(i, a.generations[i])
		}
	}

	if len(a.alive) == MaxEntities {
		panic(fmt.Sprintf("entity allocator exhausted (max=%d)", MaxEntities))
	}
	// If here, no existing free slots. Need a new id, so push one.
	a.alive = append(a.alive, true)
	a.generations = append(a.generations, 0)
	a.free = len(a.alive)
	a.count++
	return makeEntity(len(a.alive)-1, 0)
}

func (a *EntityAllocator) Release(e Entity) error {
	i := e.Index()
	if i >= len(a.alive) {
		return fmt.Errorf("entity '%d' out of range (max=%d). Nothing was done", e, len(a.alive))
	}
	if !a.IsAlive(e) {
		return fmt.Errorf("entity '%d' already released", e)
	}
	a.alive[i] = false
	a.generations[i]++
	a.count--
	if i < a.free {
		a.free = i
	}
	return nil
}

func (a *EntityAllocator) IsAlive(e Entity) bool {
	i := e.Index()
	return i < len(a.alive) && a.alive[i] && a.generations[i] == e.Generation()
}

func (a *EntityAllocator) Len() int {
	return a.count
}
