package ecs

import (
	"fmt"
	"sync"
)

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on delete to invalidate stale refs.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

// EntityPool manages entity allocation with generational indices and a free list.
//
// Killing an entity bumps its generation at once, so every lookup through the
// old id fails, but the slot only returns to the free list on Release. The
// World releases slots at maintain, after the components are gone, which keeps
// a recycled index from ever pointing at a previous owner's data.
//
// Safe for concurrent use: systems in one stage may reserve ids through the
// command buffer while others check liveness.
type EntityPool struct {
	mu          sync.RWMutex
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

// Create returns a fresh id. Generations start at 1 so the zero EntityID is
// never handed out.
func (p *EntityPool) Create() EntityID {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 1)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.aliveLocked(id)
}

func (p *EntityPool) aliveLocked(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Kill invalidates id. It reports false when id was already stale.
func (p *EntityPool) Kill(id EntityID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.aliveLocked(id) {
		return false
	}
	p.generations[id.Index()]++
	return true
}

// Release hands the slot of a killed id back for reuse.
func (p *EntityPool) Release(id EntityID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := id.Index()
	if idx >= p.nextIndex || p.generations[idx] == id.Generation() {
		return // unknown index or still alive
	}
	p.freeList = append(p.freeList, idx)
}

// Len returns the number of slots in use, killed-but-unreleased ones included.
func (p *EntityPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return int(p.nextIndex) - len(p.freeList)
}
