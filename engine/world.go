package engine

import (
	"sort"
	"sync"

	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/event"
)

// System is updated once per frame or once per fixed step depending on registration
type System interface {
	Init()
	Name() string
	Priority() int // Lower values run first
	Update()
}

// World owns the entity registry, component stores, resources and systems
// Entities are generation-tagged slots; a destroyed handle never resolves again
type World struct {
	mu          sync.RWMutex
	generations []uint32
	free        []uint32

	Components ComponentStore
	Resources  *Resources
	Spatial    *SpatialIndex

	events *event.EventQueue
	stores []AnyStore

	frameSystems []System
	fixedSystems []System
}

// NewWorld creates an empty world with default resources
func NewWorld(res *Resources) *World {
	w := &World{
		generations: []uint32{0}, // slot 0 reserved so the zero Entity never resolves
		Components:  newComponentStore(),
		Resources:   res,
		events:      event.NewEventQueue(),
	}
	w.stores = w.Components.all()
	w.Spatial = NewSpatialIndex(w)
	return w
}

// CreateEntity reserves a slot, reusing freed slots with a bumped generation
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		return core.NewEntity(idx, w.generations[idx])
	}
	w.generations = append(w.generations, 1)
	idx := uint32(len(w.generations) - 1)
	return core.NewEntity(idx, 1)
}

// Alive reports whether the handle still refers to a live entity
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	idx := e.Index()
	if idx == 0 || int(idx) >= len(w.generations) {
		return false
	}
	// Freed slots carry a generation no handle has been minted with yet
	return w.generations[idx] == e.Generation()
}

// DestroyEntity removes all components and retires the handle
func (w *World) DestroyEntity(e core.Entity) {
	if !w.Alive(e) {
		return
	}
	for _, s := range w.stores {
		s.Remove(e)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	idx := e.Index()
	w.generations[idx]++
	w.free = append(w.free, idx)
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.generations) - 1 - len(w.free)
}

// Clear removes all entities and components
func (w *World) Clear() {
	for _, s := range w.stores {
		s.Clear()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generations = []uint32{0}
	w.free = nil
}

// AddSystem registers a per-frame system
func (w *World) AddSystem(s System) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frameSystems = insertSorted(w.frameSystems, s)
}

// AddFixedSystem registers a fixed-step system
func (w *World) AddFixedSystem(s System) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fixedSystems = insertSorted(w.fixedSystems, s)
}

func insertSorted(list []System, s System) []System {
	list = append(list, s)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority() < list[j].Priority()
	})
	return list
}

// FrameSystems returns a copy of the per-frame systems in run order
func (w *World) FrameSystems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]System(nil), w.frameSystems...)
}

// FixedSystems returns a copy of the fixed-step systems in run order
func (w *World) FixedSystems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]System(nil), w.fixedSystems...)
}

// Events exposes the queue for router construction
func (w *World) Events() *event.EventQueue {
	return w.events
}

// PushEvent emits a game event stamped with the current tick
func (w *World) PushEvent(t event.EventType, payload any) {
	w.events.Push(event.GameEvent{
		Type:    t,
		Payload: payload,
		Tick:    w.Resources.Time.Tick,
	})
}
