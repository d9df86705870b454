package ecs

import (
	"sort"

	"github.com/milk9111/sensorstage/ecs/component"
)

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and marks it dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Count returns the number of live entities.
func (w *World) Count() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// Query returns live entities holding every kind, in spawn order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate the smallest set
	sort.Slice(sets, func(i, j int) bool { return sets[i].Len() < sets[j].Len() })

	out := make([]Entity, 0, sets[0].Len())
	for _, id := range sets[0].denseEntities {
		ok := true
		for _, s := range sets[1:] {
			if !s.Has(id) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if e, alive := w.entities.entity(id); alive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return w.entities.spawnOrder(out[i].id()) < w.entities.spawnOrder(out[j].id())
	})
	return out
}

// First returns the earliest spawned entity holding kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Entities returns every live entity in spawn order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gen {
		if e, ok := w.entities.entity(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return w.entities.spawnOrder(out[i].id()) < w.entities.spawnOrder(out[j].id())
	})
	return out
}
