package system

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

// SimulationContext is the per-stage state shared by every system. It
// replaces global managers: systems receive it at construction.
type SimulationContext struct {
	// TimeScale multiplies per-tick velocities. 1 is real time.
	TimeScale float64
	Tick      uint64
	Space     *cp.Space
	Hooks     *component.Hooks
	Logger    *log.Logger

	// SpawnRing builds a spilled ring actor. Ring spill is skipped when nil.
	SpawnRing func(w *ecs.World, pos, vel cp.Vector) (ecs.Entity, error)

	actors []ecs.Entity
}

func NewSimulationContext(space *cp.Space, hooks *component.Hooks, logger *log.Logger) *SimulationContext {
	if hooks == nil {
		hooks = &component.Hooks{}
	}
	return &SimulationContext{TimeScale: 1, Space: space, Hooks: hooks, Logger: logger}
}

// Actors is the active actor registry for the current tick, in spawn order.
func (c *SimulationContext) Actors() []ecs.Entity {
	if c == nil {
		return nil
	}
	return c.actors
}

// RefreshActors rebuilds the registry from the world.
func (c *SimulationContext) RefreshActors(w *ecs.World) {
	if c == nil {
		return
	}
	c.actors = w.Query(component.ActorComponent.Kind(), component.TransformComponent.Kind())
}

// Ref builds the gimmick-facing view of an actor entity.
func (c *SimulationContext) Ref(w *ecs.World, e ecs.Entity) (*component.ActorRef, bool) {
	a, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	if !ok {
		return nil, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	ref := &component.ActorRef{ID: uint64(e), Actor: a, Transform: t}
	if c != nil {
		ref.Hooks = c.Hooks
		ref.Tick = c.Tick
	}
	return ref, true
}

func (c *SimulationContext) scale() float64 {
	if c == nil || c.TimeScale <= 0 {
		return 1
	}
	return c.TimeScale
}

func (c *SimulationContext) warn(msg string, keyvals ...any) {
	if c == nil || c.Logger == nil {
		return
	}
	c.Logger.Warn(msg, keyvals...)
}

func (c *SimulationContext) debug(msg string, keyvals ...any) {
	if c == nil || c.Logger == nil {
		return
	}
	c.Logger.Debug(msg, keyvals...)
}
