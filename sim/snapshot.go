package sim

import (
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

// ActorSnapshot is the observable state of one actor at the end of a tick.
type ActorSnapshot struct {
	Entity      ecs.Entity
	Name        string
	Kind        component.ActorKind
	X, Y        float64
	VX, VY      float64
	GroundSpeed float64
	Grounded    bool
	AngleDeg    float64
	Mode        component.GroundMode
	Action      component.Action
	Rings       int
	GimmickMode string
}

// GimmickSnapshot is the observable state of one gimmick.
type GimmickSnapshot struct {
	Entity ecs.Entity
	Name   string
	Kind   component.GimmickKind
	Source component.ContactSource
	Bounds component.Bounds
	State  component.ContactState
	Active bool
}

// Snapshot lists actors in spawn order.
func (s *Sim) Snapshot() []ActorSnapshot {
	var out []ActorSnapshot
	for _, e := range s.world.Query(component.ActorComponent.Kind(), component.TransformComponent.Kind()) {
		a, _ := ecs.Get(s.world, e, component.ActorComponent.Kind())
		t, _ := ecs.Get(s.world, e, component.TransformComponent.Kind())
		out = append(out, ActorSnapshot{
			Entity:      e,
			Name:        s.NameOf(e),
			Kind:        a.Kind,
			X:           t.X,
			Y:           t.Y,
			VX:          a.Velocity.X,
			VY:          a.Velocity.Y,
			GroundSpeed: a.GroundSpeed,
			Grounded:    a.Grounded,
			AngleDeg:    a.Collision.AngleDeg,
			Mode:        a.Collision.GroundMode,
			Action:      a.Action,
			Rings:       a.Rings,
			GimmickMode: a.GimmickMode,
		})
	}
	return out
}

// Gimmicks lists gimmicks in spawn order.
func (s *Sim) Gimmicks() []GimmickSnapshot {
	var out []GimmickSnapshot
	for _, e := range s.world.Query(component.GimmickHostComponent.Kind()) {
		host, _ := ecs.Get(s.world, e, component.GimmickHostComponent.Kind())
		out = append(out, GimmickSnapshot{
			Entity: e,
			Name:   s.NameOf(e),
			Kind:   host.Kind,
			Source: host.Source,
			Bounds: host.Bounds(),
			State:  host.Record.State(),
			Active: host.Active(),
		})
	}
	return out
}

// Actor returns one actor's snapshot.
func (s *Sim) Actor(e ecs.Entity) (ActorSnapshot, bool) {
	for _, snap := range s.Snapshot() {
		if snap.Entity == e {
			return snap, true
		}
	}
	return ActorSnapshot{}, false
}
