package gimmick

import "github.com/milk9111/sensorstage/ecs/component"

// Ring is a collectible. Spilled rings are actors too and only become
// collectible once their CollectDelay runs out.
type Ring struct {
	Base
	Value int
}

func NewRing() *Ring {
	return &Ring{Value: 1}
}

func (r *Ring) IsCollisionValid(actor *component.ActorRef, _ component.Bounds) bool {
	if actor.Kind() != component.ActorPlayer || actor.Action() == component.ActionHurt {
		return false
	}
	return r.Actor == nil || (r.Actor.CollectDelay == 0 && !r.Actor.Destroy)
}

func (r *Ring) OnEnter(actor *component.ActorRef) {
	actor.CollectRings(r.Value)
	r.Hooks.SpawnEffect("sparkle", r.Position())
	r.Host.Deactivate()
	if r.Actor != nil {
		r.Actor.Destroy = true
		return
	}
	r.Host.Destroy = true
}
