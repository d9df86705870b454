package gimmick

import "github.com/milk9111/sensorstage/ecs/component"

// Spike hurts an actor touching its dangerous side.
type Spike struct {
	Base
	Side Side
}

func NewSpike(side Side) *Spike {
	return &Spike{Side: side}
}

func (s *Spike) IsCollisionValid(actor *component.ActorRef, actorBounds component.Bounds) bool {
	if actor.Kind() != component.ActorPlayer {
		return false
	}
	b := s.Bounds()
	if s.Solid != nil {
		b = s.Solid.Bounds()
	}
	return s.Side.Faces(b, actorBounds)
}

func (s *Spike) OnEnter(actor *component.ActorRef) {
	if actor.Hurt(s.Position()) {
		s.Hooks.PlaySound("spike")
	}
}
