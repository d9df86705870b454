package gimmick

import (
	"math"

	"github.com/milk9111/sensorstage/ecs/component"
)

const ModeSlide = "slide"

// Slide forces the actor into a roll and keeps it moving at least MinSpeed
// in Direction while inside. Overlapping slides hand the actor over: only
// the current owner of the slide mode releases it.
type Slide struct {
	Base
	Direction float64
	MinSpeed  float64
}

func NewSlide(direction, minSpeed float64) *Slide {
	if direction == 0 {
		direction = 1
	}
	return &Slide{Direction: math.Copysign(1, direction), MinSpeed: minSpeed}
}

func (s *Slide) IsCollisionValid(actor *component.ActorRef, _ component.Bounds) bool {
	return actor.Kind() == component.ActorPlayer && actor.Action() != component.ActionHurt
}

func (s *Slide) OnEnter(actor *component.ActorRef) {
	actor.SetGimmickMode(ModeSlide, s.Entity)
	s.hold(actor)
}

func (s *Slide) OnStay(actor *component.ActorRef) {
	s.hold(actor)
}

func (s *Slide) hold(actor *component.ActorRef) {
	if !actor.Grounded() {
		return
	}
	actor.SetAction(component.ActionRoll)
	if actor.Actor.GroundSpeed*s.Direction < s.MinSpeed {
		actor.SetGroundSpeed(s.Direction * s.MinSpeed)
	}
}

func (s *Slide) OnExit(actor *component.ActorRef) {
	actor.ClearGimmickMode(s.Entity)
}
