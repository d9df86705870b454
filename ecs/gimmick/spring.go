package gimmick

import "github.com/milk9111/sensorstage/ecs/component"

const (
	ModeSpring            = "spring"
	defaultSpringLockTick = 16
)

// Spring launches an actor away from its bouncy side.
type Spring struct {
	Base
	Side      Side
	Velocity  float64
	LockTicks int
}

func NewSpring(side Side, velocity float64) *Spring {
	return &Spring{Side: side, Velocity: velocity, LockTicks: defaultSpringLockTick}
}

func (s *Spring) IsCollisionValid(actor *component.ActorRef, actorBounds component.Bounds) bool {
	if actor.Action() == component.ActionHomingAttack {
		return false
	}
	mode, owner := actor.GimmickMode()
	if mode == ModeSpring && owner != s.Entity {
		return false
	}
	if !s.Side.Faces(s.Bounds(), actorBounds) {
		return false
	}
	// an actor this spring already launched stays in contact until it
	// leaves the face
	if mode == ModeSpring {
		return true
	}
	// moving toward the face or resting on it
	return actor.Velocity().Dot(s.Side.Direction()) <= 0
}

func (s *Spring) OnEnter(actor *component.ActorRef) {
	dir := s.Side.Direction()
	v := actor.Velocity()
	if dir.X != 0 {
		v.X = dir.X * s.Velocity
	}
	if dir.Y != 0 {
		v.Y = dir.Y * s.Velocity
		actor.Detach()
		actor.SetAction(component.ActionNone)
	} else {
		actor.LockInput(s.LockTicks)
	}
	actor.SetVelocity(v)
	actor.SetGimmickMode(ModeSpring, s.Entity)
	s.Hooks.PlaySound("spring")
}

func (s *Spring) OnExit(actor *component.ActorRef) {
	actor.ClearGimmickMode(s.Entity)
}
