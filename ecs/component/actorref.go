package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/common"
)

// ActorRef is the view of an actor handed to gimmick callbacks. Gimmicks
// mutate the actor only through its methods.
type ActorRef struct {
	ID        uint64
	Actor     *Actor
	Transform *Transform
	Hooks     *Hooks
	Tick      uint64
}

func (r *ActorRef) valid() bool {
	return r != nil && r.Actor != nil && r.Transform != nil
}

func (r *ActorRef) Kind() ActorKind {
	if !r.valid() {
		return ActorPlayer
	}
	return r.Actor.Kind
}

func (r *ActorRef) Position() cp.Vector {
	if !r.valid() {
		return cp.Vector{}
	}
	return r.Transform.Position()
}

func (r *ActorRef) Bounds() Bounds {
	if !r.valid() {
		return Bounds{}
	}
	return r.Actor.Bounds(r.Transform)
}

func (r *ActorRef) Velocity() cp.Vector {
	if !r.valid() {
		return cp.Vector{}
	}
	return r.Actor.Velocity
}

// Impact is the velocity a wall absorbed this tick, zero when none did.
func (r *ActorRef) Impact() cp.Vector {
	if !r.valid() {
		return cp.Vector{}
	}
	return r.Actor.Impact
}

func (r *ActorRef) Action() Action {
	if !r.valid() {
		return ActionNone
	}
	return r.Actor.Action
}

func (r *ActorRef) Grounded() bool {
	return r.valid() && r.Actor.Grounded
}

// SetVelocity replaces the velocity. A grounded actor also takes the
// component along its surface as ground speed.
func (r *ActorRef) SetVelocity(v cp.Vector) {
	if !r.valid() {
		return
	}
	r.Actor.Velocity = v
	if r.Actor.Grounded {
		tangent := cp.ForAngle(common.Deg2Rad(r.Actor.Collision.AngleDeg))
		r.Actor.GroundSpeed = v.Dot(tangent)
	}
}

func (r *ActorRef) SetGroundSpeed(speed float64) {
	if !r.valid() {
		return
	}
	r.Actor.GroundSpeed = speed
	if r.Actor.Grounded {
		r.Actor.Velocity = cp.ForAngle(common.Deg2Rad(r.Actor.Collision.AngleDeg)).Mult(speed)
	}
	if speed != 0 {
		r.Actor.Facing = common.Sign(speed)
	}
}

func (r *ActorRef) SetAction(a Action) {
	if !r.valid() {
		return
	}
	r.Actor.Action = a
	if a != ActionHomingAttack {
		r.Actor.HomingTarget = 0
	}
}

// Detach drops the actor off the ground. The last contact angle is kept.
func (r *ActorRef) Detach() {
	if !r.valid() {
		return
	}
	r.Actor.Grounded = false
	r.Actor.Collision.GroundMode = GroundNone
	r.Actor.Collision.HitSide = HitNone
}

// LockInput ignores horizontal input for the given number of ticks.
func (r *ActorRef) LockInput(ticks int) {
	if !r.valid() || ticks <= r.Actor.InputLockTicks {
		return
	}
	r.Actor.InputLockTicks = ticks
}

func (r *ActorRef) GimmickMode() (string, uint64) {
	if !r.valid() {
		return "", 0
	}
	return r.Actor.GimmickMode, r.Actor.GimmickOwner
}

func (r *ActorRef) SetGimmickMode(mode string, owner uint64) {
	if !r.valid() {
		return
	}
	r.Actor.GimmickMode = mode
	r.Actor.GimmickOwner = owner
}

// ClearGimmickMode releases the mode only when owner still holds it.
func (r *ActorRef) ClearGimmickMode(owner uint64) bool {
	if !r.valid() || r.Actor.GimmickOwner != owner {
		return false
	}
	r.Actor.GimmickMode = ""
	r.Actor.GimmickOwner = 0
	return true
}

func (r *ActorRef) AddPlatformVelocity(v cp.Vector) {
	if !r.valid() {
		return
	}
	r.Actor.PlatformVelocity = r.Actor.PlatformVelocity.Add(v)
}

// Hurt damages the actor from a source position. Badniks and rings are
// destroyed; a player with rings spills them, without rings it dies.
func (r *ActorRef) Hurt(from cp.Vector) bool {
	if !r.valid() {
		return false
	}
	a := r.Actor
	if a.Invulnerable() || a.Dead || a.Destroy {
		return false
	}
	if a.Kind != ActorPlayer {
		a.Destroy = true
		return true
	}
	if a.Rings == 0 {
		a.Dead = true
		r.Hooks.PlaySound("death")
		return true
	}
	a.SpillRings = a.Rings
	a.Rings = 0

	dir := common.Sign(r.Transform.X - from.X)
	if dir == 0 {
		dir = -a.Facing
	}
	a.Velocity = cp.Vector{X: dir * a.Physics.HurtPushX, Y: a.Physics.HurtPushY}
	a.GroundSpeed = 0
	a.Grounded = false
	a.Action = ActionHurt
	a.HomingTarget = 0
	a.InvulnerableTicks = a.Physics.Invulnerable
	a.GimmickMode = ""
	a.GimmickOwner = 0
	r.Hooks.PlaySound("hurt")
	return true
}

// Rebound bounces an airborne actor after it destroys something.
func (r *ActorRef) Rebound() {
	if !r.valid() || r.Actor.Grounded {
		return
	}
	a := r.Actor
	if a.Action == ActionHomingAttack {
		a.Velocity = cp.Vector{Y: a.Physics.JumpForce}
		a.Action = ActionJump
		a.HomingTarget = 0
		return
	}
	if a.Velocity.Y < 0 {
		a.Velocity.Y = -a.Velocity.Y
		return
	}
	a.Velocity.Y = math.Max(a.Velocity.Y-1, 0)
}

func (r *ActorRef) CollectRings(n int) {
	if !r.valid() || n <= 0 {
		return
	}
	r.Actor.Rings += n
	r.Hooks.PlaySound("ring")
}
