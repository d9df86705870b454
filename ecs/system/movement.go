package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/common"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

// MovementSystem integrates every actor and re-resolves its ground contact
// from the sensor rig.
type MovementSystem struct {
	ctx *SimulationContext
}

func NewMovementSystem(ctx *SimulationContext) *MovementSystem {
	return &MovementSystem{ctx: ctx}
}

var defaultSensorFilter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, common.CategoryAll)

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil || s.ctx == nil {
		return
	}
	s.ctx.RefreshActors(w)
	for _, e := range s.ctx.Actors() {
		a, _ := ecs.Get(w, e, component.ActorComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if a == nil || t == nil || a.Destroy || a.Dead {
			continue
		}
		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		if in == nil {
			in = &component.Input{}
		}
		filter := defaultSensorFilter
		if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
			filter = layer.ShapeFilter()
		}
		s.step(w, e, a, t, in, filter)
	}
}

func (s *MovementSystem) step(w *ecs.World, e ecs.Entity, a *component.Actor, t *component.Transform, in *component.Input, filter cp.ShapeFilter) {
	countDown(&a.InputLockTicks)
	countDown(&a.InvulnerableTicks)
	countDown(&a.CollectDelay)
	if a.Grounded {
		countDown(&a.ControlLockTicks)
		s.groundControl(a, in)
	} else {
		s.airControl(w, a, t, in)
	}

	disp := a.Velocity.Mult(s.ctx.scale()).Add(a.PlatformVelocity)
	a.PlatformVelocity = cp.Vector{}
	s.move(w, e, a, t, disp, filter)
}

func countDown(v *int) {
	if *v > 0 {
		*v--
	}
}

// horizontal returns the input axis the actor obeys this tick.
func horizontal(a *component.Actor, in *component.Input) float64 {
	if a.InputLockTicks > 0 || a.Action == component.ActionHurt {
		return 0
	}
	if a.Grounded && a.ControlLockTicks > 0 {
		return 0
	}
	return common.Clamp(in.MoveX, -1, 1)
}

func (s *MovementSystem) groundControl(a *component.Actor, in *component.Input) {
	p := a.Physics
	rad := common.Deg2Rad(a.Collision.AngleDeg)
	sin := math.Sin(rad)
	gsp := a.GroundSpeed
	moveX := horizontal(a, in)

	if a.Action == component.ActionRoll {
		if gsp*sin > 0 {
			gsp -= p.SlopeRollUp * sin
		} else {
			gsp -= p.SlopeRollDn * sin
		}
		if moveX != 0 && gsp != 0 && common.Sign(moveX) != common.Sign(gsp) {
			gsp = common.Approach(gsp, 0, p.RollDecel)
		}
		gsp = common.Approach(gsp, 0, p.RollFriction)
		if math.Abs(gsp) < p.RollMinSpeed && a.GimmickMode != "slide" {
			a.Action = component.ActionNone
		}
	} else {
		gsp -= p.SlopeFactor * sin
		switch {
		case moveX < 0:
			if gsp > 0 {
				gsp = math.Max(gsp-p.Decel, -p.Decel)
			} else if gsp > -p.TopSpeed {
				gsp = math.Max(gsp+moveX*p.Accel, -p.TopSpeed)
			}
		case moveX > 0:
			if gsp < 0 {
				gsp = math.Min(gsp+p.Decel, p.Decel)
			} else if gsp < p.TopSpeed {
				gsp = math.Min(gsp+moveX*p.Accel, p.TopSpeed)
			}
		default:
			gsp = common.Approach(gsp, 0, p.Friction)
		}
		if in.Down && p.RollMinSpeed > 0 && math.Abs(gsp) >= 2*p.RollMinSpeed {
			a.Action = component.ActionRoll
		}
	}
	if moveX != 0 {
		a.Facing = common.Sign(moveX)
	}
	a.GroundSpeed = gsp

	tangent := cp.ForAngle(rad)
	if in.JumpPressed && a.Action != component.ActionHurt && p.JumpForce > 0 {
		normal := tangent.Perp()
		a.Velocity = tangent.Mult(gsp).Add(normal.Mult(p.JumpForce))
		a.Grounded = false
		a.Action = component.ActionJump
		a.Collision.GroundMode = component.GroundNone
		a.Collision.HitSide = component.HitNone
		return
	}
	a.Velocity = tangent.Mult(gsp)

	angle := a.Collision.AngleDeg
	if p.SlipAngle > 0 && a.ControlLockTicks == 0 && math.Abs(gsp) < p.SlipSpeed && angle >= p.SlipAngle && angle <= 360-p.SlipAngle {
		a.ControlLockTicks = p.ControlLock
		if angle >= 90 && angle <= 270 {
			a.Grounded = false
			a.Collision.GroundMode = component.GroundNone
			a.Collision.HitSide = component.HitNone
		}
	}
}

func (s *MovementSystem) airControl(w *ecs.World, a *component.Actor, t *component.Transform, in *component.Input) {
	p := a.Physics
	moveX := horizontal(a, in)
	if moveX != 0 {
		a.Facing = common.Sign(moveX)
		switch {
		case moveX > 0 && a.Velocity.X < p.TopSpeed:
			a.Velocity.X = math.Min(a.Velocity.X+moveX*p.AirAccel, p.TopSpeed)
		case moveX < 0 && a.Velocity.X > -p.TopSpeed:
			a.Velocity.X = math.Max(a.Velocity.X+moveX*p.AirAccel, -p.TopSpeed)
		}
	}

	if a.Action == component.ActionJump && !in.Jump && a.Velocity.Y > p.JumpRelease {
		a.Velocity.Y = p.JumpRelease
	}

	if a.Action == component.ActionJump && in.JumpPressed && a.Kind == component.ActorPlayer && p.HomingSpeed > 0 {
		a.Action = component.ActionHomingAttack
		if target, ok := s.nearestBadnik(w, t.Position(), a.Facing, p.HomingRange); ok {
			a.HomingTarget = uint64(target)
		} else {
			a.Velocity = cp.Vector{X: a.Facing * p.HomingSpeed}
		}
	}

	if a.Action == component.ActionHomingAttack && a.HomingTarget != 0 {
		target := ecs.Entity(a.HomingTarget)
		tt, ok := ecs.Get(w, target, component.TransformComponent.Kind())
		ta, alive := ecs.Get(w, target, component.ActorComponent.Kind())
		if ok && alive && !ta.Destroy {
			d := tt.Position().Sub(t.Position())
			if d.Length() > 0 {
				a.Velocity = d.Normalize().Mult(p.HomingSpeed)
				return
			}
		}
		a.HomingTarget = 0
		a.Action = component.ActionJump
	}

	a.Velocity.Y = math.Max(a.Velocity.Y-p.Gravity, -p.MaxFall)
}

// nearestBadnik finds the closest live badnik in front of pos within rng.
func (s *MovementSystem) nearestBadnik(w *ecs.World, pos cp.Vector, facing, rng float64) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := math.Inf(1)
	for _, e := range s.ctx.Actors() {
		a, _ := ecs.Get(w, e, component.ActorComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if a == nil || t == nil || a.Kind != component.ActorBadnik || a.Destroy {
			continue
		}
		d := t.Position().Sub(pos)
		if d.X*facing < 0 {
			continue
		}
		if dist := d.Length(); dist <= rng && dist < bestDist {
			best, bestDist = e, dist
		}
	}
	return best, best != 0
}

func bodyAngle(a *component.Actor) float64 {
	if a.Grounded {
		return a.Collision.AngleDeg
	}
	return 0
}

func (s *MovementSystem) move(w *ecs.World, e ecs.Entity, a *component.Actor, t *component.Transform, disp cp.Vector, filter cp.ShapeFilter) {
	hw, hh := a.Width/2, a.Height/2
	maxStep := math.Max(math.Min(hw, hh)/2, 1)
	steps := int(math.Ceil(disp.Length() / maxStep))
	if steps < 1 {
		steps = 1
	}
	stepV := disp.Mult(1 / float64(steps))

	a.Wall = component.HitNone
	a.Impact = cp.Vector{}
	for i := 0; i < steps; i++ {
		t.SetPosition(t.Position().Add(stepV))
		s.pushWalls(a, t, filter)
		if !a.Grounded {
			s.pushCeiling(a, t, filter)
		}
	}
	s.resolveFloor(w, e, a, t, filter)
}

func (s *MovementSystem) pushWalls(a *component.Actor, t *component.Transform, filter cp.ShapeFilter) {
	hw := a.Width / 2
	angle := bodyAngle(a)
	for _, side := range []struct {
		spec component.SensorSpec
		hit  component.HitSide
		sign float64
	}{
		{a.Rig.WallLeft, component.HitLeft, -1},
		{a.Rig.WallRight, component.HitRight, 1},
	} {
		hit := CastSensor(s.ctx.Space, side.spec, t.Position(), angle, 0, filter)
		if !hit.Hit || hit.Distance >= hw {
			continue
		}
		_, dir := SensorRay(side.spec, t.Position(), angle)
		t.SetPosition(t.Position().Sub(dir.Mult(hw - hit.Distance)))
		if a.Wall == component.HitNone {
			a.Wall = side.hit
		} else if a.Wall != side.hit {
			a.Wall = component.HitBoth
		}

		if a.Grounded {
			if a.GroundSpeed*side.sign > 0 {
				a.Impact = a.Impact.Add(a.Velocity)
				a.GroundSpeed = 0
				a.Velocity = cp.Vector{}
			}
			continue
		}
		if into := a.Velocity.Dot(dir); into > 0 {
			a.Impact = a.Impact.Add(dir.Mult(into))
			a.Velocity = a.Velocity.Sub(dir.Mult(into))
		}
	}
}

func (s *MovementSystem) pushCeiling(a *component.Actor, t *component.Transform, filter cp.ShapeFilter) {
	if a.Velocity.Y <= 0 {
		return
	}
	hh := a.Height / 2
	l := CastSensor(s.ctx.Space, a.Rig.CeilingLeft, t.Position(), 0, 0, filter)
	r := CastSensor(s.ctx.Space, a.Rig.CeilingRight, t.Position(), 0, 0, filter)
	hit := nearest(l, r)
	if !hit.Hit || hit.Distance >= hh {
		return
	}
	t.Y -= hh - hit.Distance
	a.Velocity.Y = 0
}

func nearest(l, r component.SensorHit) component.SensorHit {
	switch {
	case l.Hit && r.Hit:
		if r.Distance < l.Distance {
			return r
		}
		return l
	case l.Hit:
		return l
	}
	return r
}

func (s *MovementSystem) resolveFloor(w *ecs.World, e ecs.Entity, a *component.Actor, t *component.Transform, filter cp.ShapeFilter) {
	hh := a.Height / 2
	if !a.Grounded && a.Velocity.Y > 0 {
		a.Collision = ResolveGround(component.SensorHit{}, component.SensorHit{}, a.Collision)
		return
	}

	angle := bodyAngle(a)
	extra := 0.0
	if a.Grounded {
		extra = a.Rig.GroundSnap
	}
	l := CastSensor(s.ctx.Space, a.Rig.FloorLeft, t.Position(), angle, extra, filter)
	r := CastSensor(s.ctx.Space, a.Rig.FloorRight, t.Position(), angle, extra, filter)
	info := ResolveGround(l, r, a.Collision)
	down := cp.ForAngle(common.Deg2Rad(angle + a.Rig.FloorLeft.CastAngleDeg))

	if a.Grounded {
		if !info.InContact() {
			a.Grounded = false
			a.Collision = info
			w.Events().Push(ecs.Event{Type: ecs.EventActorAirborne, Data: e})
			return
		}
		t.SetPosition(t.Position().Add(down.Mult(info.Hit.Distance - hh)))
		a.Collision = info
		a.Velocity = cp.ForAngle(common.Deg2Rad(info.AngleDeg)).Mult(a.GroundSpeed)
		return
	}

	if !info.InContact() {
		a.Collision = info
		return
	}
	t.SetPosition(t.Position().Add(down.Mult(info.Hit.Distance - hh)))
	a.Collision = info

	if a.Physics.Bounce > 0 {
		a.Collision.GroundMode = component.GroundNone
		a.Collision.HitSide = component.HitNone
		a.Velocity.Y = -a.Velocity.Y * a.Physics.Bounce
		a.Velocity.X *= a.Physics.Bounce
		return
	}

	tangent := cp.ForAngle(common.Deg2Rad(info.AngleDeg))
	a.Grounded = true
	a.GroundSpeed = a.Velocity.Dot(tangent)
	a.Velocity = tangent.Mult(a.GroundSpeed)
	switch a.Action {
	case component.ActionJump, component.ActionHomingAttack:
		a.Action = component.ActionNone
	case component.ActionHurt:
		a.Action = component.ActionNone
		a.GroundSpeed = 0
		a.Velocity = cp.Vector{}
	}
	a.HomingTarget = 0
	w.Events().Push(ecs.Event{Type: ecs.EventActorLanded, Data: e})
}
