package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/common"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

const (
	// MaxSpilledRings caps how many rings one hit scatters.
	MaxSpilledRings = 16
	spillSpeed      = 4.0
	spillStartDeg   = 101.25
	spillStepDeg    = 22.5
)

// CleanupSystem runs end-of-tick bookkeeping: ring spill, TTL expiry,
// destroy requests, the kill plane and player respawn.
type CleanupSystem struct {
	ctx *SimulationContext
}

func NewCleanupSystem(ctx *SimulationContext) *CleanupSystem {
	return &CleanupSystem{ctx: ctx}
}

func (s *CleanupSystem) Update(w *ecs.World) {
	if w == nil || s.ctx == nil {
		return
	}
	bounds := s.levelBounds(w)

	var doomed []ecs.Entity
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, a *component.Actor, t *component.Transform) {
		if a.SpillRings > 0 {
			s.spill(w, e, t.Position(), a.SpillRings)
			a.SpillRings = 0
		}
		if bounds != nil && t.Y < bounds.KillY {
			if a.Kind == component.ActorPlayer {
				a.Dead = true
			} else {
				a.Destroy = true
			}
		}
		if a.Dead && a.Kind == component.ActorPlayer {
			w.Events().Push(ecs.Event{Type: ecs.EventActorDied, Data: e})
			s.respawn(w, e, a, t, bounds)
			return
		}
		if a.Destroy {
			doomed = append(doomed, e)
		}
	})

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Ticks > 0 {
			ttl.Ticks--
			if ttl.Ticks > 0 {
				return
			}
		}
		doomed = append(doomed, e)
	})

	ecs.ForEach(w, component.GimmickHostComponent.Kind(), func(e ecs.Entity, host *component.GimmickHost) {
		if host.Destroy {
			if host.Kind == component.GimmickBreakableWall {
				w.Events().Push(ecs.Event{Type: ecs.EventGimmickBroken, Data: e})
			}
			doomed = append(doomed, e)
		}
	})

	for _, e := range doomed {
		s.destroy(w, e)
	}
}

func (s *CleanupSystem) destroy(w *ecs.World, e ecs.Entity) {
	if !w.IsAlive(e) {
		return
	}
	if solid, ok := ecs.Get(w, e, component.SolidComponent.Kind()); ok {
		solid.Remove()
	}
	ecs.DestroyEntity(w, e)
}

func (s *CleanupSystem) levelBounds(w *ecs.World) *component.LevelBounds {
	e, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return nil
	}
	b, _ := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	return b
}

// spill scatters rings in alternating fans, the classic pattern.
func (s *CleanupSystem) spill(w *ecs.World, e ecs.Entity, at cp.Vector, n int) {
	if s.ctx.SpawnRing == nil {
		return
	}
	w.Events().Push(ecs.Event{Type: ecs.EventActorHurt, Data: e})
	if n > MaxSpilledRings {
		n = MaxSpilledRings
	}
	angle := spillStartDeg
	flip := false
	spawned := 0
	for i := 0; i < n; i++ {
		rad := common.Deg2Rad(angle)
		vel := cp.Vector{X: math.Cos(rad) * spillSpeed, Y: math.Sin(rad) * spillSpeed}
		if flip {
			vel.X = -vel.X
			angle += spillStepDeg
		}
		flip = !flip
		if _, err := s.ctx.SpawnRing(w, at, vel); err != nil {
			s.ctx.warn("ring spill failed", "entity", e, "err", err)
			break
		}
		spawned++
	}
	w.Events().Push(ecs.Event{Type: ecs.EventRingsSpilled, Data: spawned})
}

func (s *CleanupSystem) respawn(w *ecs.World, e ecs.Entity, a *component.Actor, t *component.Transform, bounds *component.LevelBounds) {
	spawn := cp.Vector{}
	if bounds != nil {
		spawn = bounds.Spawn
	}
	t.SetPosition(spawn)
	a.Dead = false
	a.Velocity = cp.Vector{}
	a.GroundSpeed = 0
	a.Grounded = false
	a.Action = component.ActionNone
	a.Collision = component.CollisionInfo{GroundMode: component.GroundNone}
	a.GimmickMode, a.GimmickOwner = "", 0
	a.InputLockTicks, a.ControlLockTicks = 0, 0
	a.InvulnerableTicks = a.Physics.Invulnerable
	a.Rings = 0
	w.Events().Push(ecs.Event{Type: ecs.EventActorRespawn, Data: e})
}
