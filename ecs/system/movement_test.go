package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

func hasEvent(events []ecs.Event, typ string) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func groundedActor(t *testing.T, w *ecs.World, x float64) (*component.Actor, *component.Transform, *component.Input) {
	t.Helper()
	e := spawnTestActor(t, w, component.ActorPlayer, x, 19)
	a, _ := ecs.Get(w, e, component.ActorComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	a.Grounded = true
	a.Collision = component.CollisionInfo{GroundMode: component.GroundFloor, HitSide: component.HitBoth}
	in := &component.Input{}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), in); err != nil {
		t.Fatalf("add input: %v", err)
	}
	return a, tr, in
}

func TestMovementLandsOnFloor(t *testing.T) {
	space := flatFloor(t)
	w := ecs.NewWorld()
	ctx := NewSimulationContext(space, nil, nil)
	e := spawnTestActor(t, w, component.ActorPlayer, 0, 60)
	a, _ := ecs.Get(w, e, component.ActorComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())

	sys := NewMovementSystem(ctx)
	landed := false
	for i := 0; i < 120 && !landed; i++ {
		ctx.Tick++
		sys.Update(w)
		landed = hasEvent(w.Events().Drain(), ecs.EventActorLanded)
	}
	if !landed || !a.Grounded {
		t.Fatalf("expected the actor to land, got %+v", a)
	}
	if math.Abs(tr.Y-19) > 1e-6 {
		t.Fatalf("expected feet on the floor at y=19, got %v", tr.Y)
	}
	if a.Collision.GroundMode != component.GroundFloor || a.Collision.AngleDeg != 0 {
		t.Fatalf("expected flat floor contact, got %+v", a.Collision)
	}
	if a.Velocity.Y != 0 {
		t.Fatalf("landing should zero vertical velocity, got %v", a.Velocity)
	}
}

func TestMovementRunAndJump(t *testing.T) {
	space := flatFloor(t)
	w := ecs.NewWorld()
	ctx := NewSimulationContext(space, nil, nil)
	a, tr, in := groundedActor(t, w, 0)

	sys := NewMovementSystem(ctx)
	in.MoveX = 1
	for i := 0; i < 60; i++ {
		ctx.Tick++
		sys.Update(w)
	}
	if !a.Grounded || a.GroundSpeed <= 0 || a.GroundSpeed > a.Physics.TopSpeed {
		t.Fatalf("expected grounded acceleration, got gsp=%v grounded=%v", a.GroundSpeed, a.Grounded)
	}
	if tr.X <= 0 || math.Abs(tr.Y-19) > 1e-6 {
		t.Fatalf("expected to run right along the floor, got (%v, %v)", tr.X, tr.Y)
	}

	in.Jump, in.JumpPressed = true, true
	ctx.Tick++
	sys.Update(w)
	if a.Grounded || a.Action != component.ActionJump {
		t.Fatalf("expected a jump, got grounded=%v action=%s", a.Grounded, a.Action)
	}
	if tr.Y <= 19 || a.Velocity.Y <= 0 {
		t.Fatalf("expected to rise, got y=%v v=%v", tr.Y, a.Velocity)
	}
}

func TestMovementWallStopsGroundSpeed(t *testing.T) {
	space := flatFloor(t)
	if _, err := AddTerrainPolygon(space, []cp.Vector{{X: 100, Y: 0}, {X: 120, Y: 0}, {X: 120, Y: 100}, {X: 100, Y: 100}}, 1); err != nil {
		t.Fatalf("add wall: %v", err)
	}
	w := ecs.NewWorld()
	ctx := NewSimulationContext(space, nil, nil)
	a, tr, in := groundedActor(t, w, 80)
	a.GroundSpeed = 4

	sys := NewMovementSystem(ctx)
	in.MoveX = 1
	sawImpact := false
	for i := 0; i < 30; i++ {
		ctx.Tick++
		sys.Update(w)
		sawImpact = sawImpact || a.Impact.X > 0
		if math.IsNaN(tr.X) || math.IsNaN(tr.Y) || math.IsNaN(a.GroundSpeed) || math.IsNaN(a.Collision.AngleDeg) {
			t.Fatalf("tick %d: actor state went non-finite: pos=(%v, %v) gsp=%v angle=%v", ctx.Tick, tr.X, tr.Y, a.GroundSpeed, a.Collision.AngleDeg)
		}
		if !a.Grounded || math.Abs(tr.Y-19) > 1e-6 || a.Collision.AngleDeg != 0 {
			t.Fatalf("tick %d: pressing into the wall should keep the actor on flat floor, got y=%v angle=%v grounded=%v", ctx.Tick, tr.Y, a.Collision.AngleDeg, a.Grounded)
		}
	}
	if !sawImpact {
		t.Fatalf("expected the wall to absorb velocity at least once")
	}
	if a.Wall != component.HitRight || a.GroundSpeed != 0 {
		t.Fatalf("expected to be pressed against the right wall, got wall=%s gsp=%v", a.Wall, a.GroundSpeed)
	}
	if tr.X > 91+1e-6 {
		t.Fatalf("actor should not overlap the wall, got x=%v", tr.X)
	}
}

func TestMovementWalksOffLedge(t *testing.T) {
	space := NewSpace()
	if _, err := AddTerrainPolygon(space, []cp.Vector{{X: -100, Y: -20}, {X: 40, Y: -20}, {X: 40, Y: 0}, {X: -100, Y: 0}}, 1); err != nil {
		t.Fatalf("add ledge: %v", err)
	}
	w := ecs.NewWorld()
	ctx := NewSimulationContext(space, nil, nil)
	a, _, _ := groundedActor(t, w, 0)
	a.GroundSpeed = 3

	sys := NewMovementSystem(ctx)
	airborne := false
	for i := 0; i < 40 && !airborne; i++ {
		ctx.Tick++
		sys.Update(w)
		airborne = hasEvent(w.Events().Drain(), ecs.EventActorAirborne)
	}
	if !airborne || a.Grounded || a.Collision.GroundMode != component.GroundNone {
		t.Fatalf("expected the actor to leave the ledge")
	}
}
