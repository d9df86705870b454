package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

func TestCleanupSpillsRings(t *testing.T) {
	tests := []struct {
		name  string
		rings int
		want  int
	}{
		{"few", 3, 3},
		{"capped", 40, MaxSpilledRings},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ctx := NewSimulationContext(NewSpace(), nil, nil)
			var vels []cp.Vector
			ctx.SpawnRing = func(_ *ecs.World, _, vel cp.Vector) (ecs.Entity, error) {
				vels = append(vels, vel)
				return 0, nil
			}
			e := spawnTestActor(t, w, component.ActorPlayer, 0, 0)
			a, _ := ecs.Get(w, e, component.ActorComponent.Kind())
			a.SpillRings = tc.rings

			NewCleanupSystem(ctx).Update(w)
			if len(vels) != tc.want {
				t.Fatalf("expected %d rings, got %d", tc.want, len(vels))
			}
			if a.SpillRings != 0 {
				t.Fatalf("spill should be consumed")
			}
			// rings alternate left and right in pairs
			if tc.want >= 2 && (vels[0].X >= 0) == (vels[1].X >= 0) {
				t.Fatalf("expected mirrored pair, got %v %v", vels[0], vels[1])
			}
			events := w.Events().Drain()
			if !hasEvent(events, ecs.EventActorHurt) || !hasEvent(events, ecs.EventRingsSpilled) {
				t.Fatalf("expected hurt and spill events, got %v", events)
			}
		})
	}
}

func TestCleanupKillPlane(t *testing.T) {
	w := ecs.NewWorld()
	ctx := NewSimulationContext(NewSpace(), nil, nil)
	lb := w.CreateEntity()
	if err := ecs.Add(w, lb, component.LevelBoundsComponent.Kind(), &component.LevelBounds{KillY: -100, Spawn: cp.Vector{X: 64, Y: 40}}); err != nil {
		t.Fatalf("add bounds: %v", err)
	}
	player := spawnTestActor(t, w, component.ActorPlayer, 10, -150)
	badnik := spawnTestActor(t, w, component.ActorBadnik, 20, -150)
	pa, _ := ecs.Get(w, player, component.ActorComponent.Kind())
	pa.Rings = 7

	NewCleanupSystem(ctx).Update(w)

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if pt.X != 64 || pt.Y != 40 || pa.Dead || pa.Rings != 0 {
		t.Fatalf("player should respawn at the spawn point, got (%v,%v) %+v", pt.X, pt.Y, pa)
	}
	if !pa.Invulnerable() {
		t.Fatalf("respawned player should be invulnerable")
	}
	if w.IsAlive(badnik) {
		t.Fatalf("badnik below the kill plane should be destroyed")
	}
	events := w.Events().Drain()
	if !hasEvent(events, ecs.EventActorDied) || !hasEvent(events, ecs.EventActorRespawn) {
		t.Fatalf("expected died and respawn events, got %v", events)
	}
}

func TestCleanupExpiresAndDestroys(t *testing.T) {
	space := NewSpace()
	w := ecs.NewWorld()
	ctx := NewSimulationContext(space, nil, nil)

	ring := w.CreateEntity()
	if err := ecs.Add(w, ring, component.TTLComponent.Kind(), &component.TTL{Ticks: 2}); err != nil {
		t.Fatalf("add ttl: %v", err)
	}

	wall := w.CreateEntity()
	solid, err := NewBoxSolid(space, uint64(wall), cp.Vector{}, 16, 32, 4, false)
	if err != nil {
		t.Fatalf("NewBoxSolid: %v", err)
	}
	if err := ecs.Add(w, wall, component.SolidComponent.Kind(), solid); err != nil {
		t.Fatalf("add solid: %v", err)
	}
	host := &component.GimmickHost{Kind: component.GimmickBreakableWall, Destroy: true}
	if err := ecs.Add(w, wall, component.GimmickHostComponent.Kind(), host); err != nil {
		t.Fatalf("add host: %v", err)
	}

	sys := NewCleanupSystem(ctx)
	sys.Update(w)
	if !w.IsAlive(ring) {
		t.Fatalf("ring should survive its first tick")
	}
	if w.IsAlive(wall) || !solid.Removed {
		t.Fatalf("destroyed wall should be removed with its solid")
	}
	if hit := SensorCast(space, cp.Vector{Y: 40}, cp.Vector{Y: -1}, 80, queryAll); hit.Hit {
		t.Fatalf("wall geometry should be gone from the space")
	}
	if !hasEvent(w.Events().Drain(), ecs.EventGimmickBroken) {
		t.Fatalf("expected a broken event")
	}

	sys.Update(w)
	if w.IsAlive(ring) {
		t.Fatalf("ring should expire on its second tick")
	}
}
