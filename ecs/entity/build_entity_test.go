package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/ecs/gimmick"
	"github.com/milk9111/sensorstage/ecs/system"
	"github.com/milk9111/sensorstage/levels"
)

func TestBuildPlayerFromPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, system.NewSpace(), 64, 40)
	if err != nil {
		t.Fatalf("NewPlayerAt: %v", err)
	}

	a, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	if !ok {
		t.Fatalf("player should have an actor")
	}
	if a.Kind != component.ActorPlayer || a.Width != 18 || a.Height != 38 {
		t.Fatalf("unexpected actor %+v", a)
	}
	if a.Physics.TopSpeed != 6 || a.Physics.JumpForce != 6.5 {
		t.Fatalf("expected the classic profile, got %+v", a.Physics)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 64 || tr.Y != 40 || tr.ScaleX != 1 {
		t.Fatalf("unexpected transform %+v", tr)
	}
	layer, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
	if layer == nil || layer.Category != 8 || layer.Mask != 7 {
		t.Fatalf("unexpected collision layer %+v", layer)
	}
	for name, ok := range map[string]bool{
		"player_tag": ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		"input":      ecs.Has(w, e, component.InputComponent.Kind()),
		"name":       ecs.Has(w, e, component.NameComponent.Kind()),
	} {
		if !ok {
			t.Fatalf("player missing %s", name)
		}
	}
}

func TestBuildEntityPhysicsOverride(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, system.NewSpace(), "player.yaml", map[string]any{
		"actor": map[string]any{"physics": map[string]any{"top_speed": 3}},
	})
	if err != nil {
		t.Fatalf("BuildEntity: %v", err)
	}
	a, _ := ecs.Get(w, e, component.ActorComponent.Kind())
	if a.Physics.TopSpeed != 3 {
		t.Fatalf("override should win over the profile, got %v", a.Physics.TopSpeed)
	}
	if a.Physics.Accel != component.DefaultActorPhysics().Accel {
		t.Fatalf("profile fields not overridden should remain")
	}
	if a.Width != 18 {
		t.Fatalf("merging an override must keep sibling fields, got width %v", a.Width)
	}
}

func TestBuildBridgeSegments(t *testing.T) {
	w := ecs.NewWorld()
	space := system.NewSpace()
	e, err := BuildEntity(w, space, "bridge.yaml", map[string]any{
		"transform": map[string]any{"x": 320, "y": -4},
	})
	if err != nil {
		t.Fatalf("BuildEntity: %v", err)
	}
	solid, ok := ecs.Get(w, e, component.SolidComponent.Kind())
	if !ok || len(solid.Parts) != 12 || !solid.Kinematic {
		t.Fatalf("expected 12 kinematic parts")
	}
	b := solid.Bounds()
	if b.MinX != 224 || b.MaxX != 416 || b.MaxY != 0 {
		t.Fatalf("unexpected bridge bounds %+v", b)
	}
	host, _ := ecs.Get(w, e, component.GimmickHostComponent.Kind())
	if host.Kind != component.GimmickBridge || host.Source != component.ContactGround {
		t.Fatalf("unexpected host %+v", host)
	}
	bridge, ok := host.Impl.(*gimmick.Bridge)
	if !ok || bridge.Segments != 12 || bridge.SegmentWidth != 16 {
		t.Fatalf("expected 12 x 16 bridge, got %+v", host.Impl)
	}
	if got := system.SensorCast(space, cp.Vector{X: 330, Y: 10}, cp.Vector{Y: -1}, 20, cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)); got.Entity != uint64(e) {
		t.Fatalf("bridge shapes should carry the entity id, got %d", got.Entity)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	tests := []struct {
		name      string
		prefab    string
		overrides map[string]any
	}{
		{"missing_prefab", "nope.yaml", nil},
		{"unknown_component", "spring.yaml", map[string]any{"jetpack": map[string]any{}}},
		{"unknown_gimmick", "spring.yaml", map[string]any{"gimmick": map[string]any{"kind": "cannon"}}},
		{"bad_side", "spring.yaml", map[string]any{"gimmick": map[string]any{"side": "sideways"}}},
		{"bad_actor_kind", "player.yaml", map[string]any{"actor": map[string]any{"kind": "boss"}}},
		{"bad_category", "bridge.yaml", map[string]any{"solid": map[string]any{"category": "lava"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			space := system.NewSpace()
			if _, err := BuildEntity(w, space, tc.prefab, tc.overrides); err == nil {
				t.Fatalf("expected an error")
			}
			if w.Count() != 0 {
				t.Fatalf("failed builds should leave no entities, got %d", w.Count())
			}
		})
	}
}

func TestSpawnSpilledRing(t *testing.T) {
	w := ecs.NewWorld()
	e, err := SpawnSpilledRing(w, system.NewSpace(), cp.Vector{X: 10, Y: 20}, cp.Vector{X: -2, Y: 3})
	if err != nil {
		t.Fatalf("SpawnSpilledRing: %v", err)
	}
	a, _ := ecs.Get(w, e, component.ActorComponent.Kind())
	if a.Kind != component.ActorRing || a.Velocity.X != -2 || a.Facing != -1 {
		t.Fatalf("unexpected ring actor %+v", a)
	}
	if a.CollectDelay == 0 || a.Physics.Bounce == 0 {
		t.Fatalf("spilled rings should bounce and wait before collection")
	}
	if !ecs.Has(w, e, component.TTLComponent.Kind()) || !ecs.Has(w, e, component.GimmickHostComponent.Kind()) {
		t.Fatalf("spilled ring needs a ttl and a ring gimmick")
	}
}

func TestLoadStageToWorld(t *testing.T) {
	stage, err := levels.LoadStage("bridge_zone")
	if err != nil {
		t.Fatalf("LoadStage: %v", err)
	}
	w := ecs.NewWorld()
	space := system.NewSpace()
	loaded, err := LoadStageToWorld(w, space, stage)
	if err != nil {
		t.Fatalf("LoadStageToWorld: %v", err)
	}
	if len(loaded.Terrain) != 2 {
		t.Fatalf("expected 2 terrain shapes, got %d", len(loaded.Terrain))
	}
	if !loaded.Player.Valid() || !ecs.Has(w, loaded.Player, component.InputScriptComponent.Kind()) {
		t.Fatalf("player should be found and scripted")
	}
	bridge, ok := loaded.Named["bridge"]
	if !ok {
		t.Fatalf("bridge placement should be named")
	}
	name, _ := ecs.Get(w, bridge, component.NameComponent.Kind())
	if name == nil || name.Value != "bridge" {
		t.Fatalf("placement name should become the Name component")
	}
	host, _ := ecs.Get(w, bridge, component.GimmickHostComponent.Kind())
	if host.Bound {
		t.Fatalf("gimmicks are bound later, not at load")
	}
	lb, _ := ecs.Get(w, loaded.Bounds, component.LevelBoundsComponent.Kind())
	if lb.KillY != -150 || lb.Spawn.X != 40 {
		t.Fatalf("unexpected level bounds %+v", lb)
	}

	if _, err := LoadStageToWorld(w, nil, stage); err == nil {
		t.Fatalf("expected an error without a space")
	}
	bad := &levels.Stage{Name: "bad", Terrain: []levels.TerrainSpec{{Polygon: [][2]float64{{0, 0}, {1, 1}}}}}
	if _, err := LoadStageToWorld(ecs.NewWorld(), system.NewSpace(), bad); err == nil {
		t.Fatalf("expected an error for a degenerate polygon")
	}
}
